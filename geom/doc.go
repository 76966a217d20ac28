// Package geom holds the plain geometry the repair pipeline works on:
// coordinate rings extracted from CityGML polygons, their bounding extent,
// least-squares planes, projections, and fan triangulation.
//
// What:
//
//   - Ring: an ordered 3D polygon boundary. Normalize drops a duplicated
//     closing point; a usable ring has at least MinRingPoints distinct points.
//   - Extent: the largest axis-aligned bounding-box dimension of a point set.
//   - BestFitPlane: centroid plus the smallest-eigenvalue eigenvector of the
//     3×3 covariance matrix (gonum/mat.EigenSym), oriented like the Newell normal.
//   - Plane: signed distance, orthogonal projection and a 2D basis used to hand
//     loops to orb/planar for area and containment tests.
//   - TriangulateFan: n-2 triangles (v0, vi, vi+1) sharing the first vertex.
//
// Complexity:
//
//   - Normalize, Extent, NewellNormal, TriangulateFan: O(n)
//   - BestFitPlane: O(n) to build the covariance, O(1) for the 3×3 eigen solve
//   - LoopIsSimple: O(n²) pairwise segment tests
package geom
