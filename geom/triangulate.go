package geom

// TriangulateFan splits a polygon into triangles sharing its first vertex.
//
// For n vertices it returns n-2 triangles [v0, vi, vi+1], i = 1..n-2.
// Fewer than 3 vertices yield nil; exactly 3 yield the input as the single
// triangle. Every triangle is planar by construction, so fan triangulation is
// the fallback of last resort for faces that cannot be built otherwise.
// Holes are not representable and must be dropped by the caller.
//
// Complexity: O(n) time and memory.
func TriangulateFan(verts []Point) [][]Point {
	if len(verts) < 3 {
		return nil
	}
	if len(verts) == 3 {
		return [][]Point{verts}
	}
	pivot := verts[0]
	tris := make([][]Point, 0, len(verts)-2)
	for i := 1; i < len(verts)-1; i++ {
		tris = append(tris, []Point{pivot, verts[i], verts[i+1]})
	}
	return tris
}
