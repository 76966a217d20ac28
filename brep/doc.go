// Package brep is the boundary-representation kernel the repair pipeline
// builds on. The pipeline only talks to the Kernel interface; Polygonal is a
// deterministic pure-Go implementation for planar polygonal models, which is
// what LOD1–LOD3 building geometry is.
//
// What:
//
//   - Shapes: Wire (closed polygon), Face (outer loop + hole loops on a plane,
//     with its own tolerance), Shell (faces sharing edges), Compound (shells
//     plus loose faces), Solid (outer shell + cavity shells).
//   - Construction: MakeWire, MakeFace (optionally strictly planar), AddHole,
//     MakeSolid.
//   - Sewing: vertices within the sewing tolerance are merged, edges are split
//     at vertices lying on them, collapsed loops are dropped, faces are
//     oriented consistently across shared edges, and connected faces are
//     grouped into shells. Isolated faces come back as loose faces.
//   - Analysis: IsValid, IsClosed, Edges, FreeEdges.
//   - Repair: FixFace, FixShell, FixSolid, FixShape, each driven by
//     repair.Params{Precision, MaxTolerance}; Unify merges coplanar
//     neighbours sharing a single edge.
//
// Conventions:
//
//   - A face's normal is the Newell normal of its outer loop; hole loops wind
//     the other way. Reversing a face reverses every loop.
//   - Edges are identified by their exact end coordinates after sewing.
//     A shell is closed when every edge is used by exactly two faces.
//   - A solid's outer shell encloses positive signed volume; cavities negative.
//
// Shapes are immutable values: every operation returns new shapes.
// Kernel objects are not shared across goroutines by the pipeline; Polygonal
// itself holds only configuration and is safe for concurrent use.
package brep
