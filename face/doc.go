// Package face turns one surface ring (plus hole rings) into kernel faces.
//
// What:
//
//	Build runs an ordered ladder and stops at the first rung that yields a face:
//
//	  1. direct       – wire + face, planarity not enforced beyond the kernel's
//	                    surface tolerance; holes that fail are skipped.
//	  2. projected    – exterior projected onto its least-squares plane;
//	                    holes kept as given.
//	  3. repaired     – face from the original ring, then FixFace with
//	                    precision tol and max tolerance tol×1000.
//	  4. triangulated – fan triangles from the first vertex; holes dropped;
//	                    triangles that fail are skipped.
//
//	A kernel panic inside a rung fails that rung only. The returned slice is
//	never nil; an empty slice means the ring produced no face at all.
//
//	ValidateAndFix returns a face only if it is, or can be made, valid.
//
//	Cleanup is the strategy slot for whole-face-set passes run by the shell
//	assembler: Identity (no-op), WeldVertices and OrientByAdjacency.
//
// Complexity:
//
//	Rungs 1–3 are O(n) in ring size plus hole count; rung 4 builds n-2
//	triangles.
package face
