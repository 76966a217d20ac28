// Package shell sews built faces into a shell, or a compound of shells for
// buildings made of disconnected parts.
//
// What:
//
//	Assembler.Build(faces, tol, level) runs these stages, gated by level:
//
//	  1. aggressive+  validate and fix every face, drop unfixable ones
//	  2. standard+    orientation cleanup slot (Identity by default)
//	  3. aggressive+  vertex cleanup slot (Identity by default)
//	  4. all          sewing: ultra sews at tol×10, tol×5, tol×1 in that
//	                  order, feeding each pass's faces into the next;
//	                  other levels sew once at tol
//	  5. standard+    whole-shape fix with repair.ShellFixParams
//	  6. all          shell extraction and reconciliation of multiple shells
//
//	and a final best-effort fix of an invalid result, kept whether or not it
//	validates.
//
//	The result is nil only when no shell could be extracted.
//
// Reconciliation of several shells:
//
//	A shell is acceptable if valid or if fewer than InvalidFaceRatioThreshold
//	of its faces are invalid. Faces of acceptable shells (only the valid ones
//	for partially valid shells) are re-sewn at tol: one shell is used
//	directly, several become a compound, none falls back to the largest
//	acceptable shell. With no acceptable shell, every face is re-sewn at
//	tol×ResewRelaxMultiplier and the largest shell wins, else the largest
//	original shell.
package shell
