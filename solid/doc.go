// Package solid turns exterior and cavity face groups into a B-rep solid.
//
// What:
//
//	Builder.Build(Input) derives a tolerance when none is given, assembles
//	the exterior shell with the shell package and returns early with the
//	shell when it is open or with the compound when the building has
//	several disconnected parts. Closed cavity shells are kept; open ones
//	are dropped. The solid is then built and validated.
//
//	An invalid solid enters auto-escalation: every level of
//	repair.Escalation(Input.Level) is tried in order and each level runs the
//	strategies it unlocks, stopping at the first valid result:
//
//	  solid fix          minimal+    FixSolid(tol, tol×10), kept for later steps
//	  unify              standard+   merge coplanar neighbours
//	  relaxed rebuild    aggressive+ exterior re-sewn at tol×2, cavities re-attached
//	  whole-shape fix    ultra       FixShape(tol, tol×100)
//
//	When everything fails, and whenever a kernel call panics, the exterior
//	shell is returned instead of a solid.
//
// Diagnose and IsExportable inspect a shape without changing it.
//
// Complexity:
//
//	At most 4 levels × 4 strategies; each strategy costs one kernel repair
//	or one shell assembly.
package solid
