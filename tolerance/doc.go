// Package tolerance derives the single working tolerance used by one
// building's build attempt from the geometry's bounding extent and a
// precision mode.
//
// The rule is tolerance = clamp(extent × factor, MinTolerance, MaxTolerance),
// with factors 1e-4 (standard), 1e-5 (high), 1e-6 (maximum) and 1e-7 (ultra).
// A point set with zero extent falls back to a mode-indexed default rather
// than collapsing to the lower clamp. Unknown modes use the standard factor.
//
// For a 100 m building:
//
//	standard → 0.01     high → 0.001
//	maximum  → 0.0001   ultra → 0.00001
package tolerance
