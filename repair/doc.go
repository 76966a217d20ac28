// Package repair defines ShapeFixLevel, the ordered repair aggressiveness
// shared by the shell and solid builders, and the static escalation table the
// solid builder walks when an initial solid fails validation.
//
// A Level is both a configuration (how much cleanup the shell stage applies)
// and the starting point of an escalation path. Paths are data, not branching:
//
//	minimal    → minimal, standard, aggressive, ultra
//	standard   → standard, aggressive, ultra
//	aggressive → aggressive, ultra
//	ultra      → ultra
//
// Every path starts with its own level, climbs strictly, and ends in Ultra,
// so escalation never revisits a level and always terminates.
//
// Params carries the (precision, max tolerance) pair handed to kernel repair
// calls; the named multipliers below are the tuned constants for each call site.
package repair
