// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// Package builder produces deterministic building geometry fixtures: closed
// boxes and extruded footprints as lists of surface rings, plus defective
// variants (open box, split roof, jittered vertices) that exercise the repair
// pipeline.
//
// Every constructor returns rings wound counter-clockwise when seen from
// outside, so a closed fixture sews into an outward-facing shell.
//
// Configuration follows the functional-options style:
//
//   - WithSeed / WithRand: RNG for stochastic options.
//   - WithJitter(a):       move every ring vertex occurrence independently by
//     up to a per axis. Shared corners stop coinciding, which is the
//     defect sewing repairs. Requires an RNG.
//   - WithOffset(v):       translate the fixture.
//   - WithClosedRings():   repeat the first point at the end of each ring, as
//     GML posLists do.
//
// Option constructors panic on meaningless input; constructors return
// sentinel errors wrapped with method context.
package builder
