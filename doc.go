// Package citysolid turns the ring soup of CityGML buildings into
// watertight B-rep solids.
//
// What is citysolid?
//
//	A pure-Go geometry core that takes the 3D boundary rings of a building
//	(already parsed and reprojected) and returns one of:
//		• a Solid, with cavities for closed interior shells
//		• a Shell, when the boundary cannot be closed
//		• a Compound, when the building has disconnected parts
//		• nothing, when no shell could be sewn at all
//
// Every failure is absorbed locally: faces fall down a four-level ladder,
// shells are reconciled, and invalid solids climb a fixed escalation path
// minimal → standard → aggressive → ultra before the exterior shell is
// returned as the best available result.
//
// Packages, leaves first:
//
//	geom/      rings, best-fit planes, projection, fan triangulation
//	tolerance/ sewing tolerance from the building extent and a precision mode
//	repair/    shape fix levels, escalation table, repair parameters
//	brep/      the Kernel interface and the polygonal kernel
//	face/      face builder ladder and face cleanup strategies
//	shell/     shell assembler: sewing and multi-shell reconciliation
//	solid/     solid builder, auto-escalation, Diagnose
//	pipeline/  per-building conversion and concurrent batches
//	config/    YAML configuration with CITYSOLID_* overrides
//	logsink/   injectable log port with zap and rotating-file sinks
//	metrics/   outcome counters, no-op or Prometheus
//	builder/   deterministic ring fixtures (boxes, prisms, houses)
//
// Quick example:
//
//	conv := pipeline.NewConverter(pipeline.WithLevel(repair.Aggressive))
//	res := conv.Convert(pipeline.Building{ID: "b1", Exterior: polygons})
//	fmt.Println(res.Solid.Kind) // solid
//
// See examples/ for runnable scenarios.
//
//	go get github.com/katalvlaran/citysolid
package citysolid
