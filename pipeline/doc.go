// Package pipeline converts buildings, given as 3D rings, into solids.
//
// Convert runs one building through the face builder and the solid
// builder with a single tolerance: the configured sew tolerance when set,
// otherwise one derived from every exterior ring. ConvertAll runs many
// buildings concurrently with a bounded number of workers and returns the
// results in input order.
//
// Shapes are immutable and the polygonal kernel holds no mutable state, so
// one Converter may be shared by all workers. A custom kernel passed with
// WithKernel must be safe for concurrent use when ConvertAll runs more than
// one worker.
package pipeline
