// Package metrics records conversion outcomes.
//
// Components receive a Recorder through options and default to NoopRecorder,
// so metrics never require nil checks at call sites. PrometheusRecorder
// registers counters and a duration histogram on a caller-supplied registry;
// exposing that registry over HTTP is left to the embedding program.
package metrics
