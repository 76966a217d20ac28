// Package logsink is the log port of the conversion pipeline.
//
// A Sink receives human-readable progress and diagnostic lines. Builders
// take a Logger, which wraps a Sink with the debug verbosity switch: Printf
// lines are always written, Debugf lines only when debug is on. Logging never
// changes control flow.
//
// Sinks:
//
//   - Nop discards everything.
//   - Buffer keeps lines in memory; safe for concurrent use.
//   - Func adapts a function.
//   - Zap forwards to a *zap.Logger at info level.
//   - File writes JSON lines through zap to a size-rotated file.
//
// A Logger built with a nil Sink writes to the process-wide default, which
// is set with SetDefault, removed with ClearDefault and closed with
// CloseDefault. Without a default, lines are dropped.
package logsink
