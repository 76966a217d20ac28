package logsink

import "fmt"

// Logger writes formatted lines to a Sink.
// The zero value writes to the process-wide default without debug output.
type Logger struct {
	sink  Sink
	debug bool
}

// New returns a Logger over sink. A nil sink resolves to Default() on every
// write, so a later SetDefault takes effect.
func New(sink Sink, debug bool) Logger {
	return Logger{sink: sink, debug: debug}
}

// Debug reports whether Debugf lines are written.
func (l Logger) Debug() bool { return l.debug }

// Printf writes a line unconditionally.
func (l Logger) Printf(format string, args ...any) {
	l.target().Append(fmt.Sprintf(format, args...))
}

// Debugf writes a line only in debug mode.
func (l Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.target().Append(fmt.Sprintf(format, args...))
}

func (l Logger) target() Sink {
	if l.sink == nil {
		return Default()
	}
	return l.sink
}
