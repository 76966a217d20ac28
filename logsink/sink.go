package logsink

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Sink is an append-only line stream.
type Sink interface {
	Append(line string)
}

// Nop discards all lines.
type Nop struct{}

// Append implements Sink.
func (Nop) Append(string) {}

// Func adapts a function to Sink.
type Func func(line string)

// Append implements Sink.
func (f Func) Append(line string) { f(line) }

// Buffer collects lines in memory.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// Append implements Sink.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
}

// Lines returns a copy of the collected lines.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Reset drops the collected lines.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.lines = nil
	b.mu.Unlock()
}

// String joins the collected lines with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Zap forwards lines to a zap logger.
type Zap struct {
	l *zap.Logger
}

// NewZap wraps l. A nil logger yields a no-op zap logger.
func NewZap(l *zap.Logger) *Zap {
	if l == nil {
		l = zap.NewNop()
	}
	return &Zap{l: l}
}

// Append implements Sink.
func (z *Zap) Append(line string) {
	z.l.Info(line)
}

// Close flushes the underlying logger.
func (z *Zap) Close() error {
	return z.l.Sync()
}
