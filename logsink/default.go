package logsink

import (
	"io"
	"sync"
)

var (
	defaultMu   sync.RWMutex
	defaultSink Sink
)

// SetDefault installs s as the process-wide sink. A nil s clears it.
func SetDefault(s Sink) {
	defaultMu.Lock()
	defaultSink = s
	defaultMu.Unlock()
}

// Default returns the process-wide sink, or Nop when none is set.
func Default() Sink {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultSink == nil {
		return Nop{}
	}
	return defaultSink
}

// ClearDefault removes the process-wide sink without closing it.
func ClearDefault() { SetDefault(nil) }

// CloseDefault closes the process-wide sink if it implements io.Closer and
// removes it.
func CloseDefault() error {
	defaultMu.Lock()
	s := defaultSink
	defaultSink = nil
	defaultMu.Unlock()
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
