package repair

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognized names.
var ErrUnknownLevel = errors.New("repair: unknown shape fix level")

// Level orders repair aggressiveness: Minimal < Standard < Aggressive < Ultra.
type Level int

const (
	Minimal Level = iota
	Standard
	Aggressive
	Ultra
)

var levelNames = [...]string{"minimal", "standard", "aggressive", "ultra"}

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{Minimal, Standard, Aggressive, Ultra}
}

// String returns the lower-case level name.
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool {
	return l >= Minimal && l <= Ultra
}

// AtLeast reports whether l is as aggressive as other.
func (l Level) AtLeast(other Level) bool {
	return l >= other
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(raw string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return Minimal, fmt.Errorf("%w: %q", ErrUnknownLevel, raw)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// escalationTable is the single source of truth for repair escalation.
var escalationTable = map[Level][]Level{
	Minimal:    {Minimal, Standard, Aggressive, Ultra},
	Standard:   {Standard, Aggressive, Ultra},
	Aggressive: {Aggressive, Ultra},
	Ultra:      {Ultra},
}

// Escalation returns the ordered levels to try when starting from l.
// An undefined level yields the full path from Minimal.
// The returned slice is a copy and may be modified by the caller.
func Escalation(l Level) []Level {
	path, ok := escalationTable[l]
	if !ok {
		path = escalationTable[Minimal]
	}
	out := make([]Level, len(path))
	copy(out, path)
	return out
}
