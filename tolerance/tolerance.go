package tolerance

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/citysolid/geom"
)

// Mode selects how tight the derived tolerance is relative to the extent.
type Mode string

const (
	Standard Mode = "standard"
	High     Mode = "high"
	Maximum  Mode = "maximum"
	Ultra    Mode = "ultra"
)

// Clamp bounds for every derived tolerance.
const (
	MinTolerance = 1e-6
	MaxTolerance = 10.0
)

type modeSpec struct {
	factor   float64 // fraction of the extent
	fallback float64 // tolerance for zero-extent input
	summary  string
}

var modes = map[Mode]modeSpec{
	Standard: {factor: 1e-4, fallback: 0.01, summary: "0.01% of extent (10 mm for a 100 m building)"},
	High:     {factor: 1e-5, fallback: 0.001, summary: "0.001% of extent (1 mm for a 100 m building)"},
	Maximum:  {factor: 1e-6, fallback: 0.0001, summary: "0.0001% of extent (0.1 mm for a 100 m building)"},
	Ultra:    {factor: 1e-7, fallback: 0.00001, summary: "0.00001% of extent (0.01 mm for a 100 m building)"},
}

// Modes returns the known precision modes from loosest to tightest.
func Modes() []Mode {
	return []Mode{Standard, High, Maximum, Ultra}
}

// ParseMode normalizes case and surrounding space. The result may still be an
// unknown mode; Factor and FromPoints treat those as Standard.
func ParseMode(raw string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether m is one of the four precision modes.
func (m Mode) Known() bool {
	_, ok := modes[m]
	return ok
}

func (m Mode) spec() modeSpec {
	if s, ok := modes[m]; ok {
		return s
	}
	return modes[Standard]
}

// Factor returns the extent scale factor for m.
func Factor(m Mode) float64 { return m.spec().factor }

// FromPoints computes the tolerance for pts under mode m.
//
// Zero extent (fewer than 2 points or all points coincident) returns the
// mode's fallback constant. Otherwise the result is extent × factor clamped
// to [MinTolerance, MaxTolerance]. The result is always positive.
func FromPoints(pts []geom.Point, m Mode) float64 {
	s := m.spec()
	extent := geom.Extent(pts)
	if extent == 0 {
		return s.fallback
	}
	return math.Max(MinTolerance, math.Min(MaxTolerance, extent*s.factor))
}

// FromRings flattens rings and delegates to FromPoints.
func FromRings(m Mode, rings ...geom.Ring) float64 {
	var n int
	for _, r := range rings {
		n += len(r)
	}
	pts := make([]geom.Point, 0, n)
	for _, r := range rings {
		pts = append(pts, r...)
	}
	return FromPoints(pts, m)
}

// Describe returns a human-readable description of a precision mode.
func Describe(m Mode) string {
	s, ok := modes[m]
	if !ok {
		return fmt.Sprintf("Unknown precision mode %q (standard factor applies)", string(m))
	}
	return fmt.Sprintf("%s: tolerance = %s", m, s.summary)
}
