package pipeline

import (
	"fmt"
	"time"

	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/solid"
)

// Polygon is one planar surface: an exterior ring and its holes.
type Polygon struct {
	Exterior geom.Ring
	Holes    []geom.Ring
}

// Building is the ring soup of one building.
type Building struct {
	// ID identifies the building in logs and results; empty IDs are replaced
	// by a random UUID.
	ID        string
	Exterior  []Polygon
	Interiors [][]Polygon
}

// Rings returns every exterior ring, holes included.
func (b Building) Rings() []geom.Ring {
	var out []geom.Ring
	for _, p := range b.Exterior {
		out = append(out, p.Exterior)
		out = append(out, p.Holes...)
	}
	return out
}

// Result is the outcome of one building.
type Result struct {
	ID    string
	Solid solid.Result
	// Faces counts the exterior faces built.
	Faces int
	// PolygonsFailed counts exterior polygons for which every face level failed.
	PolygonsFailed int
	Duration       time.Duration
}

// Summary counts results by kind.
type Summary struct {
	Total     int
	Solids    int
	Shells    int
	Compounds int
	Failed    int
}

// Summarize counts results by the kind of shape produced.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Solid.Kind {
		case solid.KindSolid:
			s.Solids++
		case solid.KindShell:
			s.Shells++
		case solid.KindCompound:
			s.Compounds++
		default:
			s.Failed++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d buildings: %d solids, %d shells, %d compounds, %d failed",
		s.Total, s.Solids, s.Shells, s.Compounds, s.Failed)
}
