package brep

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
)

// coplanarCos is the minimum normal dot product of faces Unify merges.
const coplanarCos = 1 - 1e-9

// Unify merges coplanar hole-free faces that share exactly one edge and no
// other vertex, then drops the shared end points when they become collinear
// interior vertices no other face uses. Shells inside compounds and solids
// are unified independently.
func (k *Polygonal) Unify(shape Shape) (Shape, error) {
	if isNil(shape) {
		return nil, fmt.Errorf("Unify: %w", ErrNilShape)
	}
	switch s := shape.(type) {
	case *Face:
		return s, nil
	case *Shell:
		return k.unifyShell(s), nil
	case *Compound:
		out := &Compound{loose: append([]*Face(nil), s.loose...)}
		for _, sh := range s.shells {
			out.shells = append(out.shells, k.unifyShell(sh))
		}
		return out, nil
	case *Solid:
		out := &Solid{outer: k.unifyShell(s.outer)}
		for _, c := range s.cavities {
			out.cavities = append(out.cavities, k.unifyShell(c))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("Unify: %T: %w", shape, ErrUnsupportedShape)
	}
}

func (k *Polygonal) unifyShell(s *Shell) *Shell {
	faces := append([]*Face(nil), s.faces...)
	for len(faces) > 1 {
		merged, i, j, ok := k.mergeOnce(faces)
		if !ok {
			break
		}
		next := make([]*Face, 0, len(faces)-1)
		for x, f := range faces {
			switch x {
			case i:
				next = append(next, merged)
			case j:
			default:
				next = append(next, f)
			}
		}
		faces = next
	}
	return &Shell{faces: faces}
}

// mergeOnce finds the first mergeable face pair and returns their union,
// which replaces face i while face j is removed.
func (k *Polygonal) mergeOnce(faces []*Face) (*Face, int, int, bool) {
	shared := make(map[[2]int][]edgeKey)
	for key, uses := range edgeMap(faces) {
		if len(uses) != 2 || uses[0].face == uses[1].face {
			continue
		}
		a, b := uses[0].face, uses[1].face
		if a > b {
			a, b = b, a
		}
		shared[[2]int{a, b}] = append(shared[[2]int{a, b}], key)
	}
	pairs := make([][2]int, 0, len(shared))
	for p, keys := range shared {
		if len(keys) == 1 {
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x][0] != pairs[y][0] {
			return pairs[x][0] < pairs[y][0]
		}
		return pairs[x][1] < pairs[y][1]
	})

	for _, p := range pairs {
		f, g := faces[p[0]], faces[p[1]]
		if !k.coplanar(f, g) {
			continue
		}
		key := shared[p][0]
		loop, ok := joinLoops(f.outer, g.outer, key)
		if !ok {
			continue
		}
		tol := math.Max(f.tol, g.tol)
		loop = dropCollinear(loop, []geom.Point{key.a, key.b}, faces, p, tol)
		if len(loop) < geom.MinRingPoints {
			continue
		}
		merged, _, err := k.newFace(loop, nil, tol)
		if err != nil {
			continue
		}
		return merged, p[0], p[1], true
	}
	return nil, 0, 0, false
}

func (k *Polygonal) coplanar(f, g *Face) bool {
	if len(f.holes) > 0 || len(g.holes) > 0 {
		return false
	}
	if r3.Dot(f.normal, g.normal) < coplanarCos {
		return false
	}
	pl, err := f.Plane()
	if err != nil {
		return false
	}
	return pl.MaxDeviation(g.outer) <= math.Max(f.tol, g.tol)
}

// joinLoops splices f and g along the edge key. f must traverse it as u→v and
// g as v→u, and the loops must share no vertex besides u and v.
func joinLoops(f, g []geom.Point, key edgeKey) ([]geom.Point, bool) {
	fi := edgeIndex(f, key)
	gi := edgeIndex(g, key)
	if fi < 0 || gi < 0 {
		return nil, false
	}
	u, v := f[fi], f[(fi+1)%len(f)]
	if g[gi] != v || g[(gi+1)%len(g)] != u {
		return nil, false
	}
	inF := make(map[geom.Point]struct{}, len(f))
	for _, p := range f {
		inF[p] = struct{}{}
	}
	common := 0
	for _, p := range g {
		if _, ok := inF[p]; ok {
			common++
		}
	}
	if common != 2 {
		return nil, false
	}

	// f from v around to u, then g strictly between u and v
	out := make([]geom.Point, 0, len(f)+len(g)-2)
	for x := 1; x <= len(f); x++ {
		out = append(out, f[(fi+x)%len(f)])
	}
	for x := 2; x < len(g); x++ {
		out = append(out, g[(gi+x)%len(g)])
	}
	return out, true
}

func edgeIndex(loop []geom.Point, key edgeKey) int {
	for i, p := range loop {
		q := loop[(i+1)%len(loop)]
		if (p == key.a && q == key.b) || (p == key.b && q == key.a) {
			return i
		}
	}
	return -1
}

// dropCollinear removes candidates from loop when they lie within tol of the
// segment joining their neighbours and no face other than the pair uses them.
func dropCollinear(loop, candidates []geom.Point, faces []*Face, pair [2]int, tol float64) []geom.Point {
	for _, c := range candidates {
		if usedElsewhere(c, faces, pair) {
			continue
		}
		n := len(loop)
		if n <= geom.MinRingPoints {
			break
		}
		for i, p := range loop {
			if p != c {
				continue
			}
			prev, next := loop[(i+n-1)%n], loop[(i+1)%n]
			if d, _ := geom.SegmentDistance(p, prev, next); d <= tol {
				loop = append(append([]geom.Point(nil), loop[:i]...), loop[i+1:]...)
			}
			break
		}
	}
	return loop
}

func usedElsewhere(p geom.Point, faces []*Face, pair [2]int) bool {
	for i, f := range faces {
		if i == pair[0] || i == pair[1] {
			continue
		}
		for _, loop := range f.loops() {
			for _, q := range loop {
				if q == p {
					return true
				}
			}
		}
	}
	return false
}
