package brep

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/citysolid/geom"
)

// splitEps keeps T-junction splits away from edge end points.
const splitEps = 1e-9

// Sew merges vertices of faces lying within tol of each other, splits edges
// at vertices lying on them, drops loops that collapse, orients faces
// consistently and groups connected faces into shells. Faces connected to no
// other face are returned as loose faces of the compound.
//
// A non-positive tol sews at the confusion distance.
func (k *Polygonal) Sew(faces []*Face, tol float64) (*Compound, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("Sew: %w", ErrNoFaces)
	}
	if !(tol > 0) {
		tol = k.opts.Confusion
	}
	sewn := k.snap(faces, tol, true)
	o := orient(sewn)

	out := &Compound{}
	for _, comp := range o.components {
		if len(comp) == 1 {
			f := sewn[comp[0]]
			if o.flipped[comp[0]] {
				f = f.Reversed()
			}
			out.loose = append(out.loose, f)
			continue
		}
		sh := &Shell{faces: make([]*Face, 0, len(comp))}
		for _, i := range comp {
			f := sewn[i]
			if o.flipped[i] {
				f = f.Reversed()
			}
			sh.faces = append(sh.faces, f)
		}
		out.shells = append(out.shells, sh)
	}
	return out, nil
}

// Weld merges vertices of faces lying within tol, without splitting edges or
// grouping. Faces that collapse are dropped.
func (k *Polygonal) Weld(faces []*Face, tol float64) []*Face {
	if !(tol > 0) {
		tol = k.opts.Confusion
	}
	return k.snap(faces, tol, false)
}

// snap clusters all vertices within tol, moves each vertex to its cluster's
// first-seen member, optionally splits edges at clustered vertices lying on
// them, and rebuilds the faces. Faces whose outer loop collapses are dropped.
func (k *Polygonal) snap(faces []*Face, tol float64, split bool) []*Face {
	rep := clusterVertices(faces, tol)

	var verts []geom.Point
	if split {
		seen := make(map[geom.Point]struct{}, len(rep))
		for _, r := range rep {
			if _, ok := seen[r]; !ok {
				seen[r] = struct{}{}
				verts = append(verts, r)
			}
		}
		sort.Slice(verts, func(i, j int) bool { return less(verts[i], verts[j]) })
	}

	remap := func(loop []geom.Point) []geom.Point {
		out := make([]geom.Point, len(loop))
		for i, p := range loop {
			out[i] = rep[p]
		}
		out = dedupeLoop(out, 0)
		if split {
			out = splitLoop(out, verts, tol)
		}
		return removeSpikes(out)
	}

	out := make([]*Face, 0, len(faces))
	for _, f := range faces {
		outer := remap(f.outer)
		if len(outer) < geom.MinRingPoints {
			continue
		}
		var holes [][]geom.Point
		for _, h := range f.holes {
			if hh := remap(h); len(hh) >= geom.MinRingPoints {
				holes = append(holes, hh)
			}
		}
		nf, _, err := k.newFace(outer, holes, f.tol)
		if err != nil {
			continue
		}
		out = append(out, nf)
	}
	return out
}

// clusterVertices maps every vertex of faces to the first-seen vertex of its
// cluster, where clusters are the transitive closure of "within tol".
func clusterVertices(faces []*Face, tol float64) map[geom.Point]geom.Point {
	var pts []geom.Point
	index := make(map[geom.Point]int)
	for _, f := range faces {
		for _, loop := range f.loops() {
			for _, p := range loop {
				if _, ok := index[p]; !ok {
					index[p] = len(pts)
					pts = append(pts, p)
				}
			}
		}
	}

	parent := make([]int, len(pts))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// the smaller index stays the root so the first-seen point wins
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	type cell [3]int64
	cellOf := func(p geom.Point) cell {
		return cell{
			int64(math.Floor(p.X / tol)),
			int64(math.Floor(p.Y / tol)),
			int64(math.Floor(p.Z / tol)),
		}
	}
	grid := make(map[cell][]int)
	for i, p := range pts {
		c := cellOf(p)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						if geom.Dist(p, pts[j]) <= tol {
							union(i, j)
						}
					}
				}
			}
		}
		grid[c] = append(grid[c], i)
	}

	rep := make(map[geom.Point]geom.Point, len(pts))
	for i, p := range pts {
		rep[p] = pts[find(i)]
	}
	return rep
}

// splitLoop inserts every vertex of verts (sorted by X) that lies within tol
// of an edge interior into that edge, ordered along the edge.
func splitLoop(loop, verts []geom.Point, tol float64) []geom.Point {
	type hit struct {
		p geom.Point
		t float64
	}
	out := make([]geom.Point, 0, len(loop))
	for i, a := range loop {
		b := loop[(i+1)%len(loop)]
		out = append(out, a)
		lo := math.Min(a.X, b.X) - tol
		hi := math.Max(a.X, b.X) + tol
		start := sort.Search(len(verts), func(j int) bool { return verts[j].X >= lo })
		var hits []hit
		for j := start; j < len(verts) && verts[j].X <= hi; j++ {
			v := verts[j]
			if v == a || v == b {
				continue
			}
			d, t := geom.SegmentDistance(v, a, b)
			if d <= tol && t > splitEps && t < 1-splitEps {
				hits = append(hits, hit{p: v, t: t})
			}
		}
		sort.Slice(hits, func(x, y int) bool { return hits[x].t < hits[y].t })
		for _, h := range hits {
			out = append(out, h.p)
		}
	}
	return dedupeLoop(out, 0)
}

// removeSpikes drops vertices whose neighbours coincide (a, b, a), which leave
// a zero-width sliver after snapping.
func removeSpikes(loop []geom.Point) []geom.Point {
	for changed := true; changed && len(loop) >= geom.MinRingPoints; {
		changed = false
		n := len(loop)
		for i := 0; i < n; i++ {
			prev, next := loop[(i+n-1)%n], loop[(i+1)%n]
			if prev == next {
				loop = append(append([]geom.Point(nil), loop[:i]...), loop[i+1:]...)
				loop = dedupeLoop(loop, 0)
				changed = true
				break
			}
		}
	}
	return loop
}
