package brep

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
)

// edgeKey identifies an undirected edge by its end points, lower first.
type edgeKey struct {
	a, b geom.Point
}

// edgeUse records one traversal of an edge by a face loop.
type edgeUse struct {
	face    int
	forward bool // traversed from key.a to key.b
}

func less(p, q geom.Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

func keyOf(p, q geom.Point) (edgeKey, bool) {
	if less(q, p) {
		return edgeKey{a: q, b: p}, false
	}
	return edgeKey{a: p, b: q}, true
}

// edgeMap collects every loop edge of faces. Zero-length edges are skipped.
func edgeMap(faces []*Face) map[edgeKey][]edgeUse {
	m := make(map[edgeKey][]edgeUse)
	for i, f := range faces {
		for _, loop := range f.loops() {
			for j, p := range loop {
				q := loop[(j+1)%len(loop)]
				if p == q {
					continue
				}
				k, fwd := keyOf(p, q)
				m[k] = append(m[k], edgeUse{face: i, forward: fwd})
			}
		}
	}
	return m
}

// Edges returns the number of distinct edges of shape.
func (k *Polygonal) Edges(shape Shape) int {
	if isNil(shape) {
		return 0
	}
	return len(edgeMap(shape.Faces()))
}

// FreeEdges returns the number of edges of shape not shared by exactly two
// faces. Shells are counted independently so a solid's cavities never pair
// edges with its outer shell.
func (k *Polygonal) FreeEdges(shape Shape) int {
	if isNil(shape) {
		return 0
	}
	var groups [][]*Face
	switch s := shape.(type) {
	case *Face:
		groups = [][]*Face{{s}}
	case *Compound:
		for _, sh := range s.shells {
			groups = append(groups, sh.faces)
		}
		for _, f := range s.loose {
			groups = append(groups, []*Face{f})
		}
	default:
		for _, sh := range Shells(shape) {
			groups = append(groups, sh.faces)
		}
	}
	n := 0
	for _, g := range groups {
		for _, uses := range edgeMap(g) {
			if len(uses) != 2 {
				n++
			}
		}
	}
	return n
}

// IsClosed reports whether every shell of shape has each edge used by exactly
// two faces. A compound with loose faces is open; a face is never closed.
func (k *Polygonal) IsClosed(shape Shape) bool {
	if isNil(shape) {
		return false
	}
	switch s := shape.(type) {
	case *Shell:
		return shellClosed(s)
	case *Compound:
		if len(s.loose) > 0 || len(s.shells) == 0 {
			return false
		}
		for _, sh := range s.shells {
			if !shellClosed(sh) {
				return false
			}
		}
		return true
	case *Solid:
		return shellClosed(s.outer)
	default:
		return false
	}
}

func shellClosed(s *Shell) bool {
	if s == nil || len(s.faces) == 0 {
		return false
	}
	for _, uses := range edgeMap(s.faces) {
		if len(uses) != 2 {
			return false
		}
	}
	return true
}

// consistentlyOriented reports whether every manifold edge is traversed in
// opposite directions by its two faces.
func consistentlyOriented(faces []*Face) bool {
	for _, uses := range edgeMap(faces) {
		if len(uses) == 2 && uses[0].face != uses[1].face && uses[0].forward == uses[1].forward {
			return false
		}
	}
	return true
}

// manifold reports whether no edge is used by more than two loops.
func manifold(faces []*Face) bool {
	for _, uses := range edgeMap(faces) {
		if len(uses) > 2 {
			return false
		}
	}
	return true
}

// signedVolume returns the volume enclosed by faces, positive when normals
// point outward.
func signedVolume(faces []*Face) float64 {
	var v float64
	for _, f := range faces {
		for _, loop := range f.loops() {
			if len(loop) < 3 {
				continue
			}
			p0 := loop[0]
			for i := 1; i+1 < len(loop); i++ {
				v += r3.Dot(p0, r3.Cross(loop[i], loop[i+1]))
			}
		}
	}
	return v / 6
}

// orientation is the result of a breadth-first walk over face adjacency.
type orientation struct {
	flipped    []bool
	components [][]int // face indices per component, ascending
}

// orient groups faces into edge-connected components and chooses, per face,
// whether to flip it so that manifold edges are traversed in opposite
// directions. The first face of each component keeps its orientation.
func orient(faces []*Face) orientation {
	type link struct {
		to       int
		self     bool // this face's forward flag
		other    bool
		manifold bool
	}
	adj := make([][]link, len(faces))
	for _, uses := range edgeMap(faces) {
		if len(uses) < 2 {
			continue
		}
		mf := len(uses) == 2
		for i := range uses {
			for j := range uses {
				if i == j || uses[i].face == uses[j].face {
					continue
				}
				adj[uses[i].face] = append(adj[uses[i].face], link{
					to: uses[j].face, self: uses[i].forward, other: uses[j].forward, manifold: mf,
				})
			}
		}
	}
	// manifold links first so orientation follows them when both exist
	for i := range adj {
		sort.SliceStable(adj[i], func(a, b int) bool {
			return adj[i][a].manifold && !adj[i][b].manifold
		})
	}

	res := orientation{flipped: make([]bool, len(faces))}
	visited := make([]bool, len(faces))
	for start := range faces {
		if visited[start] {
			continue
		}
		visited[start] = true
		comp := []int{start}
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, l := range adj[cur] {
				if visited[l.to] {
					continue
				}
				visited[l.to] = true
				if l.manifold {
					eff := l.self != res.flipped[cur]
					res.flipped[l.to] = l.other == eff
				}
				comp = append(comp, l.to)
				queue = append(queue, l.to)
			}
		}
		sort.Ints(comp)
		res.components = append(res.components, comp)
	}
	return res
}

// Orient returns faces reoriented consistently across shared edges, in the
// input order. Vertices are not moved.
func Orient(faces []*Face) []*Face {
	o := orient(faces)
	out := make([]*Face, len(faces))
	for i, f := range faces {
		if o.flipped[i] {
			out[i] = f.Reversed()
		} else {
			out[i] = f
		}
	}
	return out
}
