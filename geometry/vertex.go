package geometry

import "github.com/automoto/sectormap/shared/gamemath"

// Vertex is a point where edges meet.
type Vertex struct {
	X, Y float64

	// Edges lists the incident edges. EdgeIdxs mirrors it with positional
	// indexes.
	Edges    []EdgeHandle
	EdgeIdxs []int

	// Idx is the position of the vertex in the graph's vertex order.
	Idx int
}

// Point returns the vertex coordinates.
func (v *Vertex) Point() gamemath.Point {
	return gamemath.Point{X: v.X, Y: v.Y}
}

// HasEdge reports whether e is in the incident list.
func (v *Vertex) HasEdge(e EdgeHandle) bool {
	for _, h := range v.Edges {
		if h == e {
			return true
		}
	}
	return false
}

func (v *Vertex) addEdge(e EdgeHandle, idx int) {
	if v.HasEdge(e) {
		return
	}
	v.Edges = append(v.Edges, e)
	v.EdgeIdxs = append(v.EdgeIdxs, idx)
}

func (v *Vertex) removeEdge(e EdgeHandle) {
	for i, h := range v.Edges {
		if h == e {
			v.Edges = append(v.Edges[:i], v.Edges[i+1:]...)
			v.EdgeIdxs = append(v.EdgeIdxs[:i], v.EdgeIdxs[i+1:]...)
			return
		}
	}
}

func (v *Vertex) clone() *Vertex {
	c := *v
	c.Edges = append([]EdgeHandle(nil), v.Edges...)
	c.EdgeIdxs = append([]int(nil), v.EdgeIdxs...)
	return &c
}
