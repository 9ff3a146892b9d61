package geometry

import (
	"errors"
	"fmt"

	"github.com/automoto/sectormap/shared/gamemath"
)

var (
	// ErrSideOccupied is returned when a loop would claim an edge side that
	// another sector already has.
	ErrSideOccupied = errors.New("edge side already belongs to another sector")
	// ErrDegenerateLoop is returned for loops with no area.
	ErrDegenerateLoop = errors.New("loop has no area")
)

// FindVertexAt returns a vertex with exactly the given coordinates.
func (g *Graph) FindVertexAt(p gamemath.Point) (VertexHandle, bool) {
	for _, vh := range g.vertexOrder {
		if g.VertexPoint(vh) == p {
			return vh, true
		}
	}
	return VertexHandle{}, false
}

// FindEdgeBetween returns an edge joining a and b, in either direction.
func (g *Graph) FindEdgeBetween(a, b VertexHandle) (EdgeHandle, bool) {
	v := g.Vertex(a)
	if v == nil {
		return EdgeHandle{}, false
	}
	for _, eh := range v.Edges {
		if e := g.Edge(eh); e != nil && e.OtherVertex(a) == b {
			return eh, true
		}
	}
	return EdgeHandle{}, false
}

// DrawLoop makes the closed loop pts part of the boundary of s. Vertexes
// at identical coordinates and edges between the same vertexes are reused.
// s goes on the side of each edge that faces the inside of the loop.
// s may be NoSector to draw a loop that only bounds other sectors.
func (g *Graph) DrawLoop(s SectorHandle, pts []gamemath.Point) error {
	loop := make([]gamemath.Point, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == loop[len(loop)-1] {
			continue
		}
		loop = append(loop, p)
	}
	if len(loop) > 1 && loop[0] == loop[len(loop)-1] {
		loop = loop[:len(loop)-1]
	}
	area := gamemath.SignedArea(loop)
	if len(loop) < 3 || area == 0 {
		return fmt.Errorf("draw loop of %d points: %w", len(pts), ErrDegenerateLoop)
	}
	if !s.IsVoid() && g.Sector(s) == nil {
		return fmt.Errorf("draw loop: sector %v does not exist", s)
	}

	type step struct {
		a, b gamemath.Point
	}
	steps := make([]step, len(loop))
	for i := range loop {
		steps[i] = step{loop[i], loop[(i+1)%len(loop)]}
	}

	// sideFor returns the side facing the loop inside for an edge stored
	// as from -> to.
	sideFor := func(st step, from gamemath.Point) int {
		inside := area
		if from != st.a {
			inside = -inside
		}
		if inside < 0 {
			return 0
		}
		return 1
	}

	for _, st := range steps {
		va, okA := g.FindVertexAt(st.a)
		vb, okB := g.FindVertexAt(st.b)
		if !okA || !okB {
			continue
		}
		eh, ok := g.FindEdgeBetween(va, vb)
		if !ok {
			continue
		}
		e := g.Edge(eh)
		side := sideFor(st, g.VertexPoint(e.Vertexes[0]))
		if cur := e.Sectors[side]; !cur.IsVoid() && cur != s {
			return fmt.Errorf("draw loop: edge %d side %d: %w", e.Idx, side, ErrSideOccupied)
		}
	}

	for _, st := range steps {
		va, ok := g.FindVertexAt(st.a)
		if !ok {
			va = g.NewVertex(st.a.X, st.a.Y)
		}
		vb, ok := g.FindVertexAt(st.b)
		if !ok {
			vb = g.NewVertex(st.b.X, st.b.Y)
		}
		eh, ok := g.FindEdgeBetween(va, vb)
		if !ok {
			eh = g.NewEdge()
			g.ConnectEdgeToVertex(eh, va, 0)
			g.ConnectEdgeToVertex(eh, vb, 1)
		}
		e := g.Edge(eh)
		side := sideFor(st, g.VertexPoint(e.Vertexes[0]))
		if !s.IsVoid() {
			g.ConnectEdgeToSector(eh, s, side)
		}
	}
	return nil
}
