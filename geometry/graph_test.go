package geometry

import (
	"errors"
	"testing"

	"github.com/automoto/sectormap/shared/gamemath"
)

// buildSquare builds four vertexes, four edges and one sector the way a
// loader would, with the sector on side 0 and the void on side 1.
func buildSquare(t *testing.T) (*Graph, SectorHandle) {
	t.Helper()
	g := NewGraph()
	g.Strict = true
	pts := []gamemath.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	var vs []VertexHandle
	for _, p := range pts {
		vs = append(vs, g.NewVertex(p.X, p.Y))
	}
	s := g.NewSector()
	for i := range vs {
		e := g.NewEdge()
		g.ConnectEdgeToVertex(e, vs[i], 0)
		g.ConnectEdgeToVertex(e, vs[(i+1)%len(vs)], 1)
		g.ConnectEdgeToSector(e, s, 0)
		g.ConnectEdgeToSector(e, NoSector, 1)
	}
	return g, s
}

func TestSquareIsStable(t *testing.T) {
	g, s := buildSquare(t)
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
	if got := len(g.Sector(s).Edges); got != 4 {
		t.Errorf("sector has %d edges, want 4", got)
	}
	for _, vh := range g.Vertexes() {
		if got := len(g.Vertex(vh).Edges); got != 2 {
			t.Errorf("vertex %v has %d edges, want 2", vh, got)
		}
	}
}

func TestCorruptIndexIsReported(t *testing.T) {
	g, _ := buildSquare(t)

	// Drop the last vertex without going through RemoveVertex.
	last := g.vertexOrder[len(g.vertexOrder)-1]
	g.vertexOrder = g.vertexOrder[:len(g.vertexOrder)-1]
	g.vertexes.remove(handle(last))

	violations := g.CheckStability()
	if len(violations) == 0 {
		t.Fatalf("expected violations")
	}
	found := false
	for _, v := range violations {
		if v.Kind == ViolationIndexOutOfRange {
			found = true
		}
	}
	if !found {
		t.Errorf("no index out of range violation in %v", violations)
	}
}

func TestMismatchedIndexIsReported(t *testing.T) {
	g, _ := buildSquare(t)
	e := g.Edge(g.Edges()[0])
	e.VertexIdxs[0] = 2

	violations := g.CheckStability()
	if len(violations) != 1 || violations[0].Kind != ViolationIndexMismatch {
		t.Fatalf("CheckStability = %v, want one index mismatch", violations)
	}
}

func TestConnectDetachesPreviousReference(t *testing.T) {
	g, s := buildSquare(t)
	e := g.Edges()[0]
	old := g.Edge(e).Vertexes[0]
	nv := g.NewVertex(-5, -5)

	g.ConnectEdgeToVertex(e, nv, 0)
	if g.Vertex(old).HasEdge(e) {
		t.Errorf("old vertex still lists the edge")
	}
	if !g.Vertex(nv).HasEdge(e) {
		t.Errorf("new vertex does not list the edge")
	}

	s2 := g.NewSector()
	g.ConnectEdgeToSector(e, s2, 0)
	if g.Sector(s).HasEdge(e) {
		t.Errorf("old sector still lists the edge")
	}
	if !g.Sector(s2).HasEdge(e) {
		t.Errorf("new sector does not list the edge")
	}
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
}

func TestRemoveRenumbers(t *testing.T) {
	g, s := buildSquare(t)
	extra := g.NewSector()
	e := g.Edges()[1]
	g.ConnectEdgeToSector(e, extra, 1)

	// Remove the first sector: every index above 0 must shift down.
	for _, eh := range append([]EdgeHandle(nil), g.Sector(s).Edges...) {
		g.ConnectEdgeToSector(eh, NoSector, 0)
	}
	g.RemoveSector(s)

	if got := g.Edge(e).SectorIdxs[1]; got != 0 {
		t.Errorf("sector index = %d, want 0", got)
	}
	if g.Sector(extra).Idx != 0 {
		t.Errorf("remaining sector idx = %d", g.Sector(extra).Idx)
	}
	if g.Sector(s) != nil {
		t.Errorf("removed sector handle still resolves")
	}
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
}

func TestRemoveEdgeRenumbersBackLists(t *testing.T) {
	g, s := buildSquare(t)
	first := g.Edges()[0]
	g.DisconnectEdge(first)
	g.RemoveEdge(first)

	for _, idx := range g.Sector(s).EdgeIdxs {
		if idx < 0 || idx > 2 {
			t.Errorf("sector edge index %d out of the new range", idx)
		}
	}
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
}

func TestRemoveWithDanglingIndex(t *testing.T) {
	g, _ := buildSquare(t)
	v := g.Vertexes()[0]

	defer func() {
		r := recover()
		var ie *InvariantError
		err, _ := r.(error)
		if !errors.As(err, &ie) || ie.Kind != ViolationDanglingIndex {
			t.Fatalf("recovered %v, want dangling index InvariantError", r)
		}
	}()
	// Edges still point at the vertex.
	g.RemoveVertex(v)
}

func TestNonStrictViolationIsNoOp(t *testing.T) {
	g, _ := buildSquare(t)
	g.Strict = false
	e := g.Edges()[0]
	g.DisconnectEdge(e)
	g.RemoveEdge(e)
	// Second removal through a stale handle.
	g.RemoveEdge(e)
	if got := len(g.Edges()); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
}

func TestDeleteEdgeCascades(t *testing.T) {
	g := NewGraph()
	g.Strict = true
	s := g.NewSector()
	a, b := g.NewVertex(0, 0), g.NewVertex(1, 0)
	e := g.NewEdge()
	g.ConnectEdgeToVertex(e, a, 0)
	g.ConnectEdgeToVertex(e, b, 1)
	g.ConnectEdgeToSector(e, s, 0)

	g.DeleteEdge(e)
	if len(g.Vertexes()) != 0 || len(g.Edges()) != 0 || len(g.Sectors()) != 0 {
		t.Errorf("left %d vertexes, %d edges, %d sectors",
			len(g.Vertexes()), len(g.Edges()), len(g.Sectors()))
	}
}

func TestResyncIsIdempotent(t *testing.T) {
	g, _ := buildSquare(t)
	g.ResyncIndexes()
	g.ResyncPointers()
	g.ResyncIndexes()
	g.ResyncPointers()
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
	if got := len(g.Vertex(g.Vertexes()[0]).Edges); got != 2 {
		t.Errorf("vertex 0 has %d edges after resync", got)
	}
}

func TestResyncPointersFromIndexes(t *testing.T) {
	g := NewGraph()
	g.Strict = true
	for _, p := range [][2]float64{{0, 0}, {10, 0}, {0, 10}} {
		g.NewVertex(p[0], p[1])
	}
	s := g.NewSector()
	for i := 0; i < 3; i++ {
		e := g.Edge(g.NewEdge())
		e.VertexIdxs = [2]int{i, (i + 1) % 3}
		e.SectorIdxs = [2]int{0, -1}
	}
	g.ResyncPointers()
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
	if got := len(g.Sector(s).Edges); got != 3 {
		t.Errorf("sector edges = %d, want 3", got)
	}
	if !g.Edge(g.Edges()[2]).Sectors[1].IsVoid() {
		t.Errorf("-1 should resolve to the void")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, s := buildSquare(t)
	g.Sector(s).Z = 12
	g.Sector(s).Hazards = []string{"fire"}
	c := g.Clone()

	if v := c.CheckStability(); len(v) != 0 {
		t.Fatalf("clone CheckStability = %v", v)
	}
	if c.Sector(s) == g.Sector(s) {
		t.Fatalf("clone shares sector objects")
	}
	if c.Sector(s).Z != 12 || c.Sector(s).Hazards[0] != "fire" {
		t.Errorf("clone lost attributes")
	}

	c.Sector(s).Hazards[0] = "water"
	c.Vertex(c.Vertexes()[0]).X = 99
	e := c.Edges()[0]
	c.DisconnectEdge(e)
	c.RemoveEdge(e)

	if g.Sector(s).Hazards[0] != "fire" {
		t.Errorf("hazard change leaked into the original")
	}
	if g.Vertex(g.Vertexes()[0]).X != 0 {
		t.Errorf("vertex change leaked into the original")
	}
	if len(g.Edges()) != 4 || len(g.Sector(s).Edges) != 4 {
		t.Errorf("edge removal leaked into the original")
	}
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("original CheckStability = %v", v)
	}
}

func TestSwapEdgeVertexes(t *testing.T) {
	g, s := buildSquare(t)
	eh := g.Edges()[0]
	e := g.Edge(eh)
	v0 := e.Vertexes[0]
	g.SwapEdgeVertexes(eh)
	if e.Vertexes[1] != v0 || e.Sectors[1] != s || !e.Sectors[0].IsVoid() {
		t.Errorf("swap did not move vertexes and sides together: %+v", e)
	}
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability = %v", v)
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	g := NewGraph()
	v := g.NewVertex(1, 1)
	g.RemoveVertex(v)
	v2 := g.NewVertex(2, 2)
	if g.Vertex(v) != nil {
		t.Errorf("stale handle resolves after slot reuse")
	}
	if g.Vertex(v2) == nil || g.Vertex(v2).X != 2 {
		t.Errorf("new handle does not resolve")
	}
}
