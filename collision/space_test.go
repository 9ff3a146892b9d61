package collision

import (
	"testing"

	"github.com/solarlune/resolv"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
	"github.com/automoto/sectormap/triangulate"
)

func rect(x, y, w, h float64) []gamemath.Point {
	return []gamemath.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

// level has a floor, a blocking pillar room next to it and a pit further
// right, all above and right of the origin.
func level(t *testing.T) (g *geometry.Graph, floor, pillar, pit geometry.SectorHandle) {
	t.Helper()
	g = geometry.NewGraph()
	add := func(pts []gamemath.Point, setup func(*geometry.Sector)) geometry.SectorHandle {
		s := g.NewSector()
		setup(g.Sector(s))
		if err := g.DrawLoop(s, pts); err != nil {
			t.Fatalf("DrawLoop: %v", err)
		}
		if err := triangulate.Triangulate(g, s); err != nil {
			t.Fatalf("Triangulate: %v", err)
		}
		return s
	}
	floor = add(rect(-100, -50, 100, 100), func(s *geometry.Sector) {})
	pillar = add(rect(0, -50, 40, 100), func(s *geometry.Sector) { s.Type = geometry.SectorBlocking })
	pit = add(rect(80, -50, 40, 40), func(s *geometry.Sector) { s.IsBottomlessPit = true })
	return g, floor, pillar, pit
}

func TestBuild(t *testing.T) {
	g, _, _, _ := level(t)
	s := Build(g)
	if s.Origin != gamemath.Pt(-100, -50) {
		t.Errorf("origin = %v", s.Origin)
	}
	if n := s.ObjectCount(); n != 6 {
		t.Errorf("got %d objects, want 6", n)
	}
}

func TestSectorAt(t *testing.T) {
	g, floor, pillar, pit := level(t)
	s := Build(g)

	tests := []struct {
		p    gamemath.Point
		want geometry.SectorHandle
		ok   bool
	}{
		{gamemath.Pt(-60, 17), floor, true},
		{gamemath.Pt(17, -33), pillar, true},
		{gamemath.Pt(95, -21), pit, true},
		{gamemath.Pt(60, 30), geometry.NoSector, false},
	}
	for _, tt := range tests {
		got, ok := s.SectorAt(tt.p)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SectorAt(%v) = %v, %v; want %v, %v", tt.p, got, ok, tt.want, tt.ok)
		}
	}
	if n := s.ObjectCount(); n != 6 {
		t.Errorf("probe objects were left behind: %d objects", n)
	}
}

func TestOverlapping(t *testing.T) {
	g, floor, pillar, pit := level(t)
	s := Build(g)

	got := s.Overlapping(-20, 0, 30, 10)
	if len(got) != 2 || !has(got, floor) || !has(got, pillar) {
		t.Errorf("Overlapping across the wall = %v", got)
	}
	if got := s.Overlapping(50, 20, 10, 10); len(got) != 0 {
		t.Errorf("Overlapping in the void = %v", got)
	}
	if got := s.Overlapping(70, -40, 20, 10, TagPit); len(got) != 1 || got[0] != pit {
		t.Errorf("Overlapping pits = %v", got)
	}
}

func TestBlocked(t *testing.T) {
	g, _, _, _ := level(t)
	s := Build(g)

	if !s.Blocked(-10, 0, 20, 10) {
		t.Error("box reaching into the pillar should be blocked")
	}
	if s.Blocked(-80, 0, 20, 10) {
		t.Error("box on the floor should not be blocked")
	}
}

func TestUpdateSector(t *testing.T) {
	g, floor, pillar, _ := level(t)
	s := Build(g)

	g.Sector(pillar).Type = geometry.SectorNormal
	s.UpdateSector(g, pillar)
	if s.Blocked(-10, 0, 20, 10) {
		t.Error("pillar should no longer block")
	}

	g.Sector(floor).Triangles = nil
	s.UpdateSector(g, floor)
	if _, ok := s.SectorAt(gamemath.Pt(-60, 17)); ok {
		t.Error("floor without a mesh should not be found")
	}
	if n := s.ObjectCount(); n != 4 {
		t.Errorf("got %d objects, want 4", n)
	}
}

func TestTrianglesKeepThreePoints(t *testing.T) {
	g := geometry.NewGraph()
	sh := g.NewSector()
	if err := g.DrawLoop(sh, rect(0, 0, 100, 100)); err != nil {
		t.Fatalf("DrawLoop: %v", err)
	}
	if err := triangulate.Triangulate(g, sh); err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	s := Build(g)

	objs := s.objects[sh]
	if len(objs) != 2 {
		t.Fatalf("got %d objects, want 2", len(objs))
	}
	for i, o := range objs {
		poly, ok := o.Shape.(*resolv.ConvexPolygon)
		if !ok {
			t.Fatalf("object %d shape is %T", i, o.Shape)
		}
		if len(poly.Points) != 3 {
			t.Errorf("object %d has %d points, want 3", i, len(poly.Points))
		}
	}
	for _, p := range []gamemath.Point{gamemath.Pt(30, 60), gamemath.Pt(70, 20), gamemath.Pt(40, 45)} {
		if got, ok := s.SectorAt(p); !ok || got != sh {
			t.Errorf("SectorAt(%v) = %v, %v; want %v, true", p, got, ok, sh)
		}
	}
	if !has(s.Overlapping(90, 90, 5, 5), sh) {
		t.Error("box over the corner should overlap the square")
	}
}

func TestEmptyGraph(t *testing.T) {
	s := Build(geometry.NewGraph())
	if _, ok := s.SectorAt(gamemath.Pt(0, 0)); ok {
		t.Error("empty space should have no sectors")
	}
}

func has(list []geometry.SectorHandle, s geometry.SectorHandle) bool {
	for _, h := range list {
		if h == s {
			return true
		}
	}
	return false
}
