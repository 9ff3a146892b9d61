// Package collision builds a resolv space out of the sector meshes of an
// area, for gameplay overlap tests.
package collision

import (
	"math"

	"github.com/kvartborg/vector"
	"github.com/solarlune/resolv"

	"github.com/automoto/sectormap/config"
	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

// Tags set on the triangle objects.
const (
	TagSector   = "sector"
	TagBlocking = "blocking"
	TagPit      = "pit"
)

// Space holds one resolv object per sector triangle. Resolv cells start at
// 0, so objects are placed relative to Origin, the top-left corner of the
// area.
type Space struct {
	Space  *resolv.Space
	Origin gamemath.Point

	objects map[geometry.SectorHandle][]*resolv.Object
}

// Build creates a space over the current meshes of g.
func Build(g *geometry.Graph) *Space {
	min, max := bounds(g)
	w := int(math.Ceil(max.X-min.X)) + 1
	h := int(math.Ceil(max.Y-min.Y)) + 1
	s := &Space{
		Space:   resolv.NewSpace(w, h, config.Collision.CellWidth, config.Collision.CellHeight),
		Origin:  min,
		objects: map[geometry.SectorHandle][]*resolv.Object{},
	}
	for _, sh := range g.Sectors() {
		s.addSector(g, sh)
	}
	return s
}

func bounds(g *geometry.Graph) (min, max gamemath.Point) {
	vs := g.Vertexes()
	if len(vs) == 0 {
		return
	}
	min = g.VertexPoint(vs[0])
	max = min
	for _, v := range vs[1:] {
		gamemath.UpdateMinMax(&min, &max, g.VertexPoint(v))
	}
	return
}

func sectorTags(s *geometry.Sector) []string {
	tags := []string{TagSector}
	if s.Type == geometry.SectorBlocking {
		tags = append(tags, TagBlocking)
	}
	if s.IsBottomlessPit {
		tags = append(tags, TagPit)
	}
	return tags
}

func (s *Space) addSector(g *geometry.Graph, sh geometry.SectorHandle) {
	sec := g.Sector(sh)
	if sec == nil {
		return
	}
	tags := sectorTags(sec)
	for _, t := range sec.Triangles {
		pts := []gamemath.Point{
			g.VertexPoint(t[0]).Sub(s.Origin),
			g.VertexPoint(t[1]).Sub(s.Origin),
			g.VertexPoint(t[2]).Sub(s.Origin),
		}
		min, max := gamemath.BoundingBox(pts)
		obj := resolv.NewObject(min.X, min.Y, max.X-min.X, max.Y-min.Y, tags...)
		obj.SetShape(resolv.NewConvexPolygon(0, 0,
			pts[0].X-min.X, pts[0].Y-min.Y,
			pts[1].X-min.X, pts[1].Y-min.Y,
			pts[2].X-min.X, pts[2].Y-min.Y,
		))
		obj.Data = sh
		s.Space.Add(obj)
		s.objects[sh] = append(s.objects[sh], obj)
	}
}

// UpdateSector replaces the objects of sh after its mesh changed. A removed
// sector just loses its objects. Geometry outside the original bounds needs
// a full Build.
func (s *Space) UpdateSector(g *geometry.Graph, sh geometry.SectorHandle) {
	if objs, ok := s.objects[sh]; ok {
		s.Space.Remove(objs...)
		delete(s.objects, sh)
	}
	s.addSector(g, sh)
}

// ObjectCount returns the number of triangle objects in the space.
func (s *Space) ObjectCount() int {
	n := 0
	for _, objs := range s.objects {
		n += len(objs)
	}
	return n
}

// probe runs fn with a temporary object covering the rectangle.
func (s *Space) probe(x, y, w, h float64, fn func(probe *resolv.Object)) {
	obj := resolv.NewObject(x-s.Origin.X, y-s.Origin.Y, w, h)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	s.Space.Add(obj)
	defer s.Space.Remove(obj)
	fn(obj)
}

// Overlapping returns the sectors whose mesh overlaps the rectangle, in the
// order they are found. Tags narrow the search.
func (s *Space) Overlapping(x, y, w, h float64, tags ...string) []geometry.SectorHandle {
	var out []geometry.SectorHandle
	seen := map[geometry.SectorHandle]bool{}
	s.probe(x, y, w, h, func(probe *resolv.Object) {
		check := probe.Check(0, 0, tags...)
		if check == nil {
			return
		}
		for _, o := range check.Objects {
			sh, ok := o.Data.(geometry.SectorHandle)
			if !ok || seen[sh] {
				continue
			}
			if probe.Shape.Intersection(0, 0, o.Shape) == nil {
				continue
			}
			seen[sh] = true
			out = append(out, sh)
		}
	})
	return out
}

// Blocked reports whether the rectangle overlaps a blocking sector.
func (s *Space) Blocked(x, y, w, h float64) bool {
	return len(s.Overlapping(x, y, w, h, TagBlocking)) > 0
}

// SectorAt returns the sector whose mesh holds p. ok is false over the
// void.
func (s *Space) SectorAt(p gamemath.Point) (geometry.SectorHandle, bool) {
	local := p.Sub(s.Origin)
	pt := vector.Vector{local.X, local.Y}
	found := geometry.NoSector
	s.probe(p.X, p.Y, 1, 1, func(probe *resolv.Object) {
		check := probe.Check(0, 0, TagSector)
		if check == nil {
			return
		}
		for _, o := range check.Objects {
			poly, ok := o.Shape.(*resolv.ConvexPolygon)
			if !ok || !poly.PointInside(pt) {
				continue
			}
			if sh, ok := o.Data.(geometry.SectorHandle); ok {
				found = sh
				return
			}
		}
	})
	return found, !found.IsVoid()
}
