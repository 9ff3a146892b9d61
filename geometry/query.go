package geometry

import (
	"math"
	"sort"

	"github.com/automoto/sectormap/config"
	"github.com/automoto/sectormap/shared/gamemath"
)

// SectorContains checks p against the triangles of s. Points on a triangle
// border count as inside.
func (g *Graph) SectorContains(h SectorHandle, p gamemath.Point) bool {
	s := g.Sector(h)
	if s == nil {
		return false
	}
	for _, t := range s.Triangles {
		if gamemath.PointInTriangle(p,
			g.VertexPoint(t[0]), g.VertexPoint(t[1]), g.VertexPoint(t[2]), true) {
			return true
		}
	}
	return false
}

// SectorAt finds the first sector, in positional order, whose mesh contains
// p. It scans every sector; Blockmap.SectorAt is the fast path.
func (g *Graph) SectorAt(p gamemath.Point) (SectorHandle, bool) {
	for _, sh := range g.sectorOrder {
		s := g.Sector(sh)
		if p.X < s.BBoxMin.X || p.X > s.BBoxMax.X || p.Y < s.BBoxMin.Y || p.Y > s.BBoxMax.Y {
			continue
		}
		if g.SectorContains(sh, p) {
			return sh, true
		}
	}
	return NoSector, false
}

// UpdateSectorBBox recomputes the bounding box of s from its boundary.
func (g *Graph) UpdateSectorBBox(h SectorHandle) {
	s := g.Sector(h)
	if s == nil {
		return
	}
	first := true
	for _, eh := range s.Edges {
		e := g.Edge(eh)
		if e == nil {
			continue
		}
		for _, vh := range e.Vertexes {
			v := g.Vertex(vh)
			if v == nil {
				continue
			}
			if first {
				s.BBoxMin, s.BBoxMax = v.Point(), v.Point()
				first = false
				continue
			}
			gamemath.UpdateMinMax(&s.BBoxMin, &s.BBoxMax, v.Point())
		}
	}
	if first {
		s.BBoxMin, s.BBoxMax = gamemath.Point{}, gamemath.Point{}
	}
}

// IsRighterVertex reports whether a is further right than b. On a tie the
// one with the smaller y wins.
func IsRighterVertex(a, b gamemath.Point) bool {
	return a.X > b.X || (a.X == b.X && a.Y < b.Y)
}

// RightmostVertex returns the rightmost boundary vertex of s.
func (g *Graph) RightmostVertex(h SectorHandle) (VertexHandle, bool) {
	s := g.Sector(h)
	if s == nil {
		return VertexHandle{}, false
	}
	var best VertexHandle
	for _, eh := range s.Edges {
		e := g.Edge(eh)
		if e == nil {
			continue
		}
		for _, vh := range e.Vertexes {
			if g.Vertex(vh) == nil {
				continue
			}
			if best.IsNil() || IsRighterVertex(g.VertexPoint(vh), g.VertexPoint(best)) {
				best = vh
			}
		}
	}
	return best, !best.IsNil()
}

// NeighborSectors flood fills from start across shared edges, visiting only
// sectors cond accepts. The result starts with start, if it is accepted.
func (g *Graph) NeighborSectors(start SectorHandle, cond func(SectorHandle) bool) []SectorHandle {
	var out []SectorHandle
	seen := map[SectorHandle]bool{}
	stack := []SectorHandle{start}
	for len(stack) > 0 {
		sh := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[sh] {
			continue
		}
		seen[sh] = true
		s := g.Sector(sh)
		if s == nil || !cond(sh) {
			continue
		}
		out = append(out, sh)
		for i := len(s.Edges) - 1; i >= 0; i-- {
			e := g.Edge(s.Edges[i])
			if e == nil {
				continue
			}
			if other := e.OtherSector(sh); !other.IsVoid() && !seen[other] {
				stack = append(stack, other)
			}
		}
	}
	return out
}

// TextureMergeSectors picks the two neighbours a fading sector blends
// between: the ones with the longest shared boundary. Fading neighbours are
// skipped. The void or a bottomless pit always ends up first.
// ok is false when there is nothing to blend.
func (g *Graph) TextureMergeSectors(h SectorHandle) (s1, s2 SectorHandle, ok bool) {
	s := g.Sector(h)
	if s == nil {
		return NoSector, NoSector, false
	}
	lengths := map[SectorHandle]float64{}
	var order []SectorHandle
	for _, eh := range s.Edges {
		e := g.Edge(eh)
		if e == nil {
			continue
		}
		n := e.OtherSector(h)
		if ns := g.Sector(n); ns != nil && ns.Fade {
			continue
		}
		if _, seen := lengths[n]; !seen {
			order = append(order, n)
		}
		lengths[n] += g.EdgeLength(eh)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return lengths[order[i]] > lengths[order[j]]
	})

	var picks [2]SectorHandle
	have := [2]bool{}
	if len(order) >= 1 {
		picks[0], have[0] = order[0], true
	}
	if len(order) >= 2 {
		picks[1], have[1] = order[1], true
	}
	switch {
	case !have[0]:
		return NoSector, NoSector, false
	case !have[1]:
		picks[0], picks[1] = NoSector, picks[0]
	case picks[1].IsVoid():
		picks[0], picks[1] = picks[1], picks[0]
	default:
		if p := g.Sector(picks[1]); p != nil && p.IsBottomlessPit {
			picks[0], picks[1] = picks[1], picks[0]
		}
	}
	return picks[0], picks[1], true
}

// VertexesNear returns the vertexes within radius of p, closest first.
func (g *Graph) VertexesNear(p gamemath.Point, radius float64) []VertexHandle {
	type hit struct {
		h VertexHandle
		d float64
	}
	var hits []hit
	for _, vh := range g.vertexOrder {
		if d := gamemath.Dist(p, g.VertexPoint(vh)); d <= radius {
			hits = append(hits, hit{vh, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]VertexHandle, len(hits))
	for i, h := range hits {
		out[i] = h.h
	}
	return out
}

// WallShadow reports whether e casts a wall shadow, which sector gets
// shaded, which one casts it, and how long the shadow is.
func (g *Graph) WallShadow(h EdgeHandle) (affected, caster SectorHandle, length float64, ok bool) {
	e := g.Edge(h)
	if e == nil || e.WallShadowLength <= 0 {
		return NoSector, NoSector, 0, false
	}
	s0, s1 := g.Sector(e.Sectors[0]), g.Sector(e.Sectors[1])
	if s0 == nil || s1 == nil || s0.IsBottomlessPit || s1.IsBottomlessPit || s0.Z == s1.Z {
		return NoSector, NoSector, 0, false
	}
	caster, affected = e.Sectors[0], e.Sectors[1]
	high, low := s0, s1
	if s1.Z > s0.Z {
		caster, affected = e.Sectors[1], e.Sectors[0]
		high, low = s1, s0
	}

	if !e.IsAutoShadowLength() {
		return affected, caster, e.WallShadowLength, true
	}
	if high.Z <= low.Z+config.Geometry.StepHeight {
		return NoSector, NoSector, 0, false
	}
	length = gamemath.Clamp(
		math.Abs(high.Z-low.Z)*config.Geometry.ShadowAutoLengthMult,
		config.Geometry.ShadowMinAutoLength,
		config.Geometry.ShadowMaxAutoLength,
	)
	return affected, caster, length, true
}

// WallShadowLength returns the effective wall shadow length of e, 0 if it
// casts none.
func (g *Graph) WallShadowLength(h EdgeHandle) float64 {
	_, _, length, ok := g.WallShadow(h)
	if !ok {
		return 0
	}
	return length
}
