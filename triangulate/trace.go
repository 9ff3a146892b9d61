package triangulate

import (
	"math"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

// vtx is one corner of a loop.
type vtx struct {
	h geometry.VertexHandle
	p gamemath.Point
}

// tracer walks the boundary edges of one sector.
type tracer struct {
	g        *geometry.Graph
	s        geometry.SectorHandle
	inSector map[geometry.EdgeHandle]bool
	left     map[geometry.EdgeHandle]bool
	done     map[geometry.EdgeHandle]bool // edges of finished traces
}

// rightmostLeft returns the rightmost endpoint of the edges not traced yet.
func (t *tracer) rightmostLeft(order []geometry.EdgeHandle) geometry.VertexHandle {
	var best geometry.VertexHandle
	for _, eh := range order {
		if !t.left[eh] {
			continue
		}
		for _, vh := range t.g.Edge(eh).Vertexes {
			if best.IsNil() || geometry.IsRighterVertex(t.g.VertexPoint(vh), t.g.VertexPoint(best)) {
				best = vh
			}
		}
	}
	return best
}

// isOuter guesses whether the loop starting at v encloses the sector, from
// the side the sector is on along the first edge clockwise from +x.
func (t *tracer) isOuter(v geometry.VertexHandle, first bool) bool {
	if first {
		return true
	}
	var closest geometry.EdgeHandle
	closestAngle := math.Inf(1)
	vp := t.g.VertexPoint(v)
	for _, eh := range t.g.Vertex(v).Edges {
		if !t.inSector[eh] || !t.left[eh] {
			continue
		}
		e := t.g.Edge(eh)
		a := gamemath.AngleCwDiff(0, gamemath.Angle(vp, t.g.VertexPoint(e.OtherVertex(v))))
		if closest.IsNil() || a < closestAngle {
			closest, closestAngle = eh, a
		}
	}
	if closest.IsNil() {
		return false
	}
	e := t.g.Edge(closest)
	if e.Sectors[0] == t.s {
		return e.Vertexes[0] != v
	}
	return e.Vertexes[0] == v
}

// nextEdge picks the edge to continue along from v. The angle difference is
// measured clockwise from the reversed direction of travel; closestCw picks
// the smallest difference, otherwise the largest.
func (t *tracer) nextEdge(v, prev geometry.VertexHandle, prevAngle float64, closestCw bool) (geometry.EdgeHandle, geometry.VertexHandle, float64) {
	var (
		best      geometry.EdgeHandle
		bestV     geometry.VertexHandle
		bestAngle float64
		bestDiff  float64
	)
	vp := t.g.VertexPoint(v)
	for _, eh := range t.g.Vertex(v).Edges {
		if !t.inSector[eh] || t.done[eh] {
			continue
		}
		other := t.g.Edge(eh).OtherVertex(v)
		if other == prev {
			continue
		}
		a := gamemath.Angle(vp, t.g.VertexPoint(other))
		diff := gamemath.AngleCwDiff(prevAngle+math.Pi, a)
		if best.IsNil() || (closestCw && diff < bestDiff) || (!closestCw && diff > bestDiff) {
			best, bestV, bestAngle, bestDiff = eh, other, a, diff
		}
	}
	return best, bestV, bestAngle
}

// trace follows edges from start until the first edge comes up again.
// It returns the loop corners and the edges walked; ok is false on a dead
// end or when the walk cycles without returning to the first edge.
func (t *tracer) trace(start geometry.VertexHandle, goingCw bool) (loop []vtx, walked []geometry.EdgeHandle, ok bool) {
	v := start
	var prev geometry.VertexHandle
	prevAngle := math.Pi
	var first geometry.EdgeHandle
	limit := len(t.inSector) + 1

	defer func() {
		for _, eh := range walked {
			t.done[eh] = true
		}
	}()

	for steps := 0; ; steps++ {
		if steps > limit {
			return loop, walked, false
		}
		next, nextV, nextAngle := t.nextEdge(v, prev, prevAngle, goingCw || !prev.IsNil())
		if next.IsNil() {
			return loop, walked, false
		}
		if next == first {
			return loop, walked, true
		}
		if first.IsNil() {
			first = next
		}
		if t.left[next] {
			delete(t.left, next)
			walked = append(walked, next)
		}
		loop = append(loop, vtx{h: v, p: t.g.VertexPoint(v)})
		prevAngle = nextAngle
		prev = v
		v = nextV
	}
}
