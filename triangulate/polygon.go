package triangulate

import (
	"math"
	"sort"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

const epsilon = 1e-5

// clean drops corners that repeat the previous one and corners where the
// boundary carries on straight.
func clean(loop []vtx) []vtx {
	for i := 0; i < len(loop) && len(loop) >= 3; {
		prev := loop[(i+len(loop)-1)%len(loop)].p
		cur := loop[i].p
		next := loop[(i+1)%len(loop)].p

		drop := math.Abs(prev.X-cur.X) < epsilon && math.Abs(prev.Y-cur.Y) < epsilon
		if !drop {
			d1 := cur.Sub(prev)
			d2 := next.Sub(cur)
			cross := d1.X*d2.Y - d1.Y*d2.X
			dot := d1.X*d2.X + d1.Y*d2.Y
			drop = math.Abs(cross) < epsilon*epsilon && dot > 0
		}
		if drop {
			loop = append(loop[:i], loop[i+1:]...)
			continue
		}
		i++
	}
	return loop
}

func points(loop []vtx) []gamemath.Point {
	out := make([]gamemath.Point, len(loop))
	for i, v := range loop {
		out[i] = v.p
	}
	return out
}

func reverse(loop []vtx) {
	for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
		loop[i], loop[j] = loop[j], loop[i]
	}
}

func rightmost(loop []vtx) int {
	best := 0
	for i := 1; i < len(loop); i++ {
		if geometry.IsRighterVertex(loop[i].p, loop[best].p) {
			best = i
		}
	}
	return best
}

// polyNode is a loop in the containment tree. The root has no loop.
type polyNode struct {
	loop     []vtx
	children []*polyNode
}

// insert places p under the deepest node that contains it.
func (n *polyNode) insert(p *polyNode) bool {
	for _, c := range n.children {
		if c.insert(p) {
			return true
		}
	}
	if n.loop == nil || n.contains(p.loop) {
		n.children = append(n.children, p)
		return true
	}
	return false
}

// contains tests a corner of other that n does not share, or the midpoint
// of other's first side when every corner is shared.
func (n *polyNode) contains(other []vtx) bool {
	shared := map[geometry.VertexHandle]bool{}
	for _, v := range n.loop {
		shared[v.h] = true
	}
	probe := other[0].p.Add(other[1].p).Scale(0.5)
	for _, v := range other {
		if !shared[v.h] {
			probe = v.p
			break
		}
	}
	return gamemath.PointInPolygon(probe, points(n.loop))
}

// outer is an area to triangulate: one enclosing loop and its holes.
type outer struct {
	loop  []vtx
	holes [][]vtx
}

// collect flattens the tree. Children of the root are outer loops, their
// children are holes, and the children of holes are outer loops again.
func (n *polyNode) collect(out []outer) []outer {
	for _, o := range n.children {
		item := outer{loop: o.loop}
		for _, h := range o.children {
			item.holes = append(item.holes, h.loop)
			out = h.collect(out)
		}
		out = append(out, item)
	}
	return out
}

// isReflex reports whether corner i of a positively oriented loop does not
// turn positively. Straight corners count as reflex.
func isReflex(loop []vtx, i int) bool {
	n := len(loop)
	return gamemath.Cross(loop[(i+n-1)%n].p, loop[i].p, loop[(i+1)%n].p) <= 0
}

// bridge merges the holes of o into its outer loop with zero-width cuts.
// Holes are handled from the rightmost one leftwards. ok is false when a
// hole cannot be reached.
func bridge(o outer) ([]vtx, bool) {
	ring := append([]vtx(nil), o.loop...)
	holes := append([][]vtx(nil), o.holes...)
	sort.SliceStable(holes, func(i, j int) bool {
		return geometry.IsRighterVertex(holes[i][rightmost(holes[i])].p, holes[j][rightmost(holes[j])].p)
	})

	for _, hole := range holes {
		mi := rightmost(hole)
		m := hole[mi]
		rotated := append(append([]vtx(nil), hole[mi:]...), hole[:mi]...)

		at := bridgeTarget(ring, m)
		if at < 0 {
			return ring, false
		}

		spliced := make([]vtx, 0, len(ring)+len(hole)+2)
		spliced = append(spliced, ring[:at+1]...)
		if ring[at].h == m.h {
			// The hole touches the outer loop at m.
			spliced = append(spliced, rotated[1:]...)
			spliced = append(spliced, m)
		} else {
			spliced = append(spliced, rotated...)
			spliced = append(spliced, m, ring[at])
		}
		spliced = append(spliced, ring[at+1:]...)
		ring = spliced
	}
	return ring, true
}

// bridgeTarget returns the index of the ring corner m can be joined to, or
// -1.
func bridgeTarget(ring []vtx, m vtx) int {
	if i := pickOccurrence(ring, m.h, m.p); i >= 0 {
		return i
	}

	// Cast a ray from m towards +x and find the closest side it hits.
	hitSide := -1
	var hit gamemath.Point
	for i := range ring {
		a, b := ring[i].p, ring[(i+1)%len(ring)].p
		p, ok := gamemath.RayIntersectsSegment(m.p, a, b)
		if !ok {
			continue
		}
		if hitSide < 0 || p.X < hit.X {
			hitSide, hit = i, p
		}
	}
	if hitSide < 0 {
		return -1
	}
	a, b := ring[hitSide], ring[(hitSide+1)%len(ring)]
	if hit == a.p {
		return pickOccurrence(ring, a.h, m.p)
	}
	if hit == b.p {
		return pickOccurrence(ring, b.h, m.p)
	}
	cand := a
	if geometry.IsRighterVertex(b.p, a.p) {
		cand = b
	}

	// A reflex corner inside the triangle m, hit, cand would block the
	// view; the one closest in angle to the ray is visible.
	best := cand
	bestAngle := math.Inf(1)
	bestDist := math.Inf(1)
	for i, v := range ring {
		if v.h == cand.h || !isReflex(ring, i) {
			continue
		}
		if !gamemath.PointInTriangle(v.p, m.p, hit, cand.p, true) {
			continue
		}
		d := v.p.Sub(m.p)
		angle := math.Abs(math.Atan2(d.Y, d.X))
		dist := d.Len()
		if angle < bestAngle || (angle == bestAngle && dist < bestDist) {
			best, bestAngle, bestDist = v, angle, dist
		}
	}
	return pickOccurrence(ring, best.h, m.p)
}

// pickOccurrence finds corner h in the ring. When earlier bridges made it
// appear more than once, it prefers the occurrence whose wedge faces target.
func pickOccurrence(ring []vtx, h geometry.VertexHandle, target gamemath.Point) int {
	first := -1
	n := len(ring)
	for i, v := range ring {
		if v.h != h {
			continue
		}
		if first < 0 {
			first = i
		}
		a, b, c := ring[(i+n-1)%n].p, v.p, ring[(i+1)%n].p
		left1 := gamemath.Cross(a, b, target) > 0
		left2 := gamemath.Cross(b, c, target) > 0
		if gamemath.Cross(a, b, c) > 0 {
			if left1 && left2 {
				return i
			}
		} else if left1 || left2 {
			return i
		}
	}
	return first
}
