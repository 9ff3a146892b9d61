package triangulate

import (
	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

// isEar reports whether corner i of a positively oriented ring can be cut
// off: it turns positively and no reflex corner lies in its triangle,
// borders included. Corners sharing a vertex with the triangle are ignored.
func isEar(ring []vtx, i int) bool {
	n := len(ring)
	pi, ni := (i+n-1)%n, (i+1)%n
	a, b, c := ring[pi], ring[i], ring[ni]
	if gamemath.Cross(a.p, b.p, c.p) <= 0 {
		return false
	}
	for j, v := range ring {
		if j == pi || j == i || j == ni {
			continue
		}
		if v.h == a.h || v.h == b.h || v.h == c.h {
			continue
		}
		if !isReflex(ring, j) {
			continue
		}
		if gamemath.PointInTriangle(v.p, a.p, b.p, c.p, true) {
			return false
		}
	}
	return true
}

// clipEars cuts the first ear from the start of the ring, over and over,
// until one triangle is left. ok is false when no ear can be found; the
// triangles cut so far are still returned.
func clipEars(ring []vtx) (tris []geometry.Triangle, ok bool) {
	ring = append([]vtx(nil), ring...)
	for len(ring) > 3 {
		ear := -1
		for i := range ring {
			if isEar(ring, i) {
				ear = i
				break
			}
		}
		if ear < 0 {
			return tris, false
		}
		n := len(ring)
		a, b, c := ring[(ear+n-1)%n], ring[ear], ring[(ear+1)%n]
		tris = append(tris, geometry.Triangle{a.h, b.h, c.h})
		ring = append(ring[:ear], ring[ear+1:]...)
	}
	if len(ring) == 3 && gamemath.Cross(ring[0].p, ring[1].p, ring[2].p) != 0 {
		tris = append(tris, geometry.Triangle{ring[0].h, ring[1].h, ring[2].h})
	}
	return tris, true
}
