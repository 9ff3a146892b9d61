package gamemath

import "math"

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 cross.
// It also returns the position of the crossing along each segment, in [0, 1].
// Parallel segments never intersect.
func SegmentsIntersect(a1, a2, b1, b2 Point) (ua, ub float64, ok bool) {
	den := (b2.Y-b1.Y)*(a2.X-a1.X) - (b2.X-b1.X)*(a2.Y-a1.Y)
	if den == 0 {
		return 0, 0, false
	}
	ua = ((b2.X-b1.X)*(a1.Y-b1.Y) - (b2.Y-b1.Y)*(a1.X-b1.X)) / den
	ub = ((a2.X-a1.X)*(a1.Y-b1.Y) - (a2.Y-a1.Y)*(a1.X-b1.X)) / den
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return ua, ub, false
	}
	return ua, ub, true
}

// SegmentIntersectsRect reports whether segment p1-p2 touches the closed
// rectangle [min, max]. Touching the border counts.
func SegmentIntersectsRect(p1, p2, min, max Point) bool {
	// Liang-Barsky clipping
	t0, t1 := 0.0, 1.0
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}
	return clip(-dx, p1.X-min.X) &&
		clip(dx, max.X-p1.X) &&
		clip(-dy, p1.Y-min.Y) &&
		clip(dy, max.Y-p1.Y)
}

// RectsOverlap reports whether two closed rectangles share any point.
func RectsOverlap(min1, max1, min2, max2 Point) bool {
	return min1.X <= max2.X && max1.X >= min2.X &&
		min1.Y <= max2.Y && max1.Y >= min2.Y
}

// RayIntersectsSegment casts a ray from o towards +x and returns where it
// hits segment a-b.
func RayIntersectsSegment(o, a, b Point) (Point, bool) {
	if (a.Y > o.Y) == (b.Y > o.Y) && a.Y != o.Y && b.Y != o.Y {
		return Point{}, false
	}
	if a.Y == b.Y {
		if a.Y != o.Y {
			return Point{}, false
		}
		x := math.Min(a.X, b.X)
		if math.Max(a.X, b.X) < o.X {
			return Point{}, false
		}
		return Point{X: math.Max(x, o.X), Y: o.Y}, true
	}
	t := (o.Y - a.Y) / (b.Y - a.Y)
	if t < 0 || t > 1 {
		return Point{}, false
	}
	x := a.X + t*(b.X-a.X)
	if x < o.X {
		return Point{}, false
	}
	return Point{X: x, Y: o.Y}, true
}
