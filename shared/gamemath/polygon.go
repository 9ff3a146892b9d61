package gamemath

import "math"

// SignedArea returns the shoelace area of a closed polygon.
// It is positive when the points turn the way Cross is positive.
func SignedArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// TriangleArea returns the unsigned area of a triangle.
func TriangleArea(a, b, c Point) float64 {
	return math.Abs(Cross(a, b, c)) / 2
}

// PointInTriangle reports whether p lies inside triangle a-b-c.
// With inclusive, points on the border count as inside.
func PointInTriangle(p, a, b, c Point, inclusive bool) bool {
	d1 := Cross(a, b, p)
	d2 := Cross(b, c, p)
	d3 := Cross(c, a, p)
	if inclusive {
		hasNeg := d1 < 0 || d2 < 0 || d3 < 0
		hasPos := d1 > 0 || d2 > 0 || d3 > 0
		return !(hasNeg && hasPos)
	}
	return (d1 > 0 && d2 > 0 && d3 > 0) || (d1 < 0 && d2 < 0 && d3 < 0)
}

// PointInPolygon is the even-odd crossing test.
func PointInPolygon(p Point, poly []Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// BoundingBox returns the tight box around the points.
func BoundingBox(pts []Point) (min, max Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		UpdateMinMax(&min, &max, p)
	}
	return min, max
}
