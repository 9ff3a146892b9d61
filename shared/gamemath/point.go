// Package gamemath holds the planar math shared by the geometry packages.
// Coordinates are raw file coordinates: y grows downward on screen.
package gamemath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Len returns the distance of p to the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Cross returns the z component of (a - o) x (b - o).
func Cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// String formats the point the way area files store it: "x y".
func (p Point) String() string {
	return FormatFloat(p.X) + " " + FormatFloat(p.Y)
}

// ParsePoint reads "x y". A missing y reads as 0.
func ParsePoint(s string) (Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Point{}, fmt.Errorf("parse point %q: empty", s)
	}
	var p Point
	var err error
	if p.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return Point{}, fmt.Errorf("parse point %q: %w", s, err)
	}
	if len(fields) > 1 {
		if p.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return Point{}, fmt.Errorf("parse point %q: %w", s, err)
		}
	}
	return p, nil
}

// FormatFloat writes a float with the shortest representation.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UpdateMinMax grows the [min, max] box so it contains p.
func UpdateMinMax(min, max *Point, p Point) {
	min.X = math.Min(min.X, p.X)
	min.Y = math.Min(min.Y, p.Y)
	max.X = math.Max(max.X, p.X)
	max.Y = math.Max(max.Y, p.Y)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
