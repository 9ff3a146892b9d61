package geometry

import (
	"image/color"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/automoto/sectormap/config"
	"github.com/automoto/sectormap/shared/gamemath"
)

// SectorType is the material class of a sector.
type SectorType int

const (
	SectorNormal SectorType = iota
	SectorBlocking
)

var sectorTypeNames = map[SectorType]string{
	SectorNormal:   "normal",
	SectorBlocking: "blocking",
}

func (t SectorType) String() string {
	if n, ok := sectorTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseSectorType maps a type name to a SectorType.
// Unknown names return SectorNormal and false.
func ParseSectorType(name string) (SectorType, bool) {
	for t, n := range sectorTypeNames {
		if n == name {
			return t, true
		}
	}
	return SectorNormal, false
}

// Triangle is one triangle of a sector's mesh.
type Triangle [3]VertexHandle

// TextureInfo describes how a texture is laid over a sector.
type TextureInfo struct {
	Name        string
	Rotation    float64 // Radians
	Scale       gamemath.Point
	Translation gamemath.Point
	Tint        color.NRGBA
}

// DefaultTextureInfo is the identity mapping with a white tint.
func DefaultTextureInfo() TextureInfo {
	return TextureInfo{
		Scale: gamemath.Point{X: 1, Y: 1},
		Tint:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Transform returns the world to texture space matrix: translate, then
// divide by the scale, then rotate.
func (t TextureInfo) Transform() f64.Aff3 {
	sx, sy := t.Scale.X, t.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	sin, cos := math.Sincos(t.Rotation)
	a, b := cos/sx, -sin/sy
	d, e := sin/sx, cos/sy
	tx, ty := t.Translation.X, t.Translation.Y
	return f64.Aff3{
		a, b, a*tx + b*ty,
		d, e, d*tx + e*ty,
	}
}

// UV maps a world point into texture space.
func (t TextureInfo) UV(p gamemath.Point) gamemath.Point {
	m := t.Transform()
	return gamemath.Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// Sector is a polygonal region of the area.
type Sector struct {
	// Edges lists the boundary edges. EdgeIdxs mirrors it with positional
	// indexes.
	Edges    []EdgeHandle
	EdgeIdxs []int

	Z               float64
	Type            SectorType
	Tag             string
	Brightness      uint8
	Fade            bool
	IsBottomlessPit bool
	Texture         TextureInfo
	Hazards         []string
	HazardsFloor    bool // Hazards only apply to mobs on the floor

	// Triangles is the cached mesh. BBoxMin and BBoxMax bound every
	// boundary vertex.
	Triangles []Triangle
	BBoxMin   gamemath.Point
	BBoxMax   gamemath.Point

	// Idx is the position of the sector in the graph's sector order.
	Idx int
}

func newSector() *Sector {
	return &Sector{
		Brightness:   config.Geometry.DefSectorBrightness,
		Texture:      DefaultTextureInfo(),
		HazardsFloor: true,
	}
}

// HasEdge reports whether e is a boundary edge.
func (s *Sector) HasEdge(e EdgeHandle) bool {
	for _, h := range s.Edges {
		if h == e {
			return true
		}
	}
	return false
}

func (s *Sector) addEdge(e EdgeHandle, idx int) {
	if s.HasEdge(e) {
		return
	}
	s.Edges = append(s.Edges, e)
	s.EdgeIdxs = append(s.EdgeIdxs, idx)
}

func (s *Sector) removeEdge(e EdgeHandle) {
	for i, h := range s.Edges {
		if h == e {
			s.Edges = append(s.Edges[:i], s.Edges[i+1:]...)
			s.EdgeIdxs = append(s.EdgeIdxs[:i], s.EdgeIdxs[i+1:]...)
			return
		}
	}
}

func (s *Sector) clone() *Sector {
	c := *s
	c.Edges = append([]EdgeHandle(nil), s.Edges...)
	c.EdgeIdxs = append([]int(nil), s.EdgeIdxs...)
	c.Hazards = append([]string(nil), s.Hazards...)
	c.Triangles = append([]Triangle(nil), s.Triangles...)
	return &c
}
