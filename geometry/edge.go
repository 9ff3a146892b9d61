package geometry

import (
	"image/color"

	"github.com/automoto/sectormap/config"
)

// Edge is a segment between two vertexes, with a sector on each side.
// The side 0 sector of an edge going from vertex 0 to vertex 1 is the one
// for which cross(v1-v0, p-v0) < 0 holds.
type Edge struct {
	Vertexes [2]VertexHandle
	Sectors  [2]SectorHandle

	// Positional mirrors of Vertexes and Sectors. -1 means none.
	VertexIdxs [2]int
	SectorIdxs [2]int

	// Length of the wall shadow. config.Geometry.LargeFloat means automatic,
	// 0 means never.
	WallShadowLength float64
	WallShadowColor  color.NRGBA

	// Length of the ledge smoothing effect. 0 means none.
	LedgeSmoothingLength float64
	LedgeSmoothingColor  color.NRGBA

	// Idx is the position of the edge in the graph's edge order.
	Idx int
}

func newEdge() *Edge {
	return &Edge{
		VertexIdxs:          [2]int{-1, -1},
		SectorIdxs:          [2]int{-1, -1},
		WallShadowLength:    config.Geometry.LargeFloat,
		WallShadowColor:     config.Geometry.ShadowDefColor,
		LedgeSmoothingColor: config.Geometry.SmoothingDefColor,
	}
}

// IsValid reports whether both endpoints are set.
func (e *Edge) IsValid() bool {
	return !e.Vertexes[0].IsNil() && !e.Vertexes[1].IsNil()
}

// OtherVertex returns the endpoint that is not v.
func (e *Edge) OtherVertex(v VertexHandle) VertexHandle {
	if e.Vertexes[0] == v {
		return e.Vertexes[1]
	}
	return e.Vertexes[0]
}

// OtherSector returns the sector on the side that is not s.
func (e *Edge) OtherSector(s SectorHandle) SectorHandle {
	if e.Sectors[0] == s {
		return e.Sectors[1]
	}
	return e.Sectors[0]
}

// SideWithSector returns the side s is on.
func (e *Edge) SideWithSector(s SectorHandle) (int, bool) {
	for side := 0; side < 2; side++ {
		if e.Sectors[side] == s {
			return side, true
		}
	}
	return 0, false
}

// SharedVertex returns an endpoint both edges have.
func (e *Edge) SharedVertex(o *Edge) (VertexHandle, bool) {
	for _, a := range e.Vertexes {
		if a.IsNil() {
			continue
		}
		for _, b := range o.Vertexes {
			if a == b {
				return a, true
			}
		}
	}
	return VertexHandle{}, false
}

// IsAutoShadowLength reports whether the wall shadow length is computed.
func (e *Edge) IsAutoShadowLength() bool {
	return e.WallShadowLength == config.Geometry.LargeFloat
}

func (e *Edge) clone() *Edge {
	c := *e
	return &c
}
