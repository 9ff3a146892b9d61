// Package area ties an area's geometry to the data derived from it: the
// sector meshes, the blockmap and the problem list.
package area

import (
	"github.com/automoto/sectormap/blockmap"
	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
	"github.com/automoto/sectormap/triangulate"
)

// Area is a loaded area. Problems is nil unless the area was loaded for
// editing.
type Area struct {
	Geometry *geometry.Graph
	Blockmap *blockmap.Blockmap
	Problems *triangulate.Problems

	touched map[geometry.SectorHandle]struct{}
}

// New creates an empty area.
func New() *Area {
	g := geometry.NewGraph()
	return &Area{
		Geometry: g,
		Blockmap: blockmap.Build(g),
		touched:  map[geometry.SectorHandle]struct{}{},
	}
}

// Build triangulates every sector and rebuilds the blockmap. It returns
// the number of sectors that failed to triangulate.
func (a *Area) Build() int {
	failed := triangulate.All(a.Geometry, a.Problems)
	a.RebuildBlockmap()
	a.touched = map[geometry.SectorHandle]struct{}{}
	return failed
}

// Touch marks sectors whose boundary changed. Commit processes them.
func (a *Area) Touch(sectors ...geometry.SectorHandle) {
	if a.touched == nil {
		a.touched = map[geometry.SectorHandle]struct{}{}
	}
	for _, s := range sectors {
		if !s.IsVoid() {
			a.touched[s] = struct{}{}
		}
	}
}

// TouchEdge marks the sectors on both sides of e.
func (a *Area) TouchEdge(e geometry.EdgeHandle) {
	if ePtr := a.Geometry.Edge(e); ePtr != nil {
		a.Touch(ePtr.Sectors[0], ePtr.Sectors[1])
	}
}

// Commit ends a batch of edits: touched sectors that still exist are
// triangulated again, problems about removed entities are dropped and the
// blockmap is rebuilt once. It returns the number of sectors that failed.
func (a *Area) Commit() int {
	var sectors []geometry.SectorHandle
	for _, s := range a.Geometry.Sectors() {
		if _, ok := a.touched[s]; ok {
			sectors = append(sectors, s)
		}
	}
	a.touched = map[geometry.SectorHandle]struct{}{}
	a.Problems.Forget(a.Geometry)
	failed := a.Retriangulate(sectors...)
	a.RebuildBlockmap()
	return failed
}

// Retriangulate replaces the meshes of the given sectors, leaving the
// blockmap alone. It returns the number of sectors that failed.
func (a *Area) Retriangulate(sectors ...geometry.SectorHandle) int {
	failed := 0
	for _, s := range sectors {
		if triangulate.Sector(a.Geometry, s, a.Problems) != nil {
			failed++
		}
	}
	return failed
}

// RebuildBlockmap recomputes the blockmap from the current geometry.
func (a *Area) RebuildBlockmap() {
	if a.Blockmap == nil {
		a.Blockmap = blockmap.Build(a.Geometry)
		return
	}
	a.Blockmap.Rebuild(a.Geometry)
}

// Cleanup removes the sectors left without boundary edges. It reports
// whether any was removed.
func (a *Area) Cleanup() bool {
	deleted := false
	for i := 0; i < len(a.Geometry.Sectors()); {
		s := a.Geometry.Sectors()[i]
		if len(a.Geometry.Sector(s).Edges) == 0 {
			a.Geometry.RemoveSector(s)
			delete(a.touched, s)
			deleted = true
			continue
		}
		i++
	}
	if deleted {
		a.Problems.Forget(a.Geometry)
	}
	return deleted
}

// Clone returns a fully independent copy, for undo history. Handles valid
// in a are valid in the copy.
func (a *Area) Clone() *Area {
	c := &Area{
		Geometry: a.Geometry.Clone(),
		Problems: a.Problems.Clone(),
		touched:  make(map[geometry.SectorHandle]struct{}, len(a.touched)),
	}
	if a.Blockmap != nil {
		c.Blockmap = a.Blockmap.Clone()
	}
	for s := range a.touched {
		c.touched[s] = struct{}{}
	}
	return c
}

// SectorAt finds the sector at p through the blockmap. ok is false when p
// is outside the blockmap.
func (a *Area) SectorAt(p gamemath.Point) (geometry.SectorHandle, bool) {
	return a.Blockmap.SectorAt(a.Geometry, p)
}
