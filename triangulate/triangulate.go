// Package triangulate turns sector boundaries into triangle meshes.
//
// The boundary edges of a sector are traced into closed loops, starting each
// loop at the rightmost vertex left. Loops are nested by containment: loops
// at odd depth enclose the sector, loops at even depth are holes in their
// parent. Holes are bridged into their enclosing loop, and the result is
// ear clipped, always cutting the first ear from the start of the loop.
package triangulate

import (
	"sort"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

// Mesh computes the triangles of sector s without storing them. On failure
// the triangles of the parts that did work are returned with an *Error.
func Mesh(g *geometry.Graph, s geometry.SectorHandle) ([]geometry.Triangle, error) {
	sec := g.Sector(s)
	if sec == nil {
		return nil, &Error{Kind: InvalidInput, Sector: s}
	}
	if len(sec.Edges) == 0 {
		return nil, nil
	}

	t := &tracer{
		g:        g,
		s:        s,
		inSector: make(map[geometry.EdgeHandle]bool, len(sec.Edges)),
		left:     make(map[geometry.EdgeHandle]bool, len(sec.Edges)),
		done:     make(map[geometry.EdgeHandle]bool, len(sec.Edges)),
	}
	for _, eh := range sec.Edges {
		e := g.Edge(eh)
		if e == nil || g.Vertex(e.Vertexes[0]) == nil || g.Vertex(e.Vertexes[1]) == nil {
			return nil, &Error{Kind: InvalidInput, Sector: s}
		}
		if e.Vertexes[0] == e.Vertexes[1] {
			continue
		}
		t.inSector[eh] = true
		t.left[eh] = true
	}

	// Step 1: trace loops.
	root := &polyNode{}
	var lone []geometry.EdgeHandle
	closed := 0
	for first := true; len(t.left) > 0; first = false {
		start := t.rightmostLeft(sec.Edges)
		loop, walked, ok := t.trace(start, !t.isOuter(start, first))
		if !ok {
			lone = append(lone, walked...)
			continue
		}
		closed++
		loop = clean(loop)
		if len(loop) < 3 {
			continue
		}
		root.insert(&polyNode{loop: loop})
	}

	// Step 2: orient, then bridge holes into their enclosing loop.
	var tris []geometry.Triangle
	noEars := false
	for _, o := range root.collect(nil) {
		if gamemath.SignedArea(points(o.loop)) < 0 {
			reverse(o.loop)
		}
		for _, h := range o.holes {
			if gamemath.SignedArea(points(h)) > 0 {
				reverse(h)
			}
		}
		ring, ok := bridge(o)
		if !ok {
			noEars = true
			continue
		}

		// Step 3: clip.
		part, ok := clipEars(ring)
		tris = append(tris, part...)
		if !ok {
			noEars = true
		}
	}

	switch {
	case len(lone) > 0:
		sort.Slice(lone, func(i, j int) bool {
			return g.Edge(lone[i]).Idx < g.Edge(lone[j]).Idx
		})
		kind := LoneEdges
		if closed == 0 {
			kind = NotClosed
		}
		return tris, &Error{Kind: kind, Sector: s, LoneEdges: lone}
	case noEars:
		return tris, &Error{Kind: NoEarsFound, Sector: s}
	}
	return tris, nil
}

// Triangulate replaces the mesh of s with a freshly computed one and
// recomputes its bounding box. The mesh may be partial when an *Error is
// returned.
func Triangulate(g *geometry.Graph, s geometry.SectorHandle) error {
	tris, err := Mesh(g, s)
	if sec := g.Sector(s); sec != nil {
		sec.Triangles = tris
		g.UpdateSectorBBox(s)
	}
	return err
}

// All triangulates every sector of g and records the failures in p, which
// may be nil. It returns the number of sectors that failed.
func All(g *geometry.Graph, p *Problems) int {
	failed := 0
	for _, s := range g.Sectors() {
		if Sector(g, s, p) != nil {
			failed++
		}
	}
	return failed
}

// Sector triangulates s, first clearing what p knew about it, then
// recording any new failure. p may be nil.
func Sector(g *geometry.Graph, s geometry.SectorHandle, p *Problems) error {
	p.ClearSector(g, s)
	err := Triangulate(g, s)
	p.Record(err)
	return err
}
