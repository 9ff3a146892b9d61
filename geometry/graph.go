// Package geometry holds the vertex, edge and sector graph of an area.
//
// Entities live in generation-checked arenas and are addressed by handles.
// Next to the handles, every entity keeps positional indexes into the
// graph's ordered lists. Area files are positional, so those mirrors are
// what gets written and read; the Fix and Resync functions move data
// between both representations.
package geometry

import (
	"github.com/automoto/sectormap/config"
	"github.com/automoto/sectormap/shared/gamemath"
)

// Graph owns every vertex, edge and sector of an area.
// It is not safe for concurrent use.
type Graph struct {
	vertexes arena[Vertex]
	edges    arena[Edge]
	sectors  arena[Sector]

	vertexOrder []VertexHandle
	edgeOrder   []EdgeHandle
	sectorOrder []SectorHandle

	// Strict makes invariant violations panic with an *InvariantError.
	// Otherwise they are logged and the offending call does nothing.
	Strict bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{Strict: config.Geometry.StrictInvariants}
}

// NewVertex appends a vertex at (x, y).
func (g *Graph) NewVertex(x, y float64) VertexHandle {
	v := &Vertex{X: x, Y: y, Idx: len(g.vertexOrder)}
	h := VertexHandle(g.vertexes.insert(v))
	g.vertexOrder = append(g.vertexOrder, h)
	return h
}

// NewEdge appends an edge with no vertexes and the void on both sides.
func (g *Graph) NewEdge() EdgeHandle {
	e := newEdge()
	e.Idx = len(g.edgeOrder)
	h := EdgeHandle(g.edges.insert(e))
	g.edgeOrder = append(g.edgeOrder, h)
	return h
}

// NewSector appends a sector with default attributes and no edges.
func (g *Graph) NewSector() SectorHandle {
	s := newSector()
	s.Idx = len(g.sectorOrder)
	h := SectorHandle(g.sectors.insert(s))
	g.sectorOrder = append(g.sectorOrder, h)
	return h
}

// Vertex returns the vertex, or nil if the handle is stale.
func (g *Graph) Vertex(h VertexHandle) *Vertex { return g.vertexes.get(handle(h)) }

// Edge returns the edge, or nil if the handle is stale.
func (g *Graph) Edge(h EdgeHandle) *Edge { return g.edges.get(handle(h)) }

// Sector returns the sector, or nil if the handle is stale or the void.
func (g *Graph) Sector(h SectorHandle) *Sector { return g.sectors.get(handle(h)) }

// Vertexes returns the vertexes in positional order. Do not modify it.
func (g *Graph) Vertexes() []VertexHandle { return g.vertexOrder }

// Edges returns the edges in positional order. Do not modify it.
func (g *Graph) Edges() []EdgeHandle { return g.edgeOrder }

// Sectors returns the sectors in positional order. Do not modify it.
func (g *Graph) Sectors() []SectorHandle { return g.sectorOrder }

// VertexAt returns the vertex at a position, or a nil handle.
func (g *Graph) VertexAt(idx int) VertexHandle {
	if idx < 0 || idx >= len(g.vertexOrder) {
		return VertexHandle{}
	}
	return g.vertexOrder[idx]
}

// EdgeAt returns the edge at a position, or a nil handle.
func (g *Graph) EdgeAt(idx int) EdgeHandle {
	if idx < 0 || idx >= len(g.edgeOrder) {
		return EdgeHandle{}
	}
	return g.edgeOrder[idx]
}

// SectorAtIndex returns the sector at a position, or the void.
func (g *Graph) SectorAtIndex(idx int) SectorHandle {
	if idx < 0 || idx >= len(g.sectorOrder) {
		return NoSector
	}
	return g.sectorOrder[idx]
}

// VertexPoint returns the coordinates of a vertex. Stale handles give the
// origin.
func (g *Graph) VertexPoint(h VertexHandle) gamemath.Point {
	if v := g.Vertex(h); v != nil {
		return v.Point()
	}
	return gamemath.Point{}
}

// EdgePoints returns the coordinates of both endpoints.
func (g *Graph) EdgePoints(h EdgeHandle) (gamemath.Point, gamemath.Point) {
	e := g.Edge(h)
	if e == nil {
		return gamemath.Point{}, gamemath.Point{}
	}
	return g.VertexPoint(e.Vertexes[0]), g.VertexPoint(e.Vertexes[1])
}

// EdgeLength returns the distance between the endpoints.
func (g *Graph) EdgeLength(h EdgeHandle) float64 {
	a, b := g.EdgePoints(h)
	return gamemath.Dist(a, b)
}

func (g *Graph) vertexIdx(h VertexHandle) int {
	if v := g.Vertex(h); v != nil {
		return v.Idx
	}
	return -1
}

func (g *Graph) edgeIdx(h EdgeHandle) int {
	if e := g.Edge(h); e != nil {
		return e.Idx
	}
	return -1
}

func (g *Graph) sectorIdx(h SectorHandle) int {
	if s := g.Sector(h); s != nil {
		return s.Idx
	}
	return -1
}

// ConnectEdgeToVertex sets endpoint slot of e to v. The edge is first
// detached from the vertex that held the slot.
func (g *Graph) ConnectEdgeToVertex(e EdgeHandle, v VertexHandle, slot int) {
	ePtr := g.Edge(e)
	vPtr := g.Vertex(v)
	if ePtr == nil || vPtr == nil || slot < 0 || slot > 1 {
		g.violate(ViolationStaleHandle, "connect %v to vertex %v slot %d", e, v, slot)
		return
	}
	if old := g.Vertex(ePtr.Vertexes[slot]); old != nil {
		if ePtr.Vertexes[1-slot] != ePtr.Vertexes[slot] {
			old.removeEdge(e)
		}
	}
	ePtr.Vertexes[slot] = v
	ePtr.VertexIdxs[slot] = vPtr.Idx
	vPtr.addEdge(e, ePtr.Idx)
}

// ConnectEdgeToSector puts s on the given side of e. s may be NoSector.
// The edge is first detached from the sector that held the side.
func (g *Graph) ConnectEdgeToSector(e EdgeHandle, s SectorHandle, side int) {
	ePtr := g.Edge(e)
	sPtr := g.Sector(s)
	if ePtr == nil || (!s.IsVoid() && sPtr == nil) || side < 0 || side > 1 {
		g.violate(ViolationStaleHandle, "connect %v to sector %v side %d", e, s, side)
		return
	}
	if old := g.Sector(ePtr.Sectors[side]); old != nil {
		if ePtr.Sectors[1-side] != ePtr.Sectors[side] {
			old.removeEdge(e)
		}
	}
	ePtr.Sectors[side] = s
	ePtr.SectorIdxs[side] = -1
	if sPtr != nil {
		ePtr.SectorIdxs[side] = sPtr.Idx
		sPtr.addEdge(e, ePtr.Idx)
	}
}

// DisconnectEdge removes e from the lists of its vertexes and sectors and
// clears its references.
func (g *Graph) DisconnectEdge(e EdgeHandle) {
	ePtr := g.Edge(e)
	if ePtr == nil {
		g.violate(ViolationStaleHandle, "disconnect %v", e)
		return
	}
	for i := 0; i < 2; i++ {
		if v := g.Vertex(ePtr.Vertexes[i]); v != nil {
			v.removeEdge(e)
		}
		if s := g.Sector(ePtr.Sectors[i]); s != nil {
			s.removeEdge(e)
		}
		ePtr.Vertexes[i] = VertexHandle{}
		ePtr.Sectors[i] = NoSector
		ePtr.VertexIdxs[i] = -1
		ePtr.SectorIdxs[i] = -1
	}
}

// SwapEdgeVertexes reverses the direction of e. The sides swap with it,
// so the side convention keeps holding.
func (g *Graph) SwapEdgeVertexes(e EdgeHandle) {
	ePtr := g.Edge(e)
	if ePtr == nil {
		g.violate(ViolationStaleHandle, "swap vertexes of %v", e)
		return
	}
	ePtr.Vertexes[0], ePtr.Vertexes[1] = ePtr.Vertexes[1], ePtr.Vertexes[0]
	ePtr.VertexIdxs[0], ePtr.VertexIdxs[1] = ePtr.VertexIdxs[1], ePtr.VertexIdxs[0]
	ePtr.Sectors[0], ePtr.Sectors[1] = ePtr.Sectors[1], ePtr.Sectors[0]
	ePtr.SectorIdxs[0], ePtr.SectorIdxs[1] = ePtr.SectorIdxs[1], ePtr.SectorIdxs[0]
}

// TransferEdgeSector replaces from with to on whichever side of e holds it.
func (g *Graph) TransferEdgeSector(e EdgeHandle, from, to SectorHandle) {
	ePtr := g.Edge(e)
	if ePtr == nil {
		g.violate(ViolationStaleHandle, "transfer sector of %v", e)
		return
	}
	side, ok := ePtr.SideWithSector(from)
	if !ok {
		return
	}
	g.ConnectEdgeToSector(e, to, side)
}

// RemoveVertex erases a vertex from the graph and renumbers the positional
// indexes after it. Edges should no longer reference it.
func (g *Graph) RemoveVertex(h VertexHandle) {
	v := g.Vertex(h)
	if v == nil {
		g.violate(ViolationStaleHandle, "remove %v", h)
		return
	}
	idx := v.Idx
	if idx < 0 || idx >= len(g.vertexOrder) || g.vertexOrder[idx] != h {
		g.violate(ViolationOrderMismatch, "remove %v: cached index %d does not hold it", h, idx)
		return
	}
	g.vertexOrder = append(g.vertexOrder[:idx], g.vertexOrder[idx+1:]...)
	g.vertexes.remove(handle(h))
	for i := idx; i < len(g.vertexOrder); i++ {
		g.Vertex(g.vertexOrder[i]).Idx = i
	}
	for _, eh := range g.edgeOrder {
		e := g.Edge(eh)
		for i := 0; i < 2; i++ {
			e.VertexIdxs[i] = g.shiftIdx(e.VertexIdxs[i], idx, "vertex", eh)
		}
	}
}

// RemoveEdge erases an edge from the graph and renumbers the positional
// indexes after it. Vertexes and sectors should no longer reference it.
func (g *Graph) RemoveEdge(h EdgeHandle) {
	e := g.Edge(h)
	if e == nil {
		g.violate(ViolationStaleHandle, "remove %v", h)
		return
	}
	idx := e.Idx
	if idx < 0 || idx >= len(g.edgeOrder) || g.edgeOrder[idx] != h {
		g.violate(ViolationOrderMismatch, "remove %v: cached index %d does not hold it", h, idx)
		return
	}
	g.edgeOrder = append(g.edgeOrder[:idx], g.edgeOrder[idx+1:]...)
	g.edges.remove(handle(h))
	for i := idx; i < len(g.edgeOrder); i++ {
		g.Edge(g.edgeOrder[i]).Idx = i
	}
	for _, vh := range g.vertexOrder {
		v := g.Vertex(vh)
		for i := range v.EdgeIdxs {
			v.EdgeIdxs[i] = g.shiftIdx(v.EdgeIdxs[i], idx, "edge", vh)
		}
	}
	for _, sh := range g.sectorOrder {
		s := g.Sector(sh)
		for i := range s.EdgeIdxs {
			s.EdgeIdxs[i] = g.shiftIdx(s.EdgeIdxs[i], idx, "edge", sh)
		}
	}
}

// RemoveSector erases a sector from the graph and renumbers the positional
// indexes after it. Edges should no longer reference it.
func (g *Graph) RemoveSector(h SectorHandle) {
	s := g.Sector(h)
	if s == nil {
		g.violate(ViolationStaleHandle, "remove %v", h)
		return
	}
	idx := s.Idx
	if idx < 0 || idx >= len(g.sectorOrder) || g.sectorOrder[idx] != h {
		g.violate(ViolationOrderMismatch, "remove %v: cached index %d does not hold it", h, idx)
		return
	}
	g.sectorOrder = append(g.sectorOrder[:idx], g.sectorOrder[idx+1:]...)
	g.sectors.remove(handle(h))
	for i := idx; i < len(g.sectorOrder); i++ {
		g.Sector(g.sectorOrder[i]).Idx = i
	}
	for _, eh := range g.edgeOrder {
		e := g.Edge(eh)
		for i := 0; i < 2; i++ {
			e.SectorIdxs[i] = g.shiftIdx(e.SectorIdxs[i], idx, "sector", eh)
		}
	}
}

// shiftIdx renumbers one stored index after the entity at removed went away.
// An index still pointing at the removed entity dangles.
func (g *Graph) shiftIdx(stored, removed int, kind string, owner any) int {
	switch {
	case stored < 0:
		return stored
	case stored > removed:
		return stored - 1
	case stored == removed:
		g.violate(ViolationDanglingIndex, "%v still stores index %d of the removed %s", owner, stored, kind)
		return -1
	}
	return stored
}

// DeleteEdge disconnects and removes e, then removes the endpoints left with
// no edges and the sectors left with no boundary.
func (g *Graph) DeleteEdge(h EdgeHandle) {
	e := g.Edge(h)
	if e == nil {
		g.violate(ViolationStaleHandle, "delete %v", h)
		return
	}
	verts := e.Vertexes
	sectors := e.Sectors
	g.DisconnectEdge(h)
	g.RemoveEdge(h)

	for i, vh := range verts {
		if i == 1 && vh == verts[0] {
			break
		}
		if v := g.Vertex(vh); v != nil && len(v.Edges) == 0 {
			g.RemoveVertex(vh)
		}
	}
	for i, sh := range sectors {
		if i == 1 && sh == sectors[0] {
			break
		}
		if s := g.Sector(sh); s != nil && len(s.Edges) == 0 {
			g.RemoveSector(sh)
		}
	}
}

// Clone returns a deep copy. Handles of g stay valid in the copy.
func (g *Graph) Clone() *Graph {
	return &Graph{
		vertexes:    g.vertexes.clone((*Vertex).clone),
		edges:       g.edges.clone((*Edge).clone),
		sectors:     g.sectors.clone((*Sector).clone),
		vertexOrder: append([]VertexHandle(nil), g.vertexOrder...),
		edgeOrder:   append([]EdgeHandle(nil), g.edgeOrder...),
		sectorOrder: append([]SectorHandle(nil), g.sectorOrder...),
		Strict:      g.Strict,
	}
}
