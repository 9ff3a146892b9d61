package geometry

// FixEdgePointers recomputes the handles of e from its positional indexes.
// Indexes that are -1 or out of range become nil handles.
func (g *Graph) FixEdgePointers(h EdgeHandle) {
	e := g.Edge(h)
	if e == nil {
		return
	}
	for i := 0; i < 2; i++ {
		e.Vertexes[i] = g.VertexAt(e.VertexIdxs[i])
		e.Sectors[i] = g.SectorAtIndex(e.SectorIdxs[i])
	}
}

// FixEdgeIndexes recomputes the positional indexes of e from its handles.
func (g *Graph) FixEdgeIndexes(h EdgeHandle) {
	e := g.Edge(h)
	if e == nil {
		return
	}
	for i := 0; i < 2; i++ {
		e.VertexIdxs[i] = g.vertexIdx(e.Vertexes[i])
		e.SectorIdxs[i] = g.sectorIdx(e.Sectors[i])
	}
}

// FixVertexPointers recomputes the incident edge handles of v from its
// positional indexes.
func (g *Graph) FixVertexPointers(h VertexHandle) {
	v := g.Vertex(h)
	if v == nil {
		return
	}
	v.Edges = v.Edges[:0]
	for _, idx := range v.EdgeIdxs {
		v.Edges = append(v.Edges, g.EdgeAt(idx))
	}
}

// FixVertexIndexes recomputes the positional incident edge indexes of v.
func (g *Graph) FixVertexIndexes(h VertexHandle) {
	v := g.Vertex(h)
	if v == nil {
		return
	}
	v.EdgeIdxs = v.EdgeIdxs[:0]
	for _, eh := range v.Edges {
		v.EdgeIdxs = append(v.EdgeIdxs, g.edgeIdx(eh))
	}
}

// FixSectorPointers recomputes the boundary edge handles of s from its
// positional indexes.
func (g *Graph) FixSectorPointers(h SectorHandle) {
	s := g.Sector(h)
	if s == nil {
		return
	}
	s.Edges = s.Edges[:0]
	for _, idx := range s.EdgeIdxs {
		s.Edges = append(s.Edges, g.EdgeAt(idx))
	}
}

// FixSectorIndexes recomputes the positional boundary edge indexes of s.
func (g *Graph) FixSectorIndexes(h SectorHandle) {
	s := g.Sector(h)
	if s == nil {
		return
	}
	s.EdgeIdxs = s.EdgeIdxs[:0]
	for _, eh := range s.Edges {
		s.EdgeIdxs = append(s.EdgeIdxs, g.edgeIdx(eh))
	}
}

// ConnectVertexEdges rebuilds the incident list of v from the edges that
// name it as an endpoint, in edge order.
func (g *Graph) ConnectVertexEdges(h VertexHandle) {
	v := g.Vertex(h)
	if v == nil {
		return
	}
	v.EdgeIdxs = v.EdgeIdxs[:0]
	for i, eh := range g.edgeOrder {
		e := g.Edge(eh)
		if e.Vertexes[0] == h || e.Vertexes[1] == h {
			v.EdgeIdxs = append(v.EdgeIdxs, i)
		}
	}
	g.FixVertexPointers(h)
}

// ConnectSectorEdges rebuilds the boundary list of s from the edges that
// have it on a side, in edge order.
func (g *Graph) ConnectSectorEdges(h SectorHandle) {
	s := g.Sector(h)
	if s == nil {
		return
	}
	s.EdgeIdxs = s.EdgeIdxs[:0]
	for i, eh := range g.edgeOrder {
		e := g.Edge(eh)
		if e.Sectors[0] == h || e.Sectors[1] == h {
			s.EdgeIdxs = append(s.EdgeIdxs, i)
		}
	}
	g.FixSectorPointers(h)
}

// ResyncPointers rebuilds every handle from the positional indexes: edges
// first, then the vertex and sector back-references from the edges.
// It is what a loader calls once the indexes are filled in.
func (g *Graph) ResyncPointers() {
	g.refreshOwnIndexes()
	for _, eh := range g.edgeOrder {
		g.FixEdgePointers(eh)
	}
	for _, vh := range g.vertexOrder {
		g.ConnectVertexEdges(vh)
	}
	for _, sh := range g.sectorOrder {
		g.ConnectSectorEdges(sh)
	}
}

// ResyncIndexes rewrites every positional index from the handles. It is
// what a writer calls before reading the index fields.
func (g *Graph) ResyncIndexes() {
	g.refreshOwnIndexes()
	for _, eh := range g.edgeOrder {
		g.FixEdgeIndexes(eh)
	}
	for _, vh := range g.vertexOrder {
		g.FixVertexIndexes(vh)
	}
	for _, sh := range g.sectorOrder {
		g.FixSectorIndexes(sh)
	}
}

func (g *Graph) refreshOwnIndexes() {
	for i, h := range g.vertexOrder {
		g.Vertex(h).Idx = i
	}
	for i, h := range g.edgeOrder {
		g.Edge(h).Idx = i
	}
	for i, h := range g.sectorOrder {
		g.Sector(h).Idx = i
	}
}
