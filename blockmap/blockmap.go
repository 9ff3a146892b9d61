// Package blockmap is a uniform grid over an area's geometry. Each block
// lists the edges that cross it and the sectors it may belong to, so region
// and point queries only look at a handful of entities.
package blockmap

import (
	"math"
	"sort"

	"github.com/automoto/sectormap/config"
	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

// Blockmap is derived from a geometry.Graph and must be rebuilt after
// structural edits. Blocks are stored row by row.
type Blockmap struct {
	TopLeft   gamemath.Point
	Cols      int
	Rows      int
	BlockSize float64

	edges   [][]geometry.EdgeHandle
	sectors [][]geometry.SectorHandle
}

// New creates an empty blockmap with the given block size.
func New(blockSize float64) *Blockmap {
	return &Blockmap{BlockSize: blockSize}
}

// Build creates a blockmap over g using the configured block size.
func Build(g *geometry.Graph) *Blockmap {
	b := New(config.Geometry.BlockmapBlockSize)
	b.Rebuild(g)
	return b
}

// Clear empties the blockmap, keeping its block size.
func (b *Blockmap) Clear() {
	b.TopLeft = gamemath.Point{}
	b.Cols, b.Rows = 0, 0
	b.edges, b.sectors = nil, nil
}

// Rebuild recomputes every block from g. The sector meshes of g should be
// up to date, since blocks away from any edge sample them.
func (b *Blockmap) Rebuild(g *geometry.Graph) {
	b.Clear()
	vs := g.Vertexes()
	if len(vs) == 0 {
		return
	}

	min := g.VertexPoint(vs[0])
	max := min
	for _, v := range vs[1:] {
		gamemath.UpdateMinMax(&min, &max, g.VertexPoint(v))
	}

	// One extra column and row, so an edge lying exactly on the far border
	// still has a block.
	b.TopLeft = min
	b.Cols = int(math.Ceil((max.X-min.X)/b.BlockSize)) + 1
	b.Rows = int(math.Ceil((max.Y-min.Y)/b.BlockSize)) + 1
	b.edges = make([][]geometry.EdgeHandle, b.Cols*b.Rows)
	b.sectors = make([][]geometry.SectorHandle, b.Cols*b.Rows)

	for _, eh := range g.Edges() {
		b.addEdge(g, eh)
	}
	b.fillEmpty(g)
}

func (b *Blockmap) addEdge(g *geometry.Graph, eh geometry.EdgeHandle) {
	e := g.Edge(eh)
	p1, p2 := g.EdgePoints(eh)
	min, max := p1, p1
	gamemath.UpdateMinMax(&min, &max, p2)

	c1, _ := b.Col(min.X)
	c2, _ := b.Col(max.X)
	r1, _ := b.Row(min.Y)
	r2, _ := b.Row(max.Y)

	s0, s1 := g.Sector(e.Sectors[0]), g.Sector(e.Sectors[1])
	keep := true
	if s0 != nil && s1 != nil &&
		s0.Z == s1.Z &&
		s0.Type != geometry.SectorBlocking && s1.Type != geometry.SectorBlocking {
		keep = false
	}

	for col := c1; col <= c2; col++ {
		for row := r1; row <= r2; row++ {
			corner := b.TopLeftCorner(col, row)
			far := corner.Add(gamemath.Pt(b.BlockSize, b.BlockSize))
			if !gamemath.SegmentIntersectsRect(p1, p2, corner, far) {
				continue
			}
			i := b.cell(col, row)
			if keep {
				b.edges[i] = append(b.edges[i], eh)
			}
			if s0 != nil || s1 != nil {
				b.addSector(i, e.Sectors[0])
				b.addSector(i, e.Sectors[1])
			}
		}
	}
}

func (b *Blockmap) addSector(i int, s geometry.SectorHandle) {
	for _, have := range b.sectors[i] {
		if have == s {
			return
		}
	}
	b.sectors[i] = append(b.sectors[i], s)
}

// fillEmpty gives a sector to every block no edge touched. Border blocks
// are outside all geometry. Other blocks copy a neighbour that is sure of
// its sector, checking left, right, up and down in that order, and sample
// the mesh at their center as a last resort.
func (b *Blockmap) fillEmpty(g *geometry.Graph) {
	for col := 0; col < b.Cols; col++ {
		for row := 0; row < b.Rows; row++ {
			i := b.cell(col, row)
			if len(b.sectors[i]) > 0 {
				continue
			}
			if col == 0 || row == 0 || col == b.Cols-1 || row == b.Rows-1 {
				b.sectors[i] = []geometry.SectorHandle{geometry.NoSector}
				continue
			}
			if s, ok := b.singleNeighbour(col, row); ok {
				b.sectors[i] = []geometry.SectorHandle{s}
				continue
			}
			center := b.TopLeftCorner(col, row).Add(gamemath.Pt(b.BlockSize/2, b.BlockSize/2))
			s, _ := g.SectorAt(center)
			b.sectors[i] = []geometry.SectorHandle{s}
		}
	}
}

func (b *Blockmap) singleNeighbour(col, row int) (geometry.SectorHandle, bool) {
	for _, n := range [4][2]int{{col - 1, row}, {col + 1, row}, {col, row - 1}, {col, row + 1}} {
		if ss := b.sectors[b.cell(n[0], n[1])]; len(ss) == 1 {
			return ss[0], true
		}
	}
	return geometry.NoSector, false
}

func (b *Blockmap) cell(col, row int) int {
	return row*b.Cols + col
}

// Col returns the column holding x. ok is false when x is outside the grid.
func (b *Blockmap) Col(x float64) (col int, ok bool) {
	return index(x, b.TopLeft.X, b.BlockSize, b.Cols)
}

// Row returns the row holding y. ok is false when y is outside the grid.
func (b *Blockmap) Row(y float64) (row int, ok bool) {
	return index(y, b.TopLeft.Y, b.BlockSize, b.Rows)
}

func index(v, origin, size float64, n int) (int, bool) {
	if math.IsNaN(v) || v < origin || n == 0 {
		return 0, false
	}
	f := (v - origin) / size
	if f >= float64(n) {
		return 0, false
	}
	return int(f), true
}

// TopLeftCorner returns the top-left coordinates of a block.
func (b *Blockmap) TopLeftCorner(col, row int) gamemath.Point {
	return gamemath.Pt(
		float64(col)*b.BlockSize+b.TopLeft.X,
		float64(row)*b.BlockSize+b.TopLeft.Y,
	)
}

func (b *Blockmap) inRange(col, row int) bool {
	return col >= 0 && row >= 0 && col < b.Cols && row < b.Rows
}

// EdgesAt returns the edges listed in a block, or nil out of range.
func (b *Blockmap) EdgesAt(col, row int) []geometry.EdgeHandle {
	if !b.inRange(col, row) {
		return nil
	}
	return b.edges[b.cell(col, row)]
}

// SectorsAt returns the candidate sectors of a block, or nil out of range.
// geometry.NoSector stands for the void.
func (b *Blockmap) SectorsAt(col, row int) []geometry.SectorHandle {
	if !b.inRange(col, row) {
		return nil
	}
	return b.sectors[b.cell(col, row)]
}

// EdgesInRegion returns, without repeats, the edges of every block the
// rectangle tl-br touches. ok is false when a corner is outside the grid.
func (b *Blockmap) EdgesInRegion(tl, br gamemath.Point) (edges []geometry.EdgeHandle, ok bool) {
	c1, ok1 := b.Col(tl.X)
	c2, ok2 := b.Col(br.X)
	r1, ok3 := b.Row(tl.Y)
	r2, ok4 := b.Row(br.Y)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, false
	}

	seen := map[geometry.EdgeHandle]bool{}
	for col := c1; col <= c2; col++ {
		for row := r1; row <= r2; row++ {
			for _, e := range b.edges[b.cell(col, row)] {
				if !seen[e] {
					seen[e] = true
					edges = append(edges, e)
				}
			}
		}
	}
	return edges, true
}

// SortedEdgesInRegion is EdgesInRegion ordered by edge position in g.
func (b *Blockmap) SortedEdgesInRegion(g *geometry.Graph, tl, br gamemath.Point) ([]geometry.EdgeHandle, bool) {
	edges, ok := b.EdgesInRegion(tl, br)
	sort.Slice(edges, func(i, j int) bool {
		return g.Edge(edges[i]).Idx < g.Edge(edges[j]).Idx
	})
	return edges, ok
}

// SectorAt finds the sector at p using the candidates of its block. It
// returns geometry.NoSector for the void, and ok false when p is outside
// the grid.
func (b *Blockmap) SectorAt(g *geometry.Graph, p gamemath.Point) (s geometry.SectorHandle, ok bool) {
	col, ok1 := b.Col(p.X)
	row, ok2 := b.Row(p.Y)
	if !ok1 || !ok2 {
		return geometry.NoSector, false
	}
	cands := b.sectors[b.cell(col, row)]
	if len(cands) == 1 {
		return cands[0], true
	}
	for _, c := range cands {
		if c.IsVoid() {
			continue
		}
		if g.SectorContains(c, p) {
			return c, true
		}
	}
	return geometry.NoSector, true
}

// Clone returns an independent copy. Handles stay valid for a clone of the
// graph the blockmap was built from.
func (b *Blockmap) Clone() *Blockmap {
	c := &Blockmap{TopLeft: b.TopLeft, Cols: b.Cols, Rows: b.Rows, BlockSize: b.BlockSize}
	if b.edges != nil {
		c.edges = make([][]geometry.EdgeHandle, len(b.edges))
		for i, es := range b.edges {
			c.edges[i] = append([]geometry.EdgeHandle(nil), es...)
		}
	}
	if b.sectors != nil {
		c.sectors = make([][]geometry.SectorHandle, len(b.sectors))
		for i, ss := range b.sectors {
			c.sectors[i] = append([]geometry.SectorHandle(nil), ss...)
		}
	}
	return c
}
