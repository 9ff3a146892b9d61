package triangulate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/automoto/sectormap/geometry"
)

// Problems collects content problems found while building an area, for the
// editor to list. Methods are safe on a nil *Problems and do nothing.
type Problems struct {
	NonSimples         map[geometry.SectorHandle]Kind
	LoneEdges          map[geometry.EdgeHandle]struct{}
	UnknownHazards     map[geometry.SectorHandle][]string
	UnknownSectorTypes map[geometry.SectorHandle]string
}

// NewProblems creates an empty set.
func NewProblems() *Problems {
	return &Problems{
		NonSimples:         map[geometry.SectorHandle]Kind{},
		LoneEdges:          map[geometry.EdgeHandle]struct{}{},
		UnknownHazards:     map[geometry.SectorHandle][]string{},
		UnknownSectorTypes: map[geometry.SectorHandle]string{},
	}
}

// Record stores a triangulation failure. Other errors are ignored.
func (p *Problems) Record(err error) {
	if p == nil || err == nil {
		return
	}
	var te *Error
	if !errors.As(err, &te) {
		return
	}
	p.NonSimples[te.Sector] = te.Kind
	for _, e := range te.LoneEdges {
		p.LoneEdges[e] = struct{}{}
	}
}

// AddUnknownHazard notes that s names a hazard nobody defined.
func (p *Problems) AddUnknownHazard(s geometry.SectorHandle, name string) {
	if p == nil {
		return
	}
	p.UnknownHazards[s] = append(p.UnknownHazards[s], name)
}

// SetUnknownSectorType notes that s has a type nobody defined.
func (p *Problems) SetUnknownSectorType(s geometry.SectorHandle, name string) {
	if p == nil {
		return
	}
	p.UnknownSectorTypes[s] = name
}

// ClearSector forgets the triangulation problems of s and of its edges.
func (p *Problems) ClearSector(g *geometry.Graph, s geometry.SectorHandle) {
	if p == nil {
		return
	}
	delete(p.NonSimples, s)
	if sec := g.Sector(s); sec != nil {
		for _, e := range sec.Edges {
			delete(p.LoneEdges, e)
		}
	}
}

// Forget drops every entry naming an entity that no longer exists in g.
func (p *Problems) Forget(g *geometry.Graph) {
	if p == nil {
		return
	}
	for s := range p.NonSimples {
		if g.Sector(s) == nil {
			delete(p.NonSimples, s)
		}
	}
	for e := range p.LoneEdges {
		if g.Edge(e) == nil {
			delete(p.LoneEdges, e)
		}
	}
	for s := range p.UnknownHazards {
		if g.Sector(s) == nil {
			delete(p.UnknownHazards, s)
		}
	}
	for s := range p.UnknownSectorTypes {
		if g.Sector(s) == nil {
			delete(p.UnknownSectorTypes, s)
		}
	}
}

// Empty reports whether nothing was recorded.
func (p *Problems) Empty() bool {
	return p == nil || len(p.NonSimples)+len(p.LoneEdges)+len(p.UnknownHazards)+len(p.UnknownSectorTypes) == 0
}

// Clone returns an independent copy.
func (p *Problems) Clone() *Problems {
	if p == nil {
		return nil
	}
	c := NewProblems()
	for k, v := range p.NonSimples {
		c.NonSimples[k] = v
	}
	for k := range p.LoneEdges {
		c.LoneEdges[k] = struct{}{}
	}
	for k, v := range p.UnknownHazards {
		c.UnknownHazards[k] = append([]string(nil), v...)
	}
	for k, v := range p.UnknownSectorTypes {
		c.UnknownSectorTypes[k] = v
	}
	return c
}

// Descriptions returns one line per problem, ordered by entity position.
func (p *Problems) Descriptions(g *geometry.Graph) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, s := range g.Sectors() {
		idx := g.Sector(s).Idx
		if k, ok := p.NonSimples[s]; ok {
			out = append(out, fmt.Sprintf("sector %d is non-simple: %s", idx, k))
		}
		if t, ok := p.UnknownSectorTypes[s]; ok {
			out = append(out, fmt.Sprintf("sector %d has unknown type %q", idx, t))
		}
		if hs, ok := p.UnknownHazards[s]; ok {
			out = append(out, fmt.Sprintf("sector %d has unknown hazards: %s", idx, strings.Join(hs, ", ")))
		}
	}
	var lone []int
	for e := range p.LoneEdges {
		if edge := g.Edge(e); edge != nil {
			lone = append(lone, edge.Idx)
		}
	}
	sort.Ints(lone)
	for _, idx := range lone {
		out = append(out, fmt.Sprintf("edge %d is a lone edge", idx))
	}
	return out
}
