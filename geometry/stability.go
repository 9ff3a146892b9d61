package geometry

import (
	"fmt"
	"log"
)

// ViolationKind classifies a broken graph invariant.
type ViolationKind int

const (
	// ViolationStaleHandle: a handle no longer resolves.
	ViolationStaleHandle ViolationKind = iota
	// ViolationOrderMismatch: an entity's own index does not match its
	// position in the graph order.
	ViolationOrderMismatch
	// ViolationIndexOutOfRange: a stored index is past the end of its list.
	ViolationIndexOutOfRange
	// ViolationIndexMismatch: a stored index and the handle next to it
	// name different entities.
	ViolationIndexMismatch
	// ViolationMissingBackRef: one side of a two-way reference is missing.
	ViolationMissingBackRef
	// ViolationDanglingIndex: an index still points at a removed entity.
	ViolationDanglingIndex
)

var violationKindNames = [...]string{
	"stale handle",
	"order mismatch",
	"index out of range",
	"index mismatch",
	"missing back-reference",
	"dangling index",
}

func (k ViolationKind) String() string {
	if int(k) < len(violationKindNames) {
		return violationKindNames[k]
	}
	return fmt.Sprintf("violation(%d)", int(k))
}

// Violation is one broken invariant found in a graph.
type Violation struct {
	Kind   ViolationKind
	Detail string
}

func (v Violation) String() string {
	return v.Kind.String() + ": " + v.Detail
}

// InvariantError is the panic value of a strict graph.
type InvariantError struct {
	Violation
}

func (e *InvariantError) Error() string {
	return "geometry invariant violated: " + e.Violation.String()
}

func (g *Graph) violate(kind ViolationKind, format string, args ...any) {
	v := Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)}
	if g.Strict {
		panic(&InvariantError{Violation: v})
	}
	log.Printf("Warning: geometry %s", v)
}

// CheckStability audits the graph: every positional index against the
// handle next to it, and every two-way reference in both directions.
// An empty result means the graph is consistent.
func (g *Graph) CheckStability() []Violation {
	var out []Violation
	add := func(kind ViolationKind, format string, args ...any) {
		out = append(out, Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)})
	}

	for i, h := range g.vertexOrder {
		if v := g.Vertex(h); v == nil {
			add(ViolationStaleHandle, "vertex order %d holds %v", i, h)
		} else if v.Idx != i {
			add(ViolationOrderMismatch, "vertex %v at position %d caches index %d", h, i, v.Idx)
		}
	}
	for i, h := range g.edgeOrder {
		if e := g.Edge(h); e == nil {
			add(ViolationStaleHandle, "edge order %d holds %v", i, h)
		} else if e.Idx != i {
			add(ViolationOrderMismatch, "edge %v at position %d caches index %d", h, i, e.Idx)
		}
	}
	for i, h := range g.sectorOrder {
		if s := g.Sector(h); s == nil {
			add(ViolationStaleHandle, "sector order %d holds %v", i, h)
		} else if s.Idx != i {
			add(ViolationOrderMismatch, "sector %v at position %d caches index %d", h, i, s.Idx)
		}
	}
	if len(out) > 0 {
		return out
	}

	for ei, eh := range g.edgeOrder {
		e := g.Edge(eh)
		for i := 0; i < 2; i++ {
			vh, vIdx := e.Vertexes[i], e.VertexIdxs[i]
			switch {
			case vIdx >= len(g.vertexOrder) || vIdx < -1:
				add(ViolationIndexOutOfRange, "edge %d vertex %d index %d, %d vertexes", ei, i, vIdx, len(g.vertexOrder))
			case vIdx == -1 && !vh.IsNil():
				add(ViolationIndexMismatch, "edge %d vertex %d has no index but handle %v", ei, i, vh)
			case vIdx >= 0 && g.vertexOrder[vIdx] != vh:
				add(ViolationIndexMismatch, "edge %d vertex %d index %d is %v, handle is %v", ei, i, vIdx, g.vertexOrder[vIdx], vh)
			case !vh.IsNil() && g.Vertex(vh) == nil:
				add(ViolationStaleHandle, "edge %d vertex %d %v", ei, i, vh)
			case !vh.IsNil() && !g.Vertex(vh).HasEdge(eh):
				add(ViolationMissingBackRef, "vertex %d does not list edge %d", vIdx, ei)
			}

			sh, sIdx := e.Sectors[i], e.SectorIdxs[i]
			switch {
			case sIdx >= len(g.sectorOrder) || sIdx < -1:
				add(ViolationIndexOutOfRange, "edge %d side %d index %d, %d sectors", ei, i, sIdx, len(g.sectorOrder))
			case sIdx == -1 && !sh.IsVoid():
				add(ViolationIndexMismatch, "edge %d side %d has no index but handle %v", ei, i, sh)
			case sIdx >= 0 && g.sectorOrder[sIdx] != sh:
				add(ViolationIndexMismatch, "edge %d side %d index %d is %v, handle is %v", ei, i, sIdx, g.sectorOrder[sIdx], sh)
			case !sh.IsVoid() && g.Sector(sh) == nil:
				add(ViolationStaleHandle, "edge %d side %d %v", ei, i, sh)
			case !sh.IsVoid() && !g.Sector(sh).HasEdge(eh):
				add(ViolationMissingBackRef, "sector %d does not list edge %d", sIdx, ei)
			}
		}
	}

	for vi, vh := range g.vertexOrder {
		v := g.Vertex(vh)
		if len(v.Edges) != len(v.EdgeIdxs) {
			add(ViolationIndexMismatch, "vertex %d has %d edges and %d edge indexes", vi, len(v.Edges), len(v.EdgeIdxs))
			continue
		}
		for i, eh := range v.Edges {
			out = g.checkEdgeRef(out, "vertex", vi, eh, v.EdgeIdxs[i])
			if e := g.Edge(eh); e != nil && e.Vertexes[0] != vh && e.Vertexes[1] != vh {
				add(ViolationMissingBackRef, "vertex %d lists edge %d, which does not end there", vi, e.Idx)
			}
		}
	}

	for si, sh := range g.sectorOrder {
		s := g.Sector(sh)
		if len(s.Edges) != len(s.EdgeIdxs) {
			add(ViolationIndexMismatch, "sector %d has %d edges and %d edge indexes", si, len(s.Edges), len(s.EdgeIdxs))
			continue
		}
		for i, eh := range s.Edges {
			out = g.checkEdgeRef(out, "sector", si, eh, s.EdgeIdxs[i])
			if e := g.Edge(eh); e != nil && e.Sectors[0] != sh && e.Sectors[1] != sh {
				add(ViolationMissingBackRef, "sector %d lists edge %d, which is not on either side", si, e.Idx)
			}
		}
	}
	return out
}

func (g *Graph) checkEdgeRef(out []Violation, owner string, ownerIdx int, eh EdgeHandle, eIdx int) []Violation {
	switch {
	case eIdx < 0 || eIdx >= len(g.edgeOrder):
		return append(out, Violation{ViolationIndexOutOfRange,
			fmt.Sprintf("%s %d edge index %d, %d edges", owner, ownerIdx, eIdx, len(g.edgeOrder))})
	case g.edgeOrder[eIdx] != eh:
		return append(out, Violation{ViolationIndexMismatch,
			fmt.Sprintf("%s %d edge index %d is %v, handle is %v", owner, ownerIdx, eIdx, g.edgeOrder[eIdx], eh)})
	case g.Edge(eh) == nil:
		return append(out, Violation{ViolationStaleHandle,
			fmt.Sprintf("%s %d edge %v", owner, ownerIdx, eh)})
	}
	return out
}
