package triangulate

import (
	"errors"
	"fmt"

	"github.com/automoto/sectormap/geometry"
)

// Kind classifies why a sector could not be fully triangulated.
type Kind int

const (
	// InvalidInput: the sector or one of its edges does not resolve, or an
	// edge is missing an endpoint.
	InvalidInput Kind = iota + 1
	// NotClosed: no boundary loop of the sector closes.
	NotClosed
	// LoneEdges: some loops close, but some edges do not chain into any.
	LoneEdges
	// NoEarsFound: a loop closes but cannot be clipped, usually because it
	// crosses itself or a hole cannot be bridged.
	NoEarsFound
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotClosed    = errors.New("sector is not closed")
	ErrLoneEdges    = errors.New("sector has lone edges")
	ErrNoEarsFound  = errors.New("no ears found")
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotClosed:
		return "not closed"
	case LoneEdges:
		return "lone edges"
	case NoEarsFound:
		return "no ears found"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidInput:
		return ErrInvalidInput
	case NotClosed:
		return ErrNotClosed
	case LoneEdges:
		return ErrLoneEdges
	case NoEarsFound:
		return ErrNoEarsFound
	}
	return nil
}

// Error reports a sector that was only partially triangulated, or not at
// all. LoneEdges names the edges of the loops that did not close.
type Error struct {
	Kind      Kind
	Sector    geometry.SectorHandle
	LoneEdges []geometry.EdgeHandle
}

func (e *Error) Error() string {
	if len(e.LoneEdges) > 0 {
		return fmt.Sprintf("triangulate %v: %s (%d edges)", e.Sector, e.Kind, len(e.LoneEdges))
	}
	return fmt.Sprintf("triangulate %v: %s", e.Sector, e.Kind)
}

// Unwrap lets errors.Is match the sentinel of the kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}
