package geometry

import "fmt"

// VertexHandle refers to a vertex of a Graph. The zero value refers to nothing.
type VertexHandle handle

// EdgeHandle refers to an edge of a Graph. The zero value refers to nothing.
type EdgeHandle handle

// SectorHandle refers to a sector of a Graph. The zero value is the void.
type SectorHandle handle

// NoSector is the void: the outside of every sector.
var NoSector SectorHandle

// IsNil reports whether the handle refers to nothing.
func (h VertexHandle) IsNil() bool { return h.gen == 0 }

// IsNil reports whether the handle refers to nothing.
func (h EdgeHandle) IsNil() bool { return h.gen == 0 }

// IsVoid reports whether the handle is the void.
func (h SectorHandle) IsVoid() bool { return h.gen == 0 }

func (h VertexHandle) String() string { return formatHandle("v", handle(h)) }
func (h EdgeHandle) String() string   { return formatHandle("e", handle(h)) }
func (h SectorHandle) String() string { return formatHandle("s", handle(h)) }

func formatHandle(prefix string, h handle) string {
	if h.gen == 0 {
		return prefix + "#nil"
	}
	return fmt.Sprintf("%s#%d.%d", prefix, h.index, h.gen)
}
