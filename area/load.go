package area

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/datanode"
	"github.com/automoto/sectormap/triangulate"
)

// ErrMalformed is returned when area data cannot form a consistent graph.
var ErrMalformed = errors.New("malformed area geometry")

// LoadOptions controls how much work LoadGeometry does.
type LoadOptions struct {
	// RecordProblems keeps a problem list, as the editor needs.
	RecordProblems bool
	// FadeBrightness sets fading sectors halfway between the brightness of
	// the two sectors they blend.
	FadeBrightness bool
	// Hazards lists the known hazard names. Nil accepts any name.
	Hazards map[string]bool
}

// EditorLoad is what the area editor loads with.
var EditorLoad = LoadOptions{RecordProblems: true}

// GameplayLoad is what a playable area loads with.
var GameplayLoad = LoadOptions{FadeBrightness: true}

// LoadFile parses the area file at path within fsys and loads its geometry.
func LoadFile(fsys fs.FS, path string, opts LoadOptions) (*Area, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open area %s: %w", path, err)
	}
	defer f.Close()

	root, err := datanode.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse area %s: %w", path, err)
	}
	a, err := LoadGeometry(root, opts)
	if err != nil {
		return nil, fmt.Errorf("load area %s: %w", path, err)
	}
	return a, nil
}

// LoadGeometry builds an area from the vertexes, edges and sectors sections
// of root. References are positional. The area is either returned fully
// connected, triangulated and indexed, or not at all.
func LoadGeometry(root *datanode.Node, opts LoadOptions) (*Area, error) {
	g := geometry.NewGraph()
	a := &Area{Geometry: g, touched: map[geometry.SectorHandle]struct{}{}}
	if opts.RecordProblems {
		a.Problems = triangulate.NewProblems()
	}

	for _, vn := range root.Child("vertexes").ChildrenNamed("v") {
		p, err := vn.Point()
		if err != nil {
			return nil, fmt.Errorf("%w: vertex: %v", ErrMalformed, err)
		}
		g.NewVertex(p.X, p.Y)
	}

	edgeNodes := root.Child("edges").ChildrenNamed("e")
	sectorNodes := root.Child("sectors").ChildrenNamed("s")
	nVertexes, nSectors := len(g.Vertexes()), len(sectorNodes)

	for i, en := range edgeNodes {
		e := g.Edge(g.NewEdge())
		if err := loadEdge(e, en, nVertexes, nSectors); err != nil {
			return nil, fmt.Errorf("%w: edge %d: %v", ErrMalformed, i, err)
		}
	}

	for i, sn := range sectorNodes {
		sh := g.NewSector()
		if err := a.loadSector(sh, sn, opts); err != nil {
			return nil, fmt.Errorf("%w: sector %d: %v", ErrMalformed, i, err)
		}
	}

	g.ResyncPointers()
	return a.finish(opts), nil
}

// FromGraph builds an area around a graph made in code or imported from
// another format. The graph must be fully connected.
func FromGraph(g *geometry.Graph, opts LoadOptions) *Area {
	a := &Area{Geometry: g, touched: map[geometry.SectorHandle]struct{}{}}
	if opts.RecordProblems {
		a.Problems = triangulate.NewProblems()
	}
	return a.finish(opts)
}

func (a *Area) finish(opts LoadOptions) *Area {
	g := a.Geometry
	if opts.FadeBrightness {
		for _, sh := range g.Sectors() {
			s := g.Sector(sh)
			if !s.Fade {
				continue
			}
			n1, n2, ok := g.TextureMergeSectors(sh)
			s1, s2 := g.Sector(n1), g.Sector(n2)
			if ok && s1 != nil && s2 != nil {
				s.Brightness = uint8((int(s1.Brightness) + int(s2.Brightness)) / 2)
			}
		}
	}

	failed := a.Build()
	log.Printf("Loaded area: %d vertexes, %d edges, %d sectors, %d non-simple",
		len(g.Vertexes()), len(g.Edges()), len(g.Sectors()), failed)
	return a
}

func loadEdge(e *geometry.Edge, n *datanode.Node, nVertexes, nSectors int) error {
	vn := n.Child("v")
	if vn == nil {
		return errors.New("no vertexes")
	}
	vIdxs, err := vn.Ints()
	if err != nil {
		return err
	}
	if len(vIdxs) != 2 {
		return fmt.Errorf("%d vertex indexes, want 2", len(vIdxs))
	}
	for i, idx := range vIdxs {
		if idx < 0 || idx >= nVertexes {
			return fmt.Errorf("vertex index %d out of range", idx)
		}
		e.VertexIdxs[i] = idx
	}

	sIdxs := []int{-1, -1}
	if sn := n.Child("s"); sn != nil {
		read, err := sn.Ints()
		if err != nil {
			return err
		}
		if len(read) > 2 {
			return fmt.Errorf("%d sector indexes, want 2", len(read))
		}
		copy(sIdxs, read)
	}
	for i, idx := range sIdxs {
		if idx < -1 || idx >= nSectors {
			return fmt.Errorf("sector index %d out of range", idx)
		}
		e.SectorIdxs[i] = idx
	}

	if c := n.Child("shadow_length"); c != nil {
		if e.WallShadowLength, err = c.Float(); err != nil {
			return err
		}
	}
	if c := n.Child("shadow_color"); c != nil {
		if e.WallShadowColor, err = c.Color(); err != nil {
			return err
		}
	}
	if c := n.Child("smoothing_length"); c != nil {
		if e.LedgeSmoothingLength, err = c.Float(); err != nil {
			return err
		}
	}
	if c := n.Child("smoothing_color"); c != nil {
		if e.LedgeSmoothingColor, err = c.Color(); err != nil {
			return err
		}
	}
	return nil
}

func (a *Area) loadSector(sh geometry.SectorHandle, n *datanode.Node, opts LoadOptions) error {
	s := a.Geometry.Sector(sh)
	var err error

	if c := n.Child("type"); c != nil && c.Value != "" {
		t, ok := geometry.ParseSectorType(c.Value)
		if !ok {
			log.Printf("Warning: sector %d has unknown type %q, using normal", s.Idx, c.Value)
			a.Problems.SetUnknownSectorType(sh, c.Value)
		}
		s.Type = t
	}
	if c := n.Child("is_bottomless_pit"); c != nil {
		s.IsBottomlessPit = c.Bool()
	}
	if c := n.Child("brightness"); c != nil {
		b, err := c.Int()
		if err != nil {
			return err
		}
		if b < 0 || b > 255 {
			return fmt.Errorf("brightness %d out of range", b)
		}
		s.Brightness = uint8(b)
	}
	if c := n.Child("tag"); c != nil {
		s.Tag = c.Value
	}
	if c := n.Child("z"); c != nil {
		if s.Z, err = c.Float(); err != nil {
			return err
		}
	}
	if c := n.Child("fade"); c != nil {
		s.Fade = c.Bool()
	}

	if c := n.Child("texture"); c != nil {
		s.Texture.Name = c.Value
	}
	if c := n.Child("texture_rotate"); c != nil {
		if s.Texture.Rotation, err = c.Float(); err != nil {
			return err
		}
	}
	if c := n.Child("texture_scale"); c != nil {
		if s.Texture.Scale, err = c.Point(); err != nil {
			return err
		}
	}
	if c := n.Child("texture_trans"); c != nil {
		if s.Texture.Translation, err = c.Point(); err != nil {
			return err
		}
	}
	if c := n.Child("texture_tint"); c != nil {
		if s.Texture.Tint, err = c.Color(); err != nil {
			return err
		}
	}

	if c := n.Child("hazards"); c != nil {
		for _, name := range strings.Split(c.Value, ";") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if opts.Hazards != nil && !opts.Hazards[name] {
				log.Printf("Warning: sector %d has unknown hazard %q", s.Idx, name)
				a.Problems.AddUnknownHazard(sh, name)
				continue
			}
			s.Hazards = append(s.Hazards, name)
		}
	}
	if c := n.Child("hazards_floor"); c != nil {
		s.HazardsFloor = c.Bool()
	}
	return nil
}
