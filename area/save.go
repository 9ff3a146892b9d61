package area

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/automoto/sectormap/config"
	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/datanode"
	"github.com/automoto/sectormap/shared/gamemath"
)

// SaveGeometry writes the vertexes, edges and sectors sections of g. The
// positional indexes are resynced first. Fields at their default value are
// left out, so loading the result gives back the same attributes.
func SaveGeometry(g *geometry.Graph) *datanode.Node {
	g.ResyncIndexes()
	root := &datanode.Node{}

	vertexes := root.Add(datanode.New("vertexes", ""))
	for _, vh := range g.Vertexes() {
		vertexes.AddValue("v", g.VertexPoint(vh).String())
	}

	edges := root.Add(datanode.New("edges", ""))
	for _, eh := range g.Edges() {
		saveEdge(edges.Add(datanode.New("e", "")), g.Edge(eh))
	}

	sectors := root.Add(datanode.New("sectors", ""))
	for _, sh := range g.Sectors() {
		saveSector(sectors.Add(datanode.New("s", "")), g.Sector(sh))
	}
	return root
}

func saveEdge(n *datanode.Node, e *geometry.Edge) {
	n.AddValue("s", strconv.Itoa(e.SectorIdxs[0])+" "+strconv.Itoa(e.SectorIdxs[1]))
	n.AddValue("v", strconv.Itoa(e.VertexIdxs[0])+" "+strconv.Itoa(e.VertexIdxs[1]))
	if !e.IsAutoShadowLength() {
		n.AddValue("shadow_length", gamemath.FormatFloat(e.WallShadowLength))
	}
	if e.WallShadowColor != config.Geometry.ShadowDefColor {
		n.AddValue("shadow_color", datanode.FormatColor(e.WallShadowColor))
	}
	if e.LedgeSmoothingLength != 0 {
		n.AddValue("smoothing_length", gamemath.FormatFloat(e.LedgeSmoothingLength))
	}
	if e.LedgeSmoothingColor != config.Geometry.SmoothingDefColor {
		n.AddValue("smoothing_color", datanode.FormatColor(e.LedgeSmoothingColor))
	}
}

func saveSector(n *datanode.Node, s *geometry.Sector) {
	def := geometry.DefaultTextureInfo()

	if s.Type != geometry.SectorNormal {
		n.AddValue("type", s.Type.String())
	}
	if s.IsBottomlessPit {
		n.AddValue("is_bottomless_pit", datanode.FormatBool(true))
	}
	n.AddValue("z", gamemath.FormatFloat(s.Z))
	if s.Brightness != config.Geometry.DefSectorBrightness {
		n.AddValue("brightness", strconv.Itoa(int(s.Brightness)))
	}
	if s.Tag != "" {
		n.AddValue("tag", s.Tag)
	}
	if s.Fade {
		n.AddValue("fade", datanode.FormatBool(true))
	}
	if len(s.Hazards) > 0 {
		n.AddValue("hazards", strings.Join(s.Hazards, ";"))
	}
	if !s.HazardsFloor {
		n.AddValue("hazards_floor", datanode.FormatBool(false))
	}
	if s.Texture.Name != "" {
		n.AddValue("texture", s.Texture.Name)
	}
	if s.Texture.Rotation != 0 {
		n.AddValue("texture_rotate", gamemath.FormatFloat(s.Texture.Rotation))
	}
	if s.Texture.Scale != def.Scale {
		n.AddValue("texture_scale", s.Texture.Scale.String())
	}
	if s.Texture.Translation != def.Translation {
		n.AddValue("texture_trans", s.Texture.Translation.String())
	}
	if s.Texture.Tint != def.Tint {
		n.AddValue("texture_tint", datanode.FormatColor(s.Texture.Tint))
	}
}

// Marshal writes the geometry of a in the area text format.
func (a *Area) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := datanode.Write(&buf, SaveGeometry(a.Geometry)); err != nil {
		return nil, fmt.Errorf("write area: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses area text and loads its geometry.
func Unmarshal(data []byte, opts LoadOptions) (*Area, error) {
	root, err := datanode.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse area: %w", err)
	}
	return LoadGeometry(root, opts)
}
