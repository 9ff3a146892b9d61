package area

import (
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

const squareArea = `
// One square room
vertexes {
	v = 0 0
	v = 10 0
	v = 10 10
	v = 0 10
}
edges {
	e {
		s = 0 -1
		v = 0 1
	}
	e {
		s = 0 -1
		v = 1 2
	}
	e {
		s = 0 -1
		v = 2 3
	}
	e {
		s = 0 -1
		v = 3 0
	}
}
sectors {
	s {
		z = 0
	}
}
`

func meshArea(g *geometry.Graph, s geometry.SectorHandle) float64 {
	sum := 0.0
	for _, t := range g.Sector(s).Triangles {
		sum += gamemath.TriangleArea(g.VertexPoint(t[0]), g.VertexPoint(t[1]), g.VertexPoint(t[2]))
	}
	return sum
}

func mustUnmarshal(t *testing.T, text string, opts LoadOptions) *Area {
	t.Helper()
	a, err := Unmarshal([]byte(text), opts)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return a
}

func TestLoadSquare(t *testing.T) {
	a := mustUnmarshal(t, squareArea, GameplayLoad)
	g := a.Geometry

	if len(g.Vertexes()) != 4 || len(g.Edges()) != 4 || len(g.Sectors()) != 1 {
		t.Fatalf("got %d vertexes, %d edges, %d sectors", len(g.Vertexes()), len(g.Edges()), len(g.Sectors()))
	}
	if v := g.CheckStability(); len(v) != 0 {
		t.Fatalf("CheckStability: %v", v)
	}
	s := g.Sectors()[0]
	if n := len(g.Sector(s).Triangles); n != 2 {
		t.Errorf("got %d triangles, want 2", n)
	}
	if got := meshArea(g, s); math.Abs(got-100) > 1e-9 {
		t.Errorf("mesh area = %v, want 100", got)
	}
	if a.Problems != nil {
		t.Error("gameplay load should not keep problems")
	}
	if a.Blockmap.Cols == 0 {
		t.Error("blockmap was not built")
	}
	if got, ok := a.SectorAt(gamemath.Pt(5, 5)); !ok || got != s {
		t.Errorf("SectorAt(5, 5) = %v, %v", got, ok)
	}
	e := g.Edge(g.Edges()[0])
	if !e.Sectors[1].IsVoid() || e.SectorIdxs[1] != -1 {
		t.Error("-1 should load as the void")
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
	}{
		{"vertex out of range", "v = 3 0\n", "v = 3 4\n"},
		{"negative vertex", "v = 3 0\n", "v = -1 0\n"},
		{"sector out of range", "s = 0 -1\n\t\tv = 0 1", "s = 1 -1\n\t\tv = 0 1"},
		{"missing vertexes", "v = 0 1\n", "\n"},
		{"bad coordinate", "v = 10 0\n", "v = ten 0\n"},
		{"bad z", "z = 0", "z = up"},
		{"bad color", "z = 0", "z = 0\n\t\ttexture_tint = 1 2"},
		{"bad brightness", "z = 0", "z = 0\n\t\tbrightness = 300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Replace(squareArea, tt.old, tt.new, 1)
			if text == squareArea {
				t.Fatalf("replacement %q not found", tt.old)
			}
			a, err := Unmarshal([]byte(text), EditorLoad)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
			if a != nil {
				t.Error("a malformed area should not be returned")
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	if _, err := Unmarshal([]byte("vertexes {\n\tv = 0 0\n"), EditorLoad); err == nil {
		t.Fatal("unclosed block should fail")
	}
}

func TestLoadRecordsProblems(t *testing.T) {
	text := strings.Replace(squareArea, "\te {\n\t\ts = 0 -1\n\t\tv = 3 0\n\t}\n", "", 1)
	text = strings.Replace(text, "z = 0", "z = 0\n\t\ttype = lava\n\t\thazards = fire; poison", 1)
	opts := EditorLoad
	opts.Hazards = map[string]bool{"fire": true}

	a := mustUnmarshal(t, text, opts)
	g := a.Geometry
	s := g.Sectors()[0]
	if len(g.Edges()) != 3 {
		t.Fatalf("got %d edges, want 3", len(g.Edges()))
	}
	if _, ok := a.Problems.NonSimples[s]; !ok {
		t.Error("open sector should be non-simple")
	}
	if len(a.Problems.LoneEdges) == 0 {
		t.Error("lone edges should be recorded")
	}
	if got := a.Problems.UnknownSectorTypes[s]; got != "lava" {
		t.Errorf("unknown type = %q, want lava", got)
	}
	if got := a.Problems.UnknownHazards[s]; len(got) != 1 || got[0] != "poison" {
		t.Errorf("unknown hazards = %v, want [poison]", got)
	}
	sec := g.Sector(s)
	if sec.Type != geometry.SectorNormal {
		t.Errorf("type = %v, want normal", sec.Type)
	}
	if len(sec.Hazards) != 1 || sec.Hazards[0] != "fire" {
		t.Errorf("hazards = %v, want [fire]", sec.Hazards)
	}
	if len(a.Problems.Descriptions(g)) < 4 {
		t.Errorf("descriptions = %v", a.Problems.Descriptions(g))
	}
}

func TestRoundTrip(t *testing.T) {
	text := strings.Replace(squareArea, "s = 0 -1\n\t\tv = 0 1",
		"s = 0 -1\n\t\tv = 0 1\n\t\tshadow_length = 20\n\t\tshadow_color = 10 20 30 40\n\t\tsmoothing_length = 5\n\t\tsmoothing_color = 1 2 3", 1)
	text = strings.Replace(text, "z = 0", `z = -12.5
		type = blocking
		brightness = 100
		tag = door
		fade = true
		hazards = fire;poison
		hazards_floor = false
		texture = grass
		texture_rotate = 0.5
		texture_scale = 2 3
		texture_trans = 4 5
		texture_tint = 255 0 0`, 1)

	a := mustUnmarshal(t, text, EditorLoad)
	first, err := a.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b := mustUnmarshal(t, string(first), EditorLoad)
	second, err := b.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("save is not stable:\n%s\n---\n%s", first, second)
	}

	s := b.Geometry.Sector(b.Geometry.Sectors()[0])
	if s.Z != -12.5 || s.Type != geometry.SectorBlocking || s.Brightness != 100 || s.Tag != "door" || !s.Fade {
		t.Errorf("sector attributes lost: %+v", s)
	}
	if len(s.Hazards) != 2 || s.HazardsFloor {
		t.Errorf("hazards = %v floor %v", s.Hazards, s.HazardsFloor)
	}
	want := geometry.TextureInfo{
		Name:        "grass",
		Rotation:    0.5,
		Scale:       gamemath.Pt(2, 3),
		Translation: gamemath.Pt(4, 5),
		Tint:        color.NRGBA{R: 255, A: 255},
	}
	if s.Texture != want {
		t.Errorf("texture = %+v, want %+v", s.Texture, want)
	}

	e := b.Geometry.Edge(b.Geometry.Edges()[0])
	if e.WallShadowLength != 20 || e.WallShadowColor != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("shadow = %v %v", e.WallShadowLength, e.WallShadowColor)
	}
	if e.LedgeSmoothingLength != 5 || e.LedgeSmoothingColor != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("smoothing = %v %v", e.LedgeSmoothingLength, e.LedgeSmoothingColor)
	}
	if !b.Geometry.Edge(b.Geometry.Edges()[1]).IsAutoShadowLength() {
		t.Error("default shadow length should stay automatic")
	}
}

func TestSaveOmitsDefaults(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	data, err := a.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, field := range []string{"brightness", "type", "shadow_length", "shadow_color", "texture", "hazards_floor"} {
		if strings.Contains(string(data), field) {
			t.Errorf("saved %s at its default:\n%s", field, data)
		}
	}
}

func rect(x, y, w, h float64) []gamemath.Point {
	return []gamemath.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

func TestFadeBrightness(t *testing.T) {
	src := New()
	g := src.Geometry
	for _, r := range []struct {
		pts        []gamemath.Point
		brightness uint8
		fade       bool
	}{
		{rect(0, 0, 10, 10), 200, false},
		{rect(10, 0, 2, 10), 255, true},
		{rect(12, 0, 10, 10), 100, false},
	} {
		s := g.NewSector()
		g.Sector(s).Brightness = r.brightness
		g.Sector(s).Fade = r.fade
		if err := g.DrawLoop(s, r.pts); err != nil {
			t.Fatalf("DrawLoop: %v", err)
		}
	}
	data, err := src.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	game := mustUnmarshal(t, string(data), GameplayLoad)
	if got := game.Geometry.Sector(game.Geometry.Sectors()[1]).Brightness; got != 150 {
		t.Errorf("fade brightness = %d, want 150", got)
	}
	editor := mustUnmarshal(t, string(data), EditorLoad)
	if got := editor.Geometry.Sector(editor.Geometry.Sectors()[1]).Brightness; got != 255 {
		t.Errorf("editor fade brightness = %d, want 255", got)
	}
}

func TestCommitRetriangulates(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	g := a.Geometry
	s := g.Sectors()[0]
	cols := a.Blockmap.Cols

	for _, vh := range g.Vertexes() {
		if v := g.Vertex(vh); v.X == 10 {
			v.X = 300
		}
	}
	a.Touch(s)
	if failed := a.Commit(); failed != 0 {
		t.Fatalf("Commit: %d failed", failed)
	}
	if got := meshArea(g, s); math.Abs(got-3000) > 1e-9 {
		t.Errorf("mesh area = %v, want 3000", got)
	}
	if g.Sector(s).BBoxMax.X != 300 {
		t.Errorf("bbox = %v", g.Sector(s).BBoxMax)
	}
	if a.Blockmap.Cols <= cols {
		t.Errorf("blockmap has %d columns, want more than %d", a.Blockmap.Cols, cols)
	}
}

func TestCommitForgetsRemoved(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	g := a.Geometry
	gap := g.Edges()[3]
	a.TouchEdge(gap)
	g.DeleteEdge(gap)
	a.Commit()
	s := g.Sectors()[0]
	if _, ok := a.Problems.NonSimples[s]; !ok {
		t.Fatal("open sector should be non-simple after commit")
	}

	for len(g.Edges()) > 0 {
		e := g.Edges()[0]
		a.TouchEdge(e)
		g.DeleteEdge(e)
	}
	a.Commit()
	if !a.Problems.Empty() {
		t.Errorf("problems about removed entities remain: %v", a.Problems.Descriptions(g))
	}
}

func TestCleanup(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	a.Geometry.NewSector()
	a.Geometry.NewSector()

	if !a.Cleanup() {
		t.Fatal("Cleanup should remove the empty sectors")
	}
	if n := len(a.Geometry.Sectors()); n != 1 {
		t.Errorf("got %d sectors, want 1", n)
	}
	if a.Cleanup() {
		t.Error("second Cleanup should find nothing")
	}
	if v := a.Geometry.CheckStability(); len(v) != 0 {
		t.Errorf("CheckStability: %v", v)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	c := a.Clone()

	v := c.Geometry.Vertexes()[0]
	c.Geometry.Vertex(v).X = -50
	c.Geometry.DeleteEdge(c.Geometry.Edges()[0])
	c.Problems.SetUnknownSectorType(c.Geometry.Sectors()[0], "x")
	c.RebuildBlockmap()

	if a.Geometry.Vertex(v).X != 0 {
		t.Error("vertex moved in the original")
	}
	if len(a.Geometry.Edges()) != 4 {
		t.Error("edge removed from the original")
	}
	if !a.Problems.Empty() {
		t.Error("problem added to the original")
	}
	if a.Blockmap.TopLeft.X != 0 {
		t.Error("blockmap of the original was rebuilt")
	}
}

func TestHistory(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	h := NewHistory(2)
	if _, ok := h.Undo(a); ok {
		t.Fatal("empty history should not undo")
	}

	h.Push(a)
	a.Geometry.DeleteEdge(a.Geometry.Edges()[0])
	h.Push(a)
	a.Geometry.DeleteEdge(a.Geometry.Edges()[0])
	h.Push(a)
	a.Geometry.DeleteEdge(a.Geometry.Edges()[0])

	prev, ok := h.Undo(a)
	if !ok || len(prev.Geometry.Edges()) != 2 {
		t.Fatalf("undo gave %d edges", len(prev.Geometry.Edges()))
	}
	prev, _ = h.Undo(prev)
	if len(prev.Geometry.Edges()) != 3 {
		t.Fatalf("second undo gave %d edges", len(prev.Geometry.Edges()))
	}
	if h.CanUndo() {
		t.Error("history should keep only 2 steps")
	}
	next, ok := h.Redo(prev)
	if !ok || len(next.Geometry.Edges()) != 2 {
		t.Fatalf("redo gave %d edges", len(next.Geometry.Edges()))
	}
	h.Push(next)
	if h.CanRedo() {
		t.Error("push should clear redo")
	}
}

type fakeStore map[string][]byte

func (f fakeStore) SaveItem(key string, data []byte) error {
	f[key] = append([]byte(nil), data...)
	return nil
}

func (f fakeStore) LoadItem(key string) ([]byte, error) {
	return f[key], nil
}

type brokenStore struct{}

func (brokenStore) SaveItem(string, []byte) error { return errors.New("disk full") }
func (brokenStore) LoadItem(string) ([]byte, error) { return nil, errors.New("disk gone") }

func TestStore(t *testing.T) {
	items := fakeStore{}
	st := NewStore(items)
	a := mustUnmarshal(t, squareArea, EditorLoad)

	if err := st.SaveSnapshot("autosave", a); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("store has %d items, want 1", len(items))
	}
	b, err := st.LoadSnapshot("autosave", EditorLoad)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(b.Geometry.Edges()) != 4 {
		t.Errorf("snapshot has %d edges", len(b.Geometry.Edges()))
	}

	if _, err := st.LoadSnapshot("other", EditorLoad); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("missing snapshot err = %v", err)
	}

	broken := NewStore(brokenStore{})
	if err := broken.SaveSnapshot("autosave", a); err == nil {
		t.Error("save to a broken store should fail")
	}
	if _, err := broken.LoadSnapshot("autosave", EditorLoad); err == nil {
		t.Error("load from a broken store should fail")
	}
}
