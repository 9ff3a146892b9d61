package area

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAndOpen(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	path := filepath.Join(t.TempDir(), "square.txt")
	if err := a.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, err := Open(path, EditorLoad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(b.Geometry.Sectors()) != 1 || len(b.Geometry.Edges()) != 4 {
		t.Fatalf("reopened area has %d sectors and %d edges",
			len(b.Geometry.Sectors()), len(b.Geometry.Edges()))
	}
	if !b.Problems.Empty() {
		t.Errorf("problems: %v", b.Problems.Descriptions(b.Geometry))
	}
}

func TestOpenTMX(t *testing.T) {
	a, err := Open(filepath.Join("..", "shared", "leveldata", "testdata", "levels", "a_rooms.tmx"), EditorLoad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if n := len(a.Geometry.Sectors()); n != 3 {
		t.Fatalf("got %d sectors, want 3", n)
	}
	if a.Blockmap.Cols == 0 || a.Blockmap.Rows == 0 {
		t.Error("blockmap was not built")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.txt"), EditorLoad); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "nope.tmx"), EditorLoad); err == nil {
		t.Error("missing TMX should fail")
	}
}

func TestWriteFileBadPath(t *testing.T) {
	a := mustUnmarshal(t, squareArea, EditorLoad)
	dir := filepath.Join(t.TempDir(), "missing", "dir")
	if err := a.WriteFile(filepath.Join(dir, "x.txt")); err == nil {
		t.Error("writing into a missing directory should fail")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("dir exists: %v", err)
	}
}
