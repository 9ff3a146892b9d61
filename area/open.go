package area

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/automoto/sectormap/shared/leveldata"
)

// Open loads an area file from disk. Files ending in .tmx are imported
// from Tiled; anything else is read as an area text file.
func Open(path string, opts LoadOptions) (*Area, error) {
	fsys := os.DirFS(filepath.Dir(path))
	name := filepath.Base(path)

	if strings.EqualFold(filepath.Ext(path), ".tmx") {
		g, err := leveldata.ImportTMX(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("open area %s: %w", path, err)
		}
		return FromGraph(g, opts), nil
	}
	return LoadFile(fsys, name, opts)
}

// WriteFile saves the geometry of a as an area text file.
func (a *Area) WriteFile(path string) error {
	data, err := a.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write area %s: %w", path, err)
	}
	return nil
}
