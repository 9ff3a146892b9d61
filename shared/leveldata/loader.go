package leveldata

import (
	"fmt"
	"io/fs"
	"log"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

// ImportTMX parses a TMX file and draws its sector objects into a new
// graph. It takes an fs.FS so callers can pass embed.FS or os.DirFS.
// Sectors are drawn in object order; an object whose outline coincides
// with an earlier one shares its vertexes and edges.
func ImportTMX(fsys fs.FS, tmxPath string) (*geometry.Graph, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	g := geometry.NewGraph()
	for _, og := range levelMap.ObjectGroups {
		if og.Name != SectorsGroup {
			continue
		}
		for _, o := range og.Objects {
			outline, ok := objectOutline(o)
			if !ok {
				log.Printf("Warning: %s: object %d has no polygon or rectangle, skipping", tmxPath, o.ID)
				continue
			}
			s := g.NewSector()
			if !ReadSectorProps(o.Properties).Apply(g.Sector(s)) {
				log.Printf("Warning: %s: object %d has unknown sector type %q, using normal",
					tmxPath, o.ID, o.Properties.GetString("type"))
			}
			if err := g.DrawLoop(s, outline); err != nil {
				return nil, fmt.Errorf("draw object %d of %s: %w", o.ID, tmxPath, err)
			}
		}
	}

	if len(g.Sectors()) == 0 {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoSectors)
	}
	return g, nil
}

// objectOutline returns the map coordinates of a polygon or rectangle
// object, applying its rotation around the object origin.
func objectOutline(o *tiled.Object) ([]gamemath.Point, bool) {
	var local []gamemath.Point
	switch {
	case len(o.Polygons) > 0 && o.Polygons[0].Points != nil:
		for _, p := range *o.Polygons[0].Points {
			local = append(local, gamemath.Pt(p.X, p.Y))
		}
	case o.GID == 0 && len(o.Ellipses) == 0 && len(o.PolyLines) == 0 && o.Width > 0 && o.Height > 0:
		local = []gamemath.Point{
			{X: 0, Y: 0},
			{X: o.Width, Y: 0},
			{X: o.Width, Y: o.Height},
			{X: 0, Y: o.Height},
		}
	default:
		return nil, false
	}
	if len(local) < 3 {
		return nil, false
	}

	sin, cos := math.Sincos(o.Rotation * math.Pi / 180)
	out := make([]gamemath.Point, len(local))
	for i, p := range local {
		out[i] = gamemath.Pt(
			o.X+p.X*cos-p.Y*sin,
			o.Y+p.X*sin+p.Y*cos,
		)
	}
	return out, true
}

// ImportAllTMX discovers all .tmx files in levelsDir within fsys, imports
// each, and returns a map keyed by stem name plus a sorted list of names.
func ImportAllTMX(fsys fs.FS, levelsDir string) (map[string]*geometry.Graph, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	graphs := make(map[string]*geometry.Graph, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		g, err := ImportTMX(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("import %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		graphs[stem] = g
		names = append(names, stem)
	}

	sort.Strings(names)
	return graphs, names, nil
}
