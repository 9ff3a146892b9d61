// Command areaview draws an area in the terminal. Each character cell
// shows the sector found at its center; the status line shows the
// blockmap block under the cursor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/automoto/sectormap/area"
	"github.com/automoto/sectormap/geometry"
	"github.com/automoto/sectormap/shared/gamemath"
)

const sectorGlyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type viewer struct {
	screen tcell.Screen
	area   *area.Area
	index  map[geometry.SectorHandle]int

	width, height int
	// World position of the top-left character and world units per character.
	origin gamemath.Point
	scale  float64
	// Character rows are roughly twice as tall as they are wide.
	aspect float64

	cursorX, cursorY int
	blocks           bool
}

func newViewer(a *area.Area) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{
		screen: screen,
		area:   a,
		index:  make(map[geometry.SectorHandle]int),
		aspect: 2,
	}
	for i, s := range a.Geometry.Sectors() {
		v.index[s] = i
	}
	v.width, v.height = screen.Size()
	v.fit()
	return v, nil
}

// fit frames the whole blockmap.
func (v *viewer) fit() {
	b := v.area.Blockmap
	w := float64(b.Cols) * b.BlockSize
	h := float64(b.Rows) * b.BlockSize
	rows := v.height - 1
	if v.width < 1 || rows < 1 || w <= 0 || h <= 0 {
		v.scale = 1
		return
	}
	v.scale = max(w/float64(v.width), h/(float64(rows)*v.aspect))
	v.origin = b.TopLeft
	v.cursorX, v.cursorY = v.width/2, rows/2
}

func (v *viewer) world(x, y int) gamemath.Point {
	return gamemath.Pt(
		v.origin.X+(float64(x)+0.5)*v.scale,
		v.origin.Y+(float64(y)+0.5)*v.scale*v.aspect,
	)
}

func (v *viewer) sectorStyle(s *geometry.Sector) tcell.Style {
	switch {
	case s.IsBottomlessPit:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple)
	case s.Type == geometry.SectorBlocking:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	c := int32(s.Brightness)
	if c < 64 {
		c = 64
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(c/2, c, c/2))
}

func (v *viewer) drawSectors() {
	for y := 0; y < v.height-1; y++ {
		for x := 0; x < v.width; x++ {
			sh, ok := v.area.SectorAt(v.world(x, y))
			if !ok || sh == geometry.NoSector {
				continue
			}
			i := v.index[sh]
			glyph := rune(sectorGlyphs[i%len(sectorGlyphs)])
			v.screen.SetContent(x, y, glyph, nil, v.sectorStyle(v.area.Geometry.Sector(sh)))
		}
	}
}

// drawBlocks shows how many sector candidates each block has, with blocks
// that hold edges highlighted.
func (v *viewer) drawBlocks() {
	b := v.area.Blockmap
	for y := 0; y < v.height-1; y++ {
		for x := 0; x < v.width; x++ {
			p := v.world(x, y)
			col, okc := b.Col(p.X)
			row, okr := b.Row(p.Y)
			if !okc || !okr {
				continue
			}
			n := len(b.SectorsAt(col, row))
			glyph := '.'
			if n > 0 {
				glyph = rune('0' + min(n, 9))
			}
			style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
			if len(b.EdgesAt(col, row)) > 0 {
				style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
			}
			if (col+row)%2 == 1 {
				style = style.Reverse(true)
			}
			v.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (v *viewer) drawStatus() {
	p := v.world(v.cursorX, v.cursorY)
	b := v.area.Blockmap
	status := fmt.Sprintf("%.0f,%.0f", p.X, p.Y)
	if col, ok := b.Col(p.X); ok {
		if row, ok := b.Row(p.Y); ok {
			status += fmt.Sprintf(" block %d,%d edges %d sectors %d",
				col, row, len(b.EdgesAt(col, row)), len(b.SectorsAt(col, row)))
		}
	}
	if sh, ok := v.area.SectorAt(p); ok && sh != geometry.NoSector {
		s := v.area.Geometry.Sector(sh)
		status += fmt.Sprintf(" | sector %d %s z %.0f", v.index[sh], s.Type, s.Z)
	}
	status += "  [arrows] move  [+/-] zoom  [b] blocks  [q] quit"

	y := v.height - 1
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	for x := 0; x < v.width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, y, r, nil, style)
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	if v.blocks {
		v.drawBlocks()
	} else {
		v.drawSectors()
	}
	v.drawStatus()

	r, _, _, _ := v.screen.GetContent(v.cursorX, v.cursorY)
	v.screen.SetContent(v.cursorX, v.cursorY, r, nil,
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))
	v.screen.Show()
}

// move shifts the cursor, scrolling the view when it leaves the screen.
func (v *viewer) move(dx, dy int) {
	v.cursorX += dx
	v.cursorY += dy
	if v.cursorX < 0 || v.cursorX >= v.width {
		v.origin.X += float64(dx) * v.scale
		v.cursorX -= dx
	}
	if v.cursorY < 0 || v.cursorY >= v.height-1 {
		v.origin.Y += float64(dy) * v.scale * v.aspect
		v.cursorY -= dy
	}
}

// zoom scales the view around the cursor.
func (v *viewer) zoom(f float64) {
	p := v.world(v.cursorX, v.cursorY)
	v.scale *= f
	v.origin.X = p.X - (float64(v.cursorX)+0.5)*v.scale
	v.origin.Y = p.Y - (float64(v.cursorY)+0.5)*v.scale*v.aspect
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.move(-1, 0)
		case tcell.KeyRight:
			v.move(1, 0)
		case tcell.KeyUp:
			v.move(0, -1)
		case tcell.KeyDown:
			v.move(0, 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+', '=':
				v.zoom(0.5)
			case '-':
				v.zoom(2)
			case 'b':
				v.blocks = !v.blocks
			case 'f':
				v.fit()
			}
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
		v.cursorX = min(v.cursorX, v.width-1)
		v.cursorY = min(v.cursorY, max(v.height-2, 0))
	}
	return true
}

func (v *viewer) run() {
	v.draw()
	for {
		if !v.handleInput(v.screen.PollEvent()) {
			return
		}
		v.draw()
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <area file | level.tmx>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	a, err := area.Open(flag.Arg(0), area.GameplayLoad)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load area: %v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	v.run()
}
