// Package desktop draws a particle field in a native window.
//
// Ebiten owns the frame loop here: Update is the frame step and input is
// sampled at its start, so events and frames never overlap.
package desktop

import (
	"github.com/esimov/particle-field/loop"
	"github.com/esimov/particle-field/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Game adapts a Driver to ebiten.Game.
type Game struct {
	driver *loop.Driver
	frame  *render.Frame
	w, h   int
}

// NewGame returns a game driving d.
func NewGame(d *loop.Driver) *Game {
	return &Game{driver: d}
}

// Run opens a resizable window and blocks until it is closed.
func Run(d *loop.Driver, title string, fps int) error {
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(fps)
	return ebiten.RunGame(NewGame(d))
}

// Update reads the input and advances the field by one frame.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.driver.SetTheme(g.driver.Theme().Toggle())
	}
	if x, y := ebiten.CursorPosition(); inside(x, y, g.w, g.h) {
		g.driver.PointerMove(float64(x), float64(y))
	} else {
		g.driver.PointerLeave()
	}
	g.frame = g.driver.Step()
	return nil
}

// Draw paints the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.frame
	if f == nil {
		return
	}
	screen.Fill(render.NRGBA(f.Style.Background, 1))

	edge := f.EdgeColor
	for _, l := range f.Lines {
		vector.StrokeLine(screen, float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1), 1, render.NRGBA(edge, l.Alpha), true)
	}
	point := render.NRGBA(f.Style.Point, f.PointAlpha)
	for _, p := range f.Screen {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), point, true)
	}
	if c := f.Cursor; c.Visible {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.Radius), render.NRGBA(f.Style.Cursor, f.Style.CursorAlpha), true)
	}
}

// Layout follows the window size and resizes the field with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.driver.Resize(g.w, g.h)
	}
	return outsideWidth, outsideHeight
}

func inside(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}
