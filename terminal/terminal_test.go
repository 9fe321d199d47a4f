package terminal

import (
	"testing"

	"github.com/esimov/particle-field/render"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nsf/termbox-go"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func TestDotBits(t *testing.T) {
	var c canvas
	c.resize(2, 1)

	tests := []struct {
		x, y int
		cell int
		bits uint8
	}{
		{0, 0, 0, 0x01},
		{1, 0, 0, 0x09},
		{0, 3, 0, 0x49},
		{1, 3, 0, 0xc9},
		{2, 1, 1, 0x02},
	}
	for _, tt := range tests {
		c.dot(tt.x, tt.y, white, 1)
		if got := c.bits[tt.cell]; got != tt.bits {
			t.Fatalf("after dot(%d, %d) cell %d bits = %#x, want %#x", tt.x, tt.y, tt.cell, got, tt.bits)
		}
	}

	// Out of range dots are ignored.
	c.dot(-1, 0, white, 1)
	c.dot(4, 0, white, 1)
	c.dot(0, 4, white, 1)
	if c.bits[1] != 0x02 {
		t.Fatalf("out of range dot changed cell bits to %#x", c.bits[1])
	}
}

func TestLine(t *testing.T) {
	var c canvas
	c.resize(4, 1)
	c.line(0, 0, 7, 3, white, 0.5)

	lit := 0
	for _, b := range c.bits {
		for ; b != 0; b &= b - 1 {
			lit++
		}
	}
	if lit != 8 {
		t.Fatalf("line lit %d dots, want 8", lit)
	}
	if c.bits[0]&0x01 == 0 || c.bits[3]&0x80 == 0 {
		t.Fatalf("line misses an end point: %v", c.bits)
	}
}

func TestBrightestDotWins(t *testing.T) {
	var c canvas
	c.resize(1, 1)
	red := colorful.Color{R: 1}
	c.dot(0, 0, white, 0.2)
	c.dot(1, 1, red, 0.9)
	c.dot(0, 2, white, 0.5)
	if c.level[0] != 0.9 || c.color[0] != red {
		t.Fatalf("cell level %v colour %v, want 0.9 red", c.level[0], c.color[0])
	}
	c.clear()
	if c.bits[0] != 0 || c.level[0] != 0 {
		t.Fatalf("clear() left bits %#x level %v", c.bits[0], c.level[0])
	}
}

func TestDisc(t *testing.T) {
	var c canvas
	c.resize(4, 2)
	c.disc(4, 4, 0.4, white, 1)
	if c.bits[1*4+2] != 0x01 {
		t.Fatalf("small disc bits = %#x, want a single dot", c.bits[6])
	}
	c.clear()
	c.disc(4, 4, 2, white, 1)
	lit := 0
	for _, b := range c.bits {
		for ; b != 0; b &= b - 1 {
			lit++
		}
	}
	if lit != 13 {
		t.Fatalf("disc of radius 2 lit %d dots, want 13", lit)
	}
}

func TestAttr256(t *testing.T) {
	tests := []struct {
		c    colorful.Color
		want termbox.Attribute
	}{
		{colorful.Color{}, 17},
		{white, 232},
		{colorful.Color{R: 1}, 197},
		{colorful.Color{B: 1}, 22},
	}
	for _, tt := range tests {
		if got := attr256(tt.c); got != tt.want {
			t.Errorf("attr256(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestPaint(t *testing.T) {
	term := &Terminal{}
	term.reallocBackBuffer(10, 5)

	pal := render.LookupPalette("purple")
	fr := &render.Frame{
		Style:      pal.Dark,
		EdgeColor:  pal.Dark.EdgeFrom,
		PointAlpha: 0.8,
		Screen:     []render.ScreenPoint{{X: 1, Y: 2, Size: 1}},
		Lines:      []render.ScreenEdge{{X0: 4, Y0: 0, X1: 19, Y1: 0, Alpha: 0.3}},
		Cursor:     render.Cursor{X: 10, Y: 10, Radius: 3, Visible: true},
	}
	term.paint(fr)

	if got := term.backbuf[0].Ch; got != brailleBase+0x20 {
		t.Fatalf("cell 0 rune = %U, want the point dot", got)
	}
	for x := 2; x < 10; x++ {
		if ch := term.backbuf[x].Ch; ch < brailleBase || ch > brailleBase+0xff {
			t.Fatalf("cell %d rune = %q, want an edge dot", x, ch)
		}
	}
	if term.backbuf[4*10+9].Ch != ' ' {
		t.Fatalf("untouched cell not blank: %q", term.backbuf[4*10+9].Ch)
	}
	if term.backbuf[0].Fg == 0 {
		t.Fatalf("lit cell has no colour")
	}
}

func TestCellCenter(t *testing.T) {
	if x, y := cellCenter(3, 2); x != 7 || y != 10 {
		t.Fatalf("cellCenter(3, 2) = (%v, %v), want (7, 10)", x, y)
	}
}

func TestBlitKeepsRowsAligned(t *testing.T) {
	cell := func(x, y int) termbox.Cell { return termbox.Cell{Ch: rune('a' + y*8 + x)} }

	tests := []struct {
		name           string
		sw, sh, dw, dh int
	}{
		{"same size", 4, 3, 4, 3},
		{"terminal grew", 4, 3, 6, 5},
		{"terminal shrank", 6, 5, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := make([]termbox.Cell, tt.sw*tt.sh)
			for y := 0; y < tt.sh; y++ {
				for x := 0; x < tt.sw; x++ {
					src[y*tt.sw+x] = cell(x, y)
				}
			}
			dst := make([]termbox.Cell, tt.dw*tt.dh)
			blit(dst, tt.dw, tt.dh, src, tt.sw, tt.sh)

			for y := 0; y < tt.dh; y++ {
				for x := 0; x < tt.dw; x++ {
					want := termbox.Cell{}
					if x < tt.sw && y < tt.sh {
						want = cell(x, y)
					}
					if got := dst[y*tt.dw+x]; got != want {
						t.Fatalf("cell (%d, %d) = %q, want %q", x, y, got.Ch, want.Ch)
					}
				}
			}
		})
	}
}
