package terminal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nsf/termbox-go"
)

// Each terminal cell holds a 2x4 grid of braille dots:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint8{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const (
	dotsX = 2
	dotsY = 4

	brailleBase = 0x2800
	// Alphas below this are invisible once quantized to 256 colours.
	minLevel = 0.35
)

// canvas is a braille dot buffer. Each cell keeps the colour of the
// brightest dot drawn into it.
type canvas struct {
	w, h  int
	bits  []uint8
	level []float64
	color []colorful.Color
}

func (c *canvas) resize(w, h int) {
	if c.w == w && c.h == h {
		return
	}
	c.w, c.h = w, h
	c.bits = make([]uint8, w*h)
	c.level = make([]float64, w*h)
	c.color = make([]colorful.Color, w*h)
}

func (c *canvas) clear() {
	for i := range c.bits {
		c.bits[i] = 0
		c.level[i] = 0
	}
}

// dot sets the braille dot at (x, y), measured in dots.
func (c *canvas) dot(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.w*dotsX || y >= c.h*dotsY {
		return
	}
	i := (y/dotsY)*c.w + x/dotsX
	c.bits[i] |= 1 << brailleBits[x%dotsX][y%dotsY]
	if alpha > c.level[i] {
		c.level[i] = alpha
		c.color[i] = col
	}
}

// line draws a segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 float64, col colorful.Color, alpha float64) {
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))
	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := sign(bx-ax), sign(by-ay)
	e := dx + dy
	for {
		c.dot(ax, ay, col, alpha)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// disc fills a circle of radius r centred on (cx, cy).
func (c *canvas) disc(cx, cy, r float64, col colorful.Color, alpha float64) {
	if r < 1 {
		c.dot(int(math.Round(cx)), int(math.Round(cy)), col, alpha)
		return
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			if fx, fy := float64(x)-cx, float64(y)-cy; fx*fx+fy*fy <= r*r {
				c.dot(x, y, col, alpha)
			}
		}
	}
}

// ring draws the outline of a circle of radius r centred on (cx, cy).
func (c *canvas) ring(cx, cy, r float64, col colorful.Color, alpha float64) {
	steps := int(2*math.Pi*r) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.dot(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))), col, alpha)
	}
}

// cells renders the dot buffer into dst, blending every lit cell from the
// background toward its colour.
func (c *canvas) cells(bg colorful.Color, dst []termbox.Cell) {
	for i := range c.bits {
		if c.bits[i] == 0 {
			dst[i] = termbox.Cell{Ch: ' '}
			continue
		}
		level := minLevel + (1-minLevel)*c.level[i]
		dst[i] = termbox.Cell{
			Ch: rune(brailleBase + int(c.bits[i])),
			Fg: attr256(bg.BlendRgb(c.color[i], level)),
		}
	}
}

// attr256 maps a colour onto the 6x6x6 cube of the xterm 256 colour palette.
// termbox offsets palette indexes by one in Output256 mode.
func attr256(col colorful.Color) termbox.Attribute {
	r, g, b := col.Clamped().RGB255()
	q := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return termbox.Attribute(16 + 36*q(r) + 6*q(g) + q(b) + 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
