package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is the page colour scheme.
type Theme int

const (
	Dark Theme = iota
	Light
)

// ParseTheme maps a data-theme attribute value to a Theme. Anything other
// than "light" is dark.
func ParseTheme(s string) Theme {
	if s == "light" {
		return Light
	}
	return Dark
}

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Style holds the colours of one theme.
type Style struct {
	Background  colorful.Color
	Point       colorful.Color
	EdgeFrom    colorful.Color
	EdgeTo      colorful.Color
	Cursor      colorful.Color
	CursorAlpha float64
}

// Palette pairs the dark and light styles of a field.
type Palette struct {
	Dark, Light Style
}

// Style returns the style for theme t.
func (p Palette) Style(t Theme) Style {
	if t == Light {
		return p.Light
	}
	return p.Dark
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var palettes = map[string]Palette{
	"indigo": {
		Dark: Style{
			Background: hex("#0b0b14"),
			Point:      hex("#a5b4fc"),
			EdgeFrom:   hex("#a5b4fc"),
			EdgeTo:     hex("#a5b4fc"),
		},
		Light: Style{
			Background: hex("#f5f5f7"),
			Point:      hex("#6366f1"),
			EdgeFrom:   hex("#6366f1"),
			EdgeTo:     hex("#6366f1"),
		},
	},
	"network": {
		Dark: Style{
			Background: hex("#000000"),
			Point:      hex("#0071e3"),
			EdgeFrom:   hex("#0070e3"),
			EdgeTo:     hex("#5c5ce6"),
		},
		Light: Style{
			Background: hex("#f5f5f7"),
			Point:      hex("#0071e3"),
			EdgeFrom:   hex("#0070e3"),
			EdgeTo:     hex("#5c5ce6"),
		},
	},
	"purple": {
		Dark: Style{
			Background:  hex("#0a0a1a"),
			Point:       hex("#a855f7"),
			EdgeFrom:    hex("#a855f7"),
			EdgeTo:      hex("#a855f7"),
			Cursor:      hex("#00ffff"),
			CursorAlpha: 0.05,
		},
		Light: Style{
			Background:  hex("#f5f5f7"),
			Point:       hex("#7e22ce"),
			EdgeFrom:    hex("#7e22ce"),
			EdgeTo:      hex("#7e22ce"),
			Cursor:      hex("#0891b2"),
			CursorAlpha: 0.08,
		},
	},
}

// LookupPalette returns the named palette, falling back to indigo.
func LookupPalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["indigo"]
}

// NRGBA converts c with opacity alpha in [0, 1] to a non-premultiplied colour.
func NRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
