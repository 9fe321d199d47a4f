// Package render turns a particle field and its connectivity snapshot into
// the buffers drawing surfaces consume.
package render

import (
	field "github.com/esimov/particle-field/particle-field"
	"github.com/esimov/particle-field/projection"
	"github.com/lucasb-eyer/go-colorful"
)

// Surface draws frames.
type Surface interface {
	Draw(f *Frame) error
}

// ScreenPoint is a particle projected to screen space. Size is a radius in pixels.
type ScreenPoint struct {
	X, Y, Size float64
}

// ScreenEdge is a connection projected to screen space.
type ScreenEdge struct {
	X0, Y0, X1, Y1 float64
	Alpha          float64
}

// Cursor is the disc drawn under the pointer.
type Cursor struct {
	X, Y, Radius float64
	Visible      bool
}

// Frame is everything needed to draw one animation frame. The slices are
// owned by the Bridge that built the frame and are overwritten by the next
// call to Build.
type Frame struct {
	Seq    uint64
	Width  int
	Height int
	Theme  Theme
	Style  Style

	PointAlpha  float64
	EdgeOpacity float64
	// EdgeColor is the colour half way along an edge, for surfaces that
	// cannot draw gradients.
	EdgeColor colorful.Color

	Points       []float32 // x, y, z per particle
	EdgeVertices []float32 // x, y, z of both ends of every edge
	EdgeColors   []float32 // r, g, b, a of both ends of every edge

	Screen []ScreenPoint
	Lines  []ScreenEdge
	Cursor Cursor
}

// Options carries the per-frame presentation settings.
type Options struct {
	Width       int
	Height      int
	Theme       Theme
	Palette     Palette
	PointSize   float64
	PointAlpha  float64
	EdgeOpacity float64
	Cursor      Cursor
}

// Bridge builds frames, reusing its buffers from one frame to the next.
type Bridge struct {
	frame Frame
	seq   uint64
}

// NewBridge returns an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Build fills the frame buffers from the field, its edges and the projector
// used to reach screen space.
func (b *Bridge) Build(f *field.Field, edges []field.Edge, pr projection.Projector, o Options) *Frame {
	b.seq++
	style := o.Palette.Style(o.Theme)

	fr := &b.frame
	fr.Seq = b.seq
	fr.Width, fr.Height = o.Width, o.Height
	fr.Theme = o.Theme
	fr.Style = style
	fr.PointAlpha = o.PointAlpha
	fr.EdgeOpacity = o.EdgeOpacity
	fr.EdgeColor = style.EdgeFrom.BlendLab(style.EdgeTo, 0.5).Clamped()
	fr.Cursor = o.Cursor

	ps := f.Particles()
	fr.Points = fr.Points[:0]
	fr.Screen = fr.Screen[:0]
	for i := range ps {
		p := &ps[i]
		fr.Points = append(fr.Points, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Pos.Z))

		x, y, ok := pr.Project(p.Pos)
		if !ok {
			continue
		}
		size := o.PointSize
		if p.Size > 0 {
			if r, ok := projection.ScreenRadius(pr, p.Pos, p.Size*o.PointSize); ok {
				size = r
			}
		}
		fr.Screen = append(fr.Screen, ScreenPoint{X: x, Y: y, Size: size})
	}

	fr.EdgeVertices = fr.EdgeVertices[:0]
	fr.EdgeColors = fr.EdgeColors[:0]
	fr.Lines = fr.Lines[:0]
	for _, e := range edges {
		a, c := ps[e.I].Pos, ps[e.J].Pos
		alpha := e.Alpha * o.EdgeOpacity
		fr.EdgeVertices = append(fr.EdgeVertices,
			float32(a.X), float32(a.Y), float32(a.Z),
			float32(c.X), float32(c.Y), float32(c.Z))
		fr.EdgeColors = appendColor(fr.EdgeColors, style.EdgeFrom, alpha)
		fr.EdgeColors = appendColor(fr.EdgeColors, style.EdgeTo, alpha)

		x0, y0, ok0 := pr.Project(a)
		x1, y1, ok1 := pr.Project(c)
		if ok0 && ok1 {
			fr.Lines = append(fr.Lines, ScreenEdge{X0: x0, Y0: y0, X1: x1, Y1: y1, Alpha: alpha})
		}
	}
	return fr
}

func appendColor(dst []float32, c colorful.Color, alpha float64) []float32 {
	return append(dst, float32(c.R), float32(c.G), float32(c.B), float32(alpha))
}
