package websocket

import (
	"github.com/esimov/particle-field/loop"
	"github.com/esimov/particle-field/render"
)

// inputMessage is sent by the browser client.
//
//	{"type": "pointer", "x": 10, "y": 20}
//	{"type": "leave"}
//	{"type": "resize", "width": 1280, "height": 720}
//	{"type": "theme", "theme": "light"}
type inputMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Theme  string  `json:"theme"`
}

// apply returns the driver update carried by the message, nil for unknown types.
func (m inputMessage) apply(d *loop.Driver) func() {
	switch m.Type {
	case "pointer":
		return func() { d.PointerMove(m.X, m.Y) }
	case "leave":
		return d.PointerLeave
	case "resize":
		return func() { d.Resize(m.Width, m.Height) }
	case "theme":
		return func() { d.SetTheme(render.ParseTheme(m.Theme)) }
	}
	return nil
}

// frameMessage is the screen space rendition of a frame sent to the client.
type frameMessage struct {
	Seq        uint64    `json:"seq"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Background string    `json:"background"`
	Point      string    `json:"point"`
	PointAlpha float64   `json:"pointAlpha"`
	EdgeFrom   string    `json:"edgeFrom"`
	EdgeTo     string    `json:"edgeTo"`
	Points     []float32 `json:"points"` // x, y, size
	Lines      []float32 `json:"lines"`  // x0, y0, x1, y1, alpha
	Cursor     *cursor   `json:"cursor,omitempty"`
}

type cursor struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Alpha  float64 `json:"alpha"`
}

func encodeFrame(f *render.Frame) frameMessage {
	msg := frameMessage{
		Seq:        f.Seq,
		Width:      f.Width,
		Height:     f.Height,
		Background: f.Style.Background.Hex(),
		Point:      f.Style.Point.Hex(),
		PointAlpha: f.PointAlpha,
		EdgeFrom:   f.Style.EdgeFrom.Hex(),
		EdgeTo:     f.Style.EdgeTo.Hex(),
		Points:     make([]float32, 0, 3*len(f.Screen)),
		Lines:      make([]float32, 0, 5*len(f.Lines)),
	}
	for _, p := range f.Screen {
		msg.Points = append(msg.Points, float32(p.X), float32(p.Y), float32(p.Size))
	}
	for _, l := range f.Lines {
		msg.Lines = append(msg.Lines, float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1), float32(l.Alpha))
	}
	if c := f.Cursor; c.Visible {
		msg.Cursor = &cursor{
			X:      c.X,
			Y:      c.Y,
			Radius: c.Radius,
			Color:  f.Style.Cursor.Hex(),
			Alpha:  f.Style.CursorAlpha,
		}
	}
	return msg
}
