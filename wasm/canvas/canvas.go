//go:build js && wasm

package canvas

import (
	"fmt"
	"math"
	"syscall/js"

	"github.com/esimov/particle-field/render"
	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a full page 2D canvas placed behind the document content.
type Canvas struct {
	window js.Value
	doc    js.Value
	canvas js.Value
	ctx    js.Value

	width, height int
	funcs         []js.Func
}

// NewCanvas creates the canvas element and attaches it to the body.
func NewCanvas() *Canvas {
	var c Canvas
	c.window = js.Global()
	c.doc = c.window.Get("document")

	c.canvas = c.doc.Call("createElement", "canvas")
	c.canvas.Set("id", "bg-canvas")
	style := c.canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("top", "0")
	style.Set("left", "0")
	style.Set("width", "100vw")
	style.Set("height", "100vh")
	style.Set("zIndex", "-1")
	style.Set("pointerEvents", "none")
	c.doc.Get("body").Call("appendChild", c.canvas)

	c.ctx = c.canvas.Call("getContext", "2d")
	return &c
}

// Size matches the canvas to the window and returns its size in pixels.
func (c *Canvas) Size() (int, int) {
	c.width = c.window.Get("innerWidth").Int()
	c.height = c.window.Get("innerHeight").Int()
	c.canvas.Set("width", c.width)
	c.canvas.Set("height", c.height)
	return c.width, c.height
}

// Theme reads the data-theme attribute of the document element.
func (c *Canvas) Theme() render.Theme {
	v := c.doc.Get("documentElement").Call("getAttribute", "data-theme")
	if v.Type() != js.TypeString {
		return render.Dark
	}
	return render.ParseTheme(v.String())
}

// OnPointer registers the pointer callbacks. They run on the browser event
// loop, never while a frame is being computed.
func (c *Canvas) OnPointer(move func(x, y float64), leave func()) {
	c.listen(c.window, "mousemove", func(ev js.Value) {
		move(ev.Get("clientX").Float(), ev.Get("clientY").Float())
	})
	c.listen(c.doc, "mouseleave", func(js.Value) { leave() })
}

// OnResize registers fn to run after every window resize.
func (c *Canvas) OnResize(fn func(w, h int)) {
	c.listen(c.window, "resize", func(js.Value) { fn(c.Size()) })
}

func (c *Canvas) listen(target js.Value, event string, fn func(js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	c.funcs = append(c.funcs, f)
	target.Call("addEventListener", event, f)
}

// Release frees the registered callbacks.
func (c *Canvas) Release() {
	for _, f := range c.funcs {
		f.Release()
	}
	c.funcs = nil
}

// Draw paints f with the 2D context.
func (c *Canvas) Draw(f *render.Frame) error {
	c.ctx.Call("clearRect", 0, 0, c.width, c.height)

	c.ctx.Set("lineWidth", 0.8)
	for _, l := range f.Lines {
		grad := c.ctx.Call("createLinearGradient", l.X0, l.Y0, l.X1, l.Y1)
		grad.Call("addColorStop", 0, rgba(f.Style.EdgeFrom, l.Alpha))
		grad.Call("addColorStop", 1, rgba(f.Style.EdgeTo, l.Alpha))
		c.ctx.Set("strokeStyle", grad)
		c.ctx.Call("beginPath")
		c.ctx.Call("moveTo", l.X0, l.Y0)
		c.ctx.Call("lineTo", l.X1, l.Y1)
		c.ctx.Call("stroke")
	}

	c.ctx.Set("fillStyle", rgba(f.Style.Point, f.PointAlpha))
	for _, p := range f.Screen {
		c.ctx.Call("beginPath")
		c.ctx.Call("arc", p.X, p.Y, p.Size, 0, 2*math.Pi)
		c.ctx.Call("fill")
	}

	if cur := f.Cursor; cur.Visible {
		c.ctx.Set("fillStyle", rgba(f.Style.Cursor, f.Style.CursorAlpha))
		c.ctx.Call("beginPath")
		c.ctx.Call("arc", cur.X, cur.Y, cur.Radius, 0, 2*math.Pi)
		c.ctx.Call("fill")
	}
	return nil
}

// Alert calls the `alert` Javascript function
func (c *Canvas) Alert(msg string) {
	c.window.Call("alert", msg)
}

func rgba(col colorful.Color, alpha float64) string {
	r, g, b := col.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", r, g, b, alpha)
}
