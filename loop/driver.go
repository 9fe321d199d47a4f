package loop

import (
	"math/rand/v2"
	"time"

	"github.com/esimov/particle-field/config"
	field "github.com/esimov/particle-field/particle-field"
	"github.com/esimov/particle-field/projection"
	"github.com/esimov/particle-field/render"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Driver composes the field, the update rule, the connectivity computer and
// the render bridge. All of its methods must be called from the goroutine
// running the scheduler; event handlers reach it through Poster.Post.
type Driver struct {
	tun     config.Tunables
	next    *config.Tunables
	rng     *rand.Rand
	palette render.Palette

	fld    *field.Field
	orient *field.Orientation
	camera projection.Camera

	pointer field.Pointer
	theme   render.Theme
	width   int
	height  int
	resized bool

	positions []r3.Vec
	edges     []field.Edge
	bridge    *render.Bridge
}

// NewDriver returns a driver for t. The field is built on the first frame
// after a viewport size is known.
func NewDriver(t config.Tunables) *Driver {
	seed := t.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	d := &Driver{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bridge: render.NewBridge(),
	}
	d.use(t)
	return d
}

func (d *Driver) use(t config.Tunables) {
	d.tun = t
	d.palette = render.LookupPalette(t.Palette)
	d.orient = field.NewOrientation(t.FPS, 6, 1)
	d.fld = nil
}

// Apply replaces the tunables. The field is rebuilt on the next frame.
func (d *Driver) Apply(t config.Tunables) {
	d.next = &t
}

// Resize records a new viewport size. The particle pool is replaced at the
// start of the next frame, never in the middle of one.
func (d *Driver) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	d.width, d.height = w, h
	d.resized = true
}

// PointerMove records the pointer position in screen space.
func (d *Driver) PointerMove(x, y float64) {
	d.pointer = field.Pointer{X: x, Y: y, Active: true}
}

// PointerLeave marks the pointer as gone.
func (d *Driver) PointerLeave() {
	d.pointer.Active = false
}

// SetTheme selects the colour scheme of the following frames.
func (d *Driver) SetTheme(t render.Theme) { d.theme = t }

// Theme returns the current colour scheme.
func (d *Driver) Theme() render.Theme { return d.theme }

// Field returns the particle pool of the last frame, nil before the first one.
func (d *Driver) Field() *field.Field { return d.fld }

// Tunables returns the tunables in effect.
func (d *Driver) Tunables() config.Tunables { return d.tun }

// Step advances the field by one frame and returns the frame to draw. It
// returns nil while no viewport size is known.
func (d *Driver) Step() *render.Frame {
	if d.next != nil {
		d.use(*d.next)
		d.next = nil
	}
	if d.width == 0 || d.height == 0 {
		return nil
	}
	if d.resized || d.fld == nil {
		d.rebuild()
		d.resized = false
	}

	var pr projection.Projector = projection.Flat{}
	if !d.tun.Flat() {
		if d.tun.Follow {
			nx, ny := projection.ToNDC(d.pointer.X, d.pointer.Y, d.width, d.height)
			d.orient.Follow(d.pointer.Active, nx, ny, d.tun.FollowGain, d.tun.SpinY)
		} else {
			d.orient.Spin(d.tun.SpinX, d.tun.SpinY)
		}
		pr = d.camera.Projector(d.orient.Matrix())
	}

	field.Step(d.fld, field.Input{
		Pointer:   d.pointer,
		Projector: pr,
		Physics: field.Physics{
			Damping:           d.tun.Damping,
			Restore:           d.tun.Restore,
			RepulsionRadius:   d.tun.RepulsionRadius,
			RepulsionStrength: d.tun.RepulsionStrength,
			PushGain:          d.tun.PushGain,
		},
	})

	d.positions = d.fld.Positions(d.positions)
	d.edges = field.Connect(d.positions, d.tun.Threshold, d.edges)

	return d.bridge.Build(d.fld, d.edges, pr, render.Options{
		Width:       d.width,
		Height:      d.height,
		Theme:       d.theme,
		Palette:     d.palette,
		PointSize:   d.tun.PointSize,
		PointAlpha:  d.tun.PointAlpha,
		EdgeOpacity: d.tun.EdgeOpacity,
		Cursor:      d.cursor(),
	})
}

// rebuild refreshes the camera and replaces the particle pool when its
// layout depends on the viewport.
func (d *Driver) rebuild() {
	t := d.tun
	d.camera = projection.Camera{
		FovY:     t.Camera.FovY,
		Near:     t.Camera.Near,
		Far:      t.Camera.Far,
		Distance: t.Camera.Distance,
		Width:    d.width,
		Height:   d.height,
	}

	switch {
	case t.Variant == config.VariantElastic:
		if d.fld == nil {
			d.fld = field.NewSphere(t.Count, t.Radius)
		}
	case t.Flat():
		n := field.CountForWidth(float64(d.width), t.Density, t.Count)
		b := field.Viewport(float64(d.width), float64(d.height))
		d.fld = field.NewPlanar(n, b, t.Drift, t.SizeMin, t.SizeMax, d.rng)
	default:
		if d.fld == nil || t.Density > 0 {
			n := field.CountForWidth(float64(d.width), t.Density, t.Count)
			d.fld = field.NewPlanar(n, field.Cube(t.Extent), t.Drift, t.SizeMin, t.SizeMax, d.rng)
		}
	}
}

func (d *Driver) cursor() render.Cursor {
	if !d.tun.Cursor || !d.pointer.Active || d.tun.Flat() {
		return render.Cursor{}
	}
	pos, err := d.camera.PointerOnPlane(d.pointer.X, d.pointer.Y, 0)
	if err != nil {
		return render.Cursor{}
	}
	r, ok := projection.ScreenRadius(d.camera.Projector(mgl64.Ident4()), pos, d.tun.RepulsionRadius)
	return render.Cursor{X: d.pointer.X, Y: d.pointer.Y, Radius: r, Visible: ok}
}
