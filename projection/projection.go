// Package projection converts between world coordinates and the top-left
// origin screen space used by pointers and drawing surfaces.
//
// Normalized device coordinates grow upwards while screen coordinates grow
// downwards; every conversion between the two goes through this package.
package projection

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrParallel is returned when the pointer ray never meets the requested plane.
var ErrParallel = errors.New("pointer ray is parallel to the plane")

// Projector maps a point to screen coordinates. ok is false when the point
// cannot be seen, e.g. when it lies behind the camera.
//
// Direction maps a unit screen direction back into the space of the
// projected points, as a vector parallel to the screen.
type Projector interface {
	Project(p r3.Vec) (x, y float64, ok bool)
	Direction(dx, dy float64) r3.Vec
}

// Camera is a perspective camera placed on the positive Z axis and looking
// at the origin.
type Camera struct {
	FovY     float64 // vertical field of view, degrees
	Near     float64
	Far      float64
	Distance float64
	Width    int
	Height   int
}

// Aspect returns the viewport aspect ratio.
func (c Camera) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// Matrix returns the projection matrix of the camera.
func (c Camera) Matrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}

// View returns the view matrix of the camera.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.Translate3D(0, 0, -c.Distance)
}

// Eye returns the camera position in world space.
func (c Camera) Eye() r3.Vec {
	return r3.Vec{Z: c.Distance}
}

// Projector returns the projector for geometry transformed by model, which
// must be a rotation.
func (c Camera) Projector(model mgl64.Mat4) *Perspective {
	return &Perspective{
		model:      model,
		modelview:  c.View().Mul4(model),
		projection: c.Matrix(),
		width:      c.Width,
		height:     c.Height,
	}
}

// PointerOnPlane casts a ray from the camera through the screen point (x, y)
// and returns where it crosses the world plane at depth z.
func (c Camera) PointerOnPlane(x, y, z float64) (r3.Vec, error) {
	p, err := c.Projector(mgl64.Ident4()).Unproject(x, y, 0.75)
	if err != nil {
		return r3.Vec{}, err
	}
	eye := c.Eye()
	dir := r3.Unit(r3.Sub(p, eye))
	if dir.Z == 0 {
		return r3.Vec{}, ErrParallel
	}
	t := (z - eye.Z) / dir.Z
	return r3.Add(eye, r3.Scale(t, dir)), nil
}

// Perspective projects through a model-view-projection chain.
type Perspective struct {
	model      mgl64.Mat4
	modelview  mgl64.Mat4
	projection mgl64.Mat4
	width      int
	height     int
}

// Project returns the screen coordinates of p.
func (pp *Perspective) Project(p r3.Vec) (x, y float64, ok bool) {
	obj := mgl64.Vec3{p.X, p.Y, p.Z}
	if eye := pp.modelview.Mul4x1(obj.Vec4(1)); eye.Z() >= 0 {
		return 0, 0, false
	}
	win := mgl64.Project(obj, pp.modelview, pp.projection, 0, 0, pp.width, pp.height)
	x, y = FromWindow(win.X(), win.Y(), pp.height)
	return x, y, true
}

// Direction rotates the screen direction (dx, dy) into model space. Screen Y
// grows downwards, view Y upwards.
func (pp *Perspective) Direction(dx, dy float64) r3.Vec {
	v := pp.model.Mat3().Transpose().Mul3x1(mgl64.Vec3{dx, -dy, 0})
	return r3.Vec{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Unproject returns the world point under the screen point (x, y) at the
// given window depth in [0, 1].
func (pp *Perspective) Unproject(x, y, depth float64) (r3.Vec, error) {
	wx, wy := FromWindow(x, y, pp.height)
	obj, err := mgl64.UnProject(mgl64.Vec3{wx, wy, depth}, pp.modelview, pp.projection, 0, 0, pp.width, pp.height)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: obj.X(), Y: obj.Y(), Z: obj.Z()}, nil
}

// Flat is the identity projector used by planar fields laid out directly in
// screen space.
type Flat struct{}

// Project returns the X and Y components of p unchanged.
func (Flat) Project(p r3.Vec) (x, y float64, ok bool) {
	return p.X, p.Y, true
}

// Direction returns (dx, dy) unchanged.
func (Flat) Direction(dx, dy float64) r3.Vec {
	return r3.Vec{X: dx, Y: dy}
}

// FromWindow flips a bottom-left origin window coordinate into a top-left
// origin screen coordinate. The conversion is its own inverse.
func FromWindow(x, y float64, height int) (float64, float64) {
	return x, float64(height) - y
}

// ToNDC converts a screen coordinate into normalized device coordinates.
func ToNDC(x, y float64, width, height int) (float64, float64) {
	if width == 0 || height == 0 {
		return 0, 0
	}
	return x/float64(width)*2 - 1, -(y/float64(height))*2 + 1
}

// FromNDC converts normalized device coordinates into a screen coordinate.
func FromNDC(nx, ny float64, width, height int) (float64, float64) {
	return (nx + 1) * float64(width) / 2, (-ny + 1) * float64(height) / 2
}

// ScreenRadius returns the on-screen radius of a world space disc of radius r
// centred on p and facing the camera.
func ScreenRadius(pr Projector, p r3.Vec, r float64) (float64, bool) {
	cx, cy, ok := pr.Project(p)
	if !ok {
		return 0, false
	}
	ex, ey, ok := pr.Project(r3.Add(p, r3.Vec{X: r}))
	if !ok {
		return 0, false
	}
	return math.Hypot(ex-cx, ey-cy), true
}
