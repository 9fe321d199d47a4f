package field

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Orientation is the rotation applied to the whole field, in radians.
type Orientation struct {
	X, Y float64

	vx, vy float64
	spring harmonica.Spring
}

// NewOrientation returns an orientation whose Follow mode eases toward its
// target with a spring sampled at fps frames per second.
func NewOrientation(fps int, frequency, damping float64) *Orientation {
	return &Orientation{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Spin advances the rotation by a constant amount on each axis.
func (o *Orientation) Spin(dx, dy float64) {
	o.X += dx
	o.Y += dy
}

// Follow eases the rotation toward the pointer, given in normalized device
// coordinates. Without an active pointer the field idles around Y.
func (o *Orientation) Follow(active bool, nx, ny, gain, idle float64) {
	if !active {
		o.Y += idle
		o.vx, o.vy = 0, 0
		return
	}
	o.Y, o.vy = o.spring.Update(o.Y, o.vy, nx*gain)
	o.X, o.vx = o.spring.Update(o.X, o.vx, -ny*gain)
}

// Matrix returns the model matrix of the rotation, X applied after Y.
func (o *Orientation) Matrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(o.X).Mul4(mgl64.HomogRotate3DY(o.Y))
}
