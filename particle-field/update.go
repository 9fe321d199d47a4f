package field

import (
	"math"

	"github.com/esimov/particle-field/projection"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pointer is the last known cursor position in screen space.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Physics holds the constants of the elastic rule set.
//
// The restoration is a discrete damped spring integrated with explicit Euler
// and no stability check. Restore around 0.02 with Damping around 0.92
// settles; large coefficients can make the field diverge.
type Physics struct {
	Damping           float64 // velocity multiplier applied once per frame, < 1
	Restore           float64 // pull toward the rest position
	RepulsionRadius   float64 // screen space radius of the pointer influence
	RepulsionStrength float64
	PushGain          float64 // velocity units per unit of influence
}

// Input is the immutable snapshot a frame is computed from.
type Input struct {
	Pointer   Pointer
	Projector projection.Projector
	Physics   Physics
}

// Step advances every particle of f by one frame.
func Step(f *Field, in Input) {
	if f.Len() == 0 {
		return
	}
	switch f.variant {
	case Planar:
		stepPlanar(f)
	case Elastic:
		stepElastic(f, in)
	}
}

func stepPlanar(f *Field) {
	b := f.bounds
	for i := range f.particles {
		p := &f.particles[i]
		p.Vel.X = reflect(p.Pos.X, p.Vel.X, b.Min.X, b.Max.X)
		p.Vel.Y = reflect(p.Pos.Y, p.Vel.Y, b.Min.Y, b.Max.Y)
		p.Vel.Z = reflect(p.Pos.Z, p.Vel.Z, b.Min.Z, b.Max.Z)
		p.Pos = r3.Add(p.Pos, p.Vel)
	}
}

// reflect flips v when pos has left [min, max] and is still moving outwards.
// The particle may overshoot the boundary by one frame before turning back.
func reflect(pos, v, min, max float64) float64 {
	if (pos < min && v < 0) || (pos > max && v > 0) {
		return -v
	}
	return v
}

func stepElastic(f *Field, in Input) {
	ph := in.Physics
	for i := range f.particles {
		p := &f.particles[i]
		if in.Pointer.Active && in.Projector != nil {
			p.Vel = r3.Add(p.Vel, Repulsion(in.Projector, p.Pos, in.Pointer, ph))
		}
		p.Vel = r3.Add(p.Vel, r3.Scale(ph.Restore, r3.Sub(p.Rest, p.Pos)))
		p.Vel = r3.Scale(ph.Damping, p.Vel)
		p.Pos = r3.Add(p.Pos, p.Vel)
	}
}

// Repulsion returns the velocity impulse the pointer applies to a particle
// at pos. The push is computed in screen space and mapped back through the
// projector, so it stays parallel to the screen whatever the field rotation.
func Repulsion(pr projection.Projector, pos r3.Vec, ptr Pointer, ph Physics) r3.Vec {
	sx, sy, ok := pr.Project(pos)
	if !ok {
		return r3.Vec{}
	}
	dx, dy := sx-ptr.X, sy-ptr.Y
	dist := math.Hypot(dx, dy)
	if dist <= 0 || dist >= ph.RepulsionRadius {
		return r3.Vec{}
	}
	influence := (1 - dist/ph.RepulsionRadius) * ph.RepulsionStrength * ph.PushGain
	return r3.Scale(influence, pr.Direction(dx/dist, dy/dist))
}
