package field

import "gonum.org/v1/gonum/spatial/r3"

// Particle defines the general components of a field particle.
// Planar fields keep every Z component at zero.
type Particle struct {
	Pos  r3.Vec
	Vel  r3.Vec
	Rest r3.Vec
	Size float64
}

// NewParticle spawns a new particle resting at pos.
func NewParticle(pos r3.Vec) Particle {
	return Particle{Pos: pos, Rest: pos}
}

// Displacement returns the offset of the particle from its rest position.
func (p *Particle) Displacement() r3.Vec {
	return r3.Sub(p.Pos, p.Rest)
}

// Speed returns the magnitude of the particle velocity.
func (p *Particle) Speed() float64 {
	return r3.Norm(p.Vel)
}
