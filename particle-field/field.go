package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Variant selects the rule set applied to a field on every frame.
type Variant int

const (
	// Planar particles drift at a constant velocity and bounce off the bounds.
	Planar Variant = iota
	// Elastic particles rest on a sphere, are pushed by the pointer and pulled back.
	Elastic
)

func (v Variant) String() string {
	switch v {
	case Planar:
		return "planar"
	case Elastic:
		return "elastic"
	}
	return "unknown"
}

// goldenAngle is the angular increment of the Fibonacci sphere, π(3−√5).
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Rand is the random source used to scatter planar particles.
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Rand interface {
	Float64() float64
}

// Bounds is an axis aligned bounding box. A flat box (Min.Z == Max.Z)
// describes a 2D viewport.
type Bounds struct {
	Min, Max r3.Vec
}

// Viewport returns the 2D bounds of a w×h drawing surface.
func Viewport(w, h float64) Bounds {
	return Bounds{Max: r3.Vec{X: w, Y: h}}
}

// Cube returns a box centred on the origin with the given half extent.
func Cube(half float64) Bounds {
	return Bounds{
		Min: r3.Vec{X: -half, Y: -half, Z: -half},
		Max: r3.Vec{X: half, Y: half, Z: half},
	}
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Contains reports whether p lies inside the box, boundaries included.
func (b Bounds) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Field is a fixed size pool of particles together with its bounding volume.
// The number of particles never changes during the lifetime of a field;
// a resize builds a new field instead.
type Field struct {
	variant   Variant
	bounds    Bounds
	radius    float64
	particles []Particle
}

// NewPlanar scatters n particles uniformly inside b. Each particle gets a
// random drift velocity in [-drift, drift) on every axis the box spans and
// a size in [sizeMin, sizeMax).
func NewPlanar(n int, b Bounds, drift, sizeMin, sizeMax float64, rng Rand) *Field {
	if n < 0 {
		n = 0
	}
	f := &Field{
		variant:   Planar,
		bounds:    b,
		particles: make([]Particle, n),
	}
	ext := b.Size()
	axis := func(min, size float64) (pos, vel float64) {
		if size == 0 {
			return min, 0
		}
		return min + rng.Float64()*size, (rng.Float64() - 0.5) * 2 * drift
	}
	for i := range f.particles {
		var pos, vel r3.Vec
		pos.X, vel.X = axis(b.Min.X, ext.X)
		pos.Y, vel.Y = axis(b.Min.Y, ext.Y)
		pos.Z, vel.Z = axis(b.Min.Z, ext.Z)

		p := NewParticle(pos)
		p.Vel = vel
		p.Size = sizeMin + rng.Float64()*(sizeMax-sizeMin)
		f.particles[i] = p
	}
	return f
}

// NewSphere places n particles on the surface of a sphere of the given radius
// using the Fibonacci spiral. The layout is fully determined by n and radius.
func NewSphere(n int, radius float64) *Field {
	if n < 0 {
		n = 0
	}
	f := &Field{
		variant:   Elastic,
		bounds:    Cube(radius),
		radius:    radius,
		particles: make([]Particle, n),
	}
	den := float64(n - 1)
	if den < 1 {
		den = 1
	}
	for i := range f.particles {
		y := 1 - float64(i)/den*2
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)

		f.particles[i] = NewParticle(r3.Vec{
			X: math.Cos(theta) * r * radius,
			Y: y * radius,
			Z: math.Sin(theta) * r * radius,
		})
	}
	return f
}

// Len returns the number of particles in the field.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.particles)
}

// Variant returns the rule set of the field.
func (f *Field) Variant() Variant { return f.variant }

// Bounds returns the bounding volume of the field.
func (f *Field) Bounds() Bounds { return f.bounds }

// Radius returns the sphere radius of an elastic field, zero otherwise.
func (f *Field) Radius() float64 { return f.radius }

// Particles exposes the particle pool. Callers may mutate the particles
// but must not change the length of the slice.
func (f *Field) Particles() []Particle {
	if f == nil {
		return nil
	}
	return f.particles
}

// Positions copies the current particle positions into dst, growing it when
// needed, and returns the filled slice.
func (f *Field) Positions(dst []r3.Vec) []r3.Vec {
	n := f.Len()
	if cap(dst) < n {
		dst = make([]r3.Vec, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = f.particles[i].Pos
	}
	return dst
}

// CountForWidth returns the responsive particle count of a planar field:
// one particle per density pixels of width, never more than max.
// A non-positive density disables the scaling.
func CountForWidth(width, density float64, max int) int {
	if density <= 0 {
		return max
	}
	n := int(math.Floor(width / density))
	if n > max {
		n = max
	}
	if n < 0 {
		n = 0
	}
	return n
}
