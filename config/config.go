// Package config holds the tunable constants of a particle field: the
// built-in presets, JSON overrides loaded from disk and hot reloading.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid tunables")
	// ErrUnknownPreset is returned for preset names that are not registered.
	ErrUnknownPreset = errors.New("unknown preset")
)

// MaxConnected is the largest particle count for which connections are
// computed. Every pair is tested on each frame.
const MaxConnected = 150

// Variant names accepted in Tunables.Variant.
const (
	VariantPlanar  = "planar"
	VariantElastic = "elastic"
)

// Tunables is the whole configuration surface of a field.
type Tunables struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`

	// Population and volume.
	Count   int     `json:"count"`
	Density float64 `json:"density"` // viewport pixels per planar particle, 0 keeps Count fixed
	Extent  float64 `json:"extent"`  // half size of the planar box, 0 lays the field out on the viewport
	Radius  float64 `json:"radius"`  // sphere radius of the elastic field
	Drift   float64 `json:"drift"`
	SizeMin float64 `json:"sizeMin"`
	SizeMax float64 `json:"sizeMax"`

	// Elastic physics.
	Damping           float64 `json:"damping"`
	Restore           float64 `json:"restore"`
	RepulsionRadius   float64 `json:"repulsionRadius"`
	RepulsionStrength float64 `json:"repulsionStrength"`
	PushGain          float64 `json:"pushGain"`

	// Rotation of the whole field, radians per frame.
	SpinX      float64 `json:"spinX"`
	SpinY      float64 `json:"spinY"`
	Follow     bool    `json:"follow"`
	FollowGain float64 `json:"followGain"`

	// Squared distance under which two particles are connected.
	Threshold float64 `json:"threshold"`

	Camera Camera `json:"camera"`

	PointSize   float64 `json:"pointSize"`
	PointAlpha  float64 `json:"pointAlpha"`
	EdgeOpacity float64 `json:"edgeOpacity"`
	Palette     string  `json:"palette"`
	Cursor      bool    `json:"cursor"`

	FPS  int    `json:"fps"`
	Seed uint64 `json:"seed"` // 0 seeds from the clock
}

// Camera configures the perspective camera of 3D fields.
type Camera struct {
	FovY     float64 `json:"fovY"`
	Near     float64 `json:"near"`
	Far      float64 `json:"far"`
	Distance float64 `json:"distance"`
}

// Flat reports whether the field is laid out directly in screen space.
func (t Tunables) Flat() bool {
	return t.Variant == VariantPlanar && t.Extent == 0
}

// Validate checks the tunables for values the field cannot run with.
func (t Tunables) Validate() error {
	switch {
	case t.Variant != VariantPlanar && t.Variant != VariantElastic:
		return fmt.Errorf("%w: variant %q", ErrInvalid, t.Variant)
	case t.Count < 0:
		return fmt.Errorf("%w: negative count %d", ErrInvalid, t.Count)
	case t.Density < 0 || t.Extent < 0 || t.Radius < 0:
		return fmt.Errorf("%w: negative volume", ErrInvalid)
	case t.SizeMax < t.SizeMin:
		return fmt.Errorf("%w: sizeMax %v below sizeMin %v", ErrInvalid, t.SizeMax, t.SizeMin)
	case t.Threshold < 0:
		return fmt.Errorf("%w: negative threshold", ErrInvalid)
	case t.Threshold > 0 && t.Count > MaxConnected:
		return fmt.Errorf("%w: threshold set for %d particles, connections allow at most %d", ErrInvalid, t.Count, MaxConnected)
	case t.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, t.FPS)
	}
	if t.Variant == VariantElastic {
		if t.Damping <= 0 || t.Damping >= 1 {
			return fmt.Errorf("%w: damping %v outside (0, 1)", ErrInvalid, t.Damping)
		}
		if t.RepulsionRadius < 0 || t.Restore < 0 {
			return fmt.Errorf("%w: negative restore or repulsion radius", ErrInvalid)
		}
	}
	if !t.Flat() {
		c := t.Camera
		if c.FovY <= 0 || c.FovY >= 180 || c.Near <= 0 || c.Far <= c.Near || c.Distance <= 0 {
			return fmt.Errorf("%w: camera %+v", ErrInvalid, c)
		}
	}
	return nil
}

// Load overlays the JSON file at path on base and validates the result.
// An empty path returns base.
func Load(path string, base Tunables) (Tunables, error) {
	if path == "" {
		return base, base.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read tunables: %w", err)
	}
	t := base
	if err := json.Unmarshal(data, &t); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Preset returns a copy of the named built-in preset.
func Preset(name string) (Tunables, error) {
	t, ok := presets[name]
	if !ok {
		return Tunables{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return t, nil
}

// Presets returns the names of the built-in presets in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
