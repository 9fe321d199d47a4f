package config

var presets = map[string]Tunables{
	// Landing page background: a 2D drifting constellation.
	"constellation": {
		Name:        "constellation",
		Variant:     VariantPlanar,
		Count:       100,
		Density:     15,
		Drift:       0.2,
		SizeMin:     1,
		SizeMax:     3,
		Threshold:   180 * 180,
		PointSize:   1,
		PointAlpha:  0.2,
		EdgeOpacity: 0.15,
		Palette:     "indigo",
		FPS:         60,
	},
	// Nodes drifting inside a box, rotating toward the pointer.
	"network": {
		Name:        "network",
		Variant:     VariantPlanar,
		Count:       100,
		Extent:      10,
		Drift:       0.01,
		SizeMin:     0.15,
		SizeMax:     0.15,
		SpinY:       0.001,
		Follow:      true,
		FollowGain:  0.5,
		Threshold:   12,
		Camera:      Camera{FovY: 55, Near: 0.1, Far: 100, Distance: 12},
		PointSize:   1,
		PointAlpha:  1,
		EdgeOpacity: 0.4,
		Palette:     "network",
		FPS:         60,
	},
	// Elastic Fibonacci sphere pushed around by the pointer.
	"sphere": {
		Name:              "sphere",
		Variant:           VariantElastic,
		Count:             8000,
		Radius:            300,
		Damping:           0.92,
		Restore:           0.02,
		RepulsionRadius:   150,
		RepulsionStrength: 0.8,
		PushGain:          5,
		SpinX:             0.0001,
		SpinY:             0.0003,
		Camera:            Camera{FovY: 75, Near: 0.1, Far: 2000, Distance: 800},
		PointSize:         2.5,
		PointAlpha:        0.8,
		Palette:           "purple",
		Cursor:            true,
		FPS:               60,
	},
}
