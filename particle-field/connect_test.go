package field

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestConnectThreshold(t *testing.T) {
	tests := []struct {
		name      string
		pos       []r3.Vec
		threshold float64
		want      []Edge
	}{
		{
			name:      "exactly at threshold",
			pos:       []r3.Vec{{}, {X: 3, Y: 4}},
			threshold: 25,
			want:      nil,
		},
		{
			name:      "coincident",
			pos:       []r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}},
			threshold: 25,
			want:      []Edge{{I: 0, J: 1, Alpha: 1}},
		},
		{
			name:      "half way",
			pos:       []r3.Vec{{}, {Z: 2}},
			threshold: 8,
			want:      []Edge{{I: 0, J: 1, Alpha: 0.5}},
		},
		{
			name:      "disabled",
			pos:       []r3.Vec{{}, {}},
			threshold: 0,
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Connect(tt.pos, tt.threshold, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("Connect() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].I != tt.want[i].I || got[i].J != tt.want[i].J ||
					math.Abs(got[i].Alpha-tt.want[i].Alpha) > 1e-12 {
					t.Fatalf("Connect() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestConnectVisitsEachPairOnce(t *testing.T) {
	pos := []r3.Vec{{}, {X: 1}, {Y: 1}}
	got := Connect(pos, 12, nil)
	if len(got) != 3 {
		t.Fatalf("Connect() returned %d pairs, want 3", len(got))
	}
	seen := make(map[[2]int]bool)
	for _, e := range got {
		if e.I >= e.J {
			t.Fatalf("edge %v is not ordered", e)
		}
		key := [2]int{e.I, e.J}
		if seen[key] {
			t.Fatalf("edge %v reported twice", e)
		}
		seen[key] = true
	}
}

func TestConnectCountsAllPairs(t *testing.T) {
	f := NewSphere(150, 1)
	got := Connect(f.Positions(nil), 100, nil)
	if want := 150 * 149 / 2; len(got) != want {
		t.Fatalf("Connect() returned %d pairs, want %d", len(got), want)
	}
}

func TestConnectReusesBuffer(t *testing.T) {
	pos := []r3.Vec{{}, {X: 1}}
	buf := make([]Edge, 5, 8)
	got := Connect(pos, 4, buf)
	if len(got) != 1 || cap(got) != 8 {
		t.Fatalf("Connect() = %v (cap %d), want one edge in the supplied buffer", got, cap(got))
	}
}

func TestOrientationSpin(t *testing.T) {
	o := NewOrientation(60, 6, 1)
	for range 10 {
		o.Spin(0.0001, 0.0003)
	}
	if math.Abs(o.X-0.001) > 1e-12 || math.Abs(o.Y-0.003) > 1e-12 {
		t.Fatalf("orientation = (%v, %v), want (0.001, 0.003)", o.X, o.Y)
	}
}

func TestOrientationFollow(t *testing.T) {
	o := NewOrientation(60, 6, 1)
	for range 300 {
		o.Follow(true, 1, -1, 0.5, 0.001)
	}
	if math.Abs(o.Y-0.5) > 1e-3 || math.Abs(o.X-0.5) > 1e-3 {
		t.Fatalf("orientation = (%v, %v), want close to (0.5, 0.5)", o.X, o.Y)
	}

	y := o.Y
	o.Follow(false, 0, 0, 0.5, 0.001)
	if math.Abs(o.Y-(y+0.001)) > 1e-12 {
		t.Fatalf("idle spin Y = %v, want %v", o.Y, y+0.001)
	}
}

func TestOrientationMatrixIdentity(t *testing.T) {
	m := (&Orientation{}).Matrix()
	for i := range 4 {
		for j := range 4 {
			want := 0.0
			if i == j {
				want = 1
			}
			if m.At(i, j) != want {
				t.Fatalf("Matrix().At(%d, %d) = %v, want %v", i, j, m.At(i, j), want)
			}
		}
	}
}
