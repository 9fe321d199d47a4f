package projection

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

var camera = Camera{FovY: 75, Near: 0.1, Far: 2000, Distance: 800, Width: 800, Height: 600}

func TestProjectOrigin(t *testing.T) {
	x, y, ok := camera.Projector(mgl64.Ident4()).Project(r3.Vec{})
	if !ok || x != 400 || y != 300 {
		t.Fatalf("Project(origin) = (%v, %v, %v), want (400, 300, true)", x, y, ok)
	}
}

func TestProjectInvertsY(t *testing.T) {
	pr := camera.Projector(mgl64.Ident4())
	_, up, _ := pr.Project(r3.Vec{Y: 100})
	_, down, _ := pr.Project(r3.Vec{Y: -100})
	if !(up < 300 && down > 300) {
		t.Fatalf("world +Y projects to %v and -Y to %v, want above and below 300", up, down)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	if _, _, ok := camera.Projector(mgl64.Ident4()).Project(r3.Vec{Z: 900}); ok {
		t.Fatalf("Project() of a point behind the camera reported visible")
	}
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	model := mgl64.HomogRotate3DX(0.3).Mul4(mgl64.HomogRotate3DY(-0.7))
	pr := camera.Projector(model)
	for _, p := range []r3.Vec{{X: 10, Y: 20, Z: 30}, {X: -250, Y: 100, Z: -40}, {Y: 299}} {
		x, y, ok := pr.Project(p)
		if !ok {
			t.Fatalf("Project(%v) not visible", p)
		}
		// Recover the window depth from the clip space position.
		clip := camera.Matrix().Mul4(camera.View()).Mul4(model).Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
		depth := (clip.Z()/clip.W() + 1) / 2

		got, err := pr.Unproject(x, y, depth)
		if err != nil {
			t.Fatalf("Unproject() error = %v", err)
		}
		if d := r3.Norm(r3.Sub(got, p)); d > 1e-6*math.Max(1, r3.Norm(p)) {
			t.Fatalf("Unproject(Project(%v)) = %v", p, got)
		}
	}
}

func TestPointerOnPlane(t *testing.T) {
	got, err := camera.PointerOnPlane(400, 300, 0)
	if err != nil {
		t.Fatalf("PointerOnPlane() error = %v", err)
	}
	if r3.Norm(got) > 1e-6 {
		t.Fatalf("PointerOnPlane(centre) = %v, want origin", got)
	}

	got, err = camera.PointerOnPlane(100, 50, 0)
	if err != nil {
		t.Fatalf("PointerOnPlane() error = %v", err)
	}
	x, y, _ := camera.Projector(mgl64.Ident4()).Project(got)
	if math.Abs(x-100) > 1e-6 || math.Abs(y-50) > 1e-6 || math.Abs(got.Z) > 1e-9 {
		t.Fatalf("PointerOnPlane(100, 50) = %v projects back to (%v, %v)", got, x, y)
	}
}

func TestNDC(t *testing.T) {
	tests := []struct {
		x, y   float64
		nx, ny float64
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		nx, ny := ToNDC(tt.x, tt.y, 800, 600)
		if nx != tt.nx || ny != tt.ny {
			t.Errorf("ToNDC(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
		}
		x, y := FromNDC(nx, ny, 800, 600)
		if x != tt.x || y != tt.y {
			t.Errorf("FromNDC(%v, %v) = (%v, %v), want (%v, %v)", nx, ny, x, y, tt.x, tt.y)
		}
	}
	if nx, ny := ToNDC(10, 10, 0, 0); nx != 0 || ny != 0 {
		t.Errorf("ToNDC() on an empty viewport = (%v, %v), want (0, 0)", nx, ny)
	}
}

func TestFlat(t *testing.T) {
	x, y, ok := Flat{}.Project(r3.Vec{X: 3, Y: 4, Z: 5})
	if !ok || x != 3 || y != 4 {
		t.Fatalf("Flat.Project() = (%v, %v, %v), want (3, 4, true)", x, y, ok)
	}
}

func TestScreenRadius(t *testing.T) {
	pr := camera.Projector(mgl64.Ident4())
	near, ok := ScreenRadius(pr, r3.Vec{Z: 400}, 50)
	if !ok {
		t.Fatalf("ScreenRadius() near not visible")
	}
	far, _ := ScreenRadius(pr, r3.Vec{Z: -400}, 50)
	if near <= far {
		t.Fatalf("near disc radius %v not larger than far disc radius %v", near, far)
	}
	if r, _ := ScreenRadius(Flat{}, r3.Vec{X: 1}, 7); r != 7 {
		t.Fatalf("ScreenRadius(Flat) = %v, want 7", r)
	}
}

func TestDirectionFollowsRotation(t *testing.T) {
	tests := []struct {
		name  string
		model mgl64.Mat4
		p     r3.Vec
	}{
		{"identity", mgl64.Ident4(), r3.Vec{}},
		{"half turn", mgl64.HomogRotate3DY(math.Pi), r3.Vec{Z: -300}},
		{"tilted", mgl64.HomogRotate3DX(0.4).Mul4(mgl64.HomogRotate3DY(2.2)), r3.Vec{X: 50, Y: -30, Z: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := camera.Projector(tt.model)
			x0, y0, _ := pr.Project(tt.p)
			for _, d := range [][2]float64{{1, 0}, {0, 1}, {-0.6, 0.8}} {
				v := pr.Direction(d[0], d[1])
				if n := r3.Norm(v); math.Abs(n-1) > 1e-9 {
					t.Fatalf("Direction(%v) norm = %v, want 1", d, n)
				}
				x1, y1, _ := pr.Project(r3.Add(tt.p, r3.Scale(10, v)))
				mx, my := x1-x0, y1-y0
				if cos := (mx*d[0] + my*d[1]) / math.Hypot(mx, my); cos < 0.9999 {
					t.Fatalf("Direction(%v) moves the point along (%v, %v) on screen", d, mx, my)
				}
			}
		})
	}

	if v := (Flat{}).Direction(3, -4); v != (r3.Vec{X: 3, Y: -4}) {
		t.Fatalf("Flat.Direction() = %v, want (3, -4, 0)", v)
	}
}
