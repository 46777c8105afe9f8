package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func near3(a, b r3.Vec, eps float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= eps
}

func frontView() View {
	return NewOrthoView(r3.Vec{Z: 10}, r3.Vec{}, r3.Vec{Y: 1}, 1, 200, 200)
}

func TestInverse(t *testing.T) {
	m := Translation(r3.Vec{X: 1, Y: 2, Z: 3}).Mul(Pose{
		Rotation: Mat3{0, -1, 0, 1, 0, 0, 0, 0, 1},
		Scale:    r3.Vec{X: 2, Y: 3, Z: 4},
	}.Matrix())

	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	if got := m.Mul(inv); !got.ApproxEqual(Identity(), tol) {
		t.Errorf("m·m⁻¹ = %v, want identity", got)
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if _, err := zero.Inverse(); err == nil {
		t.Error("Inverse() of zero matrix should fail")
	}
}

func TestPoseRoundTrip(t *testing.T) {
	view := LookAt(r3.Vec{X: 3, Y: -4, Z: 5}, r3.Vec{}, r3.Vec{Z: 1})
	inv, err := view.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	p := PoseFromMatrix(inv)
	if math.Abs(p.Scale.X-1) > tol || math.Abs(p.Scale.Y-1) > tol || math.Abs(p.Scale.Z-1) > tol {
		t.Errorf("rigid matrix scale = %v, want (1,1,1)", p.Scale)
	}
	if got := p.Matrix(); !got.ApproxEqual(inv, tol) {
		t.Errorf("Matrix() = %v, want %v", got, inv)
	}
}

func TestProjectOrtho(t *testing.T) {
	p, err := NewProjector(frontView())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		world r3.Vec
		want  r2.Vec
	}{
		{r3.Vec{}, r2.Vec{X: 100, Y: 100}},
		{r3.Vec{X: 1, Y: 1}, r2.Vec{X: 200, Y: 200}},
		{r3.Vec{X: -1, Y: -1, Z: 3}, r2.Vec{X: 0, Y: 0}},
		{r3.Vec{X: 0.5}, r2.Vec{X: 150, Y: 100}},
	}
	for _, tt := range tests {
		got, ok := p.Project(tt.world)
		if !ok {
			t.Fatalf("Project(%v) not visible", tt.world)
		}
		if math.Abs(got.X-tt.want.X) > 1e-6 || math.Abs(got.Y-tt.want.Y) > 1e-6 {
			t.Errorf("Project(%v) = %v, want %v", tt.world, got, tt.want)
		}
	}
}

func TestUnprojectUsesDepthPlane(t *testing.T) {
	p, err := NewProjector(frontView())
	if err != nil {
		t.Fatal(err)
	}
	got := p.Unproject(r2.Vec{X: 150, Y: 50}, r3.Vec{X: 7, Y: 7, Z: 2})
	want := r3.Vec{X: 0.5, Y: -0.5, Z: 2}
	if !near3(got, want, 1e-6) {
		t.Errorf("Unproject() = %v, want %v", got, want)
	}
}

func TestPerspectiveRoundTrip(t *testing.T) {
	view := NewPerspView(r3.Vec{X: 2, Y: -6, Z: 3}, r3.Vec{}, r3.Vec{Z: 1}, math.Pi/3, 640, 480)
	p, err := NewProjector(view)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []r3.Vec{{}, {X: 1, Y: 0.5, Z: -0.25}, {X: -0.7, Y: 1.2, Z: 0.9}} {
		s, ok := p.Project(w)
		if !ok {
			t.Fatalf("Project(%v) not visible", w)
		}
		if got := p.Unproject(s, w); !near3(got, w, 1e-6) {
			t.Errorf("Unproject(Project(%v)) = %v", w, got)
		}
	}
}

func TestProjectBehindCamera(t *testing.T) {
	view := NewPerspView(r3.Vec{Z: 5}, r3.Vec{}, r3.Vec{Y: 1}, math.Pi/2, 100, 100)
	p, err := NewProjector(view)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Project(r3.Vec{Z: 10}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestNewProjectorDegenerate(t *testing.T) {
	if _, err := NewProjector(View{Matrix: Identity(), Window: Identity()}); !errors.Is(err, ErrDegenerateView) {
		t.Errorf("empty region error = %v, want ErrDegenerateView", err)
	}
	if _, err := NewProjector(View{Width: 10, Height: 10}); !errors.Is(err, ErrDegenerateView) {
		t.Errorf("zero matrix error = %v, want ErrDegenerateView", err)
	}
}

func TestViewDirection(t *testing.T) {
	d := frontView().Direction()
	if !near3(d, r3.Vec{Z: -1}, tol) {
		t.Errorf("Direction() = %v, want (0,0,-1)", d)
	}
}
