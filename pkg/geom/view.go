package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateView is returned when a view cannot be inverted or has an
// empty region.
var ErrDegenerateView = errors.New("degenerate view")

// View describes a camera looking at the scene through a rectangular region.
type View struct {
	// Matrix maps world space to camera space.
	Matrix Mat4 `json:"matrix"`
	// Window maps camera space to clip space.
	Window Mat4 `json:"window"`
	// Width and Height are the region size in pixels.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Persp returns the combined world-to-clip matrix.
func (v View) Persp() Mat4 { return v.Window.Mul(v.Matrix) }

// Direction returns the world-space direction the camera looks along.
func (v View) Direction() r3.Vec {
	// The third row of the rotation is the camera's +Z axis in world space.
	back := r3.Vec{X: v.Matrix[8], Y: v.Matrix[9], Z: v.Matrix[10]}
	return r3.Scale(-1, r3.Unit(back))
}

// Projector converts between world positions and region coordinates for one
// view. It caches the inverse perspective matrix; it holds no other state.
type Projector struct {
	view    View
	persp   Mat4
	inverse Mat4
	normal  r3.Vec
}

// NewProjector prepares a projector for v.
func NewProjector(v View) (*Projector, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return nil, ErrDegenerateView
	}
	persp := v.Persp()
	inv, err := persp.Inverse()
	if err != nil {
		return nil, errors.Join(ErrDegenerateView, err)
	}
	return &Projector{view: v, persp: persp, inverse: inv, normal: v.Direction()}, nil
}

// View returns the view the projector was built for.
func (p *Projector) View() View { return p.view }

// Project maps a world position to region coordinates. ok is false when the
// point lies behind the camera.
func (p *Projector) Project(world r3.Vec) (r2.Vec, bool) {
	c := p.persp.MulVec4(world.X, world.Y, world.Z, 1)
	if c[3] <= 1e-9 {
		return r2.Vec{}, false
	}
	hw, hh := p.view.Width/2, p.view.Height/2
	return r2.Vec{
		X: hw + hw*c[0]/c[3],
		Y: hh + hh*c[1]/c[3],
	}, true
}

// Unproject returns the world position under region coordinate s that lies on
// the plane through depth perpendicular to the view direction.
func (p *Projector) Unproject(s r2.Vec, depth r3.Vec) r3.Vec {
	hw, hh := p.view.Width/2, p.view.Height/2
	x := (s.X - hw) / hw
	y := (s.Y - hh) / hh

	near := p.dehomogenize(p.inverse.MulVec4(x, y, -1, 1))
	far := p.dehomogenize(p.inverse.MulVec4(x, y, 1, 1))
	dir := r3.Sub(far, near)

	denom := r3.Dot(dir, p.normal)
	if math.Abs(denom) < 1e-12 {
		return depth
	}
	t := r3.Dot(r3.Sub(depth, near), p.normal) / denom
	return r3.Add(near, r3.Scale(t, dir))
}

func (p *Projector) dehomogenize(v [4]float64) r3.Vec {
	return r3.Vec{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
}

// NewOrthoView returns an orthographic view whose region shows halfHeight
// world units above and below the line of sight.
func NewOrthoView(eye, target, up r3.Vec, halfHeight, width, height float64) View {
	aspect := width / height
	return View{
		Matrix: LookAt(eye, target, up),
		Window: Orthographic(halfHeight*aspect, halfHeight, 0.01, 1000),
		Width:  width,
		Height: height,
	}
}

// NewPerspView returns a perspective view with vertical field of view fovY
// in radians.
func NewPerspView(eye, target, up r3.Vec, fovY, width, height float64) View {
	return View{
		Matrix: LookAt(eye, target, up),
		Window: Perspective(fovY, width/height, 0.01, 1000),
		Width:  width,
		Height: height,
	}
}
