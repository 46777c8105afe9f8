package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a row-major 4x4 homogeneous transform.
type Mat4 [16]float64

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a pure translation matrix.
func Translation(t r3.Vec) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = t.X, t.Y, t.Z
	return m
}

// At returns the element at row i, column j.
func (m Mat4) At(i, j int) float64 { return m[i*4+j] }

// Mul returns m·n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[i*4+k] * n[k*4+j]
			}
			out[i*4+j] = s
		}
	}
	return out
}

// MulVec4 applies m to the homogeneous column vector (x, y, z, w).
func (m Mat4) MulVec4(x, y, z, w float64) [4]float64 {
	return [4]float64{
		m[0]*x + m[1]*y + m[2]*z + m[3]*w,
		m[4]*x + m[5]*y + m[6]*z + m[7]*w,
		m[8]*x + m[9]*y + m[10]*z + m[11]*w,
		m[12]*x + m[13]*y + m[14]*z + m[15]*w,
	}
}

// MulPoint applies m to p with w=1 and drops the homogeneous coordinate.
// It is only meaningful for affine matrices.
func (m Mat4) MulPoint(p r3.Vec) r3.Vec {
	v := m.MulVec4(p.X, p.Y, p.Z, 1)
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// MulDir applies the linear part of m to d (w=0).
func (m Mat4) MulDir(d r3.Vec) r3.Vec {
	v := m.MulVec4(d.X, d.Y, d.Z, 0)
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// Translation returns the translation column of m.
func (m Mat4) Translation() r3.Vec {
	return r3.Vec{X: m[3], Y: m[7], Z: m[11]}
}

// Inverse returns the inverse of m. Singular and numerically degenerate
// matrices are reported as errors.
func (m Mat4) Inverse() (Mat4, error) {
	a := mat.NewDense(4, 4, append([]float64(nil), m[:]...))
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return Mat4{}, fmt.Errorf("invert matrix: %w", err)
	}
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = inv.At(i, j)
		}
	}
	return out, nil
}

// ApproxEqual reports whether every element of m and n differs by at most tol.
func (m Mat4) ApproxEqual(n Mat4, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-n[i]) > tol {
			return false
		}
	}
	return true
}

// LookAt builds a view matrix for a camera at eye looking at target. The
// camera looks down its local -Z axis with up as the approximate +Y.
func LookAt(eye, target, up r3.Vec) Mat4 {
	f := r3.Unit(r3.Sub(target, eye))
	s := r3.Unit(r3.Cross(f, up))
	u := r3.Cross(s, f)
	return Mat4{
		s.X, s.Y, s.Z, -r3.Dot(s, eye),
		u.X, u.Y, u.Z, -r3.Dot(u, eye),
		-f.X, -f.Y, -f.Z, r3.Dot(f, eye),
		0, 0, 0, 1,
	}
}

// Perspective builds an OpenGL-style projection matrix. fovY is in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	}
}

// Orthographic builds an orthographic projection for a view volume of
// half-extents halfW and halfH between near and far.
func Orthographic(halfW, halfH, near, far float64) Mat4 {
	return Mat4{
		1 / halfW, 0, 0, 0,
		0, 1 / halfH, 0, 0,
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	}
}
