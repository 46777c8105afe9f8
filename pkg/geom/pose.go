package geom

import "gonum.org/v1/gonum/spatial/r3"

// Mat3 is a row-major 3x3 rotation.
type Mat3 [9]float64

// Pose is a decomposed affine transform: rotation, then non-uniform scale
// along the rotated local axes, then translation.
type Pose struct {
	Location r3.Vec `json:"location"`
	Rotation Mat3   `json:"rotation"`
	Scale    r3.Vec `json:"scale"`
}

// PoseFromMatrix decomposes an affine matrix without shear. The scale of each
// local axis is the length of the corresponding column.
func PoseFromMatrix(m Mat4) Pose {
	cols := [3]r3.Vec{
		{X: m[0], Y: m[4], Z: m[8]},
		{X: m[1], Y: m[5], Z: m[9]},
		{X: m[2], Y: m[6], Z: m[10]},
	}
	var p Pose
	p.Location = m.Translation()
	scale := [3]float64{}
	for j, c := range cols {
		scale[j] = r3.Norm(c)
		if scale[j] == 0 {
			continue
		}
		c = r3.Scale(1/scale[j], c)
		p.Rotation[j] = c.X
		p.Rotation[3+j] = c.Y
		p.Rotation[6+j] = c.Z
	}
	p.Scale = r3.Vec{X: scale[0], Y: scale[1], Z: scale[2]}
	return p
}

// Matrix recomposes the pose into a 4x4 matrix.
func (p Pose) Matrix() Mat4 {
	r, s, t := p.Rotation, p.Scale, p.Location
	return Mat4{
		r[0] * s.X, r[1] * s.Y, r[2] * s.Z, t.X,
		r[3] * s.X, r[4] * s.Y, r[5] * s.Z, t.Y,
		r[6] * s.X, r[7] * s.Y, r[8] * s.Z, t.Z,
		0, 0, 0, 1,
	}
}

// Axis returns the unit world direction of local axis i (0=X, 1=Y, 2=Z).
func (p Pose) Axis(i int) r3.Vec {
	return r3.Vec{X: p.Rotation[i], Y: p.Rotation[3+i], Z: p.Rotation[6+i]}
}
