package cage

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type weight struct {
	index int
	w     float64
}

// Local maps a world position into the cage's local frame, where the rest
// grid spans [-0.5, 0.5] on X and Y. Degenerate (zero-scale) axes map to 0.
func (c *Cage) Local(world r3.Vec) r3.Vec {
	d := r3.Sub(world, c.Pose.Location)
	s := [3]float64{c.Pose.Scale.X, c.Pose.Scale.Y, c.Pose.Scale.Z}
	var out [3]float64
	for i := 0; i < 3; i++ {
		if s[i] == 0 {
			continue
		}
		out[i] = r3.Dot(d, c.Pose.Axis(i)) / s[i]
	}
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}
}

// Displacement returns the local-space displacement the cage applies at
// local position l.
func (c *Cage) Displacement(l r3.Vec) r3.Vec {
	wu := axisWeights(l.X, c.Resolution.U, c.Interpolation)
	wv := axisWeights(l.Y, c.Resolution.V, c.Interpolation)

	var d r3.Vec
	for _, b := range wv {
		for _, a := range wu {
			w := a.w * b.w
			if w == 0 {
				continue
			}
			d = r3.Add(d, r3.Scale(w, c.Deltas[b.index*c.Resolution.U+a.index]))
		}
	}
	return d
}

// Deform returns the world position of world after the cage's displacement.
func (c *Cage) Deform(world r3.Vec) r3.Vec {
	d := c.Displacement(c.Local(world))
	if d == (r3.Vec{}) {
		return world
	}
	return r3.Add(world, c.Matrix().MulDir(d))
}

// axisWeights returns the control point weights along one axis with n
// points for local coordinate l. The weights always sum to 1.
func axisWeights(l float64, n int, mode Interpolation) []weight {
	if n <= 1 {
		return []weight{{index: 0, w: 1}}
	}
	t := (l + 0.5) * float64(n-1)
	t = math.Max(0, math.Min(float64(n-1), t))

	if mode == Smooth {
		return bsplineWeights(t, n)
	}

	i := int(math.Floor(t))
	if i > n-2 {
		i = n - 2
	}
	f := t - float64(i)
	return []weight{{index: i, w: 1 - f}, {index: i + 1, w: f}}
}

// bsplineWeights evaluates the uniform cubic B-spline basis around t,
// clamping neighbour indices to the grid.
func bsplineWeights(t float64, n int) []weight {
	i := int(math.Floor(t))
	f := t - float64(i)
	f2, f3 := f*f, f*f*f
	basis := [4]float64{
		(1 - 3*f + 3*f2 - f3) / 6,
		(3*f3 - 6*f2 + 4) / 6,
		(-3*f3 + 3*f2 + 3*f + 1) / 6,
		f3 / 6,
	}
	out := make([]weight, 0, 4)
	for k, b := range basis {
		idx := i - 1 + k
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		out = append(out, weight{index: idx, w: b})
	}
	return out
}
