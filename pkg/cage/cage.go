package cage

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/geom"
)

// Name is the display name of the session cage.
const Name = "lattice_cage_deform"

// Resolution bounds.
const (
	MinResolution = 1
	MaxResolution = 20
)

// Interpolation selects how control point displacements blend between
// neighbouring points.
type Interpolation int

const (
	// Linear is piecewise-linear blending, the "perspective corner" feel of
	// 2D corner-pin tools.
	Linear Interpolation = iota
	// Smooth is uniform cubic B-spline blending.
	Smooth
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// Label returns the name shown in the session status line.
func (i Interpolation) Label() string {
	if i == Linear {
		return "Linear"
	}
	return "Spline"
}

// Toggle returns the other interpolation mode.
func (i Interpolation) Toggle() Interpolation {
	if i == Linear {
		return Smooth
	}
	return Linear
}

// MarshalText implements encoding.TextMarshaler.
func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It also accepts the
// host's KEY_LINEAR / KEY_BSPLINE identifiers.
func (i *Interpolation) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "linear", "key_linear":
		*i = Linear
	case "smooth", "spline", "bspline", "key_bspline":
		*i = Smooth
	default:
		return fmt.Errorf("unknown interpolation %q", string(b))
	}
	return nil
}

// Resolution is the number of control points along each local axis.
type Resolution struct {
	U int `json:"u"`
	V int `json:"v"`
	W int `json:"w"`
}

func (r Resolution) String() string { return fmt.Sprintf("%dx%d", r.U, r.V) }

// Valid reports whether r satisfies the cage bounds: W is 1 and U, V lie in
// [MinResolution, MaxResolution].
func (r Resolution) Valid() bool {
	return r.W == 1 &&
		r.U >= MinResolution && r.U <= MaxResolution &&
		r.V >= MinResolution && r.V <= MaxResolution
}

// Axis names a resizable cage axis.
type Axis int

const (
	AxisU Axis = iota
	AxisV
)

func (a Axis) String() string {
	if a == AxisU {
		return "u"
	}
	return "v"
}

// Cage is the temporary deformation grid of a session.
type Cage struct {
	Name          string        `json:"name"`
	Pose          geom.Pose     `json:"pose"`
	Resolution    Resolution    `json:"resolution"`
	Interpolation Interpolation `json:"interpolation"`
	// Deltas holds one local-space displacement per control point, indexed
	// by v*U + u.
	Deltas []r3.Vec `json:"deltas"`
}

// Matrix returns the cage's local-to-world transform.
func (c *Cage) Matrix() geom.Mat4 { return c.Pose.Matrix() }

// SetResolution sets U and V and resets every control point to rest.
// Setting the current resolution keeps the control points. Values outside
// [MinResolution, MaxResolution] are rejected.
func (c *Cage) SetResolution(u, v int) error {
	r := Resolution{U: u, V: v, W: 1}
	if !r.Valid() {
		return fmt.Errorf("resolution %s out of range [%d, %d]", r, MinResolution, MaxResolution)
	}
	if r == c.Resolution && len(c.Deltas) == u*v {
		return nil
	}
	c.Resolution = r
	c.Deltas = make([]r3.Vec, u*v)
	return nil
}

// Increment adds one control point along axis. It reports whether the cage
// changed; at MaxResolution it is a no-op.
func (c *Cage) Increment(axis Axis) bool {
	u, v := c.Resolution.U, c.Resolution.V
	switch axis {
	case AxisU:
		u++
	case AxisV:
		v++
	}
	return c.SetResolution(u, v) == nil
}

// Decrement removes one control point along axis. It reports whether the
// cage changed; at MinResolution it is a no-op.
func (c *Cage) Decrement(axis Axis) bool {
	u, v := c.Resolution.U, c.Resolution.V
	switch axis {
	case AxisU:
		u--
	case AxisV:
		v--
	}
	return c.SetResolution(u, v) == nil
}

// PointCount returns the number of control points.
func (c *Cage) PointCount() int { return c.Resolution.U * c.Resolution.V * c.Resolution.W }

// RestPoint returns the local rest position of control point (u, v).
func (c *Cage) RestPoint(u, v int) r3.Vec {
	return r3.Vec{X: restCoord(u, c.Resolution.U), Y: restCoord(v, c.Resolution.V)}
}

// ControlPoint returns the world position of control point (u, v) including
// its displacement.
func (c *Cage) ControlPoint(u, v int) r3.Vec {
	local := r3.Add(c.RestPoint(u, v), c.Deltas[v*c.Resolution.U+u])
	return c.Matrix().MulPoint(local)
}

// Move displaces control point (u, v) by delta in local cage units.
func (c *Cage) Move(u, v int, delta r3.Vec) error {
	if u < 0 || u >= c.Resolution.U || v < 0 || v >= c.Resolution.V {
		return fmt.Errorf("control point (%d, %d) outside %s cage", u, v, c.Resolution)
	}
	i := v*c.Resolution.U + u
	c.Deltas[i] = r3.Add(c.Deltas[i], delta)
	return nil
}

// Clone returns a deep copy of c.
func (c *Cage) Clone() *Cage {
	out := *c
	out.Deltas = append([]r3.Vec(nil), c.Deltas...)
	return &out
}

func restCoord(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return -0.5 + float64(i)/float64(n-1)
}
