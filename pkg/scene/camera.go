package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/geom"
)

// Camera describes the viewport. FovY is the vertical field of view in
// degrees; zero selects an orthographic view HalfHeight units tall.
type Camera struct {
	Eye        r3.Vec
	Target     r3.Vec
	Up         r3.Vec
	FovY       float64
	HalfHeight float64
	Width      float64
	Height     float64
}

// DefaultCamera looks down -Z at the origin through an 80x40 orthographic
// region two units tall.
func DefaultCamera() Camera {
	return Camera{
		Eye:        r3.Vec{Z: 10},
		Up:         r3.Vec{Y: 1},
		HalfHeight: 1,
		Width:      80,
		Height:     40,
	}
}

// View returns the camera's view transform.
func (c Camera) View() geom.View {
	if c.FovY > 0 {
		return geom.NewPerspView(c.Eye, c.Target, c.Up, c.FovY*math.Pi/180, c.Width, c.Height)
	}
	return geom.NewOrthoView(c.Eye, c.Target, c.Up, c.HalfHeight, c.Width, c.Height)
}
