package cage

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/geom"
)

// Sentinel errors returned by Build.
var (
	// ErrNoPointsSelected is returned for an empty point set.
	ErrNoPointsSelected = apperr.New(apperr.ErrCodeInsufficientSelection, "no points found")

	// ErrTooFewPoints is returned when fewer than Options.MinPoints are given.
	ErrTooFewPoints = apperr.New(apperr.ErrCodeInsufficientSelection, "less than two points selected")
)

// Options configures Build.
type Options struct {
	// Interpolation is the starting interpolation mode.
	Interpolation Interpolation
	// MinPoints is the smallest accepted point count. Selection-driven modes
	// use 2; whole-object mode uses 0 (any non-empty set).
	MinPoints int
}

// Build derives a view-aligned cage framing the on-screen silhouette of
// points. The points slice is read, never retained.
func Build(points []r3.Vec, view geom.View, opts Options) (*Cage, error) {
	if len(points) == 0 {
		return nil, ErrNoPointsSelected
	}
	if len(points) < opts.MinPoints {
		return nil, ErrTooFewPoints
	}

	proj, err := geom.NewProjector(view)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodePrecondition, err, "unusable view")
	}
	toWorld, err := view.Matrix.Inverse()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodePrecondition, err, "unusable view")
	}

	centroid := Centroid(points)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		s, ok := proj.Project(p)
		if !ok {
			return nil, apperr.New(apperr.ErrCodePrecondition, "selection extends behind the view")
		}
		minX, maxX = math.Min(minX, s.X), math.Max(maxX, s.X)
		minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
	}

	// Midpoint of the screen box, not the mean of the projected points.
	mid := r2.Vec{X: minX + (maxX-minX)/2, Y: minY + (maxY-minY)/2}
	center := proj.Unproject(mid, centroid)

	bottomLeft := proj.Unproject(r2.Vec{X: minX, Y: minY}, centroid)
	bottomRight := proj.Unproject(r2.Vec{X: maxX, Y: minY}, centroid)
	topLeft := proj.Unproject(r2.Vec{X: minX, Y: maxY}, centroid)
	width := r3.Norm(r3.Sub(bottomLeft, bottomRight))
	height := r3.Norm(r3.Sub(bottomLeft, topLeft))

	pose := geom.PoseFromMatrix(toWorld)
	pose.Scale = r3.Vec{X: width, Y: height, Z: 1}
	pose.Location = center

	c := &Cage{
		Name:          Name,
		Pose:          pose,
		Interpolation: opts.Interpolation,
	}
	if err := c.SetResolution(2, 2); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "initial resolution")
	}
	return c, nil
}

// Centroid returns the arithmetic mean of points.
func Centroid(points []r3.Vec) r3.Vec {
	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(points)), sum)
}
