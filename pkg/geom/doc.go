// Package geom provides the small amount of linear algebra needed to place a
// view-aligned cage: row-major 4x4 matrices, rigid poses with non-uniform
// scale, and a [Projector] that converts between world space and 2D region
// (pixel) coordinates for a given camera.
//
// Vectors are gonum's [r3.Vec] and [r2.Vec]; matrices are stored row-major and
// applied to column vectors, so the translation lives in elements 3, 7 and 11:
//
//	wx = M[0]*x + M[1]*y + M[2]*z + M[3]
//	wy = M[4]*x + M[5]*y + M[6]*z + M[7]
//	wz = M[8]*x + M[9]*y + M[10]*z + M[11]
//
// Region coordinates follow the viewport convention: the origin is the
// bottom-left pixel, X grows right and Y grows up.
//
// [r3.Vec]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r3#Vec
// [r2.Vec]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r2#Vec
package geom
