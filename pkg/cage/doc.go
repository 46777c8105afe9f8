// Package cage builds and edits the temporary, view-aligned deformation cage
// used by a box deform session.
//
// A [Cage] is a flat lattice: a grid of U×V control points (W is always 1)
// spanning the unit square [-0.5, 0.5]² of its local frame. Its [geom.Pose]
// places that frame in the world so that, at creation time, the local Z axis
// points back at the camera and the local X/Y extents match the on-screen
// bounding box of the selection.
//
// # Building
//
// [Build] derives the cage from a point set and a view:
//
//  1. Reject empty or too-small point sets
//  2. Compute the 3D centroid (used only as a depth reference)
//  3. Project every point and take the screen-space min/max
//  4. Unproject the screen box midpoint at the centroid depth (cage location)
//  5. Unproject the box corners to measure world width and height
//  6. Orient the cage with the inverse view matrix, scale to (width, height, 1)
//  7. Start at resolution 2×2×1 with the configured interpolation
//
// # Deforming
//
// Control points are edited as displacements from their rest position.
// [Cage.Deform] maps a world position through the cage with either piecewise
// linear or uniform cubic B-spline weights; an undisturbed cage is the
// identity. Changing the resolution resets every control point to rest.
package cage
