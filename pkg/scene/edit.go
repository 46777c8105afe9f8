package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/host"
)

// DefaultNudge is the distance, in cage units, one arrow press moves the
// selected control points.
const DefaultNudge = 0.1

// CageEditor is the host's own cage-edit-mode input. Plain arrow keys move
// the selected control points; "[" and "]" cycle the selection through the
// single points and back to all of them.
type CageEditor struct {
	scene *Scene
	// Step is the nudge distance in cage units.
	Step float64
	// sel is the selected control point index, or -1 for all of them.
	sel int
}

// NewCageEditor returns an editor with every control point selected.
func NewCageEditor(s *Scene) *CageEditor {
	return &CageEditor{scene: s, Step: DefaultNudge, sel: -1}
}

// Cage returns the cage being edited: the top temporary deformer of the
// active object while the scene is in cage-edit mode.
func (e *CageEditor) Cage() *cage.Cage {
	if e.scene.Mode() != host.ModeCageEdit {
		return nil
	}
	id, ok := e.scene.ActiveObject()
	if !ok {
		return nil
	}
	o := e.scene.Object(id)
	for _, d := range o.Deformers {
		if d.Temporary && d.Cage != nil {
			return d.Cage
		}
	}
	return nil
}

// Selected returns the selected control point. ok is false when every
// point is selected or there is no cage.
func (e *CageEditor) Selected() (u, v int, ok bool) {
	c := e.Cage()
	if c == nil {
		return 0, 0, false
	}
	i := e.index(c)
	if i < 0 {
		return 0, 0, false
	}
	return i % c.Resolution.U, i / c.Resolution.U, true
}

// IsSelected reports whether control point (u, v) is selected.
func (e *CageEditor) IsSelected(u, v int) bool {
	su, sv, ok := e.Selected()
	return !ok || (su == u && sv == v)
}

// Handle applies key to the cage and reports whether it was used.
func (e *CageEditor) Handle(key string) bool {
	c := e.Cage()
	if c == nil {
		return false
	}
	switch key {
	case "[":
		e.cycle(c, -1)
	case "]":
		e.cycle(c, 1)
	case "left":
		e.nudge(c, r3.Vec{X: -e.Step})
	case "right":
		e.nudge(c, r3.Vec{X: e.Step})
	case "up":
		e.nudge(c, r3.Vec{Y: e.Step})
	case "down":
		e.nudge(c, r3.Vec{Y: -e.Step})
	default:
		return false
	}
	return true
}

// index returns the selection clamped to the current resolution, which a
// session may have changed since the last key.
func (e *CageEditor) index(c *cage.Cage) int {
	if e.sel >= c.Resolution.U*c.Resolution.V {
		e.sel = -1
	}
	return e.sel
}

func (e *CageEditor) cycle(c *cage.Cage, step int) {
	n := c.Resolution.U * c.Resolution.V
	// -1..n-1 wraps through "all".
	e.sel = (e.index(c)+1+step+n+1)%(n+1) - 1
}

func (e *CageEditor) nudge(c *cage.Cage, d r3.Vec) {
	i := e.index(c)
	for v := 0; v < c.Resolution.V; v++ {
		for u := 0; u < c.Resolution.U; u++ {
			if i < 0 || i == v*c.Resolution.U+u {
				_ = c.Move(u, v, d)
			}
		}
	}
}
