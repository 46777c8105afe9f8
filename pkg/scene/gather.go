package scene

import (
	"errors"
	"fmt"

	"github.com/matzehuels/boxdeform/pkg/host"
)

// Errors returned by SelectedPoints in paint mode.
var (
	ErrNoFrame  = errors.New("no frame to deform")
	ErrNoStroke = errors.New("no stroke found to deform")
)

// SelectedPoints gathers the points a session started in mode operates on:
//
//   - edit: selected points of selected strokes on every unlocked, visible
//     layer, from the active frame and, with multi-frame edit, from every
//     selected frame
//   - object: every point of the active frame of every layer
//   - paint: the most recent stroke of the active layer's active frame, or
//     its first stroke when drawing on back
//
// Positions are in world space.
func (s *Scene) SelectedPoints(id host.ObjectID, mode host.Mode) (host.PointSet, error) {
	o, err := s.object(id)
	if err != nil {
		return host.PointSet{}, err
	}

	var set host.PointSet
	add := func(ref host.PointRef) {
		set.Refs = append(set.Refs, ref)
		set.Positions = append(set.Positions, o.Matrix.MulPoint(o.Point(ref).Co))
	}

	switch mode {
	case host.ModeEdit:
		for li := range o.Layers {
			l := &o.Layers[li]
			if l.Lock || l.Hide || l.Active() == nil {
				continue
			}
			for fi := range l.Frames {
				if !o.editableFrame(l, fi) {
					continue
				}
				f := &l.Frames[fi]
				for si, st := range f.Strokes {
					if !st.Select {
						continue
					}
					for pi, p := range st.Points {
						if p.Select {
							add(host.PointRef{Layer: li, Frame: fi, Stroke: si, Point: pi})
						}
					}
				}
			}
		}

	case host.ModeObject:
		for li := range o.Layers {
			l := &o.Layers[li]
			f := l.Active()
			if f == nil {
				continue
			}
			for si, st := range f.Strokes {
				for pi := range st.Points {
					add(host.PointRef{Layer: li, Frame: l.ActiveFrame, Stroke: si, Point: pi})
				}
			}
		}

	case host.ModePaint:
		if o.ActiveLayer < 0 || o.ActiveLayer >= len(o.Layers) {
			return host.PointSet{}, ErrNoFrame
		}
		l := &o.Layers[o.ActiveLayer]
		f := l.Active()
		if f == nil {
			return host.PointSet{}, ErrNoFrame
		}
		if len(f.Strokes) == 0 {
			return host.PointSet{}, ErrNoStroke
		}
		si := len(f.Strokes) - 1
		if o.DrawOnBack {
			si = 0
		}
		for pi := range f.Strokes[si].Points {
			add(host.PointRef{Layer: o.ActiveLayer, Frame: l.ActiveFrame, Stroke: si, Point: pi})
		}
		set.Layer = l.Name

	default:
		return host.PointSet{}, fmt.Errorf("cannot gather points in %s mode", mode)
	}
	return set, nil
}
