package scene

import (
	"github.com/matzehuels/boxdeform/pkg/host"
)

// Selection snapshots the selection flags of every point and stroke of id.
func (s *Scene) Selection(id host.ObjectID) (host.Selection, error) {
	o, err := s.object(id)
	if err != nil {
		return host.Selection{}, err
	}
	sel := host.Selection{
		Points:  map[host.PointRef]bool{},
		Strokes: map[host.StrokeRef]bool{},
	}
	o.Each(func(ref host.PointRef, p *Point) {
		if p.Select {
			sel.Points[ref] = true
		}
	})
	o.eachStroke(func(ref host.StrokeRef, st *Stroke) {
		if st.Select {
			sel.Strokes[ref] = true
		}
	})
	return sel, nil
}

// SetSelection selects exactly the points keep accepts. A stroke is
// selected when any of its points is.
func (s *Scene) SetSelection(id host.ObjectID, keep func(host.PointRef) bool) error {
	o, err := s.object(id)
	if err != nil {
		return err
	}
	o.eachStroke(func(ref host.StrokeRef, st *Stroke) {
		st.Select = false
		for pi := range st.Points {
			pr := host.PointRef{Layer: ref.Layer, Frame: ref.Frame, Stroke: ref.Stroke, Point: pi}
			st.Points[pi].Select = keep(pr)
			st.Select = st.Select || st.Points[pi].Select
		}
	})
	return nil
}

// RestoreSelection reinstates sel exactly; flags absent from sel are
// cleared.
func (s *Scene) RestoreSelection(id host.ObjectID, sel host.Selection) error {
	o, err := s.object(id)
	if err != nil {
		return err
	}
	o.Each(func(ref host.PointRef, p *Point) { p.Select = sel.Points[ref] })
	o.eachStroke(func(ref host.StrokeRef, st *Stroke) { st.Select = sel.Strokes[ref] })
	return nil
}

// AssignGroup (re)creates group name from the selected points of editable
// frames: the active frame (plus, with multi-frame edit, the selected frames)
// of every unlocked, visible layer.
func (s *Scene) AssignGroup(id host.ObjectID, name string) error {
	o, err := s.object(id)
	if err != nil {
		return err
	}
	var refs []host.PointRef
	o.Each(func(ref host.PointRef, p *Point) {
		if p.Select && o.editable(ref) {
			refs = append(refs, ref)
		}
	})
	if o.Groups == nil {
		o.Groups = map[string][]host.PointRef{}
	}
	o.Groups[name] = refs
	return nil
}

// Group returns the points of group name, nil when it does not exist.
func (s *Scene) Group(id host.ObjectID, name string) ([]host.PointRef, error) {
	o, err := s.object(id)
	if err != nil {
		return nil, err
	}
	return o.Groups[name], nil
}

// RemoveGroup deletes group name.
func (s *Scene) RemoveGroup(id host.ObjectID, name string) error {
	o, err := s.object(id)
	if err != nil {
		return err
	}
	delete(o.Groups, name)
	return nil
}

func (o *Object) eachStroke(fn func(ref host.StrokeRef, st *Stroke)) {
	for li := range o.Layers {
		l := &o.Layers[li]
		for fi := range l.Frames {
			f := &l.Frames[fi]
			for si := range f.Strokes {
				fn(host.StrokeRef{Layer: li, Frame: fi, Stroke: si}, &f.Strokes[si])
			}
		}
	}
}

func (o *Object) editable(ref host.PointRef) bool {
	l := &o.Layers[ref.Layer]
	if l.Lock || l.Hide {
		return false
	}
	return o.editableFrame(l, ref.Frame)
}

// editableFrame reports whether frame fi of l takes edits. The active frame
// always does; multi-frame edit adds every selected frame.
func (o *Object) editableFrame(l *Layer, fi int) bool {
	if fi == l.ActiveFrame {
		return true
	}
	return o.MultiFrameEdit && l.Frames[fi].Select
}
