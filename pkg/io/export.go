package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/scene"
)

// WriteJSON encodes s as an indented JSON scene document and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s *scene.Scene, w io.Writer) error {
	prefs := s.Prefs
	out := document{
		Mode:    s.Mode(),
		Active:  string(s.Active),
		Camera:  cameraToDoc(s.Camera),
		Prefs:   &prefs,
		Objects: make([]object, len(s.Objects)),
	}
	for i, o := range s.Objects {
		out.Objects[i] = objectToDoc(o)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes s to a JSON file at path.
func ExportJSON(s *scene.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

func vecToDoc(v r3.Vec) vec { return vec{v.X, v.Y, v.Z} }

func cameraToDoc(c scene.Camera) *camera {
	return &camera{
		Eye:        vecToDoc(c.Eye),
		Target:     vecToDoc(c.Target),
		Up:         vecToDoc(c.Up),
		FovY:       c.FovY,
		HalfHeight: c.HalfHeight,
		Width:      c.Width,
		Height:     c.Height,
	}
}

func objectToDoc(o *scene.Object) object {
	m := [16]float64(o.Matrix)
	active := o.ActiveLayer
	od := object{
		ID:             string(o.ID),
		Name:           o.Name,
		Kind:           string(o.Kind),
		Matrix:         &m,
		ActiveLayer:    &active,
		MultiFrameEdit: o.MultiFrameEdit,
		DrawOnBack:     o.DrawOnBack,
	}
	for _, l := range o.Layers {
		od.Layers = append(od.Layers, layerToDoc(l))
	}
	if len(o.Groups) > 0 {
		od.Groups = make(map[string][]ref, len(o.Groups))
		for name, refs := range o.Groups {
			out := make([]ref, len(refs))
			for i, r := range refs {
				out[i] = ref{r.Layer, r.Frame, r.Stroke, r.Point}
			}
			od.Groups[name] = out
		}
	}
	for _, d := range o.Deformers {
		od.Deformers = append(od.Deformers, deformer{
			ID:        string(d.ID),
			Name:      d.Name,
			Temporary: d.Temporary,
			Group:     d.Group,
			Layer:     d.Layer,
			Cage:      d.Cage,
		})
	}
	return od
}

func layerToDoc(l scene.Layer) layer {
	active := l.ActiveFrame
	ld := layer{Name: l.Name, ActiveFrame: &active, Lock: l.Lock, Hide: l.Hide, Frames: make([]frame, len(l.Frames))}
	for i, f := range l.Frames {
		fd := frame{Number: f.Number, Select: f.Select, Strokes: make([]stroke, len(f.Strokes))}
		for j, st := range f.Strokes {
			sd := stroke{Select: st.Select, Points: make([]point, len(st.Points))}
			for k, p := range st.Points {
				sd.Points[k] = point{Co: vecToDoc(p.Co), Select: p.Select}
			}
			fd.Strokes[j] = sd
		}
		ld.Frames[i] = fd
	}
	return ld
}
