package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/geom"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/scene"
)

var kindFromString = map[string]scene.Kind{
	"":        scene.KindStrokes,
	"strokes": scene.KindStrokes,
	"mesh":    scene.KindMesh,
}

// ReadJSON decodes a JSON scene document from r.
//
// ReadJSON returns an INVALID_INPUT error if:
//   - The JSON is malformed
//   - An object name is empty, too long or contains control characters
//   - Two objects share an ID
//   - The active object, an active layer or an active frame does not exist
//   - A group references a point that does not exist
//   - A deformer's cage has an out-of-range resolution or the wrong number
//     of control point offsets
//
// Objects without an ID get a fresh UUID. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Scene, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode")
	}

	cam := scene.DefaultCamera()
	if doc.Camera != nil {
		cam = cameraFromDoc(*doc.Camera)
	}
	s := scene.New(cam)
	if doc.Prefs != nil {
		s.Prefs = *doc.Prefs
	}
	if err := s.SetMode(doc.Mode); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "mode")
	}

	seen := map[host.ObjectID]bool{}
	for i, od := range doc.Objects {
		o, err := objectFromDoc(od)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if seen[o.ID] {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "object %d: duplicate id %q", i, o.ID)
		}
		seen[o.ID] = true
		s.Add(o)
	}

	if doc.Active != "" {
		if s.Object(host.ObjectID(doc.Active)) == nil {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "active object %q not found", doc.Active)
		}
		s.Active = host.ObjectID(doc.Active)
	}
	return s, nil
}

// ImportJSON reads a JSON scene file at path.
func ImportJSON(path string) (*scene.Scene, error) {
	if err := apperr.ValidateScenePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func cameraFromDoc(c camera) scene.Camera {
	return scene.Camera{
		Eye:        vecFromDoc(c.Eye),
		Target:     vecFromDoc(c.Target),
		Up:         vecFromDoc(c.Up),
		FovY:       c.FovY,
		HalfHeight: c.HalfHeight,
		Width:      c.Width,
		Height:     c.Height,
	}
}

func vecFromDoc(v vec) r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func objectFromDoc(od object) (*scene.Object, error) {
	if err := apperr.ValidateObjectName(od.Name); err != nil {
		return nil, err
	}
	kind, ok := kindFromString[od.Kind]
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s: unknown kind %q", od.Name, od.Kind)
	}

	o := &scene.Object{
		ID:             host.ObjectID(od.ID),
		Name:           od.Name,
		Kind:           kind,
		Matrix:         geom.Identity(),
		MultiFrameEdit: od.MultiFrameEdit,
		DrawOnBack:     od.DrawOnBack,
		Groups:         map[string][]host.PointRef{},
	}
	if o.ID == "" {
		o.ID = host.ObjectID(uuid.NewString())
	}
	if od.Matrix != nil {
		o.Matrix = geom.Mat4(*od.Matrix)
	}

	for _, ld := range od.Layers {
		l, err := layerFromDoc(ld)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", od.Name, err)
		}
		o.Layers = append(o.Layers, l)
	}

	o.ActiveLayer = -1
	if len(o.Layers) > 0 {
		o.ActiveLayer = 0
	}
	if od.ActiveLayer != nil {
		o.ActiveLayer = *od.ActiveLayer
	}
	if o.ActiveLayer < -1 || o.ActiveLayer >= len(o.Layers) {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s: active layer %d out of range", od.Name, o.ActiveLayer)
	}

	for name, refs := range od.Groups {
		for _, r := range refs {
			pr := host.PointRef{Layer: r[0], Frame: r[1], Stroke: r[2], Point: r[3]}
			if o.Point(pr) == nil {
				return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s: group %q references missing point %v", od.Name, name, r)
			}
			o.Groups[name] = append(o.Groups[name], pr)
		}
	}

	for _, dd := range od.Deformers {
		d := &scene.Deformer{
			ID:        host.DeformerID(dd.ID),
			Name:      dd.Name,
			Temporary: dd.Temporary,
			Group:     dd.Group,
			Layer:     dd.Layer,
			Cage:      dd.Cage,
		}
		if d.ID == "" {
			d.ID = host.DeformerID(uuid.NewString())
		}
		if c := d.Cage; c != nil {
			if !c.Resolution.Valid() || len(c.Deltas) != c.PointCount() {
				return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s: deformer %q has an invalid cage", od.Name, dd.Name)
			}
		}
		o.Deformers = append(o.Deformers, d)
	}
	return o, nil
}

func layerFromDoc(ld layer) (scene.Layer, error) {
	l := scene.Layer{Name: ld.Name, Lock: ld.Lock, Hide: ld.Hide, ActiveFrame: -1}
	for _, fd := range ld.Frames {
		f := scene.Frame{Number: fd.Number, Select: fd.Select}
		for _, sd := range fd.Strokes {
			st := scene.Stroke{Select: sd.Select}
			for _, pd := range sd.Points {
				st.Points = append(st.Points, scene.Point{Co: vecFromDoc(pd.Co), Select: pd.Select})
			}
			f.Strokes = append(f.Strokes, st)
		}
		l.Frames = append(l.Frames, f)
	}
	if len(l.Frames) > 0 {
		l.ActiveFrame = 0
	}
	if ld.ActiveFrame != nil {
		l.ActiveFrame = *ld.ActiveFrame
	}
	if l.ActiveFrame < -1 || l.ActiveFrame >= len(l.Frames) {
		return scene.Layer{}, apperr.New(apperr.ErrCodeInvalidInput, "layer %q: active frame %d out of range", ld.Name, l.ActiveFrame)
	}
	return l, nil
}
