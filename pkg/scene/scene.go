// Package scene is an in-memory host for box deform sessions.
//
// A [Scene] holds stroke-based drawable objects (layers of frames of strokes
// of points), a camera, the interaction mode and the ambient interaction
// settings. It implements every collaborator contract a session consumes:
// point gathering per mode, selection snapshots, point groups, mode
// switching, the viewport, a deformer stack with lattice bake and discard,
// and the preference store.
//
// Stroke point coordinates are stored in object space; everything the scene
// hands to a session is in world space.
//
// A Scene is driven by a single session loop and is not safe for concurrent
// use.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/geom"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/prefs"
)

// Kind is the type of a scene object.
type Kind string

const (
	// KindStrokes is a drawable stroke object. Only these can be deformed.
	KindStrokes Kind = "strokes"
	// KindMesh is any other geometry.
	KindMesh Kind = "mesh"
)

// Point is one stroke point in object space.
type Point struct {
	Co     r3.Vec
	Select bool
}

// Stroke is an ordered run of points.
type Stroke struct {
	Points []Point
	Select bool
}

// Frame holds the strokes drawn on one frame number.
type Frame struct {
	Number  int
	Strokes []Stroke
	Select  bool
}

// Layer is a stack of frames. ActiveFrame indexes Frames, or is -1 when the
// current frame has no drawing on this layer.
type Layer struct {
	Name        string
	Frames      []Frame
	ActiveFrame int
	Lock        bool
	Hide        bool
}

// Active returns the active frame, or nil.
func (l *Layer) Active() *Frame {
	if l.ActiveFrame < 0 || l.ActiveFrame >= len(l.Frames) {
		return nil
	}
	return &l.Frames[l.ActiveFrame]
}

// Object is a scene object.
type Object struct {
	ID     host.ObjectID
	Name   string
	Kind   Kind
	Matrix geom.Mat4
	Layers []Layer
	// ActiveLayer indexes Layers, or is -1.
	ActiveLayer int
	// MultiFrameEdit makes edit-mode gathering use every selected frame.
	MultiFrameEdit bool
	// DrawOnBack makes paint mode target the first stroke of a frame.
	DrawOnBack bool
	Groups     map[string][]host.PointRef
	// Deformers is the deformer stack, evaluated first to last.
	Deformers []*Deformer
}

// Scene is the in-memory host.
type Scene struct {
	Objects []*Object
	Active  host.ObjectID
	Camera  Camera
	Prefs   prefs.Settings

	mode host.Mode
}

// New returns an empty scene in object mode with the host's factory
// preferences.
func New(cam Camera) *Scene {
	return &Scene{Camera: cam, Prefs: prefs.HostDefaults}
}

// Object returns the object with the given id, or nil.
func (s *Scene) Object(id host.ObjectID) *Object {
	for _, o := range s.Objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// ObjectByName returns the first object named name, or nil.
func (s *Scene) ObjectByName(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) object(id host.ObjectID) (*Object, error) {
	o := s.Object(id)
	if o == nil {
		return nil, fmt.Errorf("object %q not found", id)
	}
	return o, nil
}

// Add appends o to the scene and makes it active when nothing is. A zero
// matrix is replaced by the identity.
func (s *Scene) Add(o *Object) {
	if o.Matrix == (geom.Mat4{}) {
		o.Matrix = geom.Identity()
	}
	if o.Groups == nil {
		o.Groups = map[string][]host.PointRef{}
	}
	s.Objects = append(s.Objects, o)
	if s.Active == "" {
		s.Active = o.ID
	}
}

// ActiveObject returns the active object's id.
func (s *Scene) ActiveObject() (host.ObjectID, bool) {
	if s.Active == "" || s.Object(s.Active) == nil {
		return "", false
	}
	return s.Active, true
}

// IsDrawable reports whether id is a stroke object.
func (s *Scene) IsDrawable(id host.ObjectID) bool {
	o := s.Object(id)
	return o != nil && o.Kind == KindStrokes
}

// Mode returns the current interaction mode.
func (s *Scene) Mode() host.Mode { return s.mode }

// SetMode switches the interaction mode.
func (s *Scene) SetMode(m host.Mode) error {
	if _, err := host.ParseMode(m.String()); err != nil {
		return err
	}
	s.mode = m
	return nil
}

// View returns the current viewport.
func (s *Scene) View() geom.View { return s.Camera.View() }

// Settings returns the ambient interaction settings.
func (s *Scene) Settings() prefs.Settings { return s.Prefs }

// SetSettings replaces the ambient interaction settings.
func (s *Scene) SetSettings(p prefs.Settings) { s.Prefs = p }

// Each calls fn for every point of o in layer, frame, stroke, point order.
func (o *Object) Each(fn func(ref host.PointRef, p *Point)) {
	for li := range o.Layers {
		l := &o.Layers[li]
		for fi := range l.Frames {
			f := &l.Frames[fi]
			for si := range f.Strokes {
				st := &f.Strokes[si]
				for pi := range st.Points {
					fn(host.PointRef{Layer: li, Frame: fi, Stroke: si, Point: pi}, &st.Points[pi])
				}
			}
		}
	}
}

// Point returns the point at ref, or nil.
func (o *Object) Point(ref host.PointRef) *Point {
	if ref.Layer < 0 || ref.Layer >= len(o.Layers) {
		return nil
	}
	l := &o.Layers[ref.Layer]
	if ref.Frame < 0 || ref.Frame >= len(l.Frames) {
		return nil
	}
	f := &l.Frames[ref.Frame]
	if ref.Stroke < 0 || ref.Stroke >= len(f.Strokes) {
		return nil
	}
	st := &f.Strokes[ref.Stroke]
	if ref.Point < 0 || ref.Point >= len(st.Points) {
		return nil
	}
	return &st.Points[ref.Point]
}

// PointCount returns the number of points on every layer and frame.
func (o *Object) PointCount() int {
	n := 0
	o.Each(func(host.PointRef, *Point) { n++ })
	return n
}
