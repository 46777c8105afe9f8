package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/host"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func stroke(sel bool, pts ...r3.Vec) Stroke {
	st := Stroke{Select: sel}
	for _, p := range pts {
		st.Points = append(st.Points, Point{Co: p, Select: sel})
	}
	return st
}

// fixture holds one stroke object with two layers:
//
//	Lines:  frame 0 (active) with a selected unit square and an unselected
//	        segment, frame 1 selected but inactive
//	Locked: locked layer with a selected stroke
func fixture() *Scene {
	s := New(DefaultCamera())
	s.Add(&Object{
		ID:   "pen",
		Name: "Pen",
		Kind: KindStrokes,
		Layers: []Layer{
			{
				Name: "Lines",
				Frames: []Frame{
					{Number: 1, Strokes: []Stroke{
						stroke(true, r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{Y: 1}),
						stroke(false, r3.Vec{X: 3}, r3.Vec{X: 4}),
					}},
					{Number: 10, Select: true, Strokes: []Stroke{
						stroke(true, r3.Vec{X: -2}, r3.Vec{X: -3}),
					}},
				},
				ActiveFrame: 0,
			},
			{
				Name:        "Locked",
				Lock:        true,
				ActiveFrame: 0,
				Frames: []Frame{
					{Number: 1, Strokes: []Stroke{stroke(true, r3.Vec{Y: 5}, r3.Vec{Y: 6})}},
				},
			},
		},
		ActiveLayer: 0,
	})
	return s
}

func TestSelectedPoints(t *testing.T) {
	tests := []struct {
		name   string
		mode   host.Mode
		setup  func(o *Object)
		want   int
		layer  string
		errIs  error
		anyErr bool
	}{
		{name: "edit active frame", mode: host.ModeEdit, want: 4},
		{name: "edit skips hidden", mode: host.ModeEdit, setup: func(o *Object) { o.Layers[0].Hide = true }, want: 0},
		{name: "edit multi-frame keeps active frame", mode: host.ModeEdit, setup: func(o *Object) {
			o.MultiFrameEdit = true
		}, want: 6},
		{name: "edit multi-frame with active selected", mode: host.ModeEdit, setup: func(o *Object) {
			o.MultiFrameEdit = true
			o.Layers[0].Frames[0].Select = true
		}, want: 6},
		{name: "edit multi-frame unselected frame", mode: host.ModeEdit, setup: func(o *Object) {
			o.MultiFrameEdit = true
			o.Layers[0].Frames[1].Select = false
		}, want: 4},
		{name: "object all layers", mode: host.ModeObject, want: 8},
		{name: "object skips frameless", mode: host.ModeObject, setup: func(o *Object) {
			o.Layers[1].ActiveFrame = -1
		}, want: 6},
		{name: "paint last stroke", mode: host.ModePaint, want: 2, layer: "Lines"},
		{name: "paint on back", mode: host.ModePaint, setup: func(o *Object) { o.DrawOnBack = true }, want: 4, layer: "Lines"},
		{name: "paint no frame", mode: host.ModePaint, setup: func(o *Object) { o.Layers[0].ActiveFrame = -1 }, errIs: ErrNoFrame},
		{name: "paint no layer", mode: host.ModePaint, setup: func(o *Object) { o.ActiveLayer = -1 }, errIs: ErrNoFrame},
		{name: "paint no stroke", mode: host.ModePaint, setup: func(o *Object) { o.Layers[0].Frames[0].Strokes = nil }, errIs: ErrNoStroke},
		{name: "sculpt", mode: host.ModeSculpt, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture()
			if tt.setup != nil {
				tt.setup(s.Object("pen"))
			}
			got, err := s.SelectedPoints("pen", tt.mode)
			if tt.errIs != nil || tt.anyErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Fatalf("error = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectedPoints() error = %v", err)
			}
			if got.Len() != tt.want || len(got.Refs) != tt.want {
				t.Errorf("got %d points, want %d", got.Len(), tt.want)
			}
			if got.Layer != tt.layer {
				t.Errorf("Layer = %q, want %q", got.Layer, tt.layer)
			}
		})
	}
}

func TestSelectedPointsWorldSpace(t *testing.T) {
	s := fixture()
	o := s.Object("pen")
	o.Matrix[3] = 10 // translate +10 on X

	got, err := s.SelectedPoints("pen", host.ModePaint)
	if err != nil {
		t.Fatal(err)
	}
	want := []r3.Vec{{X: 13}, {X: 14}}
	if diff := cmp.Diff(want, got.Positions, approx); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionRestoreExact(t *testing.T) {
	s := fixture()
	before, err := s.Selection("pen")
	if err != nil {
		t.Fatal(err)
	}

	target := host.PointRef{Layer: 0, Frame: 0, Stroke: 1, Point: 0}
	if err := s.SetSelection("pen", func(r host.PointRef) bool { return r == target }); err != nil {
		t.Fatal(err)
	}
	mid, _ := s.Selection("pen")
	if len(mid.Points) != 1 || !mid.Points[target] || !mid.Strokes[target.StrokeRef()] || len(mid.Strokes) != 1 {
		t.Fatalf("selection after SetSelection = %+v", mid)
	}

	if err := s.RestoreSelection("pen", before); err != nil {
		t.Fatal(err)
	}
	after, _ := s.Selection("pen")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("selection not restored (-want +got):\n%s", diff)
	}
}

func TestAssignGroupEditableOnly(t *testing.T) {
	s := fixture()
	if err := s.AssignGroup("pen", "g"); err != nil {
		t.Fatal(err)
	}
	refs := s.Object("pen").Groups["g"]
	if len(refs) != 4 {
		t.Fatalf("group has %d points, want 4 (locked layer and inactive frame excluded)", len(refs))
	}
	if err := s.RemoveGroup("pen", "g"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Object("pen").Groups["g"]; ok {
		t.Error("group still present after RemoveGroup")
	}
	if err := s.RemoveGroup("pen", "g"); err != nil {
		t.Errorf("removing a missing group should not fail: %v", err)
	}
}

func TestAssignGroupMultiFrameKeepsActiveFrame(t *testing.T) {
	s := fixture()
	o := s.Object("pen")
	o.MultiFrameEdit = true
	// Only the active frame's unselected segment is selected.
	if err := s.SetSelection("pen", func(r host.PointRef) bool {
		return r.Layer == 0 && r.Frame == 0 && r.Stroke == 1
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.AssignGroup("pen", "g"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Group("pen", "g")
	if err != nil {
		t.Fatal(err)
	}
	want := []host.PointRef{{Stroke: 1, Point: 0}, {Stroke: 1, Point: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
}

func squareCage(t *testing.T, s *Scene) *cage.Cage {
	t.Helper()
	pts, err := s.SelectedPoints("pen", host.ModeEdit)
	if err != nil {
		t.Fatal(err)
	}
	c, err := cage.Build(pts.Positions, s.View(), cage.Options{Interpolation: cage.Linear, MinPoints: 2})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDeformerStack(t *testing.T) {
	s := fixture()
	o := s.Object("pen")
	o.Deformers = []*Deformer{{ID: "user", Name: "Lattice"}}

	c := squareCage(t, s)
	id, err := s.CreateDeformer("pen", c, "", "")
	if err != nil {
		t.Fatal(err)
	}
	infos := s.Deformers("pen")
	if len(infos) != 2 || infos[0].ID != id || !infos[0].Temporary || infos[1].Temporary {
		t.Fatalf("deformers = %+v, want temporary deformer on top", infos)
	}
	if !s.Alive("pen", id) {
		t.Error("deformer should be alive")
	}
	if err := s.Discard("pen", id); err != nil {
		t.Fatal(err)
	}
	if s.Alive("pen", id) {
		t.Error("deformer alive after Discard")
	}
	if err := s.Discard("pen", id); err == nil {
		t.Error("discarding twice should fail")
	}
}

func TestBakeGroup(t *testing.T) {
	s := fixture()
	if err := s.AssignGroup("pen", "g"); err != nil {
		t.Fatal(err)
	}
	c := squareCage(t, s)
	id, err := s.CreateDeformer("pen", c, "g", "")
	if err != nil {
		t.Fatal(err)
	}
	// Drag the top-right control point half a cage width to the right.
	if err := c.Move(1, 1, r3.Vec{X: 0.5}); err != nil {
		t.Fatal(err)
	}

	live, err := s.Evaluate("pen")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r3.Vec{X: 1.5, Y: 1}, live.Positions[2], approx); diff != "" {
		t.Errorf("evaluated corner mismatch (-want +got):\n%s", diff)
	}
	if got := s.Object("pen").Layers[0].Frames[0].Strokes[0].Points[2].Co; got != (r3.Vec{X: 1, Y: 1}) {
		t.Errorf("stored point changed before bake: %v", got)
	}

	if err := s.Bake("pen", id); err != nil {
		t.Fatal(err)
	}
	o := s.Object("pen")
	if diff := cmp.Diff(r3.Vec{X: 1.5, Y: 1}, o.Layers[0].Frames[0].Strokes[0].Points[2].Co, approx); diff != "" {
		t.Errorf("baked corner mismatch (-want +got):\n%s", diff)
	}
	if got := o.Layers[0].Frames[0].Strokes[1].Points[0].Co; got != (r3.Vec{X: 3}) {
		t.Errorf("ungrouped point moved: %v", got)
	}
	if s.Alive("pen", id) {
		t.Error("deformer alive after Bake")
	}
}

func TestBakeLayerRestriction(t *testing.T) {
	s := fixture()
	c := squareCage(t, s)
	id, err := s.CreateDeformer("pen", c, "", "Locked")
	if err != nil {
		t.Fatal(err)
	}
	c.Deltas[0] = r3.Vec{X: 1}
	if err := s.Bake("pen", id); err != nil {
		t.Fatal(err)
	}
	if got := s.Object("pen").Layers[0].Frames[0].Strokes[0].Points[0].Co; got != (r3.Vec{}) {
		t.Errorf("point outside the layer moved: %v", got)
	}
}

func TestCreateDeformerRejectsMesh(t *testing.T) {
	s := fixture()
	s.Add(&Object{ID: "cube", Name: "Cube", Kind: KindMesh})
	if s.IsDrawable("cube") {
		t.Error("mesh reported drawable")
	}
	if _, err := s.CreateDeformer("cube", &cage.Cage{Name: cage.Name}, "", ""); err == nil {
		t.Error("expected error for mesh object")
	}
}

func TestActiveObject(t *testing.T) {
	s := New(DefaultCamera())
	if _, ok := s.ActiveObject(); ok {
		t.Error("empty scene has an active object")
	}
	s.Add(&Object{ID: "a", Kind: KindStrokes})
	s.Add(&Object{ID: "b", Kind: KindStrokes})
	if id, ok := s.ActiveObject(); !ok || id != "a" {
		t.Errorf("ActiveObject() = %q, %v; want a", id, ok)
	}
	if s.Object("a").Matrix[0] != 1 {
		t.Error("zero matrix should default to identity")
	}
}
