package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/cage"
	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/scene"
)

const penScene = `{
  "mode": "edit",
  "active": "pen",
  "camera": {"eye": [0, 0, 10], "target": [0, 0, 0], "up": [0, 1, 0], "half_height": 2, "width": 80, "height": 40},
  "objects": [
    {"id": "cube", "name": "Cube", "kind": "mesh"},
    {
      "id": "pen",
      "name": "Pen",
      "draw_on_back": true,
      "layers": [
        {"name": "Lines", "frames": [
          {"number": 1, "strokes": [
            {"select": true, "points": [
              {"co": [0, 0, 0], "select": true},
              {"co": [1, 0, 0], "select": true},
              {"co": [1, 1, 0]}
            ]}
          ]}
        ]},
        {"name": "Empty", "active_frame": -1, "frames": []}
      ],
      "groups": {"keep": [[0, 0, 0, 2]]},
      "deformers": [{"id": "user", "name": "Lattice"}]
    }
  ]
}`

func TestReadJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(penScene))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if s.Mode() != host.ModeEdit {
		t.Errorf("Mode() = %v, want edit", s.Mode())
	}
	if id, _ := s.ActiveObject(); id != "pen" {
		t.Errorf("active = %q, want pen", id)
	}
	if s.Camera.HalfHeight != 2 || s.Camera.Eye != (r3.Vec{Z: 10}) {
		t.Errorf("camera = %+v", s.Camera)
	}
	if s.Prefs != scene.New(scene.DefaultCamera()).Prefs {
		t.Errorf("prefs = %+v, want host defaults", s.Prefs)
	}

	pen := s.Object("pen")
	if pen.Kind != scene.KindStrokes || !pen.DrawOnBack || pen.ActiveLayer != 0 {
		t.Errorf("pen = %+v", pen)
	}
	if pen.Layers[0].ActiveFrame != 0 || pen.Layers[1].ActiveFrame != -1 {
		t.Errorf("active frames = %d, %d; want 0, -1", pen.Layers[0].ActiveFrame, pen.Layers[1].ActiveFrame)
	}
	if got := pen.PointCount(); got != 3 {
		t.Errorf("PointCount() = %d, want 3", got)
	}
	want := []host.PointRef{{Layer: 0, Frame: 0, Stroke: 0, Point: 2}}
	if diff := cmp.Diff(want, pen.Groups["keep"]); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	if len(pen.Deformers) != 1 || pen.Deformers[0].Temporary || pen.Deformers[0].Cage != nil {
		t.Errorf("deformers = %+v", pen.Deformers)
	}
	if s.IsDrawable("cube") {
		t.Error("mesh should not be drawable")
	}
}

func TestReadJSONGeneratesIDs(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(`{"objects": [{"name": "A"}, {"name": "B"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	a, b := s.Objects[0].ID, s.Objects[1].ID
	if a == "" || b == "" || a == b {
		t.Errorf("generated ids = %q, %q", a, b)
	}
	if s.Objects[0].ActiveLayer != -1 {
		t.Errorf("ActiveLayer = %d, want -1 without layers", s.Objects[0].ActiveLayer)
	}
	if id, _ := s.ActiveObject(); id != a {
		t.Errorf("first object should be active, got %q", id)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"objects": [`},
		{"unknown mode", `{"mode": "weight", "objects": []}`},
		{"empty name", `{"objects": [{"name": ""}]}`},
		{"duplicate id", `{"objects": [{"id": "a", "name": "A"}, {"id": "a", "name": "B"}]}`},
		{"unknown kind", `{"objects": [{"name": "A", "kind": "curve"}]}`},
		{"missing active", `{"active": "ghost", "objects": [{"name": "A"}]}`},
		{"active layer range", `{"objects": [{"name": "A", "active_layer": 3}]}`},
		{"active frame range", `{"objects": [{"name": "A", "layers": [{"name": "L", "active_frame": 1, "frames": [{"number": 1, "strokes": []}]}]}]}`},
		{"missing group point", `{"objects": [{"name": "A", "groups": {"g": [[0, 0, 0, 0]]}}]}`},
		{"bad cage", `{"objects": [{"name": "A", "deformers": [{"name": "L", "cage": {"resolution": {"u": 30, "v": 2, "w": 1}}}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
				t.Errorf("ReadJSON() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(penScene))
	if err != nil {
		t.Fatal(err)
	}
	c, err := cage.Build([]r3.Vec{{}, {X: 1, Y: 1}}, s.View(), cage.Options{Interpolation: cage.Smooth})
	if err != nil {
		t.Fatal(err)
	}
	c.Deltas[3] = r3.Vec{X: 0.25}
	if _, err := s.CreateDeformer("pen", c, "keep", "Lines"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(s, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-import error = %v", err)
	}

	opts := cmp.Options{
		cmp.AllowUnexported(scene.Scene{}),
		cmpopts.EquateApprox(0, 1e-12),
	}
	if diff := cmp.Diff(s, got, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(penScene), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}

	out := filepath.Join(dir, "out.json")
	if err := ExportJSON(s, out); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if _, err := ImportJSON(out); err != nil {
		t.Errorf("re-import error = %v", err)
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportJSON(filepath.Join(dir, "scene.txt")); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("bad extension error = %v, want INVALID_INPUT", err)
	}
}
