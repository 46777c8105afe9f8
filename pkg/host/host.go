// Package host defines the vocabulary shared between a box deform session and
// the environment hosting it: interaction modes, object and point identities,
// point sets, selection snapshots and deformer handles.
//
// The collaborator contracts themselves are declared by the packages that
// consume them (binding, prefs, session); [scene] provides an in-memory
// implementation of all of them.
//
// [scene]: github.com/matzehuels/boxdeform/pkg/scene
package host

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the interaction context of the host.
type Mode int

const (
	// ModeObject operates on whole objects.
	ModeObject Mode = iota
	// ModeEdit edits individual stroke points.
	ModeEdit
	// ModePaint draws new strokes.
	ModePaint
	// ModeSculpt reshapes strokes with brushes. Sessions ignore it.
	ModeSculpt
	// ModeCageEdit edits the control points of a cage.
	ModeCageEdit
)

var modeNames = map[Mode]string{
	ModeObject:   "object",
	ModeEdit:     "edit",
	ModePaint:    "paint",
	ModeSculpt:   "sculpt",
	ModeCageEdit: "cage-edit",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ObjectID identifies an object in the host scene.
type ObjectID string

// DeformerID identifies a deformer attached to an object.
type DeformerID string

// PointRef addresses one stroke point of a drawable object.
type PointRef struct {
	Layer  int `json:"layer"`
	Frame  int `json:"frame"`
	Stroke int `json:"stroke"`
	Point  int `json:"point"`
}

// StrokeRef returns the stroke containing r.
func (r PointRef) StrokeRef() StrokeRef {
	return StrokeRef{Layer: r.Layer, Frame: r.Frame, Stroke: r.Stroke}
}

// StrokeRef addresses one stroke of a drawable object.
type StrokeRef struct {
	Layer  int `json:"layer"`
	Frame  int `json:"frame"`
	Stroke int `json:"stroke"`
}

// PointSet is an ordered set of points gathered from a selection context,
// with their world-space positions.
type PointSet struct {
	Refs      []PointRef
	Positions []r3.Vec
	// Layer, when set, is the single layer the points were gathered from.
	Layer string
}

// Len returns the number of points in the set.
func (s PointSet) Len() int { return len(s.Positions) }

// Selection is a snapshot of the selection flags of an object.
type Selection struct {
	Points  map[PointRef]bool
	Strokes map[StrokeRef]bool
}

// DeformerInfo describes a deformer attached to an object.
type DeformerInfo struct {
	ID        DeformerID
	Name      string
	Lattice   bool
	Temporary bool
}
