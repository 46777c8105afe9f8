package binding

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxdeform/pkg/host"
)

const target host.ObjectID = "gp"

// fakeSelector keeps a flat selection and a group table.
type fakeSelector struct {
	selected  map[host.PointRef]bool
	strokes   map[host.StrokeRef]bool
	groups    map[string][]host.PointRef
	assignErr error
	// skip lists points AssignGroup leaves out of the group.
	skip  map[host.PointRef]bool
	calls []string
}

func newFakeSelector(refs []host.PointRef, selected ...host.PointRef) *fakeSelector {
	f := &fakeSelector{
		selected: make(map[host.PointRef]bool),
		strokes:  make(map[host.StrokeRef]bool),
		groups:   make(map[string][]host.PointRef),
	}
	for _, r := range refs {
		f.selected[r] = false
		f.strokes[r.StrokeRef()] = false
	}
	for _, r := range selected {
		f.selected[r] = true
		f.strokes[r.StrokeRef()] = true
	}
	return f
}

func (f *fakeSelector) Selection(host.ObjectID) (host.Selection, error) {
	f.calls = append(f.calls, "snapshot")
	sel := host.Selection{Points: map[host.PointRef]bool{}, Strokes: map[host.StrokeRef]bool{}}
	for r, v := range f.selected {
		sel.Points[r] = v
	}
	for r, v := range f.strokes {
		sel.Strokes[r] = v
	}
	return sel, nil
}

func (f *fakeSelector) SetSelection(_ host.ObjectID, keep func(host.PointRef) bool) error {
	f.calls = append(f.calls, "set")
	for r := range f.strokes {
		f.strokes[r] = false
	}
	for r := range f.selected {
		f.selected[r] = keep(r)
		if f.selected[r] {
			f.strokes[r.StrokeRef()] = true
		}
	}
	return nil
}

func (f *fakeSelector) RestoreSelection(_ host.ObjectID, sel host.Selection) error {
	f.calls = append(f.calls, "restore")
	for r, v := range sel.Points {
		f.selected[r] = v
	}
	for r, v := range sel.Strokes {
		f.strokes[r] = v
	}
	return nil
}

func (f *fakeSelector) AssignGroup(_ host.ObjectID, name string) error {
	f.calls = append(f.calls, "assign")
	if f.assignErr != nil {
		return f.assignErr
	}
	var refs []host.PointRef
	for _, r := range sortedRefs(f.selected) {
		if f.selected[r] && !f.skip[r] {
			refs = append(refs, r)
		}
	}
	f.groups[name] = refs
	return nil
}

func (f *fakeSelector) Group(_ host.ObjectID, name string) ([]host.PointRef, error) {
	return f.groups[name], nil
}

func (f *fakeSelector) RemoveGroup(_ host.ObjectID, name string) error {
	f.calls = append(f.calls, "remove")
	delete(f.groups, name)
	return nil
}

func sortedRefs(m map[host.PointRef]bool) []host.PointRef {
	var out []host.PointRef
	for s := 0; s < 4; s++ {
		for p := 0; p < 4; p++ {
			r := host.PointRef{Stroke: s, Point: p}
			if _, ok := m[r]; ok {
				out = append(out, r)
			}
		}
	}
	return out
}

func allRefs() []host.PointRef {
	var refs []host.PointRef
	for s := 0; s < 3; s++ {
		for p := 0; p < 3; p++ {
			refs = append(refs, host.PointRef{Stroke: s, Point: p})
		}
	}
	return refs
}

func TestBindObjectMode(t *testing.T) {
	f := newFakeSelector(allRefs())
	h, err := Bind(f, target, host.ModeObject, host.PointSet{Refs: allRefs()})
	if err != nil {
		t.Fatal(err)
	}
	if h.Group != "" {
		t.Errorf("Group = %q, want whole-object binding", h.Group)
	}
	if len(f.calls) != 0 {
		t.Errorf("object binding touched the selector: %v", f.calls)
	}
}

func TestBindEditMode(t *testing.T) {
	sel := []host.PointRef{{Stroke: 1, Point: 0}, {Stroke: 1, Point: 2}}
	f := newFakeSelector(allRefs(), sel...)
	f.groups[GroupName] = []host.PointRef{{Stroke: 2, Point: 2}} // stale

	h, err := Bind(f, target, host.ModeEdit, host.PointSet{Refs: sel})
	if err != nil {
		t.Fatal(err)
	}
	if h.Group != GroupName {
		t.Errorf("Group = %q, want %q", h.Group, GroupName)
	}
	if diff := cmp.Diff(sel, f.groups[GroupName]); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
}

func TestBindPaintRestoresSelection(t *testing.T) {
	// The user has a different selection than the last stroke.
	prior := []host.PointRef{{Stroke: 0, Point: 1}}
	f := newFakeSelector(allRefs(), prior...)
	before, _ := f.Selection(target)

	stroke := []host.PointRef{{Stroke: 2, Point: 0}, {Stroke: 2, Point: 1}, {Stroke: 2, Point: 2}}
	h, err := Bind(f, target, host.ModePaint, host.PointSet{Refs: stroke, Layer: "Lines"})
	if err != nil {
		t.Fatal(err)
	}
	if h.Layer != "Lines" {
		t.Errorf("Layer = %q, want Lines", h.Layer)
	}
	if diff := cmp.Diff(stroke, f.groups[GroupName]); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	after, _ := f.Selection(target)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("selection not restored (-before +after):\n%s", diff)
	}
}

func TestBindPaintRestoresOnError(t *testing.T) {
	prior := []host.PointRef{{Stroke: 0, Point: 1}}
	f := newFakeSelector(allRefs(), prior...)
	f.assignErr = errors.New("group api unavailable")
	before, _ := f.Selection(target)

	_, err := Bind(f, target, host.ModePaint, host.PointSet{Refs: []host.PointRef{{Stroke: 2, Point: 0}}})
	if !errors.Is(err, f.assignErr) {
		t.Fatalf("Bind() error = %v, want %v", err, f.assignErr)
	}
	after, _ := f.Selection(target)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("selection not restored after failure (-before +after):\n%s", diff)
	}
}

func TestBindGroupMismatch(t *testing.T) {
	stroke := []host.PointRef{{Stroke: 2, Point: 0}, {Stroke: 2, Point: 1}}
	f := newFakeSelector(allRefs())
	f.skip = map[host.PointRef]bool{stroke[1]: true}

	_, err := Bind(f, target, host.ModePaint, host.PointSet{Refs: stroke, Layer: "Lines"})
	if !errors.Is(err, ErrGroupMismatch) {
		t.Fatalf("Bind() error = %v, want %v", err, ErrGroupMismatch)
	}
	if _, ok := f.groups[GroupName]; ok {
		t.Error("partial group left behind")
	}

	f = newFakeSelector(allRefs(), stroke[0])
	_, err = Bind(f, target, host.ModeEdit, host.PointSet{Refs: stroke})
	if !errors.Is(err, ErrGroupMismatch) {
		t.Fatalf("Bind(edit) error = %v, want %v", err, ErrGroupMismatch)
	}
}

func TestBindRejectsOtherModes(t *testing.T) {
	for _, m := range []host.Mode{host.ModeSculpt, host.ModeCageEdit, host.Mode(99)} {
		if _, err := Bind(newFakeSelector(nil), target, m, host.PointSet{}); err == nil {
			t.Errorf("Bind(%v) should fail", m)
		}
	}
}

func TestUnbind(t *testing.T) {
	f := newFakeSelector(allRefs())
	f.groups[GroupName] = allRefs()
	if err := Unbind(f, &Handle{Target: target, Group: GroupName}); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.groups[GroupName]; ok {
		t.Error("group still present after Unbind")
	}
	if err := Unbind(f, &Handle{Target: target}); err != nil {
		t.Errorf("whole-object Unbind error = %v", err)
	}
	if err := Unbind(f, nil); err != nil {
		t.Errorf("nil Unbind error = %v", err)
	}
}

func TestWithSelectionPanicRestores(t *testing.T) {
	f := newFakeSelector(allRefs(), host.PointRef{Stroke: 1, Point: 1})
	before, _ := f.Selection(target)
	func() {
		defer func() { _ = recover() }()
		_ = WithSelection(f, target, func(host.PointRef) bool { return true }, func() error {
			panic("boom")
		})
	}()
	after, _ := f.Selection(target)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("selection not restored after panic (-before +after):\n%s", diff)
	}
}
