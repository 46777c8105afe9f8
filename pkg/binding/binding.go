// Package binding restricts a cage's influence to the points a session was
// started on.
//
// A binding is a named point group on the target object holding exactly the
// bound points; the deformer reads the group to decide which points it
// displaces. Whole-object sessions bind without a group (every point is
// influenced).
//
// The host can only fill a group from its current selection, so binding an
// arbitrary point set temporarily replaces the selection. [WithSelection]
// treats the selection as a scoped resource: it is snapshotted before the
// change and restored on every exit path, including errors and panics.
package binding

import (
	"errors"
	"fmt"

	"github.com/matzehuels/boxdeform/pkg/host"
)

// GroupName is the point group holding the bound points.
const GroupName = "lattice_cage_deform_group"

// ErrGroupMismatch is returned when the host filled the group with other
// points than the ones being bound.
var ErrGroupMismatch = errors.New("bound group does not match points")

// Selector is the point-storage collaborator used to build bindings.
type Selector interface {
	// Selection returns a snapshot of the object's selection flags.
	Selection(id host.ObjectID) (host.Selection, error)
	// SetSelection selects exactly the points for which keep returns true.
	SetSelection(id host.ObjectID, keep func(host.PointRef) bool) error
	// RestoreSelection reinstates a snapshot taken with Selection.
	RestoreSelection(id host.ObjectID, sel host.Selection) error
	// AssignGroup (re)creates group name from the currently selected points.
	AssignGroup(id host.ObjectID, name string) error
	// Group returns the points of group name.
	Group(id host.ObjectID, name string) ([]host.PointRef, error)
	// RemoveGroup deletes group name. Missing groups are not an error.
	RemoveGroup(id host.ObjectID, name string) error
}

// Handle is a live binding.
type Handle struct {
	Target host.ObjectID
	// Group is empty for whole-object bindings.
	Group string
	// Layer restricts influence to one layer when set.
	Layer string
	// Count is the number of bound points.
	Count int
}

// Bind associates points with a cage on target. mode is the session's
// originating mode and decides how the group is filled:
//
//   - object: no group, the whole object is influenced
//   - edit: the selection already equals points, so the group is assigned directly
//   - paint: the last stroke is not selected, so the selection is swapped for
//     the stroke's points around the assignment and then restored
//
// Any stale group from an earlier run is replaced. The assigned group is read
// back and must hold exactly points; otherwise it is removed and
// [ErrGroupMismatch] is returned.
func Bind(sel Selector, target host.ObjectID, mode host.Mode, points host.PointSet) (*Handle, error) {
	h := &Handle{Target: target, Count: points.Len()}

	switch mode {
	case host.ModeObject:
		return h, nil
	case host.ModeEdit:
		h.Group = GroupName
		if err := sel.AssignGroup(target, GroupName); err != nil {
			return nil, fmt.Errorf("assign group: %w", err)
		}
	case host.ModePaint:
		h.Group = GroupName
		h.Layer = points.Layer
		keep := make(map[host.PointRef]bool, len(points.Refs))
		for _, r := range points.Refs {
			keep[r] = true
		}
		err := WithSelection(sel, target, func(r host.PointRef) bool { return keep[r] }, func() error {
			return sel.AssignGroup(target, GroupName)
		})
		if err != nil {
			return nil, fmt.Errorf("assign group: %w", err)
		}
	case host.ModeSculpt, host.ModeCageEdit:
		return nil, fmt.Errorf("cannot bind points in %s mode", mode)
	default:
		return nil, fmt.Errorf("unknown mode %v", mode)
	}
	if err := verify(sel, h, points.Refs); err != nil {
		if rerr := Unbind(sel, h); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return nil, err
	}
	return h, nil
}

// verify checks that the group of h holds exactly refs.
func verify(sel Selector, h *Handle, refs []host.PointRef) error {
	got, err := sel.Group(h.Target, h.Group)
	if err != nil {
		return fmt.Errorf("read group: %w", err)
	}
	want := make(map[host.PointRef]bool, len(refs))
	for _, r := range refs {
		want[r] = true
	}
	for _, r := range got {
		if !want[r] {
			return fmt.Errorf("%w: unexpected point %v", ErrGroupMismatch, r)
		}
		delete(want, r)
	}
	if len(want) != 0 {
		return fmt.Errorf("%w: %d of %d points missing", ErrGroupMismatch, len(want), len(refs))
	}
	return nil
}

// Unbind removes the binding's group from its target.
func Unbind(sel Selector, h *Handle) error {
	if h == nil || h.Group == "" {
		return nil
	}
	if err := sel.RemoveGroup(h.Target, h.Group); err != nil {
		return fmt.Errorf("remove group: %w", err)
	}
	return nil
}

// WithSelection selects exactly the points matched by keep, runs fn and
// restores the previous selection, whatever fn does.
func WithSelection(sel Selector, target host.ObjectID, keep func(host.PointRef) bool, fn func() error) (err error) {
	saved, err := sel.Selection(target)
	if err != nil {
		return fmt.Errorf("snapshot selection: %w", err)
	}
	defer func() {
		if rerr := sel.RestoreSelection(target, saved); rerr != nil && err == nil {
			err = fmt.Errorf("restore selection: %w", rerr)
		}
	}()

	if err := sel.SetSelection(target, keep); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	return fn()
}
