package prefs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memStore struct {
	s    Settings
	sets int
}

func (m *memStore) Settings() Settings     { return m.s }
func (m *memStore) SetSettings(s Settings) { m.s = s; m.sets++ }

func TestEnterExit(t *testing.T) {
	user := Settings{DragThresholdMouse: 7, DragThresholdTablet: 12, ShowOverlays: false, Tool: "builtin.cursor"}
	store := &memStore{s: user}

	scope := Enter(store, SessionDefaults)
	want := SessionDefaults
	want.Tool = user.Tool
	if diff := cmp.Diff(want, store.s); diff != "" {
		t.Errorf("session settings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(user, scope.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	scope.Exit()
	if diff := cmp.Diff(user, store.s); diff != "" {
		t.Errorf("settings not restored (-want +got):\n%s", diff)
	}
	if scope.Active() {
		t.Error("scope still active after Exit")
	}
}

func TestExitIdempotent(t *testing.T) {
	store := &memStore{s: HostDefaults}
	scope := Enter(store, SessionDefaults)
	scope.Exit()

	// Something else changes the settings after the session.
	store.s.DragThresholdMouse = 42
	scope.Exit()
	if store.s.DragThresholdMouse != 42 {
		t.Error("second Exit overwrote settings")
	}
	if store.sets != 2 {
		t.Errorf("SetSettings called %d times, want 2", store.sets)
	}

	var nilScope *Scope
	nilScope.Exit()
}

func TestEnterOverridesTool(t *testing.T) {
	store := &memStore{s: HostDefaults}
	override := SessionDefaults
	override.Tool = SelectTool
	scope := Enter(store, override)
	if store.s.Tool != SelectTool {
		t.Errorf("Tool = %q, want %q", store.s.Tool, SelectTool)
	}
	scope.Exit()
	if store.s.Tool != HostDefaults.Tool {
		t.Errorf("Tool = %q, want %q", store.s.Tool, HostDefaults.Tool)
	}
}
