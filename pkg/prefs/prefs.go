// Package prefs scopes the ambient interaction settings a box deform session
// overrides while it runs.
//
// The host's settings are the only state a session shares with the rest of
// the environment. [Enter] snapshots them and applies session-friendly
// values; [Scope.Exit] puts the snapshot back. Exit is idempotent so every
// termination path (commit, cancel, forced cleanup) can call it
// unconditionally.
package prefs

// Settings are the host interaction settings a session touches.
type Settings struct {
	// DragImmediately confirms pointer drags on release.
	DragImmediately bool `json:"drag_immediately" toml:"drag_immediately"`
	// DragThresholdMouse is the mouse drag distance in pixels.
	DragThresholdMouse int `json:"drag_threshold_mouse" toml:"drag_threshold_mouse"`
	// DragThresholdTablet is the tablet drag distance in pixels.
	DragThresholdTablet int `json:"drag_threshold_tablet" toml:"drag_threshold_tablet"`
	// ShowOverlays toggles viewport overlays.
	ShowOverlays bool `json:"show_overlays" toml:"show_overlays"`
	// Tool is the active tool of the cage-edit mode.
	Tool string `json:"tool,omitempty" toml:"tool,omitempty"`
}

// SelectTool is the direct click-drag tool used during sessions.
const SelectTool = "builtin.select"

// HostDefaults are the factory settings of the host.
var HostDefaults = Settings{
	DragImmediately:     false,
	DragThresholdMouse:  3,
	DragThresholdTablet: 10,
	ShowOverlays:        true,
	Tool:                "builtin.select_box",
}

// SessionDefaults are the values applied for the duration of a session.
var SessionDefaults = Settings{
	DragImmediately:     true,
	DragThresholdMouse:  1,
	DragThresholdTablet: 3,
	ShowOverlays:        true,
}

// Store is the host collaborator holding the live settings.
type Store interface {
	Settings() Settings
	SetSettings(Settings)
}

// Scope owns the host settings between Enter and Exit.
type Scope struct {
	store  Store
	saved  Settings
	exited bool
}

// Enter snapshots the store's settings and applies override. An empty
// override.Tool keeps the current tool.
func Enter(store Store, override Settings) *Scope {
	saved := store.Settings()
	if override.Tool == "" {
		override.Tool = saved.Tool
	}
	store.SetSettings(override)
	return &Scope{store: store, saved: saved}
}

// Snapshot returns the settings captured on entry.
func (s *Scope) Snapshot() Settings { return s.saved }

// Active reports whether Exit has not been called yet.
func (s *Scope) Active() bool { return s != nil && !s.exited }

// Exit restores the snapshot. Calls after the first are no-ops.
func (s *Scope) Exit() {
	if s == nil || s.exited {
		return
	}
	s.exited = true
	s.store.SetSettings(s.saved)
}
