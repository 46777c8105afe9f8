// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about session lifecycles and the cleanup the controller
// performs on their behalf.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks take plain strings rather than session types so that this package
// stays a leaf and can be imported from anywhere.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSessionHooks(&mySessionHooks{})
//	    observability.SetCleanupHooks(&myCleanupHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Session().OnSessionStart(ctx, id, target, mode)
//	// ... handle events ...
//	observability.Session().OnSessionEnd(ctx, id, "confirmed", elapsed, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from the session controller.
type SessionHooks interface {
	// OnSessionStart records a session entering the active state. revived is
	// true when an interrupted session was resumed on its existing cage.
	OnSessionStart(ctx context.Context, sessionID, target, mode string, revived bool)

	// OnTransition records an accepted cage edit.
	OnTransition(ctx context.Context, sessionID, key, resolution, interpolation string)

	// OnSessionEnd records a terminal transition. outcome is "confirmed" or
	// "cancelled"; err is the fault that forced a cancel, if any.
	OnSessionEnd(ctx context.Context, sessionID, outcome string, duration time.Duration, err error)
}

// =============================================================================
// Cleanup Hooks
// =============================================================================

// CleanupHooks receives events about state the controller reclaimed.
type CleanupHooks interface {
	// OnOrphanReclaimed records a stale cage or deformer removed at start.
	OnOrphanReclaimed(ctx context.Context, target, deformerID string)

	// OnForcedCleanup records a session torn down after a collaborator fault.
	OnForcedCleanup(ctx context.Context, sessionID string, cause error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionStart(context.Context, string, string, string, bool)       {}
func (NoopSessionHooks) OnTransition(context.Context, string, string, string, string)       {}
func (NoopSessionHooks) OnSessionEnd(context.Context, string, string, time.Duration, error) {}

// NoopCleanupHooks is a no-op implementation of CleanupHooks.
type NoopCleanupHooks struct{}

func (NoopCleanupHooks) OnOrphanReclaimed(context.Context, string, string) {}
func (NoopCleanupHooks) OnForcedCleanup(context.Context, string, error)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sessionHooks SessionHooks = NoopSessionHooks{}
	cleanupHooks CleanupHooks = NoopCleanupHooks{}
	hooksMu      sync.RWMutex
)

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before any session starts.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// SetCleanupHooks registers custom cleanup hooks.
func SetCleanupHooks(h CleanupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cleanupHooks = h
	}
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Cleanup returns the registered cleanup hooks.
func Cleanup() CleanupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cleanupHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sessionHooks = NoopSessionHooks{}
	cleanupHooks = NoopCleanupHooks{}
}
