package cli

import (
	"context"
	"sync"

	"github.com/matzehuels/boxdeform/pkg/observability"
)

// sessionStats counts what sessions did, for the summary printed when they
// end. It is installed as both session and cleanup hooks.
type sessionStats struct {
	observability.NoopSessionHooks
	observability.NoopCleanupHooks

	mu        sync.Mutex
	changes   map[string]int
	reclaimed int
}

func newSessionStats() *sessionStats {
	return &sessionStats{changes: map[string]int{}}
}

func (s *sessionStats) OnTransition(_ context.Context, sessionID, _, _, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes[sessionID]++
}

func (s *sessionStats) OnOrphanReclaimed(context.Context, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reclaimed++
}

// Changes returns the number of cage changes of a session.
func (s *sessionStats) Changes(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes[sessionID]
}

// Reclaimed returns the number of leftover cages removed so far.
func (s *sessionStats) Reclaimed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reclaimed
}

// registerHooks installs fresh statistics hooks.
func (c *CLI) registerHooks() {
	c.stats = newSessionStats()
	observability.SetSessionHooks(c.stats)
	observability.SetCleanupHooks(c.stats)
}
