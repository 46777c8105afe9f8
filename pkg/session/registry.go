package session

import (
	"sort"
	"sync"

	"github.com/matzehuels/boxdeform/pkg/binding"
	"github.com/matzehuels/boxdeform/pkg/cage"
	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/host"
)

// ErrSessionActive is returned when a target already has a live session.
var ErrSessionActive = apperr.New(apperr.ErrCodeConflict, "a box deform session is already running on this object")

// Entry is the cage state recorded for one target.
type Entry struct {
	// SessionID identifies the session that built the cage.
	SessionID string
	Target    host.ObjectID
	Cage      *cage.Cage
	Binding   *binding.Handle
	Deformer  host.DeformerID
	// Origin is the mode the session was started from.
	Origin host.Mode
	// Active is false once the session driving the cage was interrupted.
	Active bool
}

// Registry tracks at most one cage per target. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.Mutex
	entries map[host.ObjectID]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[host.ObjectID]*Entry)}
}

// Lookup returns a copy of the entry for target.
func (r *Registry) Lookup(target host.ObjectID) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[target]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Active reports whether target has a live session.
func (r *Registry) Active(target host.ObjectID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[target]
	return ok && e.Active
}

// Len returns the number of recorded cages, live or orphaned.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Targets returns the targets with a recorded cage, sorted.
func (r *Registry) Targets() []host.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]host.ObjectID, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// claim marks e active and records it. It fails when another live session
// holds the target.
func (r *Registry) claim(e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.entries[e.Target]; ok && cur != e && cur.Active {
		return ErrSessionActive
	}
	e.Active = true
	r.entries[e.Target] = e
	return nil
}

// orphan returns the inactive entry of target, if any.
func (r *Registry) orphan(target host.ObjectID) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[target]
	switch {
	case !ok:
		return nil, nil
	case e.Active:
		return nil, ErrSessionActive
	default:
		return e, nil
	}
}

func (r *Registry) release(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Active = false
}

func (r *Registry) remove(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.entries[e.Target]; ok && cur == e {
		delete(r.entries, e.Target)
	}
}
