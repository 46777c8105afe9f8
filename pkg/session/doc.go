// Package session implements the box deform session controller.
//
// A [Controller] starts sessions on the host's active object. Starting
// gathers the points of the current mode, builds a view-aligned cage, binds
// the points to it, puts a temporary deformer on the object and switches the
// host to cage editing. The returned [Session] is then driven by one ordered
// stream of key events through [Session.Handle]:
//
//	1-9, 0           set the cage resolution (2x2 ... 10x10, 2x1)
//	ctrl+arrows      grow or shrink one axis, within [1, 20]
//	m                toggle linear / smooth interpolation
//	enter, space     confirm: bake the deformation into the points
//	delete, backsp.  cancel: discard the deformation
//	tab (twice)      cancel, with a warning on the first press
//	ctrl+t           cancel (the start shortcut pressed again)
//	ctrl+z           swallowed
//
// Any other key passes through to the host. [Controller.Preview] builds the
// cage a start would use without touching the host.
//
// # Registry
//
// A [Registry] records the cage of every target object. It replaces lookup
// by a well-known object name: an inactive entry is an orphan left by an
// interrupted session and is reclaimed on the next start, an active entry
// makes a second start fail with [ErrSessionActive]. Invoking the start
// shortcut while the host is still in cage-edit mode on an orphan revives
// it instead: the session resumes on the existing cage as it is.
//
// # Cleanup
//
// Every terminal path restores the host's ambient settings and interaction
// mode and leaves no cage, binding or temporary deformer behind. A
// collaborator fault inside an active session is never returned to the
// caller; it degrades to a forced cancel.
package session
