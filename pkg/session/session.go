package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxdeform/pkg/binding"
	"github.com/matzehuels/boxdeform/pkg/cage"
	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/observability"
	"github.com/matzehuels/boxdeform/pkg/prefs"
)

// State is the lifecycle state of a session.
type State int

const (
	StateStarting State = iota
	StateActive
	StateConfirmed
	StateCancelled
	// StateInterrupted is a session whose loop was killed from outside. Its
	// cage stays in place and can be revived.
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateInterrupted:
		return "interrupted"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Outcome is the result of handling one event.
type Outcome int

const (
	// OutcomeRunning means the event was consumed and the session goes on.
	OutcomeRunning Outcome = iota
	// OutcomePassThrough means the event was not consumed.
	OutcomePassThrough
	// OutcomeConfirmed means the deformation was baked.
	OutcomeConfirmed
	// OutcomeCancelled means the deformation was discarded.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomePassThrough:
		return "pass-through"
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Done reports whether o ends the session.
func (o Outcome) Done() bool { return o == OutcomeConfirmed || o == OutcomeCancelled }

// Session is one running box deform transaction. It is driven by a single
// event loop and is not safe for concurrent use.
type Session struct {
	ctl     *Controller
	entry   *Entry
	scope   *prefs.Scope
	auto    bool
	counter int
	warned  bool
	state   State
	started time.Time
	revived bool
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.entry.SessionID }

// Target returns the deformed object.
func (s *Session) Target() host.ObjectID { return s.entry.Target }

// Origin returns the mode the session returns to.
func (s *Session) Origin() host.Mode { return s.entry.Origin }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Revived reports whether the session resumed an interrupted one.
func (s *Session) Revived() bool { return s.revived }

// Cage returns the live cage. Host-side cage editing mutates it in place.
func (s *Session) Cage() *cage.Cage { return s.entry.Cage }

// Resolution returns the current cage resolution.
func (s *Session) Resolution() cage.Resolution { return s.entry.Cage.Resolution }

// Interpolation returns the current interpolation mode.
func (s *Session) Interpolation() cage.Interpolation { return s.entry.Cage.Interpolation }

// AutoInterpolation reports whether resolution keys still pick the
// interpolation.
func (s *Session) AutoInterpolation() bool { return s.auto }

// CancelPresses returns how often the soft-cancel key was pressed.
func (s *Session) CancelPresses() int { return s.counter }

// Handle applies one event. Exactly one transition happens per event;
// events that are not consumed return OutcomePassThrough. A session that is
// no longer active passes everything through.
func (s *Session) Handle(ctx context.Context, ev Event) Outcome {
	if s.state != StateActive {
		return OutcomePassThrough
	}
	e := s.entry
	if !s.ctl.Host.Alive(e.Target, e.Deformer) {
		return s.teardown(ctx, apperr.New(apperr.ErrCodeMidSessionFault, "deformer %s vanished", e.Deformer))
	}
	if ev.Release {
		return OutcomePassThrough
	}

	if ev.Ctrl {
		switch ev.Key {
		case "z":
			// History rewrites would desynchronise the cage from the host.
			return OutcomeRunning
		case "t":
			s.ctl.Logger.Debug("start shortcut pressed again", "id", e.SessionID)
			return s.teardown(ctx, nil)
		case KeyRight:
			return s.resize(ctx, ev, cage.AxisU, true)
		case KeyLeft:
			return s.resize(ctx, ev, cage.AxisU, false)
		case KeyUp:
			return s.resize(ctx, ev, cage.AxisV, true)
		case KeyDown:
			return s.resize(ctx, ev, cage.AxisV, false)
		}
	}

	switch ev.Key {
	case "h":
		s.ctl.report(log.InfoLevel, "The cage cannot be hidden while deforming")
		return OutcomeRunning
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return s.digit(ctx, ev)
	case "m":
		s.auto = false
		e.Cage.Interpolation = e.Cage.Interpolation.Toggle()
		s.changed(ctx, ev)
		return OutcomeRunning
	case KeyEnter, KeySpace:
		return s.confirm(ctx)
	case KeyTab:
		s.counter++
		if s.counter >= 2 {
			return s.teardown(ctx, nil)
		}
		if !s.warned {
			s.warned = true
			s.ctl.report(log.WarnLevel, "Pressing TAB again will cancel")
		}
		return OutcomeRunning
	case KeyDelete, KeyBackspace:
		return s.teardown(ctx, nil)
	}
	return OutcomePassThrough
}

// digit maps 1 to a 2x2 linear cage, 2-9 to (n+1)x(n+1) smooth cages and
// 0 to a 2x1 smooth cage.
func (s *Session) digit(ctx context.Context, ev Event) Outcome {
	n := int(ev.Key[0] - '0')
	u, v, interp := n+1, n+1, cage.Smooth
	switch n {
	case 0:
		u, v = 2, 1
	case 1:
		interp = cage.Linear
	}

	c := s.entry.Cage
	if err := c.SetResolution(u, v); err != nil {
		return s.teardown(ctx, apperr.Wrap(apperr.ErrCodeInternal, err, "resize cage"))
	}
	if s.auto {
		c.Interpolation = interp
	}
	s.changed(ctx, ev)
	return OutcomeRunning
}

// resize grows or shrinks one axis. At the bounds the key is consumed
// without any change.
func (s *Session) resize(ctx context.Context, ev Event, axis cage.Axis, grow bool) Outcome {
	c := s.entry.Cage
	if grow {
		if c.Increment(axis) {
			if s.auto {
				c.Interpolation = cage.Smooth
			}
			s.changed(ctx, ev)
		}
		return OutcomeRunning
	}
	if c.Decrement(axis) {
		s.changed(ctx, ev)
	}
	return OutcomeRunning
}

func (s *Session) changed(ctx context.Context, ev Event) {
	c := s.entry.Cage
	s.ctl.Logger.Debug("cage changed",
		"key", ev.String(),
		"resolution", c.Resolution.String(),
		"interpolation", c.Interpolation)
	observability.Session().OnTransition(ctx, s.entry.SessionID, ev.String(), c.Resolution.String(), c.Interpolation.String())
}

// confirm bakes the deformation and returns to the origin mode.
func (s *Session) confirm(ctx context.Context) Outcome {
	h, e := s.ctl.Host, s.entry
	s.scope.Exit()

	if err := h.SetMode(host.ModeObject); err != nil {
		return s.teardown(ctx, apperr.Wrap(apperr.ErrCodeMidSessionFault, err, "leave cage edit"))
	}
	if err := h.Bake(e.Target, e.Deformer); err != nil {
		return s.teardown(ctx, apperr.Wrap(apperr.ErrCodeMidSessionFault, err, "bake"))
	}
	var errs []error
	errs = append(errs, binding.Unbind(h, e.Binding))
	s.ctl.Registry.remove(e)
	errs = append(errs, h.SetMode(e.Origin))
	if err := errors.Join(errs...); err != nil {
		s.ctl.Logger.Warn("cleanup after bake failed", "id", e.SessionID, "err", err)
	}

	s.state = StateConfirmed
	s.ended(ctx, nil)
	return OutcomeConfirmed
}

// teardown discards the deformation and unwinds every piece of session
// state. It is best effort: a failing step never stops the next one. cause
// is nil for a requested cancel and the fault otherwise.
func (s *Session) teardown(ctx context.Context, cause error) Outcome {
	h, e := s.ctl.Host, s.entry
	s.scope.Exit()

	var errs []error
	if h.Alive(e.Target, e.Deformer) {
		errs = append(errs, h.Discard(e.Target, e.Deformer))
	}
	errs = append(errs, binding.Unbind(h, e.Binding))
	s.ctl.Registry.remove(e)
	errs = append(errs, h.SetMode(e.Origin))

	if err := errors.Join(errs...); err != nil {
		cause = errors.Join(cause, err)
	}
	if cause != nil {
		s.ctl.Logger.Warn("session aborted", "id", e.SessionID, "err", cause)
		observability.Cleanup().OnForcedCleanup(ctx, e.SessionID, cause)
	}

	s.state = StateCancelled
	s.ended(ctx, cause)
	return OutcomeCancelled
}

func (s *Session) ended(ctx context.Context, cause error) {
	elapsed := time.Since(s.started)
	s.ctl.Logger.Info("session ended",
		"id", s.entry.SessionID,
		"state", s.state,
		"resolution", s.entry.Cage.Resolution.String(),
		"duration", elapsed)
	observability.Session().OnSessionEnd(ctx, s.entry.SessionID, s.state.String(), elapsed, cause)
}

// Interrupt stops the session from outside its event loop without cleaning
// up: the ambient settings are restored but the cage, binding and deformer
// stay and the host remains in cage-edit mode. The next start in cage-edit
// mode revives the session; a start in any other mode reclaims the cage.
func (s *Session) Interrupt() {
	if s.state != StateActive {
		return
	}
	s.scope.Exit()
	s.ctl.Registry.release(s.entry)
	s.state = StateInterrupted
	s.ctl.Logger.Info("session interrupted", "id", s.entry.SessionID)
}
