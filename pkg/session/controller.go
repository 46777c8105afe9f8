package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boxdeform/pkg/binding"
	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/config"
	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/observability"
	"github.com/matzehuels/boxdeform/pkg/prefs"
)

// Report is a user-facing message emitted by a session.
type Report struct {
	Level   log.Level
	Message string
}

// Controller starts sessions against one host.
//
// The configuration is copied into every session at start; changing
// Config afterwards never affects a running session.
type Controller struct {
	Host     Host
	Registry *Registry
	Config   config.Config
	Logger   *log.Logger
	// Report receives user-facing messages. Nil discards them.
	Report func(Report)
}

// NewController creates a controller. A nil registry or logger gets a
// private registry or a discarding logger.
func NewController(h Host, reg *Registry, cfg config.Config, logger *log.Logger) *Controller {
	if reg == nil {
		reg = NewRegistry()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Controller{Host: h, Registry: reg, Config: cfg, Logger: logger}
}

// orphans is the stale state found on a target at start.
type orphans struct {
	entry      *Entry
	deformers  []host.DeformerID
	staleGroup bool
}

// Start begins a session on the host's active object.
//
// Start fails without touching the host when there is no usable target,
// the mode is unsupported (an [apperr.ErrCodeUnsupported] error, meant to be
// ignored silently), the target already has a live session or a lattice
// deformer of its own, or the selection is too small. Stale state of an
// interrupted session is reclaimed once the new cage has been built.
func (c *Controller) Start(ctx context.Context) (*Session, error) {
	target, ok := c.Host.ActiveObject()
	if !ok {
		return nil, apperr.New(apperr.ErrCodePrecondition, "no active object found")
	}

	mode := c.Host.Mode()
	if mode == host.ModeCageEdit {
		return c.revive(ctx, target)
	}
	if !c.Host.IsDrawable(target) {
		return nil, apperr.New(apperr.ErrCodePrecondition, "object %q is not a stroke object", target)
	}

	if _, err := minPoints(mode); err != nil {
		return nil, err
	}

	stale, err := c.inspect(target)
	if err != nil {
		return nil, err
	}

	points, cg, err := c.build(target, mode)
	if err != nil {
		return nil, err
	}

	c.reclaim(ctx, target, stale)

	h, err := binding.Bind(c.Host, target, mode, points)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "bind points")
	}
	did, err := c.Host.CreateDeformer(target, cg, h.Group, h.Layer)
	if err != nil {
		c.logCleanup(binding.Unbind(c.Host, h))
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "create deformer")
	}
	if err := c.Host.SetMode(host.ModeCageEdit); err != nil {
		c.logCleanup(c.Host.Discard(target, did))
		c.logCleanup(binding.Unbind(c.Host, h))
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "enter cage edit")
	}

	e := &Entry{
		SessionID: uuid.NewString(),
		Target:    target,
		Cage:      cg,
		Binding:   h,
		Deformer:  did,
		Origin:    mode,
	}
	c.Logger.Debug("built cage",
		"target", target,
		"mode", mode,
		"points", points.Len(),
		"width", cg.Pose.Scale.X,
		"height", cg.Pose.Scale.Y)
	return c.activate(ctx, e, false)
}

// Preview returns the cage Start would build for the current selection of
// the active object. The host is left untouched.
func (c *Controller) Preview() (*cage.Cage, error) {
	target, ok := c.Host.ActiveObject()
	if !ok {
		return nil, apperr.New(apperr.ErrCodePrecondition, "no active object found")
	}
	if !c.Host.IsDrawable(target) {
		return nil, apperr.New(apperr.ErrCodePrecondition, "object %q is not a stroke object", target)
	}
	_, cg, err := c.build(target, c.Host.Mode())
	return cg, err
}

// minPoints returns the smallest selection mode accepts. Modes without a
// selection rule are unsupported.
func minPoints(mode host.Mode) (int, error) {
	switch mode {
	case host.ModeObject:
		return 0, nil
	case host.ModeEdit, host.ModePaint:
		return 2, nil
	}
	return 0, apperr.New(apperr.ErrCodeUnsupported, "%s mode is not supported", mode)
}

// build gathers the points of target for mode and frames them in a cage.
func (c *Controller) build(target host.ObjectID, mode host.Mode) (host.PointSet, *cage.Cage, error) {
	n, err := minPoints(mode)
	if err != nil {
		return host.PointSet{}, nil, err
	}
	points, err := c.Host.SelectedPoints(target, mode)
	if err != nil {
		return host.PointSet{}, nil, apperr.New(apperr.ErrCodePrecondition, "%v", err)
	}
	cg, err := cage.Build(points.Positions, c.Host.View(), cage.Options{
		Interpolation: c.Config.StartInterpolation,
		MinPoints:     n,
	})
	if err != nil {
		return host.PointSet{}, nil, err
	}
	return points, cg, nil
}

// revive resumes an interrupted session on its existing cage. The cage is
// trusted as it is; nothing is reconciled.
func (c *Controller) revive(ctx context.Context, target host.ObjectID) (*Session, error) {
	e, err := c.Registry.orphan(target)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Cage == nil {
		return nil, apperr.New(apperr.ErrCodePrecondition, "no box deform cage to resume on %q", target)
	}
	if !c.Host.Alive(target, e.Deformer) {
		return nil, apperr.New(apperr.ErrCodePrecondition, "no temporary deformer on %q", target)
	}
	return c.activate(ctx, e, true)
}

func (c *Controller) activate(ctx context.Context, e *Entry, revived bool) (*Session, error) {
	if err := c.Registry.claim(e); err != nil {
		return nil, err
	}
	s := &Session{
		ctl:     c,
		entry:   e,
		scope:   prefs.Enter(c.Host, c.Config.SessionSettings()),
		auto:    c.Config.AutoInterpolation,
		state:   StateActive,
		started: time.Now(),
		revived: revived,
	}
	c.Logger.Info("session started",
		"id", e.SessionID,
		"target", e.Target,
		"mode", e.Origin,
		"revived", revived)
	observability.Session().OnSessionStart(ctx, e.SessionID, string(e.Target), e.Origin.String(), revived)
	return s, nil
}

// inspect finds stale state on target without changing anything.
func (c *Controller) inspect(target host.ObjectID) (orphans, error) {
	var stale orphans
	e, err := c.Registry.orphan(target)
	if err != nil {
		return stale, err
	}
	stale.entry = e

	for _, d := range c.Host.Deformers(target) {
		if !d.Lattice {
			continue
		}
		if !d.Temporary {
			return stale, apperr.New(apperr.ErrCodeConflict, "object already has a lattice deformer %q", d.Name)
		}
		if e == nil || d.ID != e.Deformer {
			stale.deformers = append(stale.deformers, d.ID)
		}
	}
	stale.staleGroup = e == nil && len(stale.deformers) > 0
	return stale, nil
}

// reclaim removes the stale state found by inspect.
func (c *Controller) reclaim(ctx context.Context, target host.ObjectID, stale orphans) {
	if e := stale.entry; e != nil {
		if c.Host.Alive(target, e.Deformer) {
			c.logCleanup(c.Host.Discard(target, e.Deformer))
		}
		c.logCleanup(binding.Unbind(c.Host, e.Binding))
		c.Registry.remove(e)
		c.Logger.Info("reclaimed orphaned cage", "target", target, "session", e.SessionID)
		observability.Cleanup().OnOrphanReclaimed(ctx, string(target), string(e.Deformer))
	}
	for _, did := range stale.deformers {
		c.logCleanup(c.Host.Discard(target, did))
		c.Logger.Info("removed stale temporary deformer", "target", target, "deformer", did)
		observability.Cleanup().OnOrphanReclaimed(ctx, string(target), string(did))
	}
	if stale.staleGroup {
		c.logCleanup(c.Host.RemoveGroup(target, binding.GroupName))
	}
}

func (c *Controller) logCleanup(err error) {
	if err != nil {
		c.Logger.Warn("cleanup failed", "err", err)
	}
}

func (c *Controller) report(level log.Level, msg string) {
	c.Logger.Debug("report", "level", level, "msg", msg)
	if c.Report != nil {
		c.Report(Report{Level: level, Message: msg})
	}
}
