package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/boxdeform/pkg/cage"
	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/host"
	sceneio "github.com/matzehuels/boxdeform/pkg/io"
	"github.com/matzehuels/boxdeform/pkg/scene"
	"github.com/matzehuels/boxdeform/pkg/session"
)

// started is a session running on a loaded scene.
type started struct {
	scene *scene.Scene
	ctl   *session.Controller
	sess  *session.Session
	path  string
}

// startSession loads the scene at path, switches it to mode when mode is
// set and starts a session on its active object. A nil result without error
// means the scene's mode has nothing to deform.
func (c *CLI) startSession(ctx context.Context, path, mode string) (*started, error) {
	s, err := sceneio.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	if mode != "" {
		m, err := host.ParseMode(mode)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid --mode")
		}
		if err := s.SetMode(m); err != nil {
			return nil, err
		}
	}
	ctl, err := c.newController(s)
	if err != nil {
		return nil, err
	}
	reclaimed := c.reclaimed()
	sess, err := ctl.Start(ctx)
	if apperr.Silent(err) {
		printInfo("Nothing to deform in %s mode", s.Mode())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n := c.reclaimed() - reclaimed; n > 0 {
		printInfo("Removed %d leftover cage(s) from %s", n, sess.Target())
	}
	if sess.Revived() {
		printInfo("Resuming the %s cage on %s", sess.Resolution(), sess.Target())
	}
	return &started{scene: s, ctl: ctl, sess: sess, path: path}, nil
}

// dispatch feeds ev to the session and hands keys it passes through to the
// scene's own cage editing.
func dispatch(ctx context.Context, sess *session.Session, editor *scene.CageEditor, ev session.Event) session.Outcome {
	out := sess.Handle(ctx, ev)
	if out == session.OutcomePassThrough && !ev.Ctrl && !ev.Alt && !ev.Release {
		editor.Handle(ev.Key)
	}
	return out
}

// finish reports how the session ended and writes the scene to output when
// it is set.
func (c *CLI) finish(ctx context.Context, st *started, output string) error {
	prog := newProgress(loggerFromContext(ctx))
	name := string(st.sess.Target())
	if o := st.scene.Object(st.sess.Target()); o != nil {
		name = o.Name
	}

	switch st.sess.State() {
	case session.StateConfirmed:
		printSuccess("Deformed %s", StyleHighlight.Render(name))
		printStats(pointCount(st.scene, st.sess), c.changes(st.sess), st.sess.Resolution(), st.sess.Interpolation())
	case session.StateCancelled:
		printWarning("Cancelled, %s is unchanged", name)
	case session.StateInterrupted:
		printInfo("Interrupted, the %s cage stays on %s", st.sess.Resolution(), name)
	}

	if output == "" {
		if st.sess.State() != session.StateCancelled {
			printNextStep("Write the result", fmt.Sprintf("%s ... -o %s", appName, st.path))
		}
		return nil
	}
	if err := sceneio.ExportJSON(st.scene, output); err != nil {
		return err
	}
	prog.done("Wrote scene")
	printFile(output)
	return nil
}

func (c *CLI) changes(sess *session.Session) int {
	if c.stats == nil {
		return 0
	}
	return c.stats.Changes(sess.ID())
}

func (c *CLI) reclaimed() int {
	if c.stats == nil {
		return 0
	}
	return c.stats.Reclaimed()
}

func pointCount(s *scene.Scene, sess *session.Session) int {
	o := s.Object(sess.Target())
	if o == nil {
		return 0
	}
	return o.PointCount()
}

// describeCage prints the key facts of cg.
func describeCage(cg *cage.Cage) {
	printKeyValue("name", cg.Name)
	printKeyValue("resolution", cg.Resolution.String())
	printKeyValue("interpolation", interpolationStyle(cg.Interpolation).Render(cg.Interpolation.Label()))
	printKeyValue("location", formatVec(cg.Pose.Location.X, cg.Pose.Location.Y, cg.Pose.Location.Z))
	printKeyValue("size", fmt.Sprintf("%.3f x %.3f", cg.Pose.Scale.X, cg.Pose.Scale.Y))
	printKeyValue("points", fmt.Sprintf("%d", cg.PointCount()))
}

func formatVec(x, y, z float64) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", x, y, z)
}
