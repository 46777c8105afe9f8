package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxdeform/pkg/scene"
	"github.com/matzehuels/boxdeform/pkg/session"
)

// applyCommand creates the apply command for scripted sessions.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		keys   string
		mode   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "apply SCENE",
		Short: "Deform the active object with a scripted key sequence",
		Long: `Start a box deform session on the active object of a scene document and
feed it a comma-separated key sequence, e.g. "3,ctrl+right,m,enter".

When the keys run out before the session ends, the session is interrupted:
the written scene keeps the cage in cage-edit mode. A later run started with
--mode reclaims the leftover cage before building a new one.`,
		Example: `  boxdeform apply drawing.json --keys "3,enter" -o out.json
  boxdeform apply drawing.json --keys "ctrl+right,],up,space"`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applySession(cmd.Context(), args[0], mode, keys, output)
		},
	}

	cmd.Flags().StringVarP(&keys, "keys", "k", "", "comma-separated key sequence (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting scene to this file")
	cmd.Flags().StringVar(&mode, "mode", "", "start in this mode instead of the scene's (object, edit, paint)")
	_ = cmd.MarkFlagRequired("keys")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeMode)

	return cmd
}

func (c *CLI) applySession(ctx context.Context, path, mode, keys, output string) error {
	events, err := session.ParseEvents(keys)
	if err != nil {
		return err
	}

	st, err := c.startSession(ctx, path, mode)
	if err != nil || st == nil {
		return err
	}
	st.ctl.Report = printReport

	editor := scene.NewCageEditor(st.scene)
	done := false
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			st.sess.Interrupt()
			return err
		}
		if dispatch(ctx, st.sess, editor, ev).Done() {
			done = true
			break
		}
	}
	if !done {
		st.sess.Interrupt()
	}
	return c.finish(ctx, st, output)
}
