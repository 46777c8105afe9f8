package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runCommand creates the run command for interactive sessions.
func (c *CLI) runCommand() *cobra.Command {
	var output, mode string

	cmd := &cobra.Command{
		Use:   "run SCENE",
		Short: "Deform the active object of a scene interactively",
		Long: `Start a box deform session on the active object of a scene document and
drive it from the keyboard.

Keys:
  1-9, 0            set the cage resolution
  ctrl+arrows       add or remove control points
  m                 toggle linear/spline interpolation
  space, enter      bake the deformation
  delete, tab tab   cancel
  arrows, [ ]       move and select control points
  ctrl+c            stop and keep the cage (resume with --mode)`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSession(cmd.Context(), args[0], mode, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting scene to this file")
	cmd.Flags().StringVar(&mode, "mode", "", "start in this mode instead of the scene's (object, edit, paint)")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeMode)

	return cmd
}

func (c *CLI) runSession(ctx context.Context, path, mode, output string, opts ...tea.ProgramOption) error {
	st, err := c.startSession(ctx, path, mode)
	if err != nil || st == nil {
		return err
	}

	model := NewSessionModel(ctx, st.sess, st.scene)
	st.ctl.Report = model.Report

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		st.sess.Interrupt()
		return fmt.Errorf("run session: %w", err)
	}
	return c.finish(ctx, st, output)
}
