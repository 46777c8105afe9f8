package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxdeform/pkg/cage"
	sceneio "github.com/matzehuels/boxdeform/pkg/io"
	"github.com/matzehuels/boxdeform/pkg/scene"
)

// Output formats of the cage command.
const (
	formatJSON = "json"
	formatText = "text"
)

// cageCommand creates the cage command that previews the cage of a scene.
func (c *CLI) cageCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "cage SCENE",
		Short: "Print the cage that frames the current selection",
		Long: `Build the cage a session would start with for the active object of a scene
document and print it without changing anything. In cage-edit mode the cage
of the interrupted session is printed instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printCage(cmd.Context(), cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or text")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormat)

	return cmd
}

func (c *CLI) printCage(ctx context.Context, w io.Writer, path, format string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unknown format %q", format)
	}
	s, err := sceneio.ImportJSON(path)
	if err != nil {
		return err
	}

	cg := scene.NewCageEditor(s).Cage()
	if cg == nil {
		ctl, err := c.newController(s)
		if err != nil {
			return err
		}
		if cg, err = ctl.Preview(); err != nil {
			return err
		}
	}
	loggerFromContext(ctx).Debug("cage", "resolution", cg.Resolution.String(), "points", cg.PointCount())

	if format == formatText {
		describeCage(cg)
		return nil
	}
	return writeCage(w, cg)
}

func writeCage(w io.Writer, cg *cage.Cage) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cg)
}
