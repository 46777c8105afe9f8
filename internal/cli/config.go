package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxdeform/pkg/config"
)

// configCommand creates the config command that prints the effective settings.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration sessions start with, after applying the config file
and BOXDEFORM_* environment variables, as TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path := c.configPath
				if path == "" {
					var err error
					if path, err = config.DefaultPath(); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file location instead")

	return cmd
}
