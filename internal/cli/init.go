package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshackyaro/Sanctifier/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default " + config.FileName + " in the target directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = "."
			}
			path, err := config.Write(dir, config.Default(), force)
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%s: %w (use --force to overwrite)", path, err)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration file created successfully!")
			fmt.Fprintf(cmd.OutOrStdout(), "   Location: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write config file to")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	return cmd
}
