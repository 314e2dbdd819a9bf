package app

import (
	"github.com/spf13/cobra"

	"github.com/meshackyaro/Sanctifier/internal/cli"
	"github.com/meshackyaro/Sanctifier/internal/logging"
)

func BuildRoot() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "sanctifier",
		Short:         "Static analyzer for Soroban smart contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cli.AddCommands(root)
	return root
}
