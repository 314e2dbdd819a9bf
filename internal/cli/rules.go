package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/plugins"
)

func newRulesCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{Use: "rules", Short: "List available rules"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in detectors and whether the configuration enables them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = loadConfig(".", configPath); err != nil {
					return err
				}
			}
			reg := plugins.NewRegistry()
			reg.RegisterBuiltin()
			enabled := map[string]bool{}
			for _, r := range reg.Enabled(cfg) {
				enabled[r.Meta().ID] = true
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSEVERITY\tSTATUS\tTITLE")
			for _, r := range reg.Rules() {
				m := r.Meta()
				status := "always"
				if m.Configurable {
					status = "disabled"
					if enabled[m.ID] {
						status = "enabled"
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Severity, status, m.Title)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file used to report enabled rules")
	cmd.AddCommand(list)
	return cmd
}
