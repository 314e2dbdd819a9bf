package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/logging"
	"github.com/meshackyaro/Sanctifier/internal/report"
)

func newComplexityCmd() *cobra.Command {
	var format, outputFile string
	cmd := &cobra.Command{
		Use:   "complexity <file>",
		Short: "Report per-function complexity metrics for one contract file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			a := analyzer.New(config.Default(), analyzer.WithLogger(logging.L()))
			metrics := a.AnalyzeComplexity(string(src), path)

			var renderFn func(io.Writer) error
			switch format {
			case "text":
				renderFn = func(w io.Writer) error { return report.ComplexityText(w, metrics) }
			case "json":
				renderFn = func(w io.Writer) error { return report.ComplexityJSON(w, metrics) }
			case "html":
				renderFn = func(w io.Writer) error { return report.ComplexityHTML(w, metrics) }
			default:
				return fmt.Errorf("unknown format %q (want text, json or html)", format)
			}
			return writeOutput(cmd.OutOrStdout(), outputFile, renderFn)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json|html")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write the report to a file instead of stdout")
	return cmd
}
