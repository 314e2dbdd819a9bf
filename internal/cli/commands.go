package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/engine"
	"github.com/meshackyaro/Sanctifier/internal/logging"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/report"
	"github.com/meshackyaro/Sanctifier/internal/tui"
)

// ErrFailOn is returned by analyze when a finding meets the --fail-on severity.
var ErrFailOn = errors.New("findings at or above fail-on severity")

func AddCommands(root *cobra.Command) {
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newComplexityCmd())
	root.AddCommand(newWatchCmd())
}

type analyzeOptions struct {
	format        string
	limit         int
	configPath    string
	outputFile    string
	failOn        string
	useTUI        bool
	jobs          int
	useCache      bool
	baseline      string
	writeBaseline string
}

func newAnalyzeCmd() *cobra.Command {
	var o analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a Soroban contract or crate for vulnerabilities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if !validFormat(o.format) {
				return fmt.Errorf("unknown format %q (want text, json or sarif)", o.format)
			}
			cfg, err := loadConfig(path, o.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				cfg.LedgerLimit = o.limit
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("--limit: %w", err)
				}
			}

			eng := engine.New(cfg, engine.WithLogger(logging.L()))
			result, err := eng.Scan(cmd.Context(), model.ScanRequest{
				Path:         path,
				Jobs:         o.jobs,
				UseCache:     o.useCache,
				BaselinePath: o.baseline,
			})
			if err != nil {
				return err
			}

			if o.writeBaseline != "" {
				if err := engine.WriteBaseline(o.writeBaseline, result.Findings); err != nil {
					return fmt.Errorf("write baseline: %w", err)
				}
			}

			if o.useTUI {
				if err := tui.Run(result.Findings); err != nil {
					return err
				}
			} else if err := writeOutput(cmd.OutOrStdout(), o.outputFile, func(w io.Writer) error {
				return render(w, o.format, result)
			}); err != nil {
				return err
			}

			if o.failOn != "" {
				threshold := model.ParseSeverity(o.failOn)
				for _, f := range result.Findings {
					if model.SeverityGTE(f.Severity, threshold) {
						return fmt.Errorf("%w: %s finding %s at %s:%d", ErrFailOn, f.Severity, f.RuleID, f.File, f.StartLine)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text|json|sarif")
	cmd.Flags().IntVarP(&o.limit, "limit", "l", 64000, "Ledger entry size limit in bytes")
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "Configuration file (default: search for .sanctify.toml upward)")
	cmd.Flags().StringVarP(&o.outputFile, "out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&o.failOn, "fail-on", "", "Exit non-zero if a finding of this severity or higher is found (low|medium|high|critical)")
	cmd.Flags().BoolVar(&o.useTUI, "tui", false, "Browse findings interactively")
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", 0, "Files analyzed in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&o.useCache, "cache", false, "Reuse per-file results from ~/.sanctifier/cache")
	cmd.Flags().StringVar(&o.baseline, "baseline", "", "Suppress findings whose fingerprints are listed in this file")
	cmd.Flags().StringVar(&o.writeBaseline, "write-baseline", "", "Write a baseline file with finding fingerprints")
	return cmd
}

// loadConfig prefers an explicit file and otherwise searches upward from target.
func loadConfig(target, explicit string) (config.Config, error) {
	if explicit != "" {
		cfg, err := config.LoadFile(explicit)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, path, err := config.Load(target)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if path != "" {
		logging.L().Debug("using configuration", zap.String("path", path))
	}
	return cfg, nil
}

func validFormat(f string) bool {
	switch f {
	case "text", "json", "sarif":
		return true
	}
	return false
}

func render(w io.Writer, format string, res *model.ScanResult) error {
	switch format {
	case "json":
		return report.JSON(w, res)
	case "sarif":
		data, err := report.ToSARIF(res.Findings, res.RunID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return report.Text(w, res)
	}
}

// writeOutput sends fn's output to file when set, else to stdout.
func writeOutput(stdout io.Writer, file string, fn func(io.Writer) error) error {
	if file == "" {
		return fn(stdout)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create %s: %w", file, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
