// Package analyzer is the entry point to the detectors. An Analyzer holds a read-only
// configuration and may be shared by any number of concurrent analyses.
package analyzer

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/detectors"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

type compiledRule struct {
	name string
	re   *regexp.Regexp
}

type Analyzer struct {
	cfg   config.Config
	log   *zap.Logger
	rules []compiledRule
}

type Option func(*Analyzer)

func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// New compiles the configured custom rules. A rule whose pattern does not compile is
// skipped.
func New(cfg config.Config, opts ...Option) *Analyzer {
	a := &Analyzer{cfg: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(a)
	}
	for _, r := range cfg.CustomRules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			a.log.Warn("skipping custom rule with invalid pattern", zap.String("rule", r.Name), zap.Error(err))
			continue
		}
		a.rules = append(a.rules, compiledRule{name: r.Name, re: re})
	}
	return a
}

func (a *Analyzer) Config() config.Config { return a.cfg }

// Parse parses src, returning nil when the source is unparsable or the parser faults.
func (a *Analyzer) Parse(src string) *syntax.File {
	return recoverable(a.log, "parse", (*syntax.File)(nil), func() *syntax.File {
		f, err := syntax.Parse(src)
		if err != nil {
			a.log.Debug("source not parsable", zap.Error(err))
			return nil
		}
		return f
	})
}

// Tree-level entry points. A nil file yields the empty result.

func (a *Analyzer) AuthGapsIn(f *syntax.File) []model.AuthGap {
	return recoverable(a.log, "auth_gaps", []model.AuthGap{}, func() []model.AuthGap {
		if f == nil {
			return []model.AuthGap{}
		}
		return detectors.AuthGaps(f)
	})
}

func (a *Analyzer) PanicsIn(f *syntax.File) []model.PanicIssue {
	return recoverable(a.log, "panics", []model.PanicIssue{}, func() []model.PanicIssue {
		if f == nil {
			return []model.PanicIssue{}
		}
		return detectors.Panics(f)
	})
}

func (a *Analyzer) ArithmeticIn(f *syntax.File) []model.ArithmeticIssue {
	return recoverable(a.log, "arithmetic", []model.ArithmeticIssue{}, func() []model.ArithmeticIssue {
		if f == nil {
			return []model.ArithmeticIssue{}
		}
		return detectors.ArithmeticOverflow(f)
	})
}

func (a *Analyzer) LedgerSizeIn(f *syntax.File) []model.SizeWarning {
	return recoverable(a.log, "ledger_size", []model.SizeWarning{}, func() []model.SizeWarning {
		if f == nil {
			return []model.SizeWarning{}
		}
		return detectors.LedgerSize(f, detectors.LedgerLimits{
			Limit:       a.cfg.LedgerLimit,
			Approaching: a.cfg.ApproachingThreshold,
			Strict:      a.cfg.StrictMode,
		})
	})
}

func (a *Analyzer) StorageCollisionsIn(f *syntax.File) []model.StorageCollisionIssue {
	return recoverable(a.log, "storage_collisions", []model.StorageCollisionIssue{}, func() []model.StorageCollisionIssue {
		if f == nil {
			return []model.StorageCollisionIssue{}
		}
		return detectors.StorageCollisions(f)
	})
}

func (a *Analyzer) GasIn(f *syntax.File) []model.GasEstimationReport {
	return recoverable(a.log, "gas", []model.GasEstimationReport{}, func() []model.GasEstimationReport {
		if f == nil {
			return []model.GasEstimationReport{}
		}
		return detectors.GasEstimates(f)
	})
}

func (a *Analyzer) ComplexityIn(f *syntax.File, path string) model.ContractMetrics {
	empty := model.ContractMetrics{ContractPath: path, Functions: []model.FunctionMetrics{}}
	return recoverable(a.log, "complexity", empty, func() model.ContractMetrics {
		if f == nil {
			return empty
		}
		return detectors.Complexity(f, path)
	})
}

func (a *Analyzer) UnsafePatternsIn(f *syntax.File) []model.UnsafePattern {
	return recoverable(a.log, "unsafe_patterns", []model.UnsafePattern{}, func() []model.UnsafePattern {
		if f == nil {
			return []model.UnsafePattern{}
		}
		return detectors.UnsafePatterns(f)
	})
}

func (a *Analyzer) UpgradesIn(f *syntax.File) model.UpgradeReport {
	empty := model.UpgradeReport{
		Findings:          []model.UpgradeFinding{},
		UpgradeMechanisms: []string{},
		InitFunctions:     []string{},
		StorageTypes:      []string{},
		Suggestions:       []string{},
	}
	return recoverable(a.log, "upgrades", empty, func() model.UpgradeReport {
		if f == nil {
			return empty
		}
		return detectors.UpgradePatterns(f)
	})
}

func (a *Analyzer) EventsIn(f *syntax.File) []model.EventIssue {
	return recoverable(a.log, "events", []model.EventIssue{}, func() []model.EventIssue {
		if f == nil {
			return []model.EventIssue{}
		}
		return detectors.Events(f)
	})
}

// Source-level entry points parse src themselves.

func (a *Analyzer) ScanAuthGaps(src string) []string {
	gaps := a.AuthGapsIn(a.Parse(src))
	names := make([]string, 0, len(gaps))
	for _, g := range gaps {
		names = append(names, g.FunctionName)
	}
	return names
}

func (a *Analyzer) ScanPanics(src string) []model.PanicIssue {
	return a.PanicsIn(a.Parse(src))
}

func (a *Analyzer) ScanArithmeticOverflow(src string) []model.ArithmeticIssue {
	return a.ArithmeticIn(a.Parse(src))
}

func (a *Analyzer) AnalyzeLedgerSize(src string) []model.SizeWarning {
	return a.LedgerSizeIn(a.Parse(src))
}

func (a *Analyzer) ScanStorageCollisions(src string) []model.StorageCollisionIssue {
	return a.StorageCollisionsIn(a.Parse(src))
}

func (a *Analyzer) ScanGasEstimation(src string) []model.GasEstimationReport {
	return a.GasIn(a.Parse(src))
}

func (a *Analyzer) AnalyzeComplexity(src, path string) model.ContractMetrics {
	return a.ComplexityIn(a.Parse(src), path)
}

func (a *Analyzer) AnalyzeUnsafePatterns(src string) []model.UnsafePattern {
	return a.UnsafePatternsIn(a.Parse(src))
}

func (a *Analyzer) AnalyzeUpgradePatterns(src string) model.UpgradeReport {
	return a.UpgradesIn(a.Parse(src))
}

func (a *Analyzer) ScanEvents(src string) []model.EventIssue {
	return a.EventsIn(a.Parse(src))
}

// AnalyzeCustomRules matches every compiled custom rule against each line of src.
// It works on raw text and so runs even when src does not parse.
func (a *Analyzer) AnalyzeCustomRules(src string) []model.CustomRuleMatch {
	return recoverable(a.log, "custom_rules", []model.CustomRuleMatch{}, func() []model.CustomRuleMatch {
		matches := []model.CustomRuleMatch{}
		lines := strings.Split(src, "\n")
		for _, r := range a.rules {
			for i, line := range lines {
				if r.re.MatchString(line) {
					matches = append(matches, model.CustomRuleMatch{
						RuleName: r.name,
						Line:     i + 1,
						Snippet:  strings.TrimSpace(line),
					})
				}
			}
		}
		return matches
	})
}
