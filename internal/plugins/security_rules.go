package plugins

import (
	"fmt"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

type authGapRule struct{}

func (d *authGapRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleAuthGaps, Title: "Storage mutation without require_auth", Severity: model.SeverityHigh, Tags: []string{"auth"}, Configurable: true}
}

func (d *authGapRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, g := range a.AuthGapsIn(u.File) {
		rep.AuthGaps = append(rep.AuthGaps, g.FunctionName)
		out = append(out, newFinding(d.Meta(), u, model.SeverityHigh, g.Line, g.FunctionName,
			fmt.Sprintf("Function %s writes contract storage without calling require_auth", g.FunctionName),
			"Call require_auth() on the authorizing address before mutating storage."))
	}
	return out
}

type panicRule struct{}

func (d *panicRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RulePanics, Title: "Explicit panic, unwrap or expect", Severity: model.SeverityMedium, Tags: []string{"robustness"}, Configurable: true}
}

func (d *panicRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, p := range a.PanicsIn(u.File) {
		rep.PanicIssues = append(rep.PanicIssues, p)
		out = append(out, newFinding(d.Meta(), u, model.SeverityMedium, p.Line, p.FunctionName,
			fmt.Sprintf("%s in %s can abort the contract call", p.IssueType, p.FunctionName),
			"Return a typed contract error instead of panicking."))
	}
	return out
}

type arithmeticRule struct{}

func (d *arithmeticRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleArithmetic, Title: "Unchecked arithmetic", Severity: model.SeverityMedium, Tags: []string{"overflow"}, Configurable: true}
}

func (d *arithmeticRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, i := range a.ArithmeticIn(u.File) {
		rep.ArithmeticIssues = append(rep.ArithmeticIssues, i)
		out = append(out, newFinding(d.Meta(), u, model.SeverityMedium, i.Line, i.FunctionName,
			fmt.Sprintf("Unchecked '%s' in %s may overflow", i.Operation, i.FunctionName),
			i.Suggestion))
	}
	return out
}

type unsafePatternRule struct{}

func (d *unsafePatternRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleUnsafePatterns, Title: "Panicking construct anywhere in the file", Severity: model.SeverityLow, Tags: []string{"robustness"}, Configurable: true}
}

func (d *unsafePatternRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, p := range a.UnsafePatternsIn(u.File) {
		rep.UnsafePatterns = append(rep.UnsafePatterns, p)
		out = append(out, newFinding(d.Meta(), u, model.SeverityLow, p.Line, string(p.PatternType),
			fmt.Sprintf("%s pattern: %s", p.PatternType, p.Snippet), ""))
	}
	return out
}
