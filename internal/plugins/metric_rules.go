package plugins

import (
	"fmt"
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

type gasRule struct{}

func (d *gasRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleGas, Title: "Instruction and memory estimate", Severity: model.SeverityInfo, Tags: []string{"metrics"}}
}

// Run records estimates only; gas is a metric, not a finding.
func (d *gasRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	rep.GasEstimates = append(rep.GasEstimates, a.GasIn(u.File)...)
	return nil
}

type complexityRule struct{}

func (d *complexityRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleComplexity, Title: "Function complexity thresholds", Severity: model.SeverityLow, Tags: []string{"metrics"}}
}

func (d *complexityRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	cm := a.ComplexityIn(u.File, u.Path)
	rep.Complexity = append(rep.Complexity, cm)
	var out []model.Finding
	for _, fn := range cm.Functions {
		if len(fn.Warnings) == 0 {
			continue
		}
		out = append(out, newFinding(d.Meta(), u, model.SeverityLow, fn.Line, fn.Name,
			fmt.Sprintf("%s: %s", fn.Name, strings.Join(fn.Warnings, "; ")),
			"Split the function into smaller helpers."))
	}
	return out
}
