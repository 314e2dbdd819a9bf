package plugins

import (
	"fmt"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

type upgradeRule struct{}

func (d *upgradeRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleUpgrades, Title: "Upgrade and admin surface", Severity: model.SeverityMedium, Tags: []string{"governance"}}
}

func (d *upgradeRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	ur := a.UpgradesIn(u.File)
	rep.Upgrades = ur
	var out []model.Finding
	for _, f := range ur.Findings {
		sev := model.SeverityInfo
		if f.Category == model.CategoryAdminControl {
			sev = model.SeverityMedium
		}
		out = append(out, newFinding(d.Meta(), u, sev, f.Line, f.FunctionName,
			fmt.Sprintf("%s: %s", f.Category, f.Message), f.Suggestion))
	}
	return out
}

type customRule struct{}

func (d *customRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleCustom, Title: "User-defined pattern", Severity: model.SeverityMedium, Tags: []string{"custom"}}
}

func (d *customRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, m := range a.AnalyzeCustomRules(u.Source) {
		rep.CustomRuleMatches = append(rep.CustomRuleMatches, m)
		out = append(out, newFinding(d.Meta(), u, model.SeverityMedium, m.Line, m.RuleName,
			fmt.Sprintf("Custom rule %s matched: %s", m.RuleName, m.Snippet), ""))
	}
	return out
}
