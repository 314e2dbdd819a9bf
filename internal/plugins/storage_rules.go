package plugins

import (
	"fmt"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

type ledgerSizeRule struct{}

func (d *ledgerSizeRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleLedgerSize, Title: "Persisted type near ledger entry limit", Severity: model.SeverityHigh, Tags: []string{"storage"}, Configurable: true}
}

func (d *ledgerSizeRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, w := range a.LedgerSizeIn(u.File) {
		rep.LedgerSizeWarnings = append(rep.LedgerSizeWarnings, w)
		sev := model.SeverityLow
		if w.Level == model.ExceedsLimit {
			sev = model.SeverityHigh
		}
		out = append(out, newFinding(d.Meta(), u, sev, w.Line, w.StructName,
			fmt.Sprintf("%s is estimated at %d bytes (%s, limit %d)", w.StructName, w.EstimatedSize, w.Level, w.Limit),
			"Split the type into smaller entries or move unbounded collections to separate keys."))
	}
	return out
}

type storageCollisionRule struct{}

func (d *storageCollisionRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleStorageCollisions, Title: "Storage key collision", Severity: model.SeverityHigh, Tags: []string{"storage"}}
}

func (d *storageCollisionRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, c := range a.StorageCollisionsIn(u.File) {
		rep.StorageCollisions = append(rep.StorageCollisions, c)
		out = append(out, newFinding(d.Meta(), u, model.SeverityHigh, c.Line, c.KeyValue, c.Message,
			"Give every storage key a distinct value."))
	}
	return out
}

type eventRule struct{}

func (d *eventRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: RuleEvents, Title: "Event schema consistency", Severity: model.SeverityLow, Tags: []string{"events"}, Configurable: true}
}

func (d *eventRule) Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding {
	var out []model.Finding
	for _, e := range a.EventsIn(u.File) {
		rep.EventIssues = append(rep.EventIssues, e)
		sev := model.SeverityInfo
		if e.IssueType == model.EventInconsistentSchema {
			sev = model.SeverityLow
		}
		out = append(out, newFinding(d.Meta(), u, sev, e.Line, e.EventName, e.Message, ""))
	}
	return out
}
