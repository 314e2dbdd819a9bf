package plugins

import (
	"path/filepath"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
	"github.com/meshackyaro/Sanctifier/internal/util"
)

// Rule IDs. The configurable ones are switched by enabled_rules; the rest always run.
const (
	RuleAuthGaps          = "auth_gaps"
	RulePanics            = "panics"
	RuleArithmetic        = "arithmetic"
	RuleLedgerSize        = "ledger_size"
	RuleEvents            = "events"
	RuleUnsafePatterns    = "unsafe_patterns"
	RuleStorageCollisions = "storage_collisions"
	RuleGas               = "gas"
	RuleComplexity        = "complexity"
	RuleUpgrades          = "upgrades"
	RuleCustom            = "custom_rules"
)

// Unit is one source file handed to the rules. File is nil when the source did not parse.
type Unit struct {
	Path   string
	Source string
	File   *syntax.File
}

// Rule runs one detector over a unit, records its typed output in rep and returns the
// unified findings.
type Rule interface {
	Meta() model.RuleMeta
	Run(a *analyzer.Analyzer, u *Unit, rep *model.Report) []model.Finding
}

type Registry struct{ rules []Rule }

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Register(rule Rule) { r.rules = append(r.rules, rule) }

func (r *Registry) RegisterBuiltin() {
	r.Register(&storageCollisionRule{})
	r.Register(&ledgerSizeRule{})
	r.Register(&unsafePatternRule{})
	r.Register(&authGapRule{})
	r.Register(&panicRule{})
	r.Register(&arithmeticRule{})
	r.Register(&eventRule{})
	r.Register(&gasRule{})
	r.Register(&complexityRule{})
	r.Register(&upgradeRule{})
	r.Register(&customRule{})
}

func (r *Registry) Rules() []Rule { return r.rules }

// Enabled returns the rules that run under cfg.
func (r *Registry) Enabled(cfg config.Config) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		m := rule.Meta()
		if !m.Configurable || cfg.RuleEnabled(m.ID) {
			out = append(out, rule)
		}
	}
	return out
}

// Run applies the enabled rules to one unit in registration order.
func (r *Registry) Run(a *analyzer.Analyzer, u *Unit) (model.Report, []model.Finding) {
	var rep model.Report
	var findings []model.Finding
	for _, rule := range r.Enabled(a.Config()) {
		findings = append(findings, rule.Run(a, u, &rep)...)
	}
	for i := range findings {
		findings[i].File = filepath.ToSlash(findings[i].File)
	}
	return rep, findings
}

// newFinding fills the location-derived fields of a unified finding.
func newFinding(m model.RuleMeta, u *Unit, sev model.Severity, line int, entity, msg, remediation string) model.Finding {
	if line < 1 {
		line = 1
	}
	return model.Finding{
		RuleID:      m.ID,
		Severity:    sev,
		File:        u.Path,
		StartLine:   line,
		EndLine:     line,
		Snippet:     util.ExtractSnippet(u.Source, line, line, 4),
		Entity:      entity,
		Message:     msg,
		Remediation: remediation,
		Fingerprint: util.Fingerprint(m.ID, filepath.ToSlash(u.Path), line, line, entity+"|"+msg),
	}
}
