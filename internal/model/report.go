package model

import (
	"slices"
	"strconv"
)

// Report collects every detector's output for one file, or for a whole run once
// per-file reports are merged.
type Report struct {
	StorageCollisions  []StorageCollisionIssue `json:"storage_collisions"`
	LedgerSizeWarnings []SizeWarning           `json:"ledger_size_warnings"`
	UnsafePatterns     []UnsafePattern         `json:"unsafe_patterns"`
	AuthGaps           []string                `json:"auth_gaps"`
	PanicIssues        []PanicIssue            `json:"panic_issues"`
	ArithmeticIssues   []ArithmeticIssue       `json:"arithmetic_issues"`
	EventIssues        []EventIssue            `json:"event_issues"`
	GasEstimates       []GasEstimationReport   `json:"gas_estimates"`
	Complexity         []ContractMetrics       `json:"complexity"`
	Upgrades           UpgradeReport           `json:"upgrades"`
	CustomRuleMatches  []CustomRuleMatch       `json:"custom_rule_matches"`
}

// Merge appends other into r, prefixing locations with file.
func (r *Report) Merge(file string, other Report) {
	prefix := func(s string) string {
		if file == "" {
			return s
		}
		return file + ":" + s
	}
	for _, c := range other.StorageCollisions {
		c.Location = prefix(c.Location)
		r.StorageCollisions = append(r.StorageCollisions, c)
	}
	for _, w := range other.LedgerSizeWarnings {
		w.Location = prefix(w.StructName + ":" + strconv.Itoa(w.Line))
		r.LedgerSizeWarnings = append(r.LedgerSizeWarnings, w)
	}
	for _, u := range other.UnsafePatterns {
		u.Snippet = prefix(u.Snippet)
		r.UnsafePatterns = append(r.UnsafePatterns, u)
	}
	for _, g := range other.AuthGaps {
		r.AuthGaps = append(r.AuthGaps, prefix(g))
	}
	for _, p := range other.PanicIssues {
		p.Location = prefix(p.Location)
		r.PanicIssues = append(r.PanicIssues, p)
	}
	for _, a := range other.ArithmeticIssues {
		a.Location = prefix(a.Location)
		r.ArithmeticIssues = append(r.ArithmeticIssues, a)
	}
	for _, e := range other.EventIssues {
		e.Location = prefix(e.Location)
		r.EventIssues = append(r.EventIssues, e)
	}
	for _, g := range other.GasEstimates {
		g.FunctionName = prefix(g.FunctionName)
		r.GasEstimates = append(r.GasEstimates, g)
	}
	r.Complexity = append(r.Complexity, other.Complexity...)
	for _, f := range other.Upgrades.Findings {
		f.Location = prefix(f.Location)
		r.Upgrades.Findings = append(r.Upgrades.Findings, f)
	}
	r.Upgrades.UpgradeMechanisms = append(r.Upgrades.UpgradeMechanisms, other.Upgrades.UpgradeMechanisms...)
	r.Upgrades.InitFunctions = append(r.Upgrades.InitFunctions, other.Upgrades.InitFunctions...)
	r.Upgrades.StorageTypes = append(r.Upgrades.StorageTypes, other.Upgrades.StorageTypes...)
	for _, s := range other.Upgrades.Suggestions {
		if !slices.Contains(r.Upgrades.Suggestions, s) {
			r.Upgrades.Suggestions = append(r.Upgrades.Suggestions, s)
		}
	}
	for _, m := range other.CustomRuleMatches {
		m.Snippet = prefix(m.Snippet)
		r.CustomRuleMatches = append(r.CustomRuleMatches, m)
	}
}

// Normalize replaces nil slices with empty ones so JSON renders [] instead of null.
func (r *Report) Normalize() {
	if r.StorageCollisions == nil {
		r.StorageCollisions = []StorageCollisionIssue{}
	}
	if r.LedgerSizeWarnings == nil {
		r.LedgerSizeWarnings = []SizeWarning{}
	}
	if r.UnsafePatterns == nil {
		r.UnsafePatterns = []UnsafePattern{}
	}
	if r.AuthGaps == nil {
		r.AuthGaps = []string{}
	}
	if r.PanicIssues == nil {
		r.PanicIssues = []PanicIssue{}
	}
	if r.ArithmeticIssues == nil {
		r.ArithmeticIssues = []ArithmeticIssue{}
	}
	if r.EventIssues == nil {
		r.EventIssues = []EventIssue{}
	}
	if r.GasEstimates == nil {
		r.GasEstimates = []GasEstimationReport{}
	}
	if r.Complexity == nil {
		r.Complexity = []ContractMetrics{}
	}
	if r.Upgrades.Findings == nil {
		r.Upgrades.Findings = []UpgradeFinding{}
	}
	if r.Upgrades.UpgradeMechanisms == nil {
		r.Upgrades.UpgradeMechanisms = []string{}
	}
	if r.Upgrades.InitFunctions == nil {
		r.Upgrades.InitFunctions = []string{}
	}
	if r.Upgrades.StorageTypes == nil {
		r.Upgrades.StorageTypes = []string{}
	}
	if r.Upgrades.Suggestions == nil {
		r.Upgrades.Suggestions = []string{}
	}
	if r.CustomRuleMatches == nil {
		r.CustomRuleMatches = []CustomRuleMatch{}
	}
}
