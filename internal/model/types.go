package model

import (
	"strings"
	"time"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	case string(SeverityLow):
		return SeverityLow
	default:
		return SeverityInfo
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityInfo: 0, SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3, SeverityCritical: 4}
	return order[a] >= order[b]
}

type RuleMeta struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Severity     Severity `json:"severity"`
	Tags         []string `json:"tags"`
	Configurable bool     `json:"configurable"`
}

// Finding is the rule-agnostic view of one issue, used for SARIF, baselines,
// suppression and the interactive browser.
type Finding struct {
	RuleID      string   `json:"ruleId"`
	Severity    Severity `json:"severity"`
	File        string   `json:"file"`
	StartLine   int      `json:"startLine"`
	EndLine     int      `json:"endLine"`
	Snippet     string   `json:"snippet"`
	Entity      string   `json:"entity"`
	Message     string   `json:"message"`
	Remediation string   `json:"remediation"`
	Fingerprint string   `json:"fingerprint"`
}

type ScanRequest struct {
	Path         string
	Jobs         int
	UseCache     bool
	BaselinePath string
}

type ScanResult struct {
	RunID    string        `json:"run_id"`
	Root     string        `json:"root"`
	Files    []string      `json:"files"`
	Report   Report        `json:"report"`
	Findings []Finding     `json:"findings"`
	Elapsed  time.Duration `json:"elapsed"`
}
