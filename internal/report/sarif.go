package report

import (
	"encoding/json"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/plugins"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool        `json:"tool"`
	AutomationDetails *sarifAutomation `json:"automationDetails,omitempty"`
	Results           []sarifResult    `json:"results"`
}

type sarifAutomation struct {
	ID string `json:"id"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
	DefaultConfig    sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityMedium:
		return "warning"
	case model.SeverityHigh, model.SeverityCritical:
		return "error"
	default:
		return "note"
	}
}

// ToSARIF renders findings as a SARIF 2.1.0 log. runID becomes the automation id when
// set.
func ToSARIF(findings []model.Finding, runID string) ([]byte, error) {
	reg := plugins.NewRegistry()
	reg.RegisterBuiltin()
	var rules []sarifRule
	for _, r := range reg.Rules() {
		m := r.Meta()
		rules = append(rules, sarifRule{
			ID:               m.ID,
			ShortDescription: sarifMessage{Text: m.Title},
			DefaultConfig:    sarifConfig{Level: sarifLevel(m.Severity)},
		})
	}

	results := []sarifResult{}
	for _, f := range findings {
		res := sarifResult{
			RuleID:  f.RuleID,
			Level:   sarifLevel(f.Severity),
			Message: sarifMessage{Text: f.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: f.File},
				Region:           sarifRegion{StartLine: f.StartLine, EndLine: f.EndLine},
			}}},
		}
		if f.Fingerprint != "" {
			res.PartialFingerprints = map[string]string{"sanctifier/v1": f.Fingerprint}
		}
		results = append(results, res)
	}
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "sanctifier", Rules: rules}},
		Results: results,
	}
	if runID != "" {
		run.AutomationDetails = &sarifAutomation{ID: runID}
	}
	s := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	return json.MarshalIndent(s, "", "  ")
}
