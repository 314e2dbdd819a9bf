package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := map[string]Severity{
		"critical": SeverityCritical,
		" HIGH ":   SeverityHigh,
		"Medium":   SeverityMedium,
		"low":      SeverityLow,
		"info":     SeverityInfo,
		"":         SeverityInfo,
		"whatever": SeverityInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSeverity(in), "input %q", in)
	}
}

func TestSeverityGTE(t *testing.T) {
	assert.True(t, SeverityGTE(SeverityCritical, SeverityHigh))
	assert.True(t, SeverityGTE(SeverityMedium, SeverityMedium))
	assert.False(t, SeverityGTE(SeverityLow, SeverityMedium))
	assert.True(t, SeverityGTE(SeverityInfo, SeverityInfo))
}

func TestMergePrefixesLocations(t *testing.T) {
	var total Report
	total.Merge("src/lib.rs", Report{
		AuthGaps:          []string{"mint"},
		PanicIssues:       []PanicIssue{{FunctionName: "burn", IssueType: IssueUnwrap, Location: "burn", Line: 9}},
		ArithmeticIssues:  []ArithmeticIssue{{FunctionName: "add", Operation: "+", Location: "add:4", Line: 4}},
		GasEstimates:      []GasEstimationReport{{FunctionName: "add", EstimatedInstructions: 60}},
		CustomRuleMatches: []CustomRuleMatch{{RuleName: "todo", Line: 2, Snippet: "// TODO"}},
		Upgrades: UpgradeReport{
			Findings:    []UpgradeFinding{{Category: CategoryGovernance, Location: "upgrade:7"}},
			Suggestions: []string{"s1"},
		},
	})
	total.Merge("src/other.rs", Report{
		AuthGaps:    []string{"transfer"},
		Upgrades:    UpgradeReport{Suggestions: []string{"s1", "s2"}},
		Complexity:  []ContractMetrics{{ContractPath: "src/other.rs"}},
		EventIssues: []EventIssue{{EventName: "x", Location: "emit:3"}},
	})

	assert.Equal(t, []string{"src/lib.rs:mint", "src/other.rs:transfer"}, total.AuthGaps)
	assert.Equal(t, "src/lib.rs:burn", total.PanicIssues[0].Location)
	assert.Equal(t, "src/lib.rs:add:4", total.ArithmeticIssues[0].Location)
	assert.Equal(t, "src/lib.rs:add", total.GasEstimates[0].FunctionName)
	assert.Equal(t, "src/lib.rs:// TODO", total.CustomRuleMatches[0].Snippet)
	assert.Equal(t, "src/lib.rs:upgrade:7", total.Upgrades.Findings[0].Location)
	assert.Equal(t, "src/other.rs:emit:3", total.EventIssues[0].Location)
	assert.Equal(t, []string{"s1", "s2"}, total.Upgrades.Suggestions)
	assert.Len(t, total.Complexity, 1)
}

func TestMergeAttributesLedgerWarnings(t *testing.T) {
	var total Report
	warn := SizeWarning{StructName: "DataKey", EstimatedSize: 70000, Limit: 65536, Level: ExceedsLimit, Line: 3}
	total.Merge("src/a.rs", Report{LedgerSizeWarnings: []SizeWarning{warn}})
	total.Merge("src/b.rs", Report{LedgerSizeWarnings: []SizeWarning{warn}})

	require.Len(t, total.LedgerSizeWarnings, 2)
	assert.Equal(t, "DataKey", total.LedgerSizeWarnings[0].StructName)
	assert.Equal(t, "src/a.rs:DataKey:3", total.LedgerSizeWarnings[0].Location)
	assert.Equal(t, "src/b.rs:DataKey:3", total.LedgerSizeWarnings[1].Location)

	var bare Report
	bare.Merge("", Report{LedgerSizeWarnings: []SizeWarning{warn}})
	assert.Equal(t, "DataKey:3", bare.LedgerSizeWarnings[0].Location)
}

func TestMergeWithoutFile(t *testing.T) {
	var total Report
	total.Merge("", Report{AuthGaps: []string{"mint"}})
	assert.Equal(t, []string{"mint"}, total.AuthGaps)
}

func TestNormalizeRendersEmptyArrays(t *testing.T) {
	var r Report
	r.Normalize()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "null")
	assert.Contains(t, string(b), `"auth_gaps":[]`)
	assert.Contains(t, string(b), `"suggestions":[]`)
}
