package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackyaro/Sanctifier/internal/analyzer"
	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

const setterSource = `
pub struct C;
impl C {
    pub fn set_value(env: Env, v: u32) {
        let x = v + 1;
        env.storage().instance().set(&KEY, &x);
    }
}
`

func builtin() *Registry {
	r := NewRegistry()
	r.RegisterBuiltin()
	return r
}

func unit(a *analyzer.Analyzer, path, src string) *Unit {
	return &Unit{Path: path, Source: src, File: a.Parse(src)}
}

func ruleIDs(rules []Rule) []string {
	var ids []string
	for _, r := range rules {
		ids = append(ids, r.Meta().ID)
	}
	return ids
}

func TestEnabledGating(t *testing.T) {
	r := builtin()
	assert.Len(t, r.Rules(), 11)

	ids := ruleIDs(r.Enabled(config.Default()))
	assert.NotContains(t, ids, RuleUnsafePatterns)
	assert.Contains(t, ids, RuleAuthGaps)
	assert.Contains(t, ids, RuleStorageCollisions)
	assert.Contains(t, ids, RuleCustom)

	cfg := config.Default()
	cfg.EnabledRules = nil
	assert.Equal(t, []string{
		RuleStorageCollisions, RuleGas, RuleComplexity, RuleUpgrades, RuleCustom,
	}, ruleIDs(r.Enabled(cfg)))
}

func TestRunProducesFindingsAndReport(t *testing.T) {
	a := analyzer.New(config.Default())
	rep, findings := builtin().Run(a, unit(a, "src/lib.rs", setterSource))

	require.Len(t, findings, 2)
	auth := findings[0]
	assert.Equal(t, RuleAuthGaps, auth.RuleID)
	assert.Equal(t, model.SeverityHigh, auth.Severity)
	assert.Equal(t, 4, auth.StartLine)
	assert.Equal(t, auth.StartLine, auth.EndLine)
	assert.Equal(t, "set_value", auth.Entity)
	assert.Contains(t, auth.Message, "set_value")
	assert.Contains(t, auth.Snippet, "pub fn set_value")
	assert.Len(t, auth.Fingerprint, 64)

	arith := findings[1]
	assert.Equal(t, RuleArithmetic, arith.RuleID)
	assert.Equal(t, 5, arith.StartLine)
	assert.Contains(t, arith.Remediation, "checked_add")

	assert.Equal(t, []string{"set_value"}, rep.AuthGaps)
	require.Len(t, rep.ArithmeticIssues, 1)
	require.Len(t, rep.GasEstimates, 1)
	assert.Equal(t, "set_value", rep.GasEstimates[0].FunctionName)
	require.Len(t, rep.Complexity, 1)
	assert.Empty(t, rep.PanicIssues)
	assert.Empty(t, rep.UnsafePatterns)
}

func TestRunOptInRule(t *testing.T) {
	cfg := config.Default()
	cfg.EnabledRules = []string{RuleUnsafePatterns}
	a := analyzer.New(cfg)
	src := "pub fn f(v: Option<u32>) -> u32 {\n    v.unwrap()\n}\n"
	rep, findings := builtin().Run(a, unit(a, "lib.rs", src))

	require.Len(t, findings, 1)
	assert.Equal(t, RuleUnsafePatterns, findings[0].RuleID)
	assert.Equal(t, model.SeverityLow, findings[0].Severity)
	assert.Equal(t, 2, findings[0].StartLine)
	require.Len(t, rep.UnsafePatterns, 1)
	assert.Equal(t, model.PatternUnwrap, rep.UnsafePatterns[0].PatternType)
}

func TestRunUnparsableSource(t *testing.T) {
	a := analyzer.New(config.Default())
	src := "fn broken( {\n    std::mem::forget(x)\n"
	u := unit(a, "broken.rs", src)
	require.Nil(t, u.File)

	rep, findings := builtin().Run(a, u)
	require.Len(t, findings, 1)
	assert.Equal(t, RuleCustom, findings[0].RuleID)
	assert.Equal(t, "no_mem_forget", findings[0].Entity)
	assert.Equal(t, 2, findings[0].StartLine)
	assert.Empty(t, rep.AuthGaps)
	require.Len(t, rep.CustomRuleMatches, 1)
}
