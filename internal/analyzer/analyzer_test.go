package analyzer

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestTokenFixture(t *testing.T) {
	a := New(config.Default())
	src := readFixture(t, "vulnerable_token.rs")

	gaps := a.ScanAuthGaps(src)
	assert.Contains(t, gaps, "mint")
	assert.Contains(t, gaps, "transfer")
	assert.NotContains(t, gaps, "burn")
	assert.NotContains(t, gaps, "initialize")

	var kinds []model.PatternType
	for _, p := range a.AnalyzeUnsafePatterns(src) {
		kinds = append(kinds, p.PatternType)
	}
	assert.Contains(t, kinds, model.PatternPanic)
	assert.Contains(t, kinds, model.PatternUnwrap)

	var panics []string
	for _, p := range a.ScanPanics(src) {
		panics = append(panics, p.FunctionName+"/"+p.IssueType)
	}
	assert.Equal(t, []string{"transfer/panic", "burn/unwrap"}, panics)

	var ops []string
	for _, i := range a.ScanArithmeticOverflow(src) {
		ops = append(ops, i.FunctionName+i.Operation)
	}
	assert.Equal(t, []string{"mint+", "transfer-", "transfer+", "burn-"}, ops)

	gas := a.ScanGasEstimation(src)
	require.Len(t, gas, 4)
	assert.Equal(t, "initialize", gas[0].FunctionName)

	up := a.AnalyzeUpgradePatterns(src)
	assert.Equal(t, []string{"initialize"}, up.InitFunctions)
	assert.Equal(t, []string{"DataKey"}, up.StorageTypes)

	assert.Empty(t, a.AnalyzeLedgerSize(src))
	assert.Empty(t, a.ScanStorageCollisions(src))
}

func TestEndToEndAdd(t *testing.T) {
	a := New(config.Default())
	src := `
struct Calc;
impl Calc {
    pub fn add(a: u64, b: u64) -> u64 { a + b }
}
`
	assert.Empty(t, a.ScanAuthGaps(src))
	assert.Empty(t, a.ScanPanics(src))
	issues := a.ScanArithmeticOverflow(src)
	require.Len(t, issues, 1)
	assert.Equal(t, "+", issues[0].Operation)
	assert.Contains(t, issues[0].Suggestion, "checked_add")
}

func TestLedgerLimitFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LedgerLimit = 50
	a := New(cfg)
	got := a.AnalyzeLedgerSize(`
#[contracttype]
pub struct Blob { data: Bytes }
`)
	require.Len(t, got, 1)
	assert.Equal(t, 64, got[0].EstimatedSize)
	assert.Equal(t, model.ExceedsLimit, got[0].Level)
}

func TestUnparsableDegradesToEmpty(t *testing.T) {
	a := New(config.Default())
	src := "pub fn broken( { unsafe { std::mem::forget(x) }"

	assert.Nil(t, a.Parse(src))
	assert.Equal(t, []string{}, a.ScanAuthGaps(src))
	assert.Equal(t, []model.PanicIssue{}, a.ScanPanics(src))
	assert.Equal(t, []model.ArithmeticIssue{}, a.ScanArithmeticOverflow(src))
	assert.Equal(t, []model.SizeWarning{}, a.AnalyzeLedgerSize(src))
	assert.Equal(t, []model.StorageCollisionIssue{}, a.ScanStorageCollisions(src))
	assert.Equal(t, []model.GasEstimationReport{}, a.ScanGasEstimation(src))
	assert.Equal(t, []model.UnsafePattern{}, a.AnalyzeUnsafePatterns(src))
	assert.Equal(t, []model.EventIssue{}, a.ScanEvents(src))
	assert.Empty(t, a.AnalyzeUpgradePatterns(src).Findings)

	cm := a.AnalyzeComplexity(src, "broken.rs")
	assert.Equal(t, "broken.rs", cm.ContractPath)
	assert.Empty(t, cm.Functions)

	// Custom rules work on raw text.
	var names []string
	for _, m := range a.AnalyzeCustomRules(src) {
		names = append(names, m.RuleName)
	}
	assert.Equal(t, []string{"no_unsafe_block", "no_mem_forget"}, names)
}

func TestCustomRules(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.Default()
	cfg.CustomRules = []config.CustomRule{
		{Name: "no_unsafe_block", Pattern: `unsafe\s*\{`},
		{Name: "broken", Pattern: `(`},
		{Name: "todo", Pattern: `TODO`},
	}
	a := New(cfg, WithLogger(zap.New(core)))

	require.Equal(t, 1, logs.FilterMessage("skipping custom rule with invalid pattern").Len())
	assert.Equal(t, "broken", logs.All()[0].ContextMap()["rule"])

	src := "fn f() {\n    unsafe { g() }\n    // TODO: remove\n    unsafe{ h() }\n}\n"
	want := []model.CustomRuleMatch{
		{RuleName: "no_unsafe_block", Line: 2, Snippet: "unsafe { g() }"},
		{RuleName: "no_unsafe_block", Line: 4, Snippet: "unsafe{ h() }"},
		{RuleName: "todo", Line: 3, Snippet: "// TODO: remove"},
	}
	if diff := cmp.Diff(want, a.AnalyzeCustomRules(src)); diff != "" {
		t.Errorf("AnalyzeCustomRules() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecoverable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	got := recoverable(log, "exploding", []string{"fallback"}, func() []string {
		var m map[string][]string
		m["x"] = append(m["x"], "boom")
		return nil
	})
	assert.Equal(t, []string{"fallback"}, got)

	entries := logs.FilterMessage("detector fault recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "exploding", entries[0].ContextMap()["detector"])

	ok := recoverable(log, "fine", 0, func() int { return 42 })
	assert.Equal(t, 42, ok)
	assert.Equal(t, 1, logs.Len())
}

func TestDetectorsAreIdempotent(t *testing.T) {
	a := New(config.Default())
	src := readFixture(t, "vulnerable_token.rs")

	run := func() []any {
		return []any{
			a.ScanAuthGaps(src),
			a.ScanPanics(src),
			a.ScanArithmeticOverflow(src),
			a.AnalyzeLedgerSize(src),
			a.ScanStorageCollisions(src),
			a.ScanGasEstimation(src),
			a.AnalyzeComplexity(src, "token.rs"),
			a.AnalyzeUnsafePatterns(src),
			a.AnalyzeUpgradePatterns(src),
			a.ScanEvents(src),
			a.AnalyzeCustomRules(src),
		}
	}
	first := run()
	if diff := cmp.Diff(first, run()); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestConcurrentUse(t *testing.T) {
	a := New(config.Default())
	src := readFixture(t, "vulnerable_token.rs")
	want := a.ScanArithmeticOverflow(src)

	var wg sync.WaitGroup
	results := make([][]model.ArithmeticIssue, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = a.ScanArithmeticOverflow(src)
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, want, r)
	}
}
