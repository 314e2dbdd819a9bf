package detectors

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

func TestArithmeticChainedCountsOnce(t *testing.T) {
	f := mustParse(t, `
pub fn sum(a: u64, b: u64, c: u64) -> u64 {
    let x = a + b + c;
    x + 1
}
`)
	issues := ArithmeticOverflow(f)
	require.Len(t, issues, 1)
	assert.Equal(t, "+", issues[0].Operation)
	assert.Equal(t, "sum:3", issues[0].Location)
	assert.Contains(t, issues[0].Suggestion, "checked_add")
}

func TestArithmeticOnePerOperator(t *testing.T) {
	f := mustParse(t, `
struct C;
impl C {
    pub fn calc(a: u64, b: u64) -> u64 {
        let s = a + b;
        let d = a - b;
        let p = a * b;
        let q = a / b;
        s + d + p + q
    }
}
`)
	var ops []string
	for _, i := range ArithmeticOverflow(f) {
		assert.Equal(t, "calc", i.FunctionName)
		ops = append(ops, i.Operation)
	}
	assert.Equal(t, []string{"+", "-", "*"}, ops)
}

func TestArithmeticCompoundAssignment(t *testing.T) {
	f := mustParse(t, `
fn bump(mut a: u64) -> u64 {
    a += 1;
    a -= 1;
    a *= 2;
    a += 3;
    a
}
`)
	want := []model.ArithmeticIssue{
		{FunctionName: "bump", Operation: "+=", Suggestion: arithmeticSuggestions["+="], Location: "bump:3", Line: 3},
		{FunctionName: "bump", Operation: "-=", Suggestion: arithmeticSuggestions["-="], Location: "bump:4", Line: 4},
		{FunctionName: "bump", Operation: "*=", Suggestion: arithmeticSuggestions["*="], Location: "bump:5", Line: 5},
	}
	if diff := cmp.Diff(want, ArithmeticOverflow(f)); diff != "" {
		t.Errorf("ArithmeticOverflow() mismatch (-want +got):\n%s", diff)
	}
}

func TestArithmeticSkipsStringOperands(t *testing.T) {
	f := mustParse(t, `
fn greet(name: String) -> String {
    name + "!"
}
`)
	assert.Empty(t, ArithmeticOverflow(f))
}

func TestArithmeticLineFromLeftOperand(t *testing.T) {
	f := mustParse(t, `
fn split(a: u64, b: u64) -> u64 {
    a
        - b
}
`)
	issues := ArithmeticOverflow(f)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Line)
}

func TestArithmeticFunctionContext(t *testing.T) {
	f := mustParse(t, `
const LIMIT: u64 = 10 * 10;

fn outer(v: Vec<u64>) -> u64 {
    fn inner(a: u64) -> u64 {
        a + 1
    }
    let f = |x: u64| x * 2;
    inner(2) + f(3)
}

mod nested {
    pub fn deep(a: u64) -> u64 {
        a - 1
    }
}
`)
	got := map[string][]string{}
	for _, i := range ArithmeticOverflow(f) {
		got[i.FunctionName] = append(got[i.FunctionName], i.Operation)
	}
	assert.Equal(t, map[string][]string{
		"inner": {"+"},
		"outer": {"*", "+"},
		"deep":  {"-"},
	}, got)
}

func TestArithmeticSuggestion(t *testing.T) {
	s, ok := ArithmeticSuggestion("-")
	assert.True(t, ok)
	assert.Contains(t, s, "checked_sub")
	_, ok = ArithmeticSuggestion("/")
	assert.False(t, ok)
}
