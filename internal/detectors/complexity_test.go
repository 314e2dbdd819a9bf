package detectors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

func metricsByName(cm model.ContractMetrics) map[string]model.FunctionMetrics {
	out := map[string]model.FunctionMetrics{}
	for _, f := range cm.Functions {
		out[f.Name] = f
	}
	return out
}

func TestComplexityMetrics(t *testing.T) {
	f := mustParse(t, `use soroban_sdk::Env;
use soroban_sdk::Address;
extern crate alloc;

pub fn simple() {}

fn private_free() {}

pub fn branchy(a: u32, b: bool, c: bool) -> u32 {
    if b && c {
        match a {
            0 => 1,
            1 => 2,
            _ => 3,
        }
    } else if b || c {
        for i in 0..a {
            while false {}
        }
        0
    } else {
        let f = |x: u32| x;
        f(a)
    }
}

struct C;
impl C {
    fn internal(env: Env) {}
}

mod nested {
    pub fn inside() {}
}
`)
	cm := Complexity(f, "lib.rs")
	assert.Equal(t, "lib.rs", cm.ContractPath)
	assert.Equal(t, 3, cm.DependencyCount)

	var names []string
	for _, fn := range cm.Functions {
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"simple", "branchy", "internal", "inside"}, names)

	m := metricsByName(cm)
	assert.Equal(t, model.FunctionMetrics{
		Name: "simple", CyclomaticComplexity: 1, ParamCount: 0, MaxNestingDepth: 0, LOC: 1, Warnings: []string{}, Line: 5,
	}, m["simple"])

	b := m["branchy"]
	assert.Equal(t, 10, b.CyclomaticComplexity)
	assert.Equal(t, 3, b.ParamCount)
	assert.Equal(t, 4, b.MaxNestingDepth)
	assert.Equal(t, 17, b.LOC)
	assert.Empty(t, b.Warnings)

	assert.Equal(t, 1, m["internal"].ParamCount)
}

func TestComplexityMatchSingleArm(t *testing.T) {
	f := mustParse(t, `pub fn one(a: u32) { match a { _ => {} } }`)
	m := Complexity(f, "").Functions
	require.Len(t, m, 1)
	assert.Equal(t, 1, m[0].CyclomaticComplexity)
	assert.Equal(t, 1, m[0].MaxNestingDepth)
}

func TestComplexityWarnings(t *testing.T) {
	f := mustParse(t, `
pub fn heavy(a: u32, b: u32, c: u32, d: u32, e: u32, f: u32) {
    if a > 0 { if b > 0 { if c > 0 { if d > 0 { if e > 0 { } } } } }
    if f > 0 {} if f > 1 {} if f > 2 {} if f > 3 {} if f > 4 {} if f > 5 {}
}
`)
	m := Complexity(f, "").Functions
	require.Len(t, m, 1)
	assert.Equal(t, []string{
		"Cyclomatic complexity 12 exceeds threshold 10",
		"6 parameters exceeds threshold 5",
		"Nesting depth 5 exceeds threshold 4",
	}, m[0].Warnings)
}

func TestComplexityLongFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("pub fn long() {\n")
	for i := 0; i < 55; i++ {
		fmt.Fprintf(&b, "    let v%d = %d;\n", i, i)
	}
	b.WriteString("}\n")
	m := Complexity(mustParse(t, b.String()), "").Functions
	require.Len(t, m, 1)
	assert.Equal(t, 57, m[0].LOC)
	assert.Equal(t, []string{"57 LOC exceeds threshold 50"}, m[0].Warnings)
}
