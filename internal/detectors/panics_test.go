package detectors

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

func TestPanicsOneOfEachKind(t *testing.T) {
	f := mustParse(t, `
pub fn boom() {
    panic!("x");
}

pub fn unwrapper(v: Option<u32>) -> u32 {
    v.unwrap()
}

pub fn expecter(v: Option<u32>) -> u32 {
    v.expect("x")
}
`)
	want := []model.PanicIssue{
		{FunctionName: "boom", IssueType: model.IssuePanic, Location: "boom:3", Line: 3},
		{FunctionName: "unwrapper", IssueType: model.IssueUnwrap, Location: "unwrapper:7", Line: 7},
		{FunctionName: "expecter", IssueType: model.IssueExpect, Location: "expecter:11", Line: 11},
	}
	if diff := cmp.Diff(want, Panics(f)); diff != "" {
		t.Errorf("Panics() mismatch (-want +got):\n%s", diff)
	}
}

func TestPanicsNestedAndRepeated(t *testing.T) {
	f := mustParse(t, `
struct C;
impl C {
    pub fn chained(env: Env) -> u32 {
        let a = env.storage().get(&1).unwrap().value().unwrap();
        if a > 1 {
            match a {
                2 => panic!("two"),
                _ => foo(bar.expect("arg")),
            }
        }
        a
    }
}
`)
	issues := Panics(f)
	var kinds []string
	for _, i := range issues {
		assert.Equal(t, "chained", i.FunctionName)
		kinds = append(kinds, i.IssueType)
	}
	assert.ElementsMatch(t, []string{"unwrap", "unwrap", "panic", "expect"}, kinds)
}

func TestPanicsIgnoresCodeOutsideFunctions(t *testing.T) {
	f := mustParse(t, `
const X: u32 = 1;
pub fn clean(a: u32) -> u32 {
    a.checked_add(1).unwrap_or(0)
}
`)
	assert.Empty(t, Panics(f))
}
