package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

func mustParse(t *testing.T, src string) *syntax.File {
	t.Helper()
	f, err := syntax.Parse(src)
	require.NoError(t, err)
	return f
}

func TestFunctionSelection(t *testing.T) {
	f := mustParse(t, `
fn free() {}
pub fn public_free() {}
struct C;
impl C {
    pub fn a() {}
    fn b() {}
}
mod inner {
    pub fn hidden() {}
}
`)
	var all, public []string
	for _, fn := range topLevelFns(f) {
		all = append(all, fn.Name)
	}
	for _, fn := range publicImplFns(f) {
		public = append(public, fn.Name)
	}
	assert.Equal(t, []string{"free", "public_free", "a", "b"}, all)
	assert.Equal(t, []string{"a"}, public)
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "a . unwrap ()", compact("a\n    . unwrap ()"))
}
