package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("auth_gaps", "src/lib.rs", 3, 3, "mint|writes  storage")
	b := Fingerprint("auth_gaps", "src/lib.rs", 3, 3, "mint|writes\n\tstorage")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Fingerprint("auth_gaps", "src/lib.rs", 4, 4, "mint|writes storage"))
	assert.NotEqual(t, a, Fingerprint("panics", "src/lib.rs", 3, 3, "mint|writes storage"))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, Lines("a\r\nb\n"))
}

func TestExtractSnippet(t *testing.T) {
	src := "1\n2\n3\n4\n5\n6\n7"
	tests := []struct {
		name               string
		start, end, window int
		want               string
	}{
		{"single line", 4, 4, 0, "4"},
		{"window", 4, 4, 4, "2\n3\n4\n5\n6"},
		{"clamped at top", 1, 1, 4, "1\n2\n3"},
		{"clamped at bottom", 7, 7, 4, "5\n6\n7"},
		{"end before start", 3, 1, 0, "3"},
		{"past end", 20, 20, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSnippet(src, tt.start, tt.end, tt.window))
		})
	}
	assert.Empty(t, ExtractSnippet("", 1, 1, 2))
}

func TestLineWindow(t *testing.T) {
	lines := Lines("a\n// mark\nc\nd\ne\nf\ng\nh")
	assert.True(t, LineWindow(lines, 3, 5, 1, "mark"))
	assert.True(t, LineWindow(lines, 1, 0, 1, "mark"))
	assert.False(t, LineWindow(lines, 8, 5, 1, "mark"))
	assert.False(t, LineWindow(lines, 1, 5, 0, "mark"))
}
