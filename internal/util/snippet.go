package util

import (
	"strings"
)

// Lines splits content into lines without trailing carriage returns.
func Lines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ExtractSnippet returns the [start,end] region (1-based) widened by up to context/2
// lines on each side.
func ExtractSnippet(content string, start, end, context int) string {
	if content == "" {
		return ""
	}
	if context < 0 {
		context = 0
	}
	lines := Lines(content)
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}
	if start > len(lines) {
		return ""
	}
	s := max(0, start-1-context/2)
	e := min(len(lines)-1, end-1+context/2)
	return strings.Join(lines[s:e+1], "\n")
}

// LineWindow reports whether any line in [line-before, line+after] contains needle.
func LineWindow(lines []string, line, before, after int, needle string) bool {
	from := max(0, line-1-before)
	to := min(len(lines)-1, line-1+after)
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], needle) {
			return true
		}
	}
	return false
}
