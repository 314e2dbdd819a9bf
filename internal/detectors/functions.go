// Package detectors implements the analysis passes. Each pass is a pure function over a
// parsed file; none of them keeps state between calls.
package detectors

import (
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

// topLevelFns returns the file's free functions and impl methods in declaration order.
func topLevelFns(f *syntax.File) []*syntax.FnItem {
	var out []*syntax.FnItem
	for _, it := range f.Items {
		switch it := it.(type) {
		case *syntax.FnItem:
			out = append(out, it)
		case *syntax.ImplItem:
			out = append(out, it.Fns...)
		}
	}
	return out
}

// publicImplFns returns the pub methods of every top-level impl block.
func publicImplFns(f *syntax.File) []*syntax.FnItem {
	var out []*syntax.FnItem
	for _, it := range f.Items {
		impl, ok := it.(*syntax.ImplItem)
		if !ok {
			continue
		}
		for _, fn := range impl.Fns {
			if fn.Public {
				out = append(out, fn)
			}
		}
	}
	return out
}

// calleeName returns the last path segment of a free call's function expression.
func calleeName(c *syntax.CallExpr) string {
	if p, ok := c.Func.(*syntax.PathExpr); ok {
		return p.Last()
	}
	return ""
}

// compact collapses runs of whitespace.
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
