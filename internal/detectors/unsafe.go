package detectors

import (
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

// UnsafePatterns lists every panic!, .unwrap() and .expect() in the file, inside or
// outside functions, with a one-line snippet.
func UnsafePatterns(f *syntax.File) []model.UnsafePattern {
	out := []model.UnsafePattern{}
	syntax.Inspect(f, func(n syntax.Node) bool {
		var kind model.PatternType
		switch n := n.(type) {
		case *syntax.MacroExpr:
			if n.Name() == "panic" {
				kind = model.PatternPanic
			}
		case *syntax.MethodCallExpr:
			switch n.Method {
			case "unwrap":
				kind = model.PatternUnwrap
			case "expect":
				kind = model.PatternExpect
			}
		}
		if kind != "" {
			out = append(out, model.UnsafePattern{
				PatternType: kind,
				Line:        n.Pos().Line,
				Snippet:     compact(f.Text(n.Pos())),
			})
		}
		return true
	})
	return out
}
