package detectors

import (
	"fmt"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

// Panics reports panic! invocations and .unwrap()/.expect() calls in every free function
// and impl method.
func Panics(f *syntax.File) []model.PanicIssue {
	issues := []model.PanicIssue{}
	for _, fn := range topLevelFns(f) {
		syntax.Inspect(fn.Body, func(n syntax.Node) bool {
			kind := ""
			switch n := n.(type) {
			case *syntax.ItemStmt:
				return false
			case *syntax.MacroExpr:
				if n.Name() == "panic" {
					kind = model.IssuePanic
				}
			case *syntax.MethodCallExpr:
				switch n.Method {
				case "unwrap":
					kind = model.IssueUnwrap
				case "expect":
					kind = model.IssueExpect
				}
			}
			if kind != "" {
				line := n.Pos().Line
				issues = append(issues, model.PanicIssue{
					FunctionName: fn.Name,
					IssueType:    kind,
					Location:     fmt.Sprintf("%s:%d", fn.Name, line),
					Line:         line,
				})
			}
			return true
		})
	}
	return issues
}
