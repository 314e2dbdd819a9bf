package detectors

import (
	"fmt"
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

// maxShortSymbol is the longest literal symbol_short! accepts.
const maxShortSymbol = 9

type eventSchema struct {
	topics int
	fn     string
	line   int
}

// Events checks env.events().publish(topics, data) calls: an event name published with
// differing topic counts is inconsistent, and short Symbol::new topics should use
// symbol_short!.
func Events(f *syntax.File) []model.EventIssue {
	issues := []model.EventIssue{}
	schemas := map[string]eventSchema{}
	for _, fn := range topLevelFns(f) {
		syntax.Inspect(fn.Body, func(n syntax.Node) bool {
			call, ok := n.(*syntax.MethodCallExpr)
			if !ok || call.Method != "publish" || len(call.Args) == 0 || call.Receiver == nil {
				return true
			}
			if !strings.Contains(f.Text(call.Receiver.Pos()), "events") {
				return true
			}
			topics := []syntax.Expr{call.Args[0]}
			if t, ok := call.Args[0].(*syntax.TupleExpr); ok {
				topics = t.Elems
			}
			if len(topics) == 0 {
				return true
			}
			name := eventName(f, topics[0])
			line := call.Line
			loc := fmt.Sprintf("%s:%d", fn.Name, line)

			if prev, seen := schemas[name]; !seen {
				schemas[name] = eventSchema{topics: len(topics), fn: fn.Name, line: line}
			} else if prev.topics != len(topics) {
				issues = append(issues, model.EventIssue{
					FunctionName: fn.Name,
					EventName:    name,
					IssueType:    model.EventInconsistentSchema,
					Message: fmt.Sprintf("Event '%s' is published with %d topics here but %d topics in %s (line %d)",
						name, len(topics), prev.topics, prev.fn, prev.line),
					Location: loc,
					Line:     line,
				})
			}

			for _, t := range topics {
				c, ok := t.(*syntax.CallExpr)
				if !ok {
					continue
				}
				v, ok := symbolNewLiteral(c)
				if !ok || len(v) > maxShortSymbol {
					continue
				}
				issues = append(issues, model.EventIssue{
					FunctionName: fn.Name,
					EventName:    name,
					IssueType:    model.EventGasOptimization,
					Message:      fmt.Sprintf("Use symbol_short!(\"%s\") instead of Symbol::new for topics of %d characters or fewer", v, maxShortSymbol),
					Location:     fmt.Sprintf("%s:%d", fn.Name, c.Line),
					Line:         c.Line,
				})
			}
			return true
		})
	}
	return issues
}

func eventName(f *syntax.File, topic syntax.Expr) string {
	switch t := topic.(type) {
	case *syntax.MacroExpr:
		if v, ok := t.StringArg(); ok {
			return v
		}
	case *syntax.CallExpr:
		if v, ok := symbolNewLiteral(t); ok {
			return v
		}
	case *syntax.LitExpr:
		if t.Kind == syntax.LitString {
			return t.Value
		}
	}
	return compact(f.Text(topic.Pos()))
}
