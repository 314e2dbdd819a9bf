package detectors

import (
	"fmt"
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

type keyOccurrence struct {
	value   string
	keyType string
	label   string
	line    int
}

// StorageCollisions collects literal storage keys from string constants, Symbol::new
// calls and symbol_short! invocations, and reports every occurrence of a value that
// appears more than once. Groups are emitted in order of first appearance.
func StorageCollisions(f *syntax.File) []model.StorageCollisionIssue {
	var order []string
	groups := map[string][]keyOccurrence{}
	record := func(o keyOccurrence) {
		if _, ok := groups[o.value]; !ok {
			order = append(order, o.value)
		}
		groups[o.value] = append(groups[o.value], o)
	}

	syntax.Inspect(f, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.ConstItem:
			if n.Static {
				break
			}
			if lit, ok := n.Value.(*syntax.LitExpr); ok && lit.Kind == syntax.LitString {
				record(keyOccurrence{value: lit.Value, keyType: model.KeyConst, label: n.Name, line: n.Line})
			}
		case *syntax.CallExpr:
			if v, ok := symbolNewLiteral(n); ok {
				record(keyOccurrence{value: v, keyType: model.KeySymbolNew, label: "inline", line: n.Line})
			}
		case *syntax.MacroExpr:
			if n.Name() != "symbol_short" {
				break
			}
			if v, ok := n.StringArg(); ok {
				record(keyOccurrence{value: v, keyType: model.KeySymbolShort, label: "inline", line: n.Line})
			}
		}
		return true
	})

	issues := []model.StorageCollisionIssue{}
	for _, value := range order {
		occ := groups[value]
		if len(occ) < 2 {
			continue
		}
		for i, o := range occ {
			others := make([]string, 0, len(occ)-1)
			for j, other := range occ {
				if i != j {
					others = append(others, fmt.Sprintf("%s (line %d)", other.label, other.line))
				}
			}
			issues = append(issues, model.StorageCollisionIssue{
				KeyValue: value,
				KeyType:  o.keyType,
				Location: fmt.Sprintf("%s:%d", o.label, o.line),
				Message:  fmt.Sprintf("Potential storage key collision: value '%s' is also used in: %s", value, strings.Join(others, ", ")),
				Line:     o.line,
			})
		}
	}
	return issues
}

// symbolNewLiteral matches Symbol::new(env, "literal") and returns the literal.
func symbolNewLiteral(c *syntax.CallExpr) (string, bool) {
	p, ok := c.Func.(*syntax.PathExpr)
	if !ok || len(p.Segments) < 2 {
		return "", false
	}
	segs := p.Segments[len(p.Segments)-2:]
	if segs[0] != "Symbol" || segs[1] != "new" || len(c.Args) < 2 {
		return "", false
	}
	lit, ok := c.Args[1].(*syntax.LitExpr)
	if !ok || lit.Kind != syntax.LitString {
		return "", false
	}
	return lit.Value, true
}
