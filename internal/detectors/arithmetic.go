package detectors

import (
	"fmt"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

var arithmeticSuggestions = map[string]string{
	"+":  "Use `.checked_add(rhs)` or `.saturating_add(rhs)` to handle overflow",
	"-":  "Use `.checked_sub(rhs)` or `.saturating_sub(rhs)` to handle underflow",
	"*":  "Use `.checked_mul(rhs)` or `.saturating_mul(rhs)` to handle overflow",
	"+=": "Replace `a += b` with `a = a.checked_add(b).expect(\"overflow\")`",
	"-=": "Replace `a -= b` with `a = a.checked_sub(b).expect(\"underflow\")`",
	"*=": "Replace `a *= b` with `a = a.checked_mul(b).expect(\"overflow\")`",
}

// ArithmeticSuggestion returns the checked alternative for op.
func ArithmeticSuggestion(op string) (string, bool) {
	s, ok := arithmeticSuggestions[op]
	return s, ok
}

type opKey struct {
	fn string
	op string
}

type arithmeticWalker struct {
	seen   map[opKey]bool
	issues []model.ArithmeticIssue
}

// ArithmeticOverflow reports the first unchecked + - * += -= *= per function and
// operator. Closures count toward their enclosing function.
func ArithmeticOverflow(f *syntax.File) []model.ArithmeticIssue {
	w := &arithmeticWalker{seen: map[opKey]bool{}, issues: []model.ArithmeticIssue{}}
	for _, it := range f.Items {
		w.item(it, "")
	}
	return w.issues
}

func (w *arithmeticWalker) item(it syntax.Item, fn string) {
	switch it := it.(type) {
	case *syntax.FnItem:
		w.node(it.Body, it.Name)
	case *syntax.ImplItem:
		for _, m := range it.Fns {
			w.node(m.Body, m.Name)
		}
	case *syntax.ModItem:
		for _, sub := range it.Items {
			w.item(sub, fn)
		}
	default:
		for _, c := range syntax.Children(it) {
			w.node(c, fn)
		}
	}
}

// node walks n with fn as the enclosing function; fn is empty outside any function.
func (w *arithmeticWalker) node(n syntax.Node, fn string) {
	switch n := n.(type) {
	case nil:
		return
	case *syntax.ItemStmt:
		w.item(n.Item, fn)
		return
	case *syntax.BinaryExpr:
		w.binary(n, fn)
	}
	for _, c := range syntax.Children(n) {
		w.node(c, fn)
	}
}

func (w *arithmeticWalker) binary(b *syntax.BinaryExpr, fn string) {
	if fn == "" {
		return
	}
	suggestion, ok := arithmeticSuggestions[b.Op]
	if !ok {
		return
	}
	if syntax.IsStringLit(b.Left) || syntax.IsStringLit(b.Right) {
		return
	}
	key := opKey{fn: fn, op: b.Op}
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	line := b.Pos().Line
	if b.Left != nil {
		line = b.Left.Pos().Line
	}
	w.issues = append(w.issues, model.ArithmeticIssue{
		FunctionName: fn,
		Operation:    b.Op,
		Suggestion:   suggestion,
		Location:     fmt.Sprintf("%s:%d", fn, line),
		Line:         line,
	})
}
