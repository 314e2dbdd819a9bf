package syntax

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// ErrUnparsable is returned when the source is not valid Rust.
var ErrUnparsable = errors.New("unparsable source")

// Parse parses Rust source into a File. A fresh parser is used per call so Parse is
// safe for concurrent use.
func Parse(src string) (*File, error) {
	return ParseCtx(context.Background(), src)
}

func ParseCtx(ctx context.Context, src string) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	content := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, ErrUnparsable
	}
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, fmt.Errorf("%w: syntax error near line %d", ErrUnparsable, line)
	}
	c := &converter{src: content}
	return &File{Source: src, Items: c.items(root)}, nil
}

func firstErrorLine(n *sitter.Node) int {
	if n.IsError() || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.HasError() {
			return firstErrorLine(c)
		}
	}
	return int(n.StartPoint().Row) + 1
}

type converter struct {
	src []byte
}

func (c *converter) span(n *sitter.Node) Span {
	return Span{
		Start:   int(n.StartByte()),
		End:     int(n.EndByte()),
		Line:    int(n.StartPoint().Row) + 1,
		EndLine: int(n.EndPoint().Row) + 1,
	}
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.src)
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch == nil {
			continue
		}
		switch ch.Type() {
		case "line_comment", "block_comment":
			continue
		}
		out = append(out, ch)
	}
	return out
}

// hasVisibility reports plain `pub`. Restricted forms such as pub(crate) are not public.
func hasVisibility(n *sitter.Node, src []byte) bool {
	for _, ch := range namedChildren(n) {
		if ch.Type() == "visibility_modifier" {
			return stripSpace(ch.Content(src)) == "pub"
		}
	}
	return false
}

// items converts the children of a source_file or declaration_list. Outer attributes
// precede their item as siblings and are attached to the next item.
func (c *converter) items(n *sitter.Node) []Item {
	var out []Item
	var attrs []Attribute
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "attribute_item":
			attrs = append(attrs, c.attribute(ch))
			continue
		case "inner_attribute_item", "empty_statement":
			continue
		}
		if it := c.item(ch, attrs); it != nil {
			out = append(out, it)
		}
		attrs = nil
	}
	return out
}

func (c *converter) attribute(n *sitter.Node) Attribute {
	a := Attribute{Span: c.span(n)}
	var attr *sitter.Node
	for _, ch := range namedChildren(n) {
		if ch.Type() == "attribute" {
			attr = ch
			break
		}
	}
	if attr == nil {
		a.Path = strings.Trim(c.text(n), "#[] ")
		return a
	}
	kids := namedChildren(attr)
	if len(kids) > 0 {
		a.Path = stripSpace(c.text(kids[0]))
	}
	if args := attr.ChildByFieldName("arguments"); args != nil {
		a.Args = c.text(args)
	}
	return a
}

func (c *converter) item(n *sitter.Node, attrs []Attribute) Item {
	sp := c.span(n)
	switch n.Type() {
	case "function_item":
		return c.fn(n, attrs)
	case "impl_item":
		impl := &ImplItem{Span: sp, Attrs: attrs, SelfType: stripSpace(c.text(n.ChildByFieldName("type")))}
		if tr := n.ChildByFieldName("trait"); tr != nil {
			impl.Trait = stripSpace(c.text(tr))
		}
		if body := n.ChildByFieldName("body"); body != nil {
			var fnAttrs []Attribute
			for _, ch := range namedChildren(body) {
				switch ch.Type() {
				case "attribute_item":
					fnAttrs = append(fnAttrs, c.attribute(ch))
					continue
				case "function_item":
					impl.Fns = append(impl.Fns, c.fn(ch, fnAttrs))
				}
				fnAttrs = nil
			}
		}
		return impl
	case "struct_item":
		st := &StructItem{Span: sp, Attrs: attrs, Public: hasVisibility(n, c.src), Name: c.text(n.ChildByFieldName("name"))}
		st.Fields = c.fields(n.ChildByFieldName("body"))
		return st
	case "enum_item":
		en := &EnumItem{Span: sp, Attrs: attrs, Public: hasVisibility(n, c.src), Name: c.text(n.ChildByFieldName("name"))}
		if body := n.ChildByFieldName("body"); body != nil {
			for _, v := range namedChildren(body) {
				if v.Type() != "enum_variant" {
					continue
				}
				en.Variants = append(en.Variants, Variant{
					Span:   c.span(v),
					Name:   c.text(v.ChildByFieldName("name")),
					Fields: c.fields(v.ChildByFieldName("body")),
				})
			}
		}
		return en
	case "const_item", "static_item":
		ci := &ConstItem{
			Span:   sp,
			Attrs:  attrs,
			Static: n.Type() == "static_item",
			Name:   c.text(n.ChildByFieldName("name")),
			Type:   c.typ(n.ChildByFieldName("type")),
		}
		if v := n.ChildByFieldName("value"); v != nil {
			ci.Value = c.expr(v)
		}
		return ci
	case "use_declaration":
		return &UseItem{Span: sp, Path: stripSpace(c.text(n.ChildByFieldName("argument")))}
	case "extern_crate_declaration":
		return &ExternCrateItem{Span: sp, Name: c.text(n.ChildByFieldName("name"))}
	case "mod_item":
		m := &ModItem{Span: sp, Attrs: attrs, Name: c.text(n.ChildByFieldName("name"))}
		if body := n.ChildByFieldName("body"); body != nil {
			m.Items = c.items(body)
		}
		return m
	case "macro_invocation":
		return &MacroItem{Span: sp, Macro: c.macro(n)}
	case "expression_statement":
		kids := namedChildren(n)
		if len(kids) == 1 && kids[0].Type() == "macro_invocation" {
			return &MacroItem{Span: sp, Macro: c.macro(kids[0])}
		}
		return &OtherItem{Span: sp, Kind: n.Type()}
	default:
		return &OtherItem{Span: sp, Kind: n.Type()}
	}
}

func (c *converter) fn(n *sitter.Node, attrs []Attribute) *FnItem {
	fn := &FnItem{
		Span:   c.span(n),
		Attrs:  attrs,
		Public: hasVisibility(n, c.src),
		Name:   c.text(n.ChildByFieldName("name")),
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range namedChildren(params) {
			switch p.Type() {
			case "self_parameter":
				fn.Params = append(fn.Params, Param{Span: c.span(p), Name: "self", Self: true})
			case "parameter":
				fn.Params = append(fn.Params, Param{
					Span: c.span(p),
					Name: c.text(p.ChildByFieldName("pattern")),
					Type: c.typ(p.ChildByFieldName("type")),
				})
			case "variadic_parameter":
				fn.Params = append(fn.Params, Param{Span: c.span(p), Name: c.text(p)})
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Body = c.block(body, "")
	}
	return fn
}

func (c *converter) fields(n *sitter.Node) []Field {
	if n == nil {
		return nil
	}
	var out []Field
	switch n.Type() {
	case "field_declaration_list":
		for _, f := range namedChildren(n) {
			if f.Type() != "field_declaration" {
				continue
			}
			out = append(out, Field{Span: c.span(f), Name: c.text(f.ChildByFieldName("name")), Type: c.typ(f.ChildByFieldName("type"))})
		}
	case "ordered_field_declaration_list":
		idx := 0
		for _, f := range namedChildren(n) {
			switch f.Type() {
			case "attribute_item", "visibility_modifier":
				continue
			}
			out = append(out, Field{Span: c.span(f), Name: strconv.Itoa(idx), Type: c.typ(f)})
			idx++
		}
	}
	return out
}

func (c *converter) block(n *sitter.Node, kind string) *Block {
	b := &Block{Span: c.span(n), Kind: kind}
	var attrs []Attribute
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "attribute_item":
			attrs = append(attrs, c.attribute(ch))
			continue
		case "empty_statement", "inner_attribute_item", "label":
			continue
		case "let_declaration":
			b.Stmts = append(b.Stmts, c.local(ch))
		case "expression_statement":
			kids := namedChildren(ch)
			if len(kids) == 0 {
				continue
			}
			semi := strings.HasSuffix(strings.TrimSpace(c.text(ch)), ";")
			b.Stmts = append(b.Stmts, &ExprStmt{Span: c.span(ch), X: c.expr(kids[0]), Semi: semi})
		case "function_item", "impl_item", "struct_item", "enum_item", "const_item", "static_item",
			"use_declaration", "extern_crate_declaration", "mod_item", "trait_item", "type_item",
			"macro_definition", "union_item", "associated_type", "foreign_mod_item":
			b.Stmts = append(b.Stmts, &ItemStmt{Span: c.span(ch), Item: c.item(ch, attrs)})
		default:
			b.Stmts = append(b.Stmts, &ExprStmt{Span: c.span(ch), X: c.expr(ch)})
		}
		attrs = nil
	}
	return b
}

func (c *converter) local(n *sitter.Node) *LocalStmt {
	l := &LocalStmt{Span: c.span(n), Pattern: c.text(n.ChildByFieldName("pattern"))}
	if t := n.ChildByFieldName("type"); t != nil {
		l.Type = c.typ(t)
	}
	if v := n.ChildByFieldName("value"); v != nil {
		l.Init = c.expr(v)
	}
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		l.Else = c.blockOf(alt)
	}
	return l
}

// blockOf returns the block for a block node or a wrapper (else_clause, unsafe_block).
func (c *converter) blockOf(n *sitter.Node) *Block {
	if n.Type() == "block" {
		return c.block(n, "")
	}
	for _, ch := range namedChildren(n) {
		if ch.Type() == "block" {
			return c.block(ch, "")
		}
	}
	return &Block{Span: c.span(n)}
}

func (c *converter) exprs(ns []*sitter.Node) []Expr {
	out := make([]Expr, 0, len(ns))
	for _, n := range ns {
		switch n.Type() {
		case "attribute_item":
			continue
		}
		out = append(out, c.expr(n))
	}
	return out
}

func (c *converter) exprField(n *sitter.Node, field string) Expr {
	ch := n.ChildByFieldName(field)
	if ch == nil {
		return nil
	}
	return c.expr(ch)
}

func (c *converter) expr(n *sitter.Node) Expr {
	sp := c.span(n)
	switch n.Type() {
	case "block":
		return c.block(n, "")
	case "unsafe_block", "async_block", "const_block", "try_block":
		b := c.blockOf(n)
		b.Span = sp
		b.Kind = strings.TrimSuffix(n.Type(), "_block")
		return b
	case "binary_expression", "compound_assignment_expr":
		op := ""
		if o := n.ChildByFieldName("operator"); o != nil {
			op = c.text(o)
		}
		return &BinaryExpr{Span: sp, Op: op, Left: c.exprField(n, "left"), Right: c.exprField(n, "right")}
	case "assignment_expression":
		return &AssignExpr{Span: sp, Left: c.exprField(n, "left"), Right: c.exprField(n, "right")}
	case "unary_expression":
		kids := namedChildren(n)
		u := &UnaryExpr{Span: sp}
		if t := strings.TrimSpace(c.text(n)); t != "" {
			u.Op = t[:1]
		}
		if len(kids) > 0 {
			u.X = c.expr(kids[len(kids)-1])
		}
		return u
	case "reference_expression":
		r := &RefExpr{Span: sp, X: c.exprField(n, "value")}
		for _, ch := range namedChildren(n) {
			if ch.Type() == "mutable_specifier" {
				r.Mut = true
			}
		}
		return r
	case "call_expression":
		return c.call(n)
	case "macro_invocation":
		return c.macro(n)
	case "identifier", "self", "super", "crate", "scoped_identifier", "generic_function", "metavariable":
		return &PathExpr{Span: sp, Segments: splitPath(c.text(n))}
	case "field_expression":
		return &FieldExpr{Span: sp, X: c.exprField(n, "value"), Field: c.text(n.ChildByFieldName("field"))}
	case "index_expression":
		kids := namedChildren(n)
		ix := &IndexExpr{Span: sp}
		if len(kids) > 0 {
			ix.X = c.expr(kids[0])
		}
		if len(kids) > 1 {
			ix.Index = c.expr(kids[1])
		}
		return ix
	case "string_literal", "raw_string_literal":
		return &LitExpr{Span: sp, Kind: LitString, Value: unquote(c.text(n))}
	case "integer_literal":
		return &LitExpr{Span: sp, Kind: LitInt, Value: c.text(n)}
	case "float_literal":
		return &LitExpr{Span: sp, Kind: LitFloat, Value: c.text(n)}
	case "char_literal":
		return &LitExpr{Span: sp, Kind: LitChar, Value: c.text(n)}
	case "boolean_literal":
		return &LitExpr{Span: sp, Kind: LitBool, Value: c.text(n)}
	case "if_expression", "if_let_expression":
		return c.ifExpr(n)
	case "let_condition":
		return &LetExpr{Span: sp, Pattern: c.text(n.ChildByFieldName("pattern")), X: c.exprField(n, "value")}
	case "let_chain":
		return &OtherExpr{Span: sp, Kind: n.Type(), Children: c.exprs(namedChildren(n))}
	case "match_expression":
		return c.match(n)
	case "for_expression":
		f := &ForExpr{Span: sp, Pattern: c.text(n.ChildByFieldName("pattern")), Iter: c.exprField(n, "value")}
		f.Body = c.loopBody(n)
		return f
	case "while_expression", "while_let_expression":
		w := &WhileExpr{Span: sp, Cond: c.exprField(n, "condition")}
		if w.Cond == nil && n.ChildByFieldName("pattern") != nil {
			w.Cond = &LetExpr{Span: sp, Pattern: c.text(n.ChildByFieldName("pattern")), X: c.exprField(n, "value")}
		}
		w.Body = c.loopBody(n)
		return w
	case "loop_expression":
		return &LoopExpr{Span: sp, Body: c.loopBody(n)}
	case "closure_expression":
		cl := &ClosureExpr{Span: sp, Body: c.exprField(n, "body")}
		if ps := n.ChildByFieldName("parameters"); ps != nil {
			cl.Params = len(namedChildren(ps))
		}
		return cl
	case "return_expression", "break_expression":
		r := &ReturnExpr{Span: sp, Break: n.Type() == "break_expression"}
		for _, ch := range namedChildren(n) {
			if ch.Type() == "label" {
				continue
			}
			r.X = c.expr(ch)
		}
		return r
	case "try_expression":
		return &TryExpr{Span: sp, X: c.firstExpr(n)}
	case "await_expression":
		return &AwaitExpr{Span: sp, X: c.firstExpr(n)}
	case "type_cast_expression":
		return &CastExpr{Span: sp, X: c.exprField(n, "value"), Type: c.typ(n.ChildByFieldName("type"))}
	case "tuple_expression", "unit_expression":
		return &TupleExpr{Span: sp, Elems: c.exprs(namedChildren(n))}
	case "array_expression":
		return &ArrayExpr{Span: sp, Elems: c.exprs(namedChildren(n))}
	case "struct_expression":
		return c.structLit(n)
	case "range_expression":
		r := &RangeExpr{Span: sp}
		kids := namedChildren(n)
		if len(kids) == 2 {
			r.From, r.To = c.expr(kids[0]), c.expr(kids[1])
		} else if len(kids) == 1 {
			if kids[0].StartByte() == n.StartByte() {
				r.From = c.expr(kids[0])
			} else {
				r.To = c.expr(kids[0])
			}
		}
		return r
	case "parenthesized_expression":
		return &ParenExpr{Span: sp, X: c.firstExpr(n)}
	default:
		return &OtherExpr{Span: sp, Kind: n.Type(), Children: c.exprs(exprLike(namedChildren(n)))}
	}
}

// exprLike drops children that can never be expressions.
func exprLike(ns []*sitter.Node) []*sitter.Node {
	out := ns[:0:0]
	for _, n := range ns {
		switch n.Type() {
		case "label", "lifetime", "type_identifier", "primitive_type", "type_arguments",
			"field_identifier", "mutable_specifier", "attribute_item", "closure_parameters",
			"generic_type", "scoped_type_identifier", "reference_type":
			continue
		}
		out = append(out, n)
	}
	return out
}

func (c *converter) firstExpr(n *sitter.Node) Expr {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return nil
	}
	return c.expr(kids[0])
}

func (c *converter) loopBody(n *sitter.Node) *Block {
	if b := n.ChildByFieldName("body"); b != nil {
		return c.block(b, "")
	}
	return &Block{Span: c.span(n)}
}

func (c *converter) call(n *sitter.Node) Expr {
	sp := c.span(n)
	fn := n.ChildByFieldName("function")
	var args []Expr
	if a := n.ChildByFieldName("arguments"); a != nil {
		args = c.exprs(namedChildren(a))
	}
	if fn == nil {
		return &CallExpr{Span: sp, Args: args}
	}
	field := fn
	if fn.Type() == "generic_function" {
		if inner := fn.ChildByFieldName("function"); inner != nil {
			field = inner
		}
	}
	if field.Type() == "field_expression" {
		return &MethodCallExpr{
			Span:     sp,
			Receiver: c.exprField(field, "value"),
			Method:   c.text(field.ChildByFieldName("field")),
			Args:     args,
		}
	}
	return &CallExpr{Span: sp, Func: c.expr(fn), Args: args}
}

func (c *converter) macro(n *sitter.Node) *MacroExpr {
	m := &MacroExpr{Span: c.span(n), Path: stripSpace(c.text(n.ChildByFieldName("macro")))}
	for _, ch := range namedChildren(n) {
		if ch.Type() != "token_tree" {
			continue
		}
		for _, tok := range namedChildren(ch) {
			m.Tokens = append(m.Tokens, Token{Span: c.span(tok), Kind: tok.Type(), Text: c.text(tok)})
		}
		break
	}
	return m
}

func (c *converter) ifExpr(n *sitter.Node) *IfExpr {
	ie := &IfExpr{Span: c.span(n), Cond: c.exprField(n, "condition")}
	if ie.Cond == nil && n.ChildByFieldName("pattern") != nil {
		ie.Cond = &LetExpr{Span: c.span(n), Pattern: c.text(n.ChildByFieldName("pattern")), X: c.exprField(n, "value")}
	}
	if cons := n.ChildByFieldName("consequence"); cons != nil {
		ie.Then = c.block(cons, "")
	} else {
		ie.Then = &Block{Span: c.span(n)}
	}
	alt := n.ChildByFieldName("alternative")
	if alt == nil {
		return ie
	}
	if alt.Type() == "else_clause" {
		kids := namedChildren(alt)
		if len(kids) == 0 {
			return ie
		}
		alt = kids[0]
	}
	switch alt.Type() {
	case "if_expression", "if_let_expression":
		ie.Else = c.ifExpr(alt)
	default:
		ie.Else = c.blockOf(alt)
	}
	return ie
}

func (c *converter) match(n *sitter.Node) *MatchExpr {
	m := &MatchExpr{Span: c.span(n), X: c.exprField(n, "value")}
	body := n.ChildByFieldName("body")
	for _, arm := range namedChildren(body) {
		if arm.Type() != "match_arm" && arm.Type() != "last_match_arm" {
			continue
		}
		ma := MatchArm{Span: c.span(arm), Body: c.exprField(arm, "value")}
		if p := arm.ChildByFieldName("pattern"); p != nil {
			ma.Pattern = c.text(p)
			if cond := p.ChildByFieldName("condition"); cond != nil {
				ma.Guard = c.expr(cond)
			}
		}
		m.Arms = append(m.Arms, ma)
	}
	return m
}

func (c *converter) structLit(n *sitter.Node) *StructExpr {
	s := &StructExpr{Span: c.span(n), Name: stripSpace(c.text(n.ChildByFieldName("name")))}
	body := n.ChildByFieldName("body")
	for _, f := range namedChildren(body) {
		switch f.Type() {
		case "field_initializer":
			if v := f.ChildByFieldName("value"); v != nil {
				s.Values = append(s.Values, c.expr(v))
			}
		case "shorthand_field_initializer":
			s.Values = append(s.Values, &PathExpr{Span: c.span(f), Segments: splitPath(c.text(f))})
		case "base_field_initializer":
			if e := c.firstExpr(f); e != nil {
				s.Values = append(s.Values, e)
			}
		}
	}
	return s
}

func (c *converter) typ(n *sitter.Node) Type {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "primitive_type", "type_identifier":
		return &PathType{Segments: []PathSegment{{Name: c.text(n)}}}
	case "scoped_type_identifier":
		return &PathType{Segments: segmentsOf(splitPath(c.text(n)))}
	case "generic_type":
		base := n.ChildByFieldName("type")
		segs := segmentsOf(splitPath(c.text(base)))
		if len(segs) == 0 {
			segs = []PathSegment{{}}
		}
		if args := n.ChildByFieldName("type_arguments"); args != nil {
			for _, a := range namedChildren(args) {
				switch a.Type() {
				case "lifetime", "type_binding", "trait_bounds":
					continue
				}
				segs[len(segs)-1].Args = append(segs[len(segs)-1].Args, c.typ(a))
			}
		}
		return &PathType{Segments: segs}
	case "array_type":
		at := &ArrayType{Elem: c.typ(n.ChildByFieldName("element")), Len: -1}
		if l := n.ChildByFieldName("length"); l != nil && l.Type() == "integer_literal" {
			if v, err := parseIntLit(c.text(l)); err == nil {
				at.Len = v
			}
		}
		return at
	case "reference_type":
		rt := &RefType{Elem: c.typ(n.ChildByFieldName("type"))}
		for _, ch := range namedChildren(n) {
			if ch.Type() == "mutable_specifier" {
				rt.Mut = true
			}
		}
		return rt
	case "tuple_type":
		tt := &TupleType{}
		for _, ch := range namedChildren(n) {
			tt.Elems = append(tt.Elems, c.typ(ch))
		}
		return tt
	case "integer_literal", "block", "string_literal", "boolean_literal", "char_literal":
		return &ConstArg{Text: c.text(n)}
	default:
		return &OtherType{Kind: n.Type()}
	}
}

func segmentsOf(names []string) []PathSegment {
	out := make([]PathSegment, 0, len(names))
	for _, s := range names {
		out = append(out, PathSegment{Name: s})
	}
	return out
}

// splitPath splits a::b::<T>::c into its identifier segments, dropping turbofish
// arguments.
func splitPath(s string) []string {
	s = stripSpace(s)
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	var out []string
	for _, seg := range strings.Split(b.String(), "::") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func parseIntLit(s string) (int, error) {
	s = strings.ReplaceAll(s, "_", "")
	for _, suf := range []string{"usize", "isize", "u128", "i128", "u64", "i64", "u32", "i32", "u16", "i16", "u8", "i8"} {
		if strings.HasSuffix(s, suf) {
			s = strings.TrimSuffix(s, suf)
			break
		}
	}
	v, err := strconv.ParseInt(s, 0, 64)
	return int(v), err
}

// unquote returns the contents of a Rust string literal. Escapes Go cannot decode are
// kept verbatim.
func unquote(s string) string {
	s = strings.TrimPrefix(s, "b")
	if strings.HasPrefix(s, "r") {
		s = strings.TrimPrefix(s, "r")
		hashes := len(s) - len(strings.TrimLeft(s, "#"))
		s = s[hashes:]
		s = s[:len(s)-min(hashes, len(s))]
		return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
	}
	if v, err := strconv.Unquote(s); err == nil {
		return v
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
