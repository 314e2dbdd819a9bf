package syntax

import "strings"

// Span locates a node in the source. Offsets are bytes, lines are 1-based.
type Span struct {
	Start   int
	End     int
	Line    int
	EndLine int
}

func (s Span) Pos() Span { return s }

// Node is implemented by every item, statement, expression and block.
type Node interface {
	Pos() Span
}

// File is a parsed Rust source file.
type File struct {
	Source string
	Items  []Item
}

// Text returns the source text covered by s.
func (f *File) Text(s Span) string {
	if s.Start < 0 || s.End > len(f.Source) || s.Start > s.End {
		return ""
	}
	return f.Source[s.Start:s.End]
}

func (f *File) Pos() Span {
	return Span{Start: 0, End: len(f.Source), Line: 1, EndLine: strings.Count(f.Source, "\n") + 1}
}

// Attribute is an outer attribute such as #[contracttype] or #[cfg(test)].
type Attribute struct {
	Span
	Path string
	Args string
}

// Name is the last segment of the attribute path.
func (a Attribute) Name() string {
	if i := strings.LastIndex(a.Path, "::"); i >= 0 {
		return a.Path[i+2:]
	}
	return a.Path
}

// HasAttr reports whether attrs contains an attribute whose last path segment is name.
func HasAttr(attrs []Attribute, name string) bool {
	for _, a := range attrs {
		if a.Name() == name {
			return true
		}
	}
	return false
}

// Items

type Item interface {
	Node
	itemNode()
}

type Param struct {
	Span
	Name string
	Type Type
	Self bool
}

type FnItem struct {
	Span
	Attrs  []Attribute
	Public bool
	Name   string
	Params []Param
	Body   *Block
}

type ImplItem struct {
	Span
	Attrs    []Attribute
	SelfType string
	Trait    string
	Fns      []*FnItem
}

type Field struct {
	Span
	Name string
	Type Type
}

type StructItem struct {
	Span
	Attrs  []Attribute
	Public bool
	Name   string
	Fields []Field
}

type Variant struct {
	Span
	Name   string
	Fields []Field
}

type EnumItem struct {
	Span
	Attrs    []Attribute
	Public   bool
	Name     string
	Variants []Variant
}

// ConstItem covers both const and static declarations.
type ConstItem struct {
	Span
	Attrs  []Attribute
	Static bool
	Name   string
	Type   Type
	Value  Expr
}

type UseItem struct {
	Span
	Path string
}

type ExternCrateItem struct {
	Span
	Name string
}

type ModItem struct {
	Span
	Attrs []Attribute
	Name  string
	Items []Item
}

// MacroItem is a macro invocation in item position.
type MacroItem struct {
	Span
	Macro *MacroExpr
}

// OtherItem is any item kind no detector inspects (traits, type aliases, macro_rules).
type OtherItem struct {
	Span
	Kind string
}

func (*FnItem) itemNode()          {}
func (*ImplItem) itemNode()        {}
func (*StructItem) itemNode()      {}
func (*EnumItem) itemNode()        {}
func (*ConstItem) itemNode()       {}
func (*UseItem) itemNode()         {}
func (*ExternCrateItem) itemNode() {}
func (*ModItem) itemNode()         {}
func (*MacroItem) itemNode()       {}
func (*OtherItem) itemNode()       {}

// Statements

type Stmt interface {
	Node
	stmtNode()
}

// LocalStmt is a let binding. Type, Init and Else may be nil.
type LocalStmt struct {
	Span
	Pattern string
	Type    Type
	Init    Expr
	Else    *Block
}

// ExprStmt wraps an expression; Semi is false for a block's trailing expression.
type ExprStmt struct {
	Span
	X    Expr
	Semi bool
}

type ItemStmt struct {
	Span
	Item Item
}

func (*LocalStmt) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*ItemStmt) stmtNode()  {}

// Expressions

type Expr interface {
	Node
	exprNode()
}

// Block is a braced statement list. Kind is "", "unsafe", "async", "const" or "try".
type Block struct {
	Span
	Kind  string
	Stmts []Stmt
}

// BinaryExpr includes compound assignments such as += and -=.
type BinaryExpr struct {
	Span
	Op    string
	Left  Expr
	Right Expr
}

type AssignExpr struct {
	Span
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	Span
	Op string
	X  Expr
}

type RefExpr struct {
	Span
	Mut bool
	X   Expr
}

type CallExpr struct {
	Span
	Func Expr
	Args []Expr
}

type MethodCallExpr struct {
	Span
	Receiver Expr
	Method   string
	Args     []Expr
}

// Token is a top-level token of a macro invocation's token tree.
type Token struct {
	Span
	Kind string
	Text string
}

type MacroExpr struct {
	Span
	Path   string
	Tokens []Token
}

// Name is the last segment of the macro path.
func (m *MacroExpr) Name() string {
	if i := strings.LastIndex(m.Path, "::"); i >= 0 {
		return m.Path[i+2:]
	}
	return m.Path
}

// StringArg returns the literal value when the macro's only token is a string literal.
func (m *MacroExpr) StringArg() (string, bool) {
	if len(m.Tokens) != 1 || m.Tokens[0].Kind != "string_literal" {
		return "", false
	}
	return unquote(m.Tokens[0].Text), true
}

type PathExpr struct {
	Span
	Segments []string
}

// Last returns the final path segment.
func (p *PathExpr) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

type FieldExpr struct {
	Span
	X     Expr
	Field string
}

type IndexExpr struct {
	Span
	X     Expr
	Index Expr
}

type LitKind int

const (
	LitOther LitKind = iota
	LitInt
	LitFloat
	LitString
	LitChar
	LitBool
)

// LitExpr is a literal. Value is unquoted for strings.
type LitExpr struct {
	Span
	Kind  LitKind
	Value string
}

type IfExpr struct {
	Span
	Cond Expr
	Then *Block
	Else Expr
}

// LetExpr is a let condition inside if or while.
type LetExpr struct {
	Span
	Pattern string
	X       Expr
}

type MatchArm struct {
	Span
	Pattern string
	Guard   Expr
	Body    Expr
}

type MatchExpr struct {
	Span
	X    Expr
	Arms []MatchArm
}

type ForExpr struct {
	Span
	Pattern string
	Iter    Expr
	Body    *Block
}

type WhileExpr struct {
	Span
	Cond Expr
	Body *Block
}

type LoopExpr struct {
	Span
	Body *Block
}

type ClosureExpr struct {
	Span
	Params int
	Body   Expr
}

// ReturnExpr covers return and break; X may be nil.
type ReturnExpr struct {
	Span
	Break bool
	X     Expr
}

type TryExpr struct {
	Span
	X Expr
}

type AwaitExpr struct {
	Span
	X Expr
}

type CastExpr struct {
	Span
	X    Expr
	Type Type
}

type TupleExpr struct {
	Span
	Elems []Expr
}

type ArrayExpr struct {
	Span
	Elems []Expr
}

type StructExpr struct {
	Span
	Name   string
	Values []Expr
}

type RangeExpr struct {
	Span
	From Expr
	To   Expr
}

type ParenExpr struct {
	Span
	X Expr
}

// OtherExpr is an expression kind with no dedicated shape. Children are kept so walks
// still reach nested code.
type OtherExpr struct {
	Span
	Kind     string
	Children []Expr
}

func (*Block) exprNode()          {}
func (*BinaryExpr) exprNode()     {}
func (*AssignExpr) exprNode()     {}
func (*UnaryExpr) exprNode()      {}
func (*RefExpr) exprNode()        {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*MacroExpr) exprNode()      {}
func (*PathExpr) exprNode()       {}
func (*FieldExpr) exprNode()      {}
func (*IndexExpr) exprNode()      {}
func (*LitExpr) exprNode()        {}
func (*IfExpr) exprNode()         {}
func (*LetExpr) exprNode()        {}
func (*MatchExpr) exprNode()      {}
func (*ForExpr) exprNode()        {}
func (*WhileExpr) exprNode()      {}
func (*LoopExpr) exprNode()       {}
func (*ClosureExpr) exprNode()    {}
func (*ReturnExpr) exprNode()     {}
func (*TryExpr) exprNode()        {}
func (*AwaitExpr) exprNode()      {}
func (*CastExpr) exprNode()       {}
func (*TupleExpr) exprNode()      {}
func (*ArrayExpr) exprNode()      {}
func (*StructExpr) exprNode()     {}
func (*RangeExpr) exprNode()      {}
func (*ParenExpr) exprNode()      {}
func (*OtherExpr) exprNode()      {}

// IsStringLit reports whether e is a string literal.
func IsStringLit(e Expr) bool {
	l, ok := e.(*LitExpr)
	return ok && l.Kind == LitString
}

// Types

type Type interface {
	typeNode()
}

type PathSegment struct {
	Name string
	Args []Type
}

// PathType is a named type such as u64, Address or soroban_sdk::Vec<u32>.
type PathType struct {
	Segments []PathSegment
}

// Last returns the final segment.
func (p *PathType) Last() PathSegment {
	if len(p.Segments) == 0 {
		return PathSegment{}
	}
	return p.Segments[len(p.Segments)-1]
}

// ArrayType is [Elem; Len]. Len is -1 when the length is not an integer literal.
type ArrayType struct {
	Elem Type
	Len  int
}

type RefType struct {
	Mut  bool
	Elem Type
}

type TupleType struct {
	Elems []Type
}

// ConstArg is a const generic argument such as the 32 in BytesN<32>.
type ConstArg struct {
	Text string
}

// OtherType is any type form without a dedicated shape.
type OtherType struct {
	Kind string
}

func (*PathType) typeNode()  {}
func (*ArrayType) typeNode() {}
func (*RefType) typeNode()   {}
func (*TupleType) typeNode() {}
func (*ConstArg) typeNode()  {}
func (*OtherType) typeNode() {}
