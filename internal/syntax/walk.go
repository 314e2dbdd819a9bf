package syntax

// Children returns the direct child nodes of n in source order. Types and
// attributes are not nodes and are never returned.
func Children(n Node) []Node {
	if n == nil || isNilNode(n) {
		return nil
	}
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c == nil || isNilNode(c) {
				continue
			}
			out = append(out, c)
		}
	}
	addExprs := func(es []Expr) {
		for _, e := range es {
			add(e)
		}
	}
	switch n := n.(type) {
	case *File:
		for _, it := range n.Items {
			add(it)
		}
	case *FnItem:
		add(n.Body)
	case *ImplItem:
		for _, fn := range n.Fns {
			add(fn)
		}
	case *ConstItem:
		add(n.Value)
	case *ModItem:
		for _, it := range n.Items {
			add(it)
		}
	case *MacroItem:
		add(n.Macro)
	case *StructItem, *EnumItem, *UseItem, *ExternCrateItem, *OtherItem:
	case *LocalStmt:
		add(n.Init, n.Else)
	case *ExprStmt:
		add(n.X)
	case *ItemStmt:
		add(n.Item)
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *AssignExpr:
		add(n.Left, n.Right)
	case *UnaryExpr:
		add(n.X)
	case *RefExpr:
		add(n.X)
	case *CallExpr:
		add(n.Func)
		addExprs(n.Args)
	case *MethodCallExpr:
		add(n.Receiver)
		addExprs(n.Args)
	case *MacroExpr, *PathExpr, *LitExpr:
	case *FieldExpr:
		add(n.X)
	case *IndexExpr:
		add(n.X, n.Index)
	case *IfExpr:
		add(n.Cond, n.Then, n.Else)
	case *LetExpr:
		add(n.X)
	case *MatchExpr:
		add(n.X)
		for _, arm := range n.Arms {
			add(arm.Guard, arm.Body)
		}
	case *ForExpr:
		add(n.Iter, n.Body)
	case *WhileExpr:
		add(n.Cond, n.Body)
	case *LoopExpr:
		add(n.Body)
	case *ClosureExpr:
		add(n.Body)
	case *ReturnExpr:
		add(n.X)
	case *TryExpr:
		add(n.X)
	case *AwaitExpr:
		add(n.X)
	case *CastExpr:
		add(n.X)
	case *TupleExpr:
		addExprs(n.Elems)
	case *ArrayExpr:
		addExprs(n.Elems)
	case *StructExpr:
		addExprs(n.Values)
	case *RangeExpr:
		add(n.From, n.To)
	case *ParenExpr:
		add(n.X)
	case *OtherExpr:
		addExprs(n.Children)
	}
	return out
}

// isNilNode catches typed nil pointers stored in interfaces.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *MacroExpr:
		return v == nil
	case *FnItem:
		return v == nil
	}
	return false
}

// Inspect traverses the tree rooted at n depth-first in source order, calling f for each
// node. Children of a node are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || isNilNode(n) || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
