package detectors

import (
	"fmt"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

const (
	MaxCyclomatic = 10
	MaxParams     = 5
	MaxNesting    = 4
	MaxLOC        = 50
)

// Complexity computes per-function metrics for public free functions and all impl
// methods, including those in nested modules, plus the file's dependency count.
func Complexity(f *syntax.File, path string) model.ContractMetrics {
	cm := model.ContractMetrics{ContractPath: path, Functions: []model.FunctionMetrics{}}
	for _, it := range f.Items {
		complexityItem(it, &cm)
	}
	return cm
}

func complexityItem(it syntax.Item, cm *model.ContractMetrics) {
	switch it := it.(type) {
	case *syntax.UseItem, *syntax.ExternCrateItem:
		cm.DependencyCount++
	case *syntax.FnItem:
		if it.Public {
			cm.Functions = append(cm.Functions, functionMetrics(it))
		}
		nestedItems(it.Body, cm)
	case *syntax.ImplItem:
		for _, fn := range it.Fns {
			cm.Functions = append(cm.Functions, functionMetrics(fn))
			nestedItems(fn.Body, cm)
		}
	case *syntax.ModItem:
		for _, sub := range it.Items {
			complexityItem(sub, cm)
		}
	}
}

// nestedItems picks up items declared inside a function body.
func nestedItems(body *syntax.Block, cm *model.ContractMetrics) {
	syntax.Inspect(body, func(n syntax.Node) bool {
		if is, ok := n.(*syntax.ItemStmt); ok {
			complexityItem(is.Item, cm)
			return false
		}
		return true
	})
}

type complexityCounter struct {
	cc       int
	depth    int
	maxDepth int
}

func functionMetrics(fn *syntax.FnItem) model.FunctionMetrics {
	c := &complexityCounter{cc: 1}
	c.visit(fn.Body)

	m := model.FunctionMetrics{
		Name:                 fn.Name,
		CyclomaticComplexity: c.cc,
		ParamCount:           len(fn.Params),
		MaxNestingDepth:      c.maxDepth,
		LOC:                  fn.EndLine - fn.Line + 1,
		Warnings:             []string{},
		Line:                 fn.Line,
	}
	if m.CyclomaticComplexity > MaxCyclomatic {
		m.Warnings = append(m.Warnings, fmt.Sprintf("Cyclomatic complexity %d exceeds threshold %d", m.CyclomaticComplexity, MaxCyclomatic))
	}
	if m.ParamCount > MaxParams {
		m.Warnings = append(m.Warnings, fmt.Sprintf("%d parameters exceeds threshold %d", m.ParamCount, MaxParams))
	}
	if m.MaxNestingDepth > MaxNesting {
		m.Warnings = append(m.Warnings, fmt.Sprintf("Nesting depth %d exceeds threshold %d", m.MaxNestingDepth, MaxNesting))
	}
	if m.LOC > MaxLOC {
		m.Warnings = append(m.Warnings, fmt.Sprintf("%d LOC exceeds threshold %d", m.LOC, MaxLOC))
	}
	return m
}

func (c *complexityCounter) visit(n syntax.Node) {
	nested := false
	switch n := n.(type) {
	case nil, *syntax.ItemStmt:
		return
	case *syntax.IfExpr, *syntax.ForExpr, *syntax.WhileExpr, *syntax.LoopExpr, *syntax.ClosureExpr:
		c.cc++
		nested = true
	case *syntax.MatchExpr:
		if len(n.Arms) > 1 {
			c.cc += len(n.Arms) - 1
		}
		nested = true
	case *syntax.BinaryExpr:
		if n.Op == "&&" || n.Op == "||" {
			c.cc++
		}
	}
	if nested {
		c.depth++
		if c.depth > c.maxDepth {
			c.maxDepth = c.depth
		}
		defer func() { c.depth-- }()
	}
	for _, ch := range syntax.Children(n) {
		c.visit(ch)
	}
}
