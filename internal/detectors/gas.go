package detectors

import (
	"github.com/meshackyaro/Sanctifier/internal/costmodel"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

// GasEstimates produces a heuristic instruction and memory estimate for every public
// impl method.
func GasEstimates(f *syntax.File) []model.GasEstimationReport {
	reports := []model.GasEstimationReport{}
	for _, fn := range publicImplFns(f) {
		g := newGasMeter()
		g.visit(fn.Body)
		reports = append(reports, model.GasEstimationReport{
			FunctionName:          fn.Name,
			EstimatedInstructions: g.instructions,
			EstimatedMemoryBytes:  g.memory,
		})
	}
	return reports
}

type gasMeter struct {
	instructions int
	memory       int
}

func newGasMeter() *gasMeter {
	return &gasMeter{instructions: costmodel.FnBaseInstructions, memory: costmodel.FnBaseMemory}
}

func (g *gasMeter) visit(n syntax.Node) {
	switch n := n.(type) {
	case nil:
		return
	case *syntax.ItemStmt:
		return
	case *syntax.LocalStmt:
		g.instructions += costmodel.LocalCost
		if n.Type != nil {
			g.memory += costmodel.TypeSize(n.Type)
		} else {
			g.memory += costmodel.LocalUntypedMem
		}
	case *syntax.BinaryExpr:
		g.instructions += costmodel.BinaryOpCost
	case *syntax.CallExpr:
		g.instructions += costmodel.CallCost
	case *syntax.MethodCallExpr:
		g.instructions += costmodel.MethodCost(n.Method)
	case *syntax.MacroExpr:
		instr, mem := costmodel.MacroCostOf(n.Name())
		g.instructions += instr
		g.memory += mem
		return
	case *syntax.ForExpr:
		g.visit(n.Iter)
		g.loop(n.Body)
		return
	case *syntax.WhileExpr:
		g.visit(n.Cond)
		g.loop(n.Body)
		return
	case *syntax.LoopExpr:
		g.loop(n.Body)
		return
	}
	for _, c := range syntax.Children(n) {
		g.visit(c)
	}
}

// loop charges a loop body as ten runs of a standalone estimate plus overhead.
func (g *gasMeter) loop(body *syntax.Block) {
	inner := newGasMeter()
	inner.visit(body)
	g.instructions += costmodel.LoopOverhead + costmodel.LoopMultiplier*inner.instructions
	g.memory += costmodel.LoopMultiplier * inner.memory
}
