package engine

import (
	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/matcher"
	"github.com/termfx/treematch/internal/parallel"
)

// VMEngine is "Engine C": a compiled bytecode VM over a canonicalized
// query. Lazy selects the lazy-parallel-check execution strategy.
type VMEngine struct {
	query  core.Node
	prog   *vmProgram
	solver *parallel.Solver
	lazy   bool
}

// NewVMEngine compiles query (already Canonicalize'd by the caller).
func NewVMEngine(query core.Node, lazy bool) (*VMEngine, error) {
	e := &VMEngine{query: query, lazy: lazy}
	if query.Kind == core.KindSequence {
		prog, err := compileVM(query, lazy)
		if err != nil {
			return nil, err
		}
		e.prog = prog
	}
	if query.Kind == core.KindParallel {
		e.solver = parallel.NewSolver(makeVMSeqMatch(lazy))
	}
	return e, nil
}

// Match reports whether variant satisfies the compiled query.
func (e *VMEngine) Match(variant core.Node) bool {
	v := core.FlattenVariant(variant)
	switch {
	case e.prog != nil && v.Kind == core.KindSequence:
		if e.lazy {
			return e.prog.runLazy(v)
		}
		return e.prog.run(v)
	case e.solver != nil && v.Kind == core.KindParallel:
		return e.solver.Match(e.query, v)
	default:
		return matcher.NodeMatch(e.query, v)
	}
}
