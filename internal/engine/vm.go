package engine

import (
	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/matcher"
	"github.com/termfx/treematch/internal/parallel"
)

// Instruction opcodes. Values below 8 read/consume input; 8 and above are
// epsilon control-flow instructions. The numbering matches
// cortado_core.visual_query_language.virtual_machine.vm.Instruction so the
// compiled shapes documented there carry over directly.
const (
	opMatchLeaf     = 1
	opMatchNode     = 2
	opMatchParallel = 3
	opReadLeaf      = 4
	opReadAny       = 5
	opJump          = 8
	opSplit         = 9
	opAccept        = 10
)

// parallelOp pairs a compiled Parallel query node with the solver that
// evaluates it against a variant's Parallel node at run time.
type parallelOp struct {
	query  core.Node
	solver *parallel.Solver
}

// vmProgram is a compiled Thompson-construction NFA for one Sequence
// query (with its own Start/End anchoring already resolved at compile
// time) plus the leaf/fallthrough/choice node table and Parallel-solver
// table its MATCH_* instructions index into.
type vmProgram struct {
	prog        []int
	leafNodes   []core.Node
	parallelOps []parallelOp
	hasStart    bool
	hasEnd      bool
	lazy        bool
}

// compileVM compiles a canonicalized Sequence query node into bytecode.
// lazy selects the deferred-parallel-check execution strategy used by
// run/runLazy.
func compileVM(query core.Node, lazy bool) (*vmProgram, error) {
	qc := query.Children
	hasStart := len(qc) > 0 && qc[0].Kind == core.KindStart
	hasEnd := len(qc) > 0 && qc[len(qc)-1].Kind == core.KindEnd

	body := qc
	if hasStart {
		body = body[1:]
	}
	if hasEnd {
		body = body[:len(body)-1]
	}

	// The READ_ANY; ACCEPT shortcut consumes exactly one element, so it is
	// only used when no End anchor requires reaching the variant's end.
	c := &vmCompiler{lazy: lazy}
	prog, terminated, err := c.compileSeq(body, !hasEnd)
	if err != nil {
		return nil, err
	}
	if !terminated {
		prog = append(prog, opAccept)
	}

	return &vmProgram{
		prog:        prog,
		leafNodes:   c.leafNodes,
		parallelOps: c.parallelOps,
		hasStart:    hasStart,
		hasEnd:      hasEnd,
		lazy:        lazy,
	}, nil
}

type vmCompiler struct {
	leafNodes   []core.Node
	parallelOps []parallelOp
	lazy        bool
}

// compileSeq compiles elements in order. topLevel enables the
// trailing-Anything shortcut (READ_ANY; ACCEPT in place of the
// READ_ANY/SPLIT loop), which is only sound for the program's true tail:
// a nested sequence (a Loop or Optional body, or a Sequence reached via
// compileGroup) must not inject an ACCEPT that would terminate the whole
// program early. The second return value reports whether the shortcut
// fired, so the caller knows not to append its own terminator.
func (c *vmCompiler) compileSeq(elements []core.Node, topLevel bool) ([]int, bool, error) {
	var prog []int
	for i, el := range elements {
		if topLevel && i == len(elements)-1 && el.Kind == core.KindAnything {
			prog = append(prog, opReadAny, opAccept)
			return prog, true, nil
		}
		sub, err := c.compileGroup(el)
		if err != nil {
			return nil, false, err
		}
		prog = append(prog, sub...)
	}
	return prog, false, nil
}

func (c *vmCompiler) compileGroup(g core.Node) ([]int, error) {
	switch g.Kind {
	case core.KindLeaf:
		c.leafNodes = append(c.leafNodes, g)
		return []int{opMatchLeaf, len(c.leafNodes) - 1}, nil

	case core.KindFallthrough, core.KindChoice:
		c.leafNodes = append(c.leafNodes, g)
		return []int{opMatchNode, len(c.leafNodes) - 1}, nil

	case core.KindWildcard:
		return []int{opReadLeaf}, nil

	case core.KindAnything:
		return []int{opReadAny, opSplit, 3, -1}, nil

	case core.KindOptional:
		child, err := c.compileGroup(g.Children[0])
		if err != nil {
			return nil, err
		}
		prog := []int{opSplit, 3, len(child) + 3}
		prog = append(prog, child...)
		return prog, nil

	case core.KindLoop:
		return c.compileLoop(g)

	case core.KindSequence:
		prog, _, err := c.compileSeq(g.Children, false)
		return prog, err

	case core.KindParallel:
		solver := parallel.NewSolver(makeVMSeqMatch(c.lazy))
		c.parallelOps = append(c.parallelOps, parallelOp{query: g, solver: solver})
		return []int{opMatchParallel, len(c.parallelOps) - 1}, nil

	default:
		return nil, &core.UnsupportedNode{Kind: g.Kind}
	}
}

func (c *vmCompiler) compileLoop(loop core.Node) ([]int, error) {
	child, err := c.compileGroup(loop.Children[0])
	if err != nil {
		return nil, err
	}

	var minProg []int
	for i := 0; i < loop.Min; i++ {
		minProg = append(minProg, child...)
	}

	if loop.Max != core.Unbounded {
		optionalCount := loop.Max - loop.Min
		var maxProg []int
		for i := 0; i < optionalCount; i++ {
			seg := []int{opSplit, 3, len(child) + 3}
			seg = append(seg, child...)
			maxProg = append(maxProg, seg...)
		}
		return append(minProg, maxProg...), nil
	}

	// Unbounded: a self-looping SPLIT jumping back over the body. Dead in
	// practice since Canonicalize always resolves Max, kept so the
	// compiled shape matches the original unbounded-loop encoding.
	loopProg := []int{opSplit, 3, len(child) + 5}
	loopProg = append(loopProg, child...)
	offset := -len(loopProg)
	loopProg = append(loopProg, opJump, offset)
	return append(minProg, loopProg...), nil
}

// makeVMSeqMatch returns the parallel.SeqMatch used for Sequence branches
// nested inside a Parallel reached through the VM: each such branch is
// compiled into its own small VM on demand and run against the candidate
// variant branch.
func makeVMSeqMatch(lazy bool) parallel.SeqMatch {
	return func(query, variant core.Node) bool {
		sub, err := compileVM(query, lazy)
		if err != nil {
			return false
		}
		if lazy {
			return sub.runLazy(variant)
		}
		return sub.run(variant)
	}
}

// run executes the eager thread-list simulation: clist/nlist of program
// counters, deduplicated per input position via visited[pc]==idx.
func (p *vmProgram) run(variant core.Node) bool {
	vc := variant.Children
	n := len(vc)
	progLen := len(p.prog)

	visited := make([]int, progLen)
	for i := range visited {
		visited[i] = -1
	}

	clist := []int{0}
	var nlist []int

	for idx := 0; idx <= n; idx++ {
		var el *core.Node
		if idx < n {
			el = &vc[idx]
		}

		// Indexed, not range-based: a SPLIT appends to clist mid-loop and
		// the newly appended target must still be visited this round,
		// mirroring Python's dynamic list iteration.
		for ci := 0; ci < len(clist); ci++ {
			pc := clist[ci]
			for pc < progLen {
				instr := p.prog[pc]
				if visited[pc] == idx {
					break
				}
				visited[pc] = idx

				if instr < 8 {
					advanced := true
					switch instr {
					case opMatchLeaf:
						if el == nil || el.Kind != core.KindLeaf || p.leafNodes[p.prog[pc+1]].Label != el.Label {
							advanced = false
						} else {
							pc += 2
						}
					case opReadAny:
						pc++
					case opMatchNode:
						if el == nil || !matcher.NodeMatch(p.leafNodes[p.prog[pc+1]], *el) {
							advanced = false
						} else {
							pc += 2
						}
					case opReadLeaf:
						if el == nil || el.Kind != core.KindLeaf {
							advanced = false
						} else {
							pc++
						}
					case opMatchParallel:
						if el == nil || el.Kind != core.KindParallel {
							advanced = false
						} else {
							op := p.parallelOps[p.prog[pc+1]]
							if !op.solver.Match(op.query, *el) {
								advanced = false
							} else {
								pc += 2
							}
						}
					}
					if !advanced {
						break
					}
					nlist = append(nlist, pc)
					break
				}

				switch instr {
				case opSplit:
					clist = append(clist, pc+p.prog[pc+2])
					pc += p.prog[pc+1]
				case opJump:
					pc += p.prog[pc+1]
				case opAccept:
					if p.hasEnd && el != nil {
						pc = progLen // force break out without accepting
						break
					}
					return true
				}
				if pc >= progLen {
					break
				}
			}
		}

		if !p.hasStart {
			nlist = append(nlist, 0)
		} else if len(nlist) == 0 {
			return false
		}

		clist, nlist = nlist, clist[:0]
	}
	return false
}

type lazyState struct {
	pc      int
	lazyPar *lazyParallel
}

type lazyParallel struct {
	query   core.Node
	variant core.Node
	solver  *parallel.Solver
}

// runLazy mirrors run but defers the most recent MATCH_PARALLEL check
// instead of evaluating it immediately, checking it only when the thread
// it belongs to either reaches another MATCH_PARALLEL or finally accepts.
func (p *vmProgram) runLazy(variant core.Node) bool {
	vc := variant.Children
	n := len(vc)
	progLen := len(p.prog)

	clist := []lazyState{{pc: 0}}
	var nlist []lazyState

	for idx := 0; idx <= n; idx++ {
		var el *core.Node
		if idx < n {
			el = &vc[idx]
		}
		visited := make(map[lazyState]bool)

		for ci := 0; ci < len(clist); ci++ {
			pc := clist[ci].pc
			lazyPar := clist[ci].lazyPar
			for pc < progLen {
				instr := p.prog[pc]
				key := lazyState{pc: pc, lazyPar: lazyPar}
				if visited[key] {
					break
				}
				visited[key] = true

				if instr < 8 {
					advanced := true
					switch instr {
					case opMatchLeaf:
						if el == nil || el.Kind != core.KindLeaf || p.leafNodes[p.prog[pc+1]].Label != el.Label {
							advanced = false
						} else {
							pc += 2
						}
					case opReadAny:
						pc++
					case opMatchNode:
						if el == nil || !matcher.NodeMatch(p.leafNodes[p.prog[pc+1]], *el) {
							advanced = false
						} else {
							pc += 2
						}
					case opReadLeaf:
						if el == nil || el.Kind != core.KindLeaf {
							advanced = false
						} else {
							pc++
						}
					case opMatchParallel:
						if el == nil || el.Kind != core.KindParallel {
							advanced = false
						} else if lazyPar != nil && !checkLazy(lazyPar) {
							advanced = false
						} else {
							op := p.parallelOps[p.prog[pc+1]]
							lazyPar = &lazyParallel{query: op.query, variant: *el, solver: op.solver}
							pc += 2
						}
					}
					if !advanced {
						break
					}
					nlist = append(nlist, lazyState{pc: pc, lazyPar: lazyPar})
					break
				}

				switch instr {
				case opSplit:
					clist = append(clist, lazyState{pc: pc + p.prog[pc+2], lazyPar: lazyPar})
					pc += p.prog[pc+1]
				case opJump:
					pc += p.prog[pc+1]
				case opAccept:
					if p.hasEnd && el != nil {
						pc = progLen
						break
					}
					if lazyPar != nil && !checkLazy(lazyPar) {
						break
					}
					return true
				}
				if pc >= progLen {
					break
				}
			}
		}

		if !p.hasStart {
			nlist = append(nlist, lazyState{pc: 0})
		} else if len(nlist) == 0 {
			return false
		}

		clist, nlist = nlist, clist[:0]
	}
	return false
}

func checkLazy(lp *lazyParallel) bool {
	return lp.solver.Match(lp.query, lp.variant)
}
