// Package parallel implements the bijective backtracking matcher shared by
// all three sequential engines for comparing a Parallel query group against
// a Parallel variant group (spec §4.2). Every query branch must be
// assigned exactly one variant branch and every variant branch must be
// used — order between siblings never matters.
package parallel

import (
	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/matcher"
)

// SeqMatch decides whether a Sequence-kind variant branch satisfies a
// Sequence-kind query branch nested directly inside a Parallel. Each
// sequential engine supplies its own implementation (expansion+DFS, the
// direct walk, or the compiled VM) so Solver stays engine-agnostic.
type SeqMatch func(query, variant core.Node) bool

// Solver runs the backtracking assignment search. The zero value is not
// usable; construct with NewSolver.
type Solver struct {
	seqMatch SeqMatch
}

// NewSolver builds a Solver that delegates Sequence-branch comparisons to
// seqMatch.
func NewSolver(seqMatch SeqMatch) *Solver {
	return &Solver{seqMatch: seqMatch}
}

// run tracks one in-progress assignment search: the remaining query
// branches still to be placed (front of queue is tried next), which
// variant branch indices are already claimed, and how many Anything
// branches have claimed "at least one" slot each.
type run struct {
	queue       []core.Node
	assigned    []bool
	variant     []core.Node
	numAnything int
}

// Match reports whether query's branches can be bijectively assigned to
// variant's branches. Both nodes must already be canonicalized/flattened
// Parallel nodes.
func (s *Solver) Match(query, variant core.Node) bool {
	r := &run{
		queue:    append([]core.Node(nil), query.Children...),
		assigned: make([]bool, len(variant.Children)),
		variant:  variant.Children,
	}
	return s.matchNext(r)
}

func (s *Solver) matchNext(r *run) bool {
	if len(r.queue) == 0 {
		if r.numAnything == 0 {
			return allTrue(r.assigned)
		}
		return countFalse(r.assigned)-r.numAnything >= 0
	}

	element := r.queue[0]
	r.queue = r.queue[1:]

	matched := false
	switch element.Kind {
	case core.KindLoop:
		matched = s.matchLoop(element, r)
	case core.KindOptional:
		matched = s.matchOptional(element, r)
	case core.KindSequence:
		matched = s.matchSequence(element, r)
	case core.KindAnything:
		r.numAnything++
		matched = s.matchNext(r)
		if !matched {
			r.numAnything--
		}
	case core.KindLeaf, core.KindFallthrough, core.KindWildcard, core.KindChoice, core.KindParallel:
		matched = s.matchSimple(element, r)
	}

	if matched {
		return true
	}

	r.queue = append([]core.Node{element}, r.queue...)
	return false
}

// matchSimple handles every query branch kind that is compared directly
// against one variant branch at a time: Leaf/Fallthrough/Wildcard/Choice
// via the node matcher, Parallel via recursive Solver.Match.
func (s *Solver) matchSimple(element core.Node, r *run) bool {
	for i, used := range r.assigned {
		if used {
			continue
		}
		if !s.elementMatches(element, r.variant[i]) {
			continue
		}
		r.assigned[i] = true
		if s.matchNext(r) {
			return true
		}
		r.assigned[i] = false
	}
	return false
}

func (s *Solver) elementMatches(element, v core.Node) bool {
	if element.Kind == core.KindParallel {
		if v.Kind != core.KindParallel {
			return false
		}
		return s.Match(element, v)
	}
	return matcher.NodeMatch(element, v)
}

func (s *Solver) matchSequence(seq core.Node, r *run) bool {
	for i, used := range r.assigned {
		if used || r.variant[i].Kind != core.KindSequence {
			continue
		}
		if !s.seqMatch(seq, r.variant[i]) {
			continue
		}
		r.assigned[i] = true
		if s.matchNext(r) {
			return true
		}
		r.assigned[i] = false
	}
	return false
}

func (s *Solver) matchOptional(opt core.Node, r *run) bool {
	body := opt.Children[0]

	r.queue = append([]core.Node{body}, r.queue...)
	if s.matchNext(r) {
		return true
	}
	r.queue = r.queue[1:]

	return s.matchNext(r)
}

func (s *Solver) matchLoop(loop core.Node, r *run) bool {
	body := loop.Children[0]
	min, max := loop.Min, loop.Max

	push := func() { r.queue = append([]core.Node{body}, r.queue...) }
	pop := func() { r.queue = r.queue[1:] }

	for i := 0; i < min; i++ {
		push()
	}
	if s.matchNext(r) {
		return true
	}

	pushed := 0
	if max != core.Unbounded {
		for i := 0; i < max-min; i++ {
			push()
			pushed++
			if s.matchNext(r) {
				return true
			}
		}
	} else {
		// Defensive fallback; Canonicalize always resolves Unbounded to a
		// concrete cap before a query reaches the solver.
		for len(r.queue) <= len(r.assigned) {
			push()
			pushed++
			if s.matchNext(r) {
				return true
			}
		}
	}
	for i := 0; i < pushed; i++ {
		pop()
	}

	for i := 0; i < min; i++ {
		pop()
	}
	return false
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

func countFalse(bs []bool) int {
	n := 0
	for _, b := range bs {
		if !b {
			n++
		}
	}
	return n
}
