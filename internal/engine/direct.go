package engine

import (
	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/matcher"
	"github.com/termfx/treematch/internal/parallel"
)

// DirectEngine is "Engine B": it walks a canonicalized query directly,
// with no expansion pass. Optional and Loop bodies are tried on demand —
// each recursive call explores "include" vs "exclude", or one repetition
// count at a time — and the walk short-circuits on the first winning
// path, rather than Engine A's strategy of materializing every
// alternative up front.
type DirectEngine struct {
	query  core.Node
	solver *parallel.Solver
}

// NewDirectEngine wraps an already-canonicalized query. Construction
// cannot fail — all structural validation already happened in
// core.Canonicalize.
func NewDirectEngine(query core.Node) *DirectEngine {
	e := &DirectEngine{query: query}
	e.solver = parallel.NewSolver(e.matchSeqNode)
	return e
}

// Match reports whether variant satisfies the engine's query.
func (e *DirectEngine) Match(variant core.Node) bool {
	v := core.FlattenVariant(variant)
	return e.matchTop(e.query, v)
}

func (e *DirectEngine) matchTop(query, variant core.Node) bool {
	switch {
	case query.Kind == core.KindSequence && variant.Kind == core.KindSequence:
		return e.matchSeqNode(query, variant)
	case query.Kind == core.KindParallel && variant.Kind == core.KindParallel:
		return e.solver.Match(query, variant)
	default:
		return matcher.NodeMatch(query, variant)
	}
}

// matchSeqNode handles the Start/End anchoring and sliding-window search
// around a single call to the recursive walker, match.
func (e *DirectEngine) matchSeqNode(query, variant core.Node) bool {
	qc := query.Children
	vc := variant.Children
	if len(qc) == 0 {
		return true
	}

	hasStart := qc[0].Kind == core.KindStart
	hasEnd := qc[len(qc)-1].Kind == core.KindEnd

	if len(qc) == 1 && (hasStart || hasEnd) {
		return true
	}

	middle := qc
	if hasStart {
		middle = middle[1:]
	}
	if hasEnd {
		middle = middle[:len(middle)-1]
	}

	switch {
	case hasStart && hasEnd:
		return e.match(middle, vc, 0, true)
	case hasStart:
		return e.match(middle, vc, 0, false)
	case hasEnd:
		for vi := 0; vi <= len(vc); vi++ {
			if e.match(middle, vc, vi, true) {
				return true
			}
		}
		return false
	default:
		for vi := 0; vi <= len(vc); vi++ {
			if e.match(middle, vc, vi, false) {
				return true
			}
		}
		return false
	}
}

// match tries to consume qrest, in order, against vc starting at vi.
// When requireFull is true the walk must land exactly on len(vc) once
// qrest is exhausted; otherwise trailing variant elements are ignored.
func (e *DirectEngine) match(qrest []core.Node, vc []core.Node, vi int, requireFull bool) bool {
	if len(qrest) == 0 {
		if requireFull {
			return vi == len(vc)
		}
		return true
	}

	head := qrest[0]
	tail := qrest[1:]

	switch head.Kind {
	case core.KindOptional:
		unit := expandOneRep(head.Children[0])
		candidate := append(append([]core.Node(nil), unit...), tail...)
		if e.match(candidate, vc, vi, requireFull) {
			return true
		}
		return e.match(tail, vc, vi, requireFull)

	case core.KindLoop:
		return e.matchLoop(head, tail, vc, vi, requireFull)

	case core.KindAnything:
		remaining := len(vc) - vi
		for consume := 1; consume <= remaining; consume++ {
			if e.match(tail, vc, vi+consume, requireFull) {
				return true
			}
		}
		return false

	case core.KindStart, core.KindEnd:
		return e.match(tail, vc, vi, requireFull)

	default:
		if vi >= len(vc) {
			return false
		}
		if head.Kind == core.KindParallel {
			if vc[vi].Kind != core.KindParallel || !e.solver.Match(head, vc[vi]) {
				return false
			}
		} else if !matcher.NodeMatch(head, vc[vi]) {
			return false
		}
		return e.match(tail, vc, vi+1, requireFull)
	}
}

func (e *DirectEngine) matchLoop(loop core.Node, tail []core.Node, vc []core.Node, vi int, requireFull bool) bool {
	unit := expandOneRep(loop.Children[0])
	for count := loop.Min; count <= loop.Max; count++ {
		candidate := make([]core.Node, 0, len(unit)*count+len(tail))
		for i := 0; i < count; i++ {
			candidate = append(candidate, unit...)
		}
		candidate = append(candidate, tail...)
		if e.match(candidate, vc, vi, requireFull) {
			return true
		}
	}
	return false
}

// expandOneRep returns the nodes a single repetition of body contributes
// to its enclosing Sequence: body's own children if body is itself a
// Sequence (same-type flattening, applied lazily since Canonicalize cannot
// inline a body Sequence past its Optional/Loop wrapper), otherwise body
// itself.
func expandOneRep(body core.Node) []core.Node {
	if body.Kind == core.KindSequence {
		return body.Children
	}
	return []core.Node{body}
}
