package engine

import (
	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/matcher"
	"github.com/termfx/treematch/internal/parallel"
)

// DFSEngine is "Engine A": it expands a canonicalized query into its
// concrete alternative trees up front (Expand), then matches a variant
// against each alternative with a windowed backtracking walk over
// Sequence children and the shared parallel.Solver over Parallel
// children. Ported from cortado_core.visual_query_language's
// match_sequential/match_parallel pair.
type DFSEngine struct {
	alternatives []core.Node
	solver       *parallel.Solver
}

// NewDFSEngine expands query (already Canonicalize'd by the caller) and
// prepares a reusable engine instance. Construction is the only place
// that can fail (expansion ceiling).
func NewDFSEngine(query core.Node, loopCap, expansionCeiling int) (*DFSEngine, error) {
	alts, err := Expand(query, loopCap, expansionCeiling)
	if err != nil {
		return nil, err
	}
	e := &DFSEngine{alternatives: alts}
	e.solver = parallel.NewSolver(e.matchSequential)
	return e, nil
}

// Match reports whether variant satisfies any of the engine's expanded
// query alternatives.
func (e *DFSEngine) Match(variant core.Node) bool {
	v := core.FlattenVariant(variant)
	for _, alt := range e.alternatives {
		if e.matchTop(alt, v) {
			return true
		}
	}
	return false
}

func (e *DFSEngine) matchTop(query, variant core.Node) bool {
	switch {
	case query.Kind == core.KindSequence && variant.Kind == core.KindSequence:
		return e.matchSequential(query, variant)
	case query.Kind == core.KindParallel && variant.Kind == core.KindParallel:
		return e.solver.Match(query, variant)
	default:
		return matcher.NodeMatch(query, variant)
	}
}

// matchSequential walks query's children against variant's children with
// a sliding window, backtracking on mismatch when there is no Start/End
// anchor to pin the window, and branching at each Anything into every
// possible consumed-length continuation. Parallel children encountered
// along the way are deferred as "subproblems" and only checked once a
// full linear candidate has been found, exactly as the reference
// implementation does.
func (e *DFSEngine) matchSequential(query, variant core.Node) bool {
	qc := query.Children
	vc := variant.Children
	qLen := len(qc)
	vLen := len(vc)

	if qLen == 0 {
		return true
	}

	hasStart := qc[0].Kind == core.KindStart
	hasEnd := qc[qLen-1].Kind == core.KindEnd

	// A query of anchors only: with both, only an empty variant fits; with
	// one, nothing constrains the variant.
	inner := qLen
	if hasStart {
		inner--
	}
	if hasEnd {
		inner--
	}
	if inner <= 0 {
		return vLen == 0 || !(hasStart && hasEnd)
	}

	if hasStart && qc[1].Kind != core.KindAnything {
		if vLen == 0 || !matcher.NodeMatch(qc[1], vc[0]) {
			return false
		}
	}
	if hasEnd && qc[qLen-2].Kind != core.KindAnything {
		if vLen == 0 || !matcher.NodeMatch(qc[qLen-2], vc[vLen-1]) {
			return false
		}
	}

	if hasEnd {
		qc = reversedNodes(qc)
		vc = reversedNodes(vc)
	}

	type pair struct{ q, v core.Node }
	var candidates [][]pair
	var subproblems []pair

	offset := 0
	if hasStart || hasEnd {
		offset = 1
	}
	idxTarget := qLen
	if hasStart && hasEnd {
		idxTarget = qLen - 1
	}

	idxQuery := offset
	idxVariant := 0

	for idxQuery < qLen && idxVariant < vLen {
		if qc[idxQuery].Kind == core.KindAnything {
			prefixMatch := true
			for _, sp := range subproblems {
				if !e.solver.Match(sp.q, sp.v) {
					prefixMatch = false
					break
				}
			}
			if hasStart && !prefixMatch {
				return false
			}
			if prefixMatch {
				if e.handleAnything(qc, vc, idxQuery, idxVariant) {
					return true
				}
			}

			base := offset
			if idxQuery == base {
				idxVariant++
			}
			idxQuery = base
			subproblems = nil
			continue
		}

		if !matcher.NodeMatch(qc[idxQuery], vc[idxVariant]) {
			if hasStart || hasEnd {
				return false
			}
			idxVariant = idxVariant - (idxQuery - offset) + 1
			idxQuery = offset
			subproblems = nil
			continue
		}

		if vc[idxVariant].Kind == core.KindParallel {
			subproblems = append(subproblems, pair{qc[idxQuery], vc[idxVariant]})
		}
		idxQuery++
		idxVariant++

		if idxQuery == idxTarget {
			if hasStart && hasEnd {
				if idxVariant == vLen {
					candidates = append(candidates, subproblems)
				} else {
					return false
				}
			} else {
				candidates = append(candidates, subproblems)
				subproblems = nil

				shift := qLen
				if hasStart {
					shift--
				}
				if hasEnd {
					shift--
				}
				idxVariant -= shift - 1
				idxQuery = offset
			}
			if hasStart || hasEnd {
				break
			}
		}
	}

	for _, candidate := range candidates {
		ok := true
		for _, sp := range candidate {
			if !e.solver.Match(sp.q, sp.v) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// handleAnything tries consuming 1..remaining variant elements with the
// Anything at qc[qIdx], recursing matchSequential on what is left after
// each candidate consumption length. In a reversed walk over a query
// anchored at both ends the Start marker sits last; it is turned into an
// End so the remainder stays anchored to the variant's end.
func (e *DFSEngine) handleAnything(qc, vc []core.Node, qIdx, vIdx int) bool {
	rest := append([]core.Node(nil), qc[qIdx+1:]...)
	if n := len(rest); n > 0 && rest[n-1].Kind == core.KindStart {
		rest[n-1] = core.End()
	}
	remainderQuery := core.Seq(rest...)
	remaining := len(vc) - vIdx

	for consume := 1; consume <= remaining; consume++ {
		nextV := vIdx + consume
		remainderVariant := core.Seq(append([]core.Node(nil), vc[nextV:]...)...)
		if e.matchSequential(remainderQuery, remainderVariant) {
			return true
		}
	}
	return false
}

func reversedNodes(n []core.Node) []core.Node {
	out := make([]core.Node, len(n))
	for i, v := range n {
		out[len(n)-1-i] = v
	}
	return out
}
