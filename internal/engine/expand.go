// Package engine implements the three interchangeable sequential matching
// engines (spec §4.4–§4.6): expansion+DFS (Engine A), a direct
// backtracking walk with no pre-expansion (Engine B), and a compiled
// bytecode VM (Engine C). All three must produce bit-identical verdicts
// for the same canonicalized query and variant.
package engine

import "github.com/termfx/treematch/internal/core"

// DefaultExpansionCeiling bounds how many concrete alternative trees
// Expand may produce before it gives up (spec §3: "exceeding the
// ceiling causes no-match rather than unbounded expansion" is the
// implementer's choice; this repo surfaces it as a construction-time
// InvalidQuery instead, since spec.md only names two error kinds and a
// query an engine cannot even finish expanding is unusable either way).
const DefaultExpansionCeiling = 50000

// Expand turns a canonicalized query into the list of concrete
// alternative trees it denotes once every Optional and Loop has been
// unrolled into a fixed repetition count. Choice, Wildcard, Anything,
// Fallthrough, Start and End are left untouched — they are matched
// atomically by internal/matcher, not expanded (mirrors
// cortado_core.visual_query_language.expand_tree's check_leaf set).
//
// Nested Sequence/Parallel structure is expanded recursively and
// cross-producted against sibling alternatives; a nested alternative of
// the same kind as its parent is inlined rather than wrapped one level
// deeper, matching Canonicalize's own same-type flattening rule.
func Expand(n core.Node, loopCap, expansionCeiling int) ([]core.Node, error) {
	if expansionCeiling <= 0 {
		expansionCeiling = DefaultExpansionCeiling
	}
	if loopCap <= 0 {
		loopCap = core.DefaultLoopCap
	}
	return expand(n, loopCap, expansionCeiling)
}

func expand(n core.Node, loopCap, ceiling int) ([]core.Node, error) {
	switch n.Kind {
	case core.KindLeaf, core.KindFallthrough, core.KindWildcard, core.KindAnything,
		core.KindChoice, core.KindStart, core.KindEnd:
		return []core.Node{n}, nil

	case core.KindSequence:
		return expandCompound(n, core.KindSequence, loopCap, ceiling)

	case core.KindParallel:
		return expandCompound(n, core.KindParallel, loopCap, ceiling)

	case core.KindOptional:
		inner, err := expand(n.Children[0], loopCap, ceiling)
		if err != nil {
			return nil, err
		}
		out := append(append([]core.Node(nil), inner...), core.Seq())
		return out, nil

	case core.KindLoop:
		lists, err := expandLoopBody(nil, [][]core.Node{{}}, n, loopCap, ceiling)
		if err != nil {
			return nil, err
		}
		out := make([]core.Node, 0, len(lists))
		for _, l := range lists {
			out = append(out, core.Seq(l...))
		}
		return out, nil

	default:
		return nil, &core.UnsupportedNode{Kind: n.Kind}
	}
}

// expandCompound folds a Sequence or Parallel's children left to right,
// accumulating a cross product of "flat children list" alternatives, then
// wraps each resulting list back into a node of kind.
func expandCompound(n core.Node, kind core.Kind, loopCap, ceiling int) ([]core.Node, error) {
	lists := [][]core.Node{{}}
	var err error

	for _, child := range n.Children {
		switch child.Kind {
		case core.KindOptional:
			innerAlts, e := expand(child.Children[0], loopCap, ceiling)
			if e != nil {
				return nil, e
			}
			withAlt, e := crossAppendAlts(lists, innerAlts, kind, ceiling)
			if e != nil {
				return nil, e
			}
			lists = append(withAlt, lists...)

		case core.KindLoop:
			lists, err = expandLoopBody(nil, lists, child, loopCap, ceiling)
			if err != nil {
				return nil, err
			}

		default:
			alts, e := expand(child, loopCap, ceiling)
			if e != nil {
				return nil, e
			}
			lists, err = crossAppendAlts(lists, alts, kind, ceiling)
			if err != nil {
				return nil, err
			}
		}
		if len(lists) > ceiling {
			return nil, &core.InvalidQuery{Reason: "expansion ceiling exceeded"}
		}
	}

	out := make([]core.Node, 0, len(lists))
	for _, l := range lists {
		if kind == core.KindSequence {
			out = append(out, core.Seq(l...))
		} else {
			out = append(out, core.Par(l...))
		}
	}
	return out, nil
}

// expandLoopBody cross-products `lists` with `count` repetitions of the
// loop body, for every count in [min, effectiveMax], and returns the
// union across all counts. `_` (unused) keeps the signature uniform with
// call sites that don't need a parent-kind hint, since a Loop's own
// repetitions are always flattened as a Sequence internally regardless
// of where the Loop sits.
func expandLoopBody(_ []core.Node, lists [][]core.Node, loop core.Node, loopCap, ceiling int) ([][]core.Node, error) {
	body := loop.Children[0]
	bodyAlts, err := expand(body, loopCap, ceiling)
	if err != nil {
		return nil, err
	}

	max := loop.Max
	if max == core.Unbounded || max > loopCap {
		max = loopCap
	}

	var union [][]core.Node
	for count := loop.Min; count <= max; count++ {
		cur := cloneLists(lists)
		for i := 0; i < count; i++ {
			cur, err = crossAppendAlts(cur, bodyAlts, core.KindSequence, ceiling)
			if err != nil {
				return nil, err
			}
		}
		union = append(union, cur...)
		if len(union) > ceiling {
			return nil, &core.InvalidQuery{Reason: "expansion ceiling exceeded"}
		}
	}
	return union, nil
}

func crossAppendAlts(lists [][]core.Node, alts []core.Node, parentKind core.Kind, ceiling int) ([][]core.Node, error) {
	result := make([][]core.Node, 0, len(lists)*len(alts))
	for _, l := range lists {
		for _, a := range alts {
			combined := append(append([]core.Node(nil), l...), flattenItem(a, parentKind)...)
			result = append(result, combined)
			if len(result) > ceiling {
				return nil, &core.InvalidQuery{Reason: "expansion ceiling exceeded"}
			}
		}
	}
	return result, nil
}

func flattenItem(item core.Node, parentKind core.Kind) []core.Node {
	if item.Kind == parentKind {
		return item.Children
	}
	return []core.Node{item}
}

func cloneLists(lists [][]core.Node) [][]core.Node {
	out := make([][]core.Node, len(lists))
	for i, l := range lists {
		out[i] = append([]core.Node(nil), l...)
	}
	return out
}
