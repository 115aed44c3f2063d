// Package matcher implements the single-node comparison used by every
// sequential engine: given one query node and one variant node (never
// compound structure below them), decide whether the variant node
// satisfies the query node (spec §4.1).
package matcher

import "github.com/termfx/treematch/internal/core"

// NodeMatch compares a query node against a variant node. Variants only
// ever present as core.KindLeaf, core.KindSequence or core.KindParallel;
// query nodes may be any kind. The engines call NodeMatch only on the
// "atomic" comparisons (variant leaves, or a query/variant pair whose
// compound members have already been matched structurally elsewhere) —
// NodeMatch itself never recurses into Sequence/Parallel children; that
// recursion is the engines' and the parallel solver's job.
func NodeMatch(query, variant core.Node) bool {
	if variant.Kind == core.KindLeaf {
		switch query.Kind {
		case core.KindLeaf:
			return variant.Label == query.Label
		case core.KindChoice:
			for _, alt := range query.Children {
				if alt.Label == variant.Label {
					return true
				}
			}
			return false
		case core.KindWildcard:
			return true
		default:
			return false
		}
	}

	if query.Kind == core.KindFallthrough && variant.Kind == core.KindFallthrough {
		return matchFallthrough(query, variant)
	}

	return query.Kind == variant.Kind
}

// matchFallthrough implements the original's match_no_order: a
// Fallthrough query and a Fallthrough variant match when they are equal
// as multisets of leaf labels (spec's Open Question: "Fallthrough
// equality is leaves-only bag equality").
func matchFallthrough(query, variant core.Node) bool {
	if len(query.Children) != len(variant.Children) {
		return false
	}
	used := make([]bool, len(query.Children))
	for _, vLeaf := range variant.Children {
		found := false
		for i, qLeaf := range query.Children {
			if used[i] {
				continue
			}
			if qLeaf.Label == vLeaf.Label {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
