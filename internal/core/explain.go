package core

import "github.com/termfx/treematch/internal/util"

// Explain renders a unified diff between a query and a variant's
// pretty-printed, structurally-sorted form. It exists purely to help a
// caller see why a match failed (spec §6: "a debug pretty-printer... is
// not part of the semantic contract") and never influences match's
// boolean verdict.
func Explain(query, variant Node) string {
	q := SerializeGroup(StructuralSort(query))
	v := SerializeGroup(StructuralSort(variant))
	return util.UnifiedDiff("query", "variant", q, v, 2, false)
}
