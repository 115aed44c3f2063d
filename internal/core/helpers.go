package core

import "sort"

// ListLength returns the number of direct children of a compound node.
// Leaf-like nodes (Leaf, Wildcard, Anything, Start, End) have no children
// and report 0.
func (n Node) ListLength() int {
	return len(n.Children)
}

// IsAtom reports whether n is one of the leaf-level query atoms that carry
// no nested structure of their own: Leaf, Wildcard, Anything, Start, End.
// Choice and Fallthrough are NOT atoms even though their children are
// leaves only — they still have a child list to inspect.
func (n Node) IsAtom() bool {
	switch n.Kind {
	case KindLeaf, KindWildcard, KindAnything, KindStart, KindEnd:
		return true
	default:
		return false
	}
}

// Equal reports structural equality between two nodes, treating Parallel
// and Fallthrough children as unordered multisets and Sequence/Choice/Loop/
// Optional children as ordered. Label and loop bounds are compared
// directly. It is used by tests, not by the matching path; the matcher
// compares Fallthrough groups with its own bag check.
func Equal(a, b Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindLeaf:
		return a.Label == b.Label
	case KindWildcard, KindAnything, KindStart, KindEnd:
		return true
	case KindLoop:
		if a.Min != b.Min || a.Max != b.Max {
			return false
		}
		return equalOrdered(a.Children, b.Children)
	case KindParallel, KindFallthrough:
		return equalUnordered(a.Children, b.Children)
	default:
		return equalOrdered(a.Children, b.Children)
	}
}

func equalOrdered(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalUnordered(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if Equal(x, y) {
				used[j] = true
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

// sortKey produces a deterministic ordering key for a node so that
// StructuralSort can give Parallel/Fallthrough groups a canonical child
// order for stable debug output. It is not used by any matching decision
// — matching never depends on the incidental order of an unordered group.
func sortKey(n Node) string {
	switch n.Kind {
	case KindLeaf:
		return "leaf:" + n.Label
	default:
		return n.Kind.String()
	}
}

// StructuralSort returns a copy of n with Parallel and Fallthrough child
// lists placed in a canonical order (recursively). It is a debug/display
// convenience — see SerializeGroup — and plays no role in match().
func StructuralSort(n Node) Node {
	out := n
	if len(n.Children) > 0 {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = StructuralSort(c)
		}
		if n.Kind == KindParallel || n.Kind == KindFallthrough {
			sort.SliceStable(out.Children, func(i, j int) bool {
				return sortKey(out.Children[i]) < sortKey(out.Children[j])
			})
		}
	}
	return out
}
