package core

// DefaultLoopCap is the default ceiling on a Loop's effective Max, applied
// at facade construction to bound unrolling (spec §3: "exceeding the
// ceiling causes no-match rather than unbounded expansion").
const DefaultLoopCap = 200

// Canonicalize validates a query tree's structural invariants and returns
// a normalized copy:
//
//   - Sequence-in-Sequence and Parallel-in-Parallel nesting is flattened
//     (spec §9, "same-type nesting flattening").
//   - Every Sequence branch directly inside a Parallel is wrapped with
//     Start/End anchors, unless it already carries one (spec §4.3,
//     "before expansion, each Sequence child is wrapped with explicit
//     Start/End markers").
//   - A Loop's effective Max is capped at loopCap (Unbounded or above the
//     cap both resolve to loopCap).
//
// The returned tree is independent of the input; Canonicalize never
// mutates its argument. All three sequential engines run against
// Canonicalize's output, and flatten variants with FlattenVariant, so that
// "same-type nesting" and the Parallel-branch anchoring rule are
// interpreted identically everywhere (spec §9).
func Canonicalize(n Node, loopCap int) (Node, error) {
	if loopCap <= 0 {
		loopCap = DefaultLoopCap
	}
	return canon(n, loopCap)
}

func canon(n Node, loopCap int) (Node, error) {
	switch n.Kind {
	case KindLeaf, KindWildcard, KindAnything, KindStart, KindEnd:
		return n, nil

	case KindChoice:
		for _, c := range n.Children {
			if c.Kind != KindLeaf {
				return Node{}, &InvalidQuery{Reason: "choice children must be leaves"}
			}
		}
		return Node{Kind: KindChoice, Children: append([]Node(nil), n.Children...)}, nil

	case KindFallthrough:
		for _, c := range n.Children {
			if c.Kind != KindLeaf {
				return Node{}, &InvalidQuery{Reason: "fallthrough children must be leaves"}
			}
		}
		return Node{Kind: KindFallthrough, Children: append([]Node(nil), n.Children...)}, nil

	case KindOptional:
		if len(n.Children) != 1 {
			return Node{}, &InvalidQuery{Reason: "optional must have exactly one child"}
		}
		child, err := canon(n.Children[0], loopCap)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindOptional, Children: []Node{child}}, nil

	case KindLoop:
		if len(n.Children) != 1 {
			return Node{}, &InvalidQuery{Reason: "loop must have exactly one child"}
		}
		if n.Min < 0 {
			return Node{}, &InvalidQuery{Reason: "loop min must be >= 0"}
		}
		if n.Max != Unbounded && n.Max < n.Min {
			return Node{}, &InvalidQuery{Reason: "loop max must be >= min"}
		}
		max := n.Max
		if max == Unbounded || max > loopCap {
			max = loopCap
		}
		if max < n.Min {
			max = n.Min
		}
		child, err := canon(n.Children[0], loopCap)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindLoop, Children: []Node{child}, Min: n.Min, Max: max}, nil

	case KindSequence:
		return canonSequence(n, loopCap)

	case KindParallel:
		return canonParallel(n, loopCap)

	default:
		return Node{}, &UnsupportedNode{Kind: n.Kind}
	}
}

func canonSequence(n Node, loopCap int) (Node, error) {
	flat := make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		cc, err := canon(c, loopCap)
		if err != nil {
			return Node{}, err
		}
		if cc.Kind == KindSequence {
			flat = append(flat, cc.Children...)
		} else {
			flat = append(flat, cc)
		}
	}
	for i, c := range flat {
		if c.Kind == KindStart && i != 0 {
			return Node{}, &InvalidQuery{Reason: "start anchor must be first in its sequence"}
		}
		if c.Kind == KindEnd && i != len(flat)-1 {
			return Node{}, &InvalidQuery{Reason: "end anchor must be last in its sequence"}
		}
	}
	return Node{Kind: KindSequence, Children: flat}, nil
}

func canonParallel(n Node, loopCap int) (Node, error) {
	flat := make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		cc, err := canon(c, loopCap)
		if err != nil {
			return Node{}, err
		}
		switch cc.Kind {
		case KindParallel:
			flat = append(flat, cc.Children...)
		case KindSequence:
			flat = append(flat, anchorSequence(cc))
		default:
			flat = append(flat, cc)
		}
	}
	return Node{Kind: KindParallel, Children: flat}, nil
}

// anchorSequence wraps a Sequence that sits directly under a Parallel with
// Start/End anchors, unless the caller already supplied one, so that the
// branch's position within itself is anchored even though the branch is
// unordered relative to its siblings.
func anchorSequence(seq Node) Node {
	children := seq.Children
	hasStart := len(children) > 0 && children[0].Kind == KindStart
	hasEnd := len(children) > 0 && children[len(children)-1].Kind == KindEnd

	out := make([]Node, 0, len(children)+2)
	if !hasStart {
		out = append(out, Start())
	}
	out = append(out, children...)
	if !hasEnd {
		out = append(out, End())
	}
	return Node{Kind: KindSequence, Children: out}
}

// FlattenVariant flattens Sequence-in-Sequence and Parallel-in-Parallel
// nesting in a variant tree, mirroring the same-type flattening applied to
// queries by Canonicalize, without requiring a variant to already be in
// canonical form. It never mutates its argument.
func FlattenVariant(v Node) Node {
	switch v.Kind {
	case KindSequence:
		flat := make([]Node, 0, len(v.Children))
		for _, c := range v.Children {
			cc := FlattenVariant(c)
			if cc.Kind == KindSequence {
				flat = append(flat, cc.Children...)
			} else {
				flat = append(flat, cc)
			}
		}
		return Node{Kind: KindSequence, Children: flat}
	case KindParallel:
		flat := make([]Node, 0, len(v.Children))
		for _, c := range v.Children {
			cc := FlattenVariant(c)
			if cc.Kind == KindParallel {
				flat = append(flat, cc.Children...)
			} else {
				flat = append(flat, cc)
			}
		}
		return Node{Kind: KindParallel, Children: flat}
	default:
		return v
	}
}
