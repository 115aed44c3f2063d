// Package core contains the pure, language-agnostic tree data model shared
// by queries and variants. It has no dependency on any matching engine.
package core

// Kind tags the closed set of node shapes a Node can take. Queries use the
// full set; variants are restricted to Leaf, Sequence and Parallel.
type Kind int

const (
	KindLeaf Kind = iota
	KindSequence
	KindParallel
	KindFallthrough
	KindWildcard
	KindAnything
	KindChoice
	KindOptional
	KindLoop
	KindStart
	KindEnd
)

var kindNames = [...]string{
	KindLeaf:        "leaf",
	KindSequence:    "sequence",
	KindParallel:    "parallel",
	KindFallthrough: "fallthrough",
	KindWildcard:    "wildcard",
	KindAnything:    "anything",
	KindChoice:      "choice",
	KindOptional:    "optional",
	KindLoop:        "loop",
	KindStart:       "start",
	KindEnd:         "end",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Unbounded marks a Loop's Max as having no upper bound before the
// facade's loop-unroll ceiling is applied.
const Unbounded = -1

// Node is the single sum type for both query and variant trees. Which
// fields are meaningful depends on Kind:
//
//	Leaf        Label
//	Sequence    Children (ordered)
//	Parallel    Children (unordered)
//	Fallthrough Children (unordered, leaves only)
//	Choice      Children (leaves only)
//	Optional    Children[0]
//	Loop        Children[0], Min, Max
//	Wildcard, Anything, Start, End — no payload
type Node struct {
	Kind     Kind
	Label    string
	Children []Node
	Min      int
	Max      int
}

// Leaf constructs a leaf node carrying an opaque activity label.
func Leaf(label string) Node {
	return Node{Kind: KindLeaf, Label: label}
}

// Seq constructs an ordered sequence of children.
func Seq(children ...Node) Node {
	return Node{Kind: KindSequence, Children: children}
}

// Par constructs an unordered parallel group of children.
func Par(children ...Node) Node {
	return Node{Kind: KindParallel, Children: children}
}

// Fall constructs a fallthrough group. Per spec its children must be
// leaves; construction itself does not validate this (validation happens
// at facade construction, alongside every other structural invariant).
func Fall(children ...Node) Node {
	return Node{Kind: KindFallthrough, Children: children}
}

// Wild constructs a wildcard that matches exactly one leaf.
func Wild() Node {
	return Node{Kind: KindWildcard}
}

// Any constructs an anything wildcard that matches one or more consecutive
// siblings.
func Any() Node {
	return Node{Kind: KindAnything}
}

// Choice constructs a choice over leaf alternatives.
func Choice(leaves ...Node) Node {
	return Node{Kind: KindChoice, Children: leaves}
}

// Opt constructs an optional wrapping a single child.
func Opt(child Node) Node {
	return Node{Kind: KindOptional, Children: []Node{child}}
}

// LoopN constructs a loop over a single child with inclusive bounds.
// max = Unbounded denotes no upper bound.
func LoopN(child Node, min, max int) Node {
	return Node{Kind: KindLoop, Children: []Node{child}, Min: min, Max: max}
}

// Start constructs the start-of-sequence anchor.
func Start() Node {
	return Node{Kind: KindStart}
}

// End constructs the end-of-sequence anchor.
func End() Node {
	return Node{Kind: KindEnd}
}
