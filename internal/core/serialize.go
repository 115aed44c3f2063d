package core

import (
	"fmt"
	"strconv"
	"strings"
)

// SerializeGroup renders a tree as a compact, deterministic text form for
// debugging and test assertions. It is not part of the matching contract —
// two structurally-equal trees with different incidental child order
// produce the same string only after StructuralSort, which Explain applies
// before diffing.
func SerializeGroup(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindLeaf:
		b.WriteString(n.Label)
	case KindWildcard:
		b.WriteString("*")
	case KindAnything:
		b.WriteString("...")
	case KindStart:
		b.WriteString("^")
	case KindEnd:
		b.WriteString("$")
	case KindOptional:
		b.WriteString("optional(")
		writeNode(b, n.Children[0])
		b.WriteString(")")
	case KindLoop:
		b.WriteString("loop[")
		b.WriteString(strconv.Itoa(n.Min))
		b.WriteString(",")
		if n.Max == Unbounded {
			b.WriteString("inf")
		} else {
			b.WriteString(strconv.Itoa(n.Max))
		}
		b.WriteString("](")
		writeNode(b, n.Children[0])
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "%s(", n.Kind.String())
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, c)
		}
		b.WriteString(")")
	}
}
