package core

import "fmt"

// InvalidQuery reports a structural invariant violated by a query tree,
// detected at facade construction time (spec: matching itself never
// errors — shape mismatches at match time simply yield false).
type InvalidQuery struct {
	Reason string
}

func (e *InvalidQuery) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Reason)
}

// UnsupportedNode reports a node kind reaching a compiler/expander stage
// that does not know how to handle it. This indicates a programming error
// (an unhandled Kind), not a malformed query.
type UnsupportedNode struct {
	Kind Kind
}

func (e *UnsupportedNode) Error() string {
	return fmt.Sprintf("unsupported node kind: %s", e.Kind)
}
