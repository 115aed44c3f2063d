// Package query is the facade spec.md calls "Query Facade": the single
// entry point that canonicalizes a query tree, selects and constructs one
// of the three matching engines, and hands back a re-entrant
// MatchableQuery whose only operation is Match(variant).
package query

import (
	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/engine"
)

// EngineKind selects which of the three interchangeable engines
// BuildQuery constructs. All four values must agree on every verdict for
// a given canonicalized query and variant.
type EngineKind int

const (
	// DFS expands the query into concrete alternative trees up front and
	// matches with a windowed backtracking walk (Engine A).
	DFS EngineKind = iota
	// Direct walks the query directly with no pre-expansion (Engine B).
	Direct
	// VM compiles the query to bytecode and runs it with eager Parallel
	// checking (Engine C, eager).
	VM
	// VMLazy is Engine C with deferred Parallel checking.
	VMLazy
)

func (k EngineKind) String() string {
	switch k {
	case DFS:
		return "dfs"
	case Direct:
		return "direct"
	case VM:
		return "vm"
	case VMLazy:
		return "vm-lazy"
	default:
		return "unknown"
	}
}

// options holds the construction-time tunables a caller may override via
// functional options. Zero values mean "use the package defaults."
type options struct {
	loopCap          int
	expansionCeiling int
}

// Option configures a BuildQuery call.
type Option func(*options)

// WithLoopCap overrides core.DefaultLoopCap for this query's construction.
func WithLoopCap(n int) Option {
	return func(o *options) { o.loopCap = n }
}

// WithExpansionCeiling overrides engine.DefaultExpansionCeiling for this
// query's construction. Only consulted by the DFS engine, which is the
// only one that materializes alternatives up front.
func WithExpansionCeiling(n int) Option {
	return func(o *options) { o.expansionCeiling = n }
}

// MatchableQuery is the sole state-holding object the facade returns. Its
// only operation is Match; construction already paid whatever cost the
// selected engine requires (expansion, compilation, or neither).
type MatchableQuery struct {
	match func(core.Node) bool
	kind  EngineKind
}

// Match reports whether variant satisfies the query this MatchableQuery
// was built from. It never errors: an ill-typed variant (e.g. a Sequence
// where the query expects a Parallel) simply yields false. Match is
// re-entrant and holds no per-call state, so the same MatchableQuery may
// be queried concurrently against many variants.
func (q *MatchableQuery) Match(variant core.Node) bool {
	return q.match(variant)
}

// Kind reports which engine this query was built with.
func (q *MatchableQuery) Kind() EngineKind {
	return q.kind
}

// BuildQuery canonicalizes root and constructs the engine named by kind.
// It is the only place construction can fail: a structurally invalid
// query surfaces as *core.InvalidQuery or *core.UnsupportedNode.
func BuildQuery(root core.Node, kind EngineKind, opts ...Option) (*MatchableQuery, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	canon, err := core.Canonicalize(root, o.loopCap)
	if err != nil {
		return nil, err
	}

	switch kind {
	case DFS:
		e, err := engine.NewDFSEngine(canon, o.loopCap, o.expansionCeiling)
		if err != nil {
			return nil, err
		}
		return &MatchableQuery{match: e.Match, kind: kind}, nil

	case Direct:
		e := engine.NewDirectEngine(canon)
		return &MatchableQuery{match: e.Match, kind: kind}, nil

	case VM:
		e, err := engine.NewVMEngine(canon, false)
		if err != nil {
			return nil, err
		}
		return &MatchableQuery{match: e.Match, kind: kind}, nil

	case VMLazy:
		e, err := engine.NewVMEngine(canon, true)
		if err != nil {
			return nil, err
		}
		return &MatchableQuery{match: e.Match, kind: kind}, nil

	default:
		return nil, &core.InvalidQuery{Reason: "unknown engine kind"}
	}
}
