// Package cli wires a built query.MatchableQuery and an optional
// verdictdb.Cache into the two operations cmd/treematch exposes: a
// single query-vs-variant check, and a glob-expanded batch run.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/termfx/treematch/internal/core"
	"github.com/termfx/treematch/internal/query"
	"github.com/termfx/treematch/internal/util"
	"github.com/termfx/treematch/internal/verdictdb"
)

// Runner drives a MatchableQuery against variant files loaded from disk.
// Cache is optional: when nil, every call runs the engine directly.
type Runner struct {
	Query     *query.MatchableQuery
	QueryNode core.Node
	Cache     *verdictdb.Cache
	Debug     bool
}

// BatchResult is one file's verdict within a RunBatch call.
type BatchResult struct {
	Path    string
	Verdict bool
	Err     error
}

// LoadNode reads and decodes a single Node tree from a JSON file.
func LoadNode(path string) (core.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Node{}, fmt.Errorf("cli: failed to read %s: %w", path, err)
	}
	var n core.Node
	if err := json.Unmarshal(data, &n); err != nil {
		return core.Node{}, fmt.Errorf("cli: failed to decode %s: %w", path, err)
	}
	return n, nil
}

// RunOne loads the variant at variantPath and matches it against r.Query,
// consulting and populating r.Cache when present.
func (r *Runner) RunOne(queryHash, variantPath string) (bool, error) {
	variant, err := LoadNode(variantPath)
	if err != nil {
		return false, err
	}

	variantHash := util.SHA1FileHex(variantPath)
	if variantHash == "" {
		return false, fmt.Errorf("cli: failed to hash %s", variantPath)
	}

	if r.Cache != nil {
		if verdict, ok, err := r.Cache.Lookup(queryHash, variantHash); err == nil && ok {
			return verdict, nil
		}
	}

	verdict := r.Query.Match(variant)

	if r.Cache != nil {
		_ = r.Cache.Store(queryHash, variantHash, verdict)
	}

	if r.Debug && !verdict {
		fmt.Fprintln(os.Stderr, "debug: no match, see structural diff below")
		fmt.Fprintln(os.Stderr, core.Explain(r.QueryNode, variant))
	}

	return verdict, nil
}

// RunBatch expands globPattern (doublestar syntax, e.g. "testdata/**/*.json")
// and runs RunOne against every matching file.
func (r *Runner) RunBatch(queryHash, globPattern string) ([]BatchResult, error) {
	paths, err := doublestar.FilepathGlob(globPattern)
	if err != nil {
		return nil, fmt.Errorf("cli: invalid glob %q: %w", globPattern, err)
	}

	results := make([]BatchResult, 0, len(paths))
	for _, p := range paths {
		verdict, err := r.RunOne(queryHash, p)
		results = append(results, BatchResult{Path: p, Verdict: verdict, Err: err})
	}
	return results, nil
}
