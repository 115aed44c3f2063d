package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/treematch/internal/core"
)

// buildEngines canonicalizes query once and constructs all three engines
// (plus the VM's eager and lazy variants) against it, so agreement tests can
// assert every engine reaches the same verdict for a given variant.
func buildEngines(t *testing.T, query core.Node) map[string]func(core.Node) bool {
	t.Helper()

	q, err := core.Canonicalize(query, 0)
	require.NoError(t, err)

	dfs, err := NewDFSEngine(q, core.DefaultLoopCap, 0)
	require.NoError(t, err)

	direct := NewDirectEngine(q)

	vmEager, err := NewVMEngine(q, false)
	require.NoError(t, err)

	vmLazy, err := NewVMEngine(q, true)
	require.NoError(t, err)

	return map[string]func(core.Node) bool{
		"dfs":      dfs.Match,
		"direct":   direct.Match,
		"vm-eager": vmEager.Match,
		"vm-lazy":  vmLazy.Match,
	}
}

func assertAllAgree(t *testing.T, engines map[string]func(core.Node) bool, variant core.Node, want bool) {
	t.Helper()
	for name, match := range engines {
		got := match(variant)
		if got != want {
			t.Errorf("engine %s: got %v, want %v for variant %+v", name, got, want, variant)
		}
	}
}
