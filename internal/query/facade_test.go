package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/treematch/internal/core"
)

func TestBuildQueryAllEnginesAgree(t *testing.T) {
	q := core.Seq(core.Start(), core.Leaf("a"), core.Opt(core.Leaf("b")), core.Leaf("c"), core.End())

	kinds := []EngineKind{DFS, Direct, VM, VMLazy}
	variants := []core.Node{
		core.Seq(core.Leaf("a"), core.Leaf("c")),
		core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("c")),
		core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("b"), core.Leaf("c")),
	}

	for _, v := range variants {
		var want bool
		for i, k := range kinds {
			mq, err := BuildQuery(q, k)
			require.NoError(t, err)
			got := mq.Match(v)
			if i == 0 {
				want = got
			} else {
				assert.Equal(t, want, got, "engine %s disagreed for variant %+v", k, v)
			}
		}
	}
}

func TestBuildQueryRejectsInvalidQuery(t *testing.T) {
	bad := core.Choice(core.Leaf("a"), core.Seq(core.Leaf("b")))
	_, err := BuildQuery(bad, DFS)
	require.Error(t, err)
	var invalid *core.InvalidQuery
	assert.ErrorAs(t, err, &invalid)
}

func TestBuildQueryUnknownEngineKind(t *testing.T) {
	_, err := BuildQuery(core.Leaf("a"), EngineKind(99))
	require.Error(t, err)
}

func TestBuildQueryExpansionCeilingOnlyAffectsDFS(t *testing.T) {
	q := core.Seq(
		core.LoopN(core.Leaf("a"), 0, 10),
		core.LoopN(core.Leaf("b"), 0, 10),
		core.LoopN(core.Leaf("c"), 0, 10),
	)

	_, err := BuildQuery(q, DFS, WithExpansionCeiling(50))
	require.Error(t, err)

	_, err = BuildQuery(q, Direct, WithExpansionCeiling(50))
	require.NoError(t, err)

	_, err = BuildQuery(q, VM, WithExpansionCeiling(50))
	require.NoError(t, err)
}

func TestMatchableQueryKindReportsConstructedEngine(t *testing.T) {
	mq, err := BuildQuery(core.Leaf("a"), VMLazy)
	require.NoError(t, err)
	assert.Equal(t, VMLazy, mq.Kind())
	assert.Equal(t, "vm-lazy", mq.Kind().String())
}

func TestMatchableQueryIsReentrant(t *testing.T) {
	mq, err := BuildQuery(core.Par(core.Leaf("a"), core.Leaf("b")), VM)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.True(t, mq.Match(core.Par(core.Leaf("b"), core.Leaf("a"))))
		assert.False(t, mq.Match(core.Par(core.Leaf("a"))))
	}
}
