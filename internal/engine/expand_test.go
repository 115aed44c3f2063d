package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/treematch/internal/core"
)

func TestExpandLeafIsAtomic(t *testing.T) {
	alts, err := Expand(core.Leaf("a"), 0, 0)
	require.NoError(t, err)
	require.Len(t, alts, 1)
	assert.Equal(t, core.Leaf("a"), alts[0])
}

func TestExpandOptionalYieldsTwoAlternatives(t *testing.T) {
	q, err := core.Canonicalize(core.Seq(core.Opt(core.Leaf("a")), core.Leaf("b")), 0)
	require.NoError(t, err)

	alts, err := Expand(q, core.DefaultLoopCap, 0)
	require.NoError(t, err)

	var found, skipped bool
	for _, alt := range alts {
		switch len(alt.Children) {
		case 2:
			if core.Equal(alt.Children[0], core.Leaf("a")) && core.Equal(alt.Children[1], core.Leaf("b")) {
				found = true
			}
		case 1:
			if core.Equal(alt.Children[0], core.Leaf("b")) {
				skipped = true
			}
		}
	}
	assert.True(t, found, "expected an alternative including the optional leaf")
	assert.True(t, skipped, "expected an alternative excluding the optional leaf")
}

func TestExpandLoopMinZeroIncludesEmptyRepetition(t *testing.T) {
	q, err := core.Canonicalize(core.LoopN(core.Leaf("a"), 0, 1), 0)
	require.NoError(t, err)

	alts, err := Expand(q, core.DefaultLoopCap, 0)
	require.NoError(t, err)

	var zero, one bool
	for _, alt := range alts {
		switch len(alt.Children) {
		case 0:
			zero = true
		case 1:
			one = true
		}
	}
	assert.True(t, zero, "Loop(min=0) must include the zero-repetition alternative")
	assert.True(t, one, "Loop(max=1) must include the single-repetition alternative")
}

func TestExpandLoopExactCount(t *testing.T) {
	q, err := core.Canonicalize(core.LoopN(core.Leaf("a"), 2, 2), 0)
	require.NoError(t, err)

	alts, err := Expand(q, core.DefaultLoopCap, 0)
	require.NoError(t, err)
	require.Len(t, alts, 1)
	assert.Len(t, alts[0].Children, 2)
}

func TestExpandCeilingExceeded(t *testing.T) {
	q, err := core.Canonicalize(core.Seq(
		core.LoopN(core.Leaf("a"), 0, 10),
		core.LoopN(core.Leaf("b"), 0, 10),
		core.LoopN(core.Leaf("c"), 0, 10),
	), 0)
	require.NoError(t, err)

	_, err = Expand(q, core.DefaultLoopCap, 50)
	require.Error(t, err)
	var invalid *core.InvalidQuery
	assert.ErrorAs(t, err, &invalid)
}

func TestExpandParallelCrossProduct(t *testing.T) {
	q, err := core.Canonicalize(core.Par(core.Opt(core.Leaf("a")), core.Leaf("b")), 0)
	require.NoError(t, err)

	alts, err := Expand(q, core.DefaultLoopCap, 0)
	require.NoError(t, err)
	assert.Len(t, alts, 2)
}
