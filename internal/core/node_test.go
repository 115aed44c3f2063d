package core

import "testing"

import "github.com/stretchr/testify/assert"

func TestKindString(t *testing.T) {
	assert.Equal(t, "leaf", KindLeaf.String())
	assert.Equal(t, "loop", KindLoop.String())
	assert.Equal(t, "unknown", Kind(999).String())
}

func TestConstructors(t *testing.T) {
	l := Leaf("A")
	assert.Equal(t, KindLeaf, l.Kind)
	assert.Equal(t, "A", l.Label)
	assert.True(t, l.IsAtom())

	s := Seq(Leaf("A"), Leaf("B"))
	assert.Equal(t, KindSequence, s.Kind)
	assert.Equal(t, 2, s.ListLength())
	assert.False(t, s.IsAtom())

	p := Par(Leaf("A"), Leaf("B"))
	assert.Equal(t, KindParallel, p.Kind)

	f := Fall(Leaf("A"), Leaf("B"))
	assert.Equal(t, KindFallthrough, f.Kind)

	assert.True(t, Wild().IsAtom())
	assert.True(t, Any().IsAtom())
	assert.True(t, Start().IsAtom())
	assert.True(t, End().IsAtom())

	c := Choice(Leaf("A"), Leaf("B"))
	assert.Equal(t, KindChoice, c.Kind)

	o := Opt(Leaf("A"))
	assert.Equal(t, KindOptional, o.Kind)
	assert.Len(t, o.Children, 1)

	loop := LoopN(Leaf("A"), 1, Unbounded)
	assert.Equal(t, KindLoop, loop.Kind)
	assert.Equal(t, 1, loop.Min)
	assert.Equal(t, Unbounded, loop.Max)
}
