package engine

import (
	"testing"

	"github.com/termfx/treematch/internal/core"
)

func TestAgreementExactSequenceMatch(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Leaf("a"), core.Leaf("b")))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("c")), false)
}

func TestAgreementUnanchoredSequenceIsSubstring(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Leaf("a"), core.Leaf("b")))
	assertAllAgree(t, engines, core.Seq(core.Leaf("x"), core.Leaf("a"), core.Leaf("b"), core.Leaf("y")), true)
}

func TestAgreementAnchoredSequenceRequiresFullMatch(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Start(), core.Leaf("a"), core.Leaf("b"), core.End()))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("x"), core.Leaf("a"), core.Leaf("b")), false)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("y")), false)
}

func TestAgreementWildcardMatchesExactlyOneLeaf(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Leaf("a"), core.Wild(), core.Leaf("c")))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("c")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("c")), false)
}

func TestAgreementAnythingMatchesOneOrMore(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Start(), core.Leaf("a"), core.Any(), core.Leaf("z"), core.End()))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("z")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("c"), core.Leaf("z")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("z")), false)
}

func TestAgreementChoiceMatchesAnyAlternative(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Choice(core.Leaf("a"), core.Leaf("b"))))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("b")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("c")), false)
}

func TestAgreementOptionalIncludeOrExclude(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Start(), core.Opt(core.Leaf("a")), core.Leaf("b"), core.End()))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("b")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("c"), core.Leaf("b")), false)
}

func TestAgreementLoopBounds(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Start(), core.LoopN(core.Leaf("a"), 1, 3), core.End()))
	assertAllAgree(t, engines, core.Seq(), false)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("a"), core.Leaf("a")), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("a"), core.Leaf("a"), core.Leaf("a")), false)
}

func TestAgreementLoopMinZeroMaxOneEquivalentToOptional(t *testing.T) {
	loopEngines := buildEngines(t, core.Seq(core.Start(), core.LoopN(core.Leaf("a"), 0, 1), core.Leaf("b"), core.End()))
	optEngines := buildEngines(t, core.Seq(core.Start(), core.Opt(core.Leaf("a")), core.Leaf("b"), core.End()))

	variants := []core.Node{
		core.Seq(core.Leaf("b")),
		core.Seq(core.Leaf("a"), core.Leaf("b")),
		core.Seq(core.Leaf("a"), core.Leaf("a"), core.Leaf("b")),
	}
	for _, v := range variants {
		want := optEngines["dfs"](v)
		assertAllAgree(t, loopEngines, v, want)
	}
}

func TestAgreementLoopExactCountEquivalentToFixedSequence(t *testing.T) {
	loopEngines := buildEngines(t, core.Seq(core.Start(), core.LoopN(core.Leaf("a"), 2, 2), core.End()))
	fixedEngines := buildEngines(t, core.Seq(core.Start(), core.Leaf("a"), core.Leaf("a"), core.End()))

	for _, v := range []core.Node{
		core.Seq(core.Leaf("a")),
		core.Seq(core.Leaf("a"), core.Leaf("a")),
		core.Seq(core.Leaf("a"), core.Leaf("a"), core.Leaf("a")),
	} {
		want := fixedEngines["dfs"](v)
		assertAllAgree(t, loopEngines, v, want)
	}
}

func TestAgreementFallthroughIsBagEquality(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Fall(core.Leaf("a"), core.Leaf("b"))))
	assertAllAgree(t, engines, core.Seq(core.Fall(core.Leaf("b"), core.Leaf("a"))), true)
	assertAllAgree(t, engines, core.Seq(core.Fall(core.Leaf("a"), core.Leaf("a"))), false)
}

func TestAgreementParallelIsBijective(t *testing.T) {
	engines := buildEngines(t, core.Par(core.Leaf("a"), core.Leaf("b")))
	assertAllAgree(t, engines, core.Par(core.Leaf("b"), core.Leaf("a")), true)
	assertAllAgree(t, engines, core.Par(core.Leaf("a"), core.Leaf("b"), core.Leaf("c")), false)
	assertAllAgree(t, engines, core.Par(core.Leaf("a")), false)
}

func TestAgreementParallelWithSequenceBranches(t *testing.T) {
	engines := buildEngines(t, core.Par(
		core.Seq(core.Leaf("a"), core.Leaf("b")),
		core.Leaf("c"),
	))
	assertAllAgree(t, engines, core.Par(
		core.Seq(core.Leaf("a"), core.Leaf("b")),
		core.Leaf("c"),
	), true)
	assertAllAgree(t, engines, core.Par(
		core.Seq(core.Leaf("b"), core.Leaf("a")),
		core.Leaf("c"),
	), false)
}

func TestAgreementNestedParallelInsideSequence(t *testing.T) {
	engines := buildEngines(t, core.Seq(
		core.Start(),
		core.Leaf("a"),
		core.Par(core.Leaf("b"), core.Leaf("c")),
		core.Leaf("d"),
		core.End(),
	))
	assertAllAgree(t, engines, core.Seq(
		core.Leaf("a"),
		core.Par(core.Leaf("c"), core.Leaf("b")),
		core.Leaf("d"),
	), true)
	assertAllAgree(t, engines, core.Seq(
		core.Leaf("a"),
		core.Par(core.Leaf("b")),
		core.Leaf("d"),
	), false)
}

func TestAgreementSequenceOrderSensitive(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Start(), core.Leaf("a"), core.Leaf("b"), core.End()))
	assertAllAgree(t, engines, core.Seq(core.Leaf("b"), core.Leaf("a")), false)
}

func TestAgreementAnythingCrossesParallel(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Leaf("a"), core.Any(), core.Leaf("b")))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("x"), core.Leaf("y"), core.Leaf("z"), core.Leaf("b")), true)
	assertAllAgree(t, engines, core.Seq(
		core.Leaf("a"),
		core.Par(core.Leaf("x"), core.Leaf("y")),
		core.Leaf("b"),
	), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b")), false)
}

// TestAgreementAnythingBacktracks exercises a query with two Anythings in
// one sequence, where satisfying the second forces the engine to revisit
// how much the first one consumed.
func TestAgreementAnythingBacktracks(t *testing.T) {
	engines := buildEngines(t, core.Seq(core.Leaf("a"), core.Any(), core.Leaf("b"), core.Any(), core.Leaf("c")))
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("x"), core.Leaf("b"), core.Leaf("y"), core.Leaf("c")), true)
	assertAllAgree(t, engines, core.Seq(
		core.Leaf("a"),
		core.Leaf("x"), core.Leaf("x"),
		core.Leaf("b"), core.Leaf("b"), core.Leaf("b"),
		core.Leaf("y"), core.Leaf("y"),
		core.Leaf("c"),
	), true)
	assertAllAgree(t, engines, core.Seq(core.Leaf("a"), core.Leaf("b"), core.Leaf("c")), false)
}

func TestAgreementParallelBranchOrderWithNestedSequenceStaysOrdered(t *testing.T) {
	engines := buildEngines(t, core.Seq(
		core.Leaf("a"),
		core.Par(core.Leaf("b"), core.Seq(core.Leaf("c"), core.Leaf("d"))),
		core.Leaf("e"),
	))
	assertAllAgree(t, engines, core.Seq(
		core.Leaf("a"),
		core.Par(core.Seq(core.Leaf("c"), core.Leaf("d")), core.Leaf("b")),
		core.Leaf("e"),
	), true)
}
