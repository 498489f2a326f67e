package constraints_test

import (
	"testing"

	"github.com/katalvlaran/btorfalsify/constraints"
	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/stretchr/testify/assert"
)

// buildTwoIndependentConstraints declares two inputs each pinned by its own
// constraint, plus a third unconstrained input — exercising cluster
// disjointness and the unconstrained-input set in one system.
func buildTwoIndependentConstraints(t *testing.T) (*ir.Context, *ir.TransitionSystem, ir.ExprRef, ir.ExprRef, ir.ExprRef) {
	t.Helper()
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()

	a := ctx.Input("a", 1, false)
	b := ctx.Input("b", 1, false)
	free := ctx.Input("free", 1, false)
	sys.AddInput(a, "a", 1, false)
	sys.AddInput(b, "b", 1, false)
	sys.AddInput(free, "free", 1, false)

	sys.AddConstraint(a, "c_a")
	sys.AddConstraint(b, "c_b")

	return ctx, sys, a, b, free
}

func TestAnalyzeProducesDisjointClusters(t *testing.T) {
	ctx, sys, a, b, _ := buildTwoIndependentConstraints(t)
	clusters := constraints.Analyze(ctx, sys, false)
	assert.Len(t, clusters, 2)

	seenInputs := make(map[ir.ExprRef]int)
	for _, c := range clusters {
		for _, in := range c.Inputs {
			seenInputs[in]++
		}
	}
	assert.Equal(t, 1, seenInputs[a])
	assert.Equal(t, 1, seenInputs[b])
}

func TestAnalyzeJoinsSharedSymbolConstraints(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()

	a := ctx.Input("a", 4, false)
	b := ctx.Input("b", 4, false)
	c := ctx.Input("c", 4, false)
	sys.AddInput(a, "a", 4, false)
	sys.AddInput(b, "b", 4, false)
	sys.AddInput(c, "c", 4, false)

	// a and b share a constraint; b and c share a different constraint ->
	// all three must land in the same cluster.
	sys.AddConstraint(ctx.Eq(a, b), "ab")
	sys.AddConstraint(ctx.Eq(b, c), "bc")

	clusters := constraints.Analyze(ctx, sys, false)
	assert.Len(t, clusters, 1)
	assert.ElementsMatch(t, []ir.ExprRef{a, b, c}, clusters[0].Inputs)
}

func TestUnconstrainedInputsExcludesClusterMembers(t *testing.T) {
	ctx, sys, _, _, free := buildTwoIndependentConstraints(t)
	clusters := constraints.Analyze(ctx, sys, false)
	uncon := constraints.UnconstrainedInputs(sys, clusters)
	assert.Equal(t, []ir.ExprRef{free}, uncon)
}

func TestAnalyzeCombModeTreatsStateAsOpaqueLeaf(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()

	s := ctx.State("s", 1, false)
	in := ctx.Input("in", 1, false)
	sys.AddState(s, "s", 1, ir.NoRef, ctx.Not(s))
	sys.AddInput(in, "in", 1, false)
	// Eq is atomic (not And/Not-Or), so Split leaves it as one constraint
	// whose COI is {s, in}; comb mode then drops s, leaving only in.
	sys.AddConstraint(ctx.Eq(s, in), "k")

	clusters := constraints.Analyze(ctx, sys, false)
	require := assert.New(t)
	require.Len(clusters, 1)
	require.Empty(clusters[0].States, "comb mode must not surface state symbols into the cluster's state set")
	require.Equal([]ir.ExprRef{in}, clusters[0].Inputs)
}

func TestAnalyzeInitModeTraversesThroughComputedInit(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()

	initInput := ctx.Input("init_in", 1, false)
	s := ctx.State("s", 1, false)
	sys.AddInput(initInput, "init_in", 1, false)
	sys.AddState(s, "s", 1, initInput, ctx.Not(s))
	sys.AddConstraint(s, "k")

	clusters := constraints.Analyze(ctx, sys, true)
	require := assert.New(t)
	require.Len(clusters, 1)
	require.Equal([]ir.ExprRef{initInput}, clusters[0].Inputs, "init mode must see through s's computed Init to its free input")
}

func TestClusterCoverageMatchesSplitAtoms(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()

	a := ctx.Input("a", 1, false)
	b := ctx.Input("b", 1, false)
	sys.AddInput(a, "a", 1, false)
	sys.AddInput(b, "b", 1, false)
	conj := ctx.And(a, b)
	sys.AddConstraint(conj, "k")

	wantAtoms := constraints.Split(ctx, conj)
	clusters := constraints.Analyze(ctx, sys, false)

	var gotAtoms []ir.ExprRef
	for _, c := range clusters {
		gotAtoms = append(gotAtoms, c.Exprs...)
	}
	assert.ElementsMatch(t, wantAtoms, gotAtoms)
}
