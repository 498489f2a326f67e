package sampler_test

import (
	"testing"

	"github.com/katalvlaran/btorfalsify/constraints"
	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/rng"
	"github.com/katalvlaran/btorfalsify/sampler"
	"github.com/katalvlaran/btorfalsify/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRespectsWidthBound(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	s := sim.New(ctx, sys)
	gen := rng.NewXoshiro256pp(1)

	sym := ctx.Input("a", 5, false)
	for i := 0; i < 200; i++ {
		require.NoError(t, sampler.Sample(gen, s, ctx, sym))
		v := s.Get(sym)
		assert.Less(t, v, ir.Word(1<<5), "sampled value must fit in the declared width")
	}
}

func TestSampleRejectsArrayAndWideSymbols(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	s := sim.New(ctx, sys)
	gen := rng.NewXoshiro256pp(1)

	arr := ctx.Input("arr", 8, true)
	err := sampler.Sample(gen, s, ctx, arr)
	assert.ErrorIs(t, err, sampler.ErrUnsupportedSymbol)

	wide := ctx.Input("wide", 65, false)
	err = sampler.Sample(gen, s, ctx, wide)
	assert.ErrorIs(t, err, sampler.ErrUnsupportedSymbol)
}

func TestRejectClusterOnlyAcceptsSatisfyingAssignment(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	s := sim.New(ctx, sys)
	gen := rng.NewXoshiro256pp(7)

	a := ctx.Input("a", 4, false)
	target := ctx.Const(4, 9)
	eq := ctx.Eq(a, target)

	cluster := constraints.NewConstraintCluster([]ir.ExprRef{eq}, nil, []ir.ExprRef{a})

	require.NoError(t, sampler.RejectCluster(gen, s, ctx, cluster))
	assert.Equal(t, ir.Word(9), s.Get(a))
}

func TestRejectClusterHonorsMaxRejections(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	s := sim.New(ctx, sys)
	gen := rng.NewXoshiro256pp(7)

	a := ctx.Input("a", 32, false)
	// A 32-bit equality to a fixed constant will essentially never be hit
	// within a tiny rejection budget.
	eq := ctx.Eq(a, ctx.Const(32, 0xDEADBEEF))
	cluster := constraints.NewConstraintCluster([]ir.ExprRef{eq}, nil, []ir.ExprRef{a})

	err := sampler.RejectCluster(gen, s, ctx, cluster, sampler.WithMaxRejections(4))
	assert.ErrorIs(t, err, sampler.ErrRejectionLimitExceeded)
}

func TestRejectAllClustersSamplesUnconstrainedToo(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	s := sim.New(ctx, sys)
	gen := rng.NewXoshiro256pp(3)

	a := ctx.Input("a", 4, false)
	free := ctx.Input("free", 4, false)
	eq := ctx.Eq(a, ctx.Const(4, 2))
	cluster := constraints.NewConstraintCluster([]ir.ExprRef{eq}, nil, []ir.ExprRef{a})

	require.NoError(t, sampler.RejectAllClusters(gen, s, ctx, []constraints.ConstraintCluster{cluster}, []ir.ExprRef{free}))
	assert.Equal(t, ir.Word(2), s.Get(a))
	assert.Less(t, s.Get(free), ir.Word(1<<4))
}
