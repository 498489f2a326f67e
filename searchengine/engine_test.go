package searchengine_test

import (
	"testing"

	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/searchengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUnsatWhenNoBadPredicates(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	in := ctx.Input("in", 4, false)
	sys.AddInput(in, "in", 4, false)

	e := searchengine.New(ctx, sys, 1)
	out, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, searchengine.Unsat, out.Result)
}

func TestRunFindsAlwaysTrueBadPredicate(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	in := ctx.Input("in", 4, false)
	sys.AddInput(in, "in", 4, false)
	sys.AddBad(ctx.Const(1, 1), "always")

	e := searchengine.New(ctx, sys, 1, searchengine.WithSmallK(5))
	out, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, searchengine.Sat, out.Result)
	assert.Equal(t, uint64(0), out.K, "a bad predicate true at cycle 0 must be caught on the first check")
	assert.Equal(t, []int{0}, out.Bads)
	require.NotNil(t, out.RNGStart)
}

func TestRunReturnsUnknownWhenMaxCyclesExhausted(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	in := ctx.Input("in", 32, false)
	sys.AddInput(in, "in", 32, false)
	// A practically unreachable bad predicate (compares an unconstrained
	// input against a fixed 32-bit constant, a 2^-32 chance per cycle)
	// forces the engine to exhaust its cycle fuse.
	sys.AddBad(ctx.Eq(in, ctx.Const(32, 0x12345678)), "rare")

	e := searchengine.New(ctx, sys, 1, searchengine.WithSmallK(2), searchengine.WithMaxCycles(10))
	out, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, searchengine.Unknown, out.Result)
}

func TestRunPropagatesSamplingErrors(t *testing.T) {
	ctx := ir.NewContext()
	sys := ir.NewTransitionSystem()
	arr := ctx.Input("arr", 8, true)
	sys.AddInput(arr, "arr", 8, true)
	sys.AddConstraint(ctx.Redor(arr), "uses_array")
	sys.AddBad(ctx.Const(1, 0), "never")

	e := searchengine.New(ctx, sys, 1)
	_, err := e.Run()
	assert.ErrorIs(t, err, searchengine.ErrUnsupported)
}
