// Package sampler implements spec §4.E: uniform bit-vector sampling per
// symbol and the per-cluster rejection-sampling loop that drives the
// simulator toward states satisfying every constraint in a cluster.
package sampler

import (
	"errors"

	"github.com/katalvlaran/btorfalsify/constraints"
	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/rng"
	"github.com/katalvlaran/btorfalsify/sim"
)

// ErrUnsupportedSymbol is raised for any width>64 or array-typed symbol
// encountered during sampling, exactly as spec §4.E requires ("must raise
// an explicit 'unsupported' error rather than silently sampling zero").
var ErrUnsupportedSymbol = errors.New("sampler: widths above 64 bits and array-typed inputs are not supported")

// ErrRejectionLimitExceeded is returned when a cluster's rejection loop
// exceeds a caller-configured retry bound (see Option WithMaxRejections).
// The reference design has no such bound and loops indefinitely on an
// infeasible cluster (spec §4.E, §9) — this is an opt-in safety valve,
// off by default.
var ErrRejectionLimitExceeded = errors.New("sampler: rejection sampling exceeded the configured retry bound")

// Sample draws a uniform value for sym, masked to its declared width, and
// writes it via sim.Set. Widths above 64 bits or array-typed symbols are
// explicitly rejected rather than silently sampled as zero.
func Sample(gen *rng.Xoshiro256pp, s *sim.Simulator, ctx *ir.Context, sym ir.ExprRef) error {
	node := ctx.Get(sym)
	if node.IsArray || node.Width > 64 {
		return ErrUnsupportedSymbol
	}
	v := gen.Uint64() & ir.Mask(node.Width)
	return s.Set(sym, v)
}

// SampleUnconstrained samples every symbol in refs once, with no rejection
// — the "unconstrained_input" step of spec §4.E, run after every cluster
// has accepted.
func SampleUnconstrained(gen *rng.Xoshiro256pp, s *sim.Simulator, ctx *ir.Context, refs []ir.ExprRef) error {
	for _, r := range refs {
		if err := Sample(gen, s, ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// RejectCluster repeatedly samples every input in cluster.Inputs, runs the
// simulator's combinational update, and accepts iff every expression in
// cluster.Exprs evaluates to 1 (spec §4.E steps 1-4). With no configured
// retry bound (the default), an infeasible cluster loops forever — a
// documented limitation of the reference design (spec §9).
func RejectCluster(gen *rng.Xoshiro256pp, s *sim.Simulator, ctx *ir.Context, cluster constraints.ConstraintCluster, opts ...Option) error {
	cfg := newConfig(opts...)
	attempts := uint64(0)
	for {
		for _, in := range cluster.Inputs {
			if err := Sample(gen, s, ctx, in); err != nil {
				return err
			}
		}
		s.Update()

		accepted := true
		for _, e := range cluster.Exprs {
			if !s.EvalBool(e) {
				accepted = false
				break
			}
		}
		if accepted {
			return nil
		}

		attempts++
		if cfg.maxRejections > 0 && attempts >= cfg.maxRejections {
			return ErrRejectionLimitExceeded
		}
	}
}

// RejectAllClusters runs RejectCluster for every cluster in turn (cluster
// independence, spec §8 invariant 3, means this order never affects which
// values get drawn — only the RNG draw sequence, which is itself part of
// the determinism contract), then samples every unconstrained input once.
func RejectAllClusters(gen *rng.Xoshiro256pp, s *sim.Simulator, ctx *ir.Context, clusters []constraints.ConstraintCluster, unconstrained []ir.ExprRef, opts ...Option) error {
	for _, c := range clusters {
		if err := RejectCluster(gen, s, ctx, c, opts...); err != nil {
			return err
		}
	}
	return SampleUnconstrained(gen, s, ctx, unconstrained)
}
