// Package searchengine implements spec §4.F: the per-worker randomized
// episode loop that drives a simulator through variable-length cycle runs,
// re-sampling every constraint cluster each cycle, looking for a cycle at
// which some bad predicate holds.
//
// Grounded on bfs.BFS's early-abort-via-return-value shape and dijkstra's
// validate-config-then-loop structure (both in the teacher repo): Engine
// is built once via New (which does all the up-front clustering work a
// single time, mirroring dijkstra's "compute once, iterate many" split),
// then driven by one Run call from the worker coordinator, which loops over
// episodes until it returns.
package searchengine

import (
	"github.com/katalvlaran/btorfalsify/constraints"
	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/rng"
	"github.com/katalvlaran/btorfalsify/sampler"
	"github.com/katalvlaran/btorfalsify/sim"
)

// Result is the three-way outcome of a falsification run (spec §4.H:
// "any result (Sat/Unsat/Unknown)").
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned when sampling hits a symbol this core cannot
// handle (array-typed or >64-bit). Spec §7: "a worker that hits an
// unsupported feature aborts the whole process" — callers are expected to
// treat this as fatal, not retry.
var ErrUnsupported = sampler.ErrUnsupportedSymbol

// Outcome is what one Run call (one worker, to completion or its fuse)
// produces.
type Outcome struct {
	Result Result

	// The following are populated only when Result == Sat, and are exactly
	// the inputs the witness recorder (spec §4.G) needs: the replay seed,
	// the detection cycle, and the bad predicates that held there.
	RNGStart *rng.Xoshiro256pp
	K        uint64
	Bads     []int
}

// Engine is one worker's complete, isolated falsification search: its own
// IR context, simulator, RNG stream, and precomputed cluster analysis
// (spec §5: "no shared mutable state" across workers).
type Engine struct {
	ctx *ir.Context
	sys *ir.TransitionSystem
	s   *sim.Simulator
	gen *rng.Xoshiro256pp

	clusters      []constraints.ConstraintCluster
	unconstrained []ir.ExprRef

	cfg config

	s0         sim.Snapshot
	cyclesUsed uint64
}

// New builds an Engine bound to ctx/sys (the simplified/working copy the
// search drives sampling against — see simplify.Simplify) and seeded with
// seed. Per spec §4.F step 1-2, every simulator state starts at zero and
// S0 is captured immediately. Cluster analysis (spec §4.C/§4.D, comb mode)
// runs once here rather than once per episode, since the system's
// structure never changes between episodes.
func New(ctx *ir.Context, sys *ir.TransitionSystem, seed uint64, opts ...Option) *Engine {
	cfg := newConfig(opts...)

	clusters := constraints.Analyze(ctx, sys, false)
	unconstrained := constraints.UnconstrainedInputs(sys, clusters)

	s := sim.New(ctx, sys)
	s0 := s.Snapshot()

	return &Engine{
		ctx:           ctx,
		sys:           sys,
		s:             s,
		gen:           rng.NewXoshiro256pp(seed),
		clusters:      clusters,
		unconstrained: unconstrained,
		cfg:           cfg,
		s0:            s0,
	}
}

// Run executes episodes (spec §4.F's "episode loop") until either a bad
// predicate is found (Sat), or the engine's max-cycles fuse trips
// (Unknown). Run returns Unsat only for a system that declares no bad
// predicates at all, before any episode runs. Run returns a non-nil error
// only when sampling fails: the fatal "unsupported feature" condition of
// spec §7, or sampler.ErrRejectionLimitExceeded when a retry bound was set
// via WithSamplerOptions.
func (e *Engine) Run() (Outcome, error) {
	if len(e.sys.Bad) == 0 {
		return Outcome{Result: Unsat}, nil
	}

	for {
		kMax := e.pickKMax()
		e.s.Restore(e.s0)
		rngStart := e.gen.Clone()

		for k := uint64(0); k <= kMax; k++ {
			if err := sampler.RejectAllClusters(e.gen, e.s, e.ctx, e.clusters, e.unconstrained, e.cfg.samplerOpts...); err != nil {
				return Outcome{}, err
			}
			e.s.Update()

			var bads []int
			for i, b := range e.sys.Bad {
				if e.s.EvalBool(b.Expr) {
					bads = append(bads, i)
				}
			}
			if len(bads) > 0 {
				return Outcome{Result: Sat, RNGStart: rngStart, K: k, Bads: bads}, nil
			}

			e.s.Step()
			e.cyclesUsed++
			if e.cfg.maxCycles > 0 && e.cyclesUsed >= e.cfg.maxCycles {
				return Outcome{Result: Unknown}, nil
			}
		}
	}
}

// pickKMax draws the per-episode cycle budget per spec §4.F: "With
// probability large_k_prob draw k_max uniformly in [small_k, large_k];
// otherwise in [1, small_k]." uniformRange below accepts the documented bias
// of a modulo reduction rather than an unbiased rejection-sampled range,
// since the reference design does not specify one.
func (e *Engine) pickKMax() uint64 {
	if e.cfg.largeKProb > 0 && e.uniformFloat() < e.cfg.largeKProb {
		return uniformRange(e.gen, e.cfg.smallK, e.cfg.largeK)
	}
	return uniformRange(e.gen, 1, e.cfg.smallK)
}

// uniformFloat draws a float64 uniformly in [0,1) from the generator's
// high bits, the standard construction for a 53-bit-mantissa double from a
// 64-bit generator.
func (e *Engine) uniformFloat() float64 {
	return float64(e.gen.Uint64()>>11) * (1.0 / (1 << 53))
}

func uniformRange(gen *rng.Xoshiro256pp, lo, hi uint64) uint64 {
	if hi <= lo {
		return lo
	}
	span := hi - lo + 1
	return lo + gen.Uint64()%span
}

// Simulator, Clusters, Unconstrained and S0 expose the pieces the witness
// recorder (spec §4.G) needs to replay a Sat Outcome: the same simulator
// instance (already bound to this Engine's ctx/sys), the same cluster
// analysis, and the pre-episode snapshot to restore before replaying.
func (e *Engine) Simulator() *sim.Simulator             { return e.s }
func (e *Engine) Clusters() []constraints.ConstraintCluster { return e.clusters }
func (e *Engine) Unconstrained() []ir.ExprRef           { return e.unconstrained }
func (e *Engine) S0() sim.Snapshot                      { return e.s0 }
func (e *Engine) SamplerOptions() []sampler.Option      { return e.cfg.samplerOpts }
