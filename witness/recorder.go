package witness

import (
	"fmt"

	"github.com/katalvlaran/btorfalsify/constraints"
	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/rng"
	"github.com/katalvlaran/btorfalsify/sampler"
	"github.com/katalvlaran/btorfalsify/sim"
	"github.com/katalvlaran/btorfalsify/simplify"
)

// Record implements spec §4.G: restores s to s0 itself, then re-drives it
// using the exact same RNG draw sequence the search used, to reconstruct
// the witness data without
// the search loop having recorded it eagerly on every cycle.
//
// s0 is the snapshot the originating episode restored before sampling
// began; gen is the RNG cloned at that same point (rng_start, spec
// §4.F step 3). clusters/unconstrained/bad must be the exact same values
// the search used to detect the hit, so the replayed draws line up
// bit-for-bit with the original run (spec §4.G: "because the RNG and
// simulator are in identical states, the draws must match").
func Record(
	ctx *ir.Context,
	sys *ir.TransitionSystem,
	s *sim.Simulator,
	s0 sim.Snapshot,
	gen *rng.Xoshiro256pp,
	clusters []constraints.ConstraintCluster,
	unconstrained []ir.ExprRef,
	bad []ir.NamedExpr,
	kBad uint64,
	bads []int,
	opts ...sampler.Option,
) (*Witness, error) {
	s.Restore(s0)

	var stateInit []ir.Word
	for _, st := range sys.States {
		if st.HasFreeInit() {
			stateInit = append(stateInit, s.Get(st.Symbol))
		}
	}

	var inputData []ir.Word
	for k := uint64(0); k <= kBad; k++ {
		if err := sampler.RejectAllClusters(gen, s, ctx, clusters, unconstrained, opts...); err != nil {
			return nil, err
		}

		for _, in := range sys.Inputs {
			if simplify.IsAnonymous(in.Name) {
				inputData = append(inputData, 0)
				continue
			}
			inputData = append(inputData, s.Get(in.Symbol))
		}

		s.Update()

		for _, c := range clusters {
			for _, e := range c.Exprs {
				if !s.EvalBool(e) {
					panic(fmt.Sprintf("witness: replay constraint %d did not hold at cycle %d", e, k))
				}
			}
		}

		if k == kBad {
			holds := false
			for _, bi := range bads {
				if s.EvalBool(bad[bi].Expr) {
					holds = true
					break
				}
			}
			if !holds {
				panic(fmt.Sprintf("witness: replay bad predicate did not hold at cycle %d", k))
			}
		}

		s.Step()
	}

	return &Witness{
		StateInit:    stateInit,
		InputData:    inputData,
		K:            kBad,
		FailedSafety: bads,
	}, nil
}
