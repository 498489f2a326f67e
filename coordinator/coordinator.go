// Package coordinator implements spec §4.H: spawning one search engine per
// worker, racing them to a shared first-result slot, and turning whichever
// result lands first into an Outcome (with a replayed witness for Sat). It
// prints nothing; the caller prints the Outcome against the original
// (pre-simplification) system.
//
// Grounded on gitrdm-gokando's internal/parallel package for the general
// shape of a lock-protected shared result under concurrent writers (its
// WorkerPool/ExecutionStats use sync.RWMutex the same way: RLock for
// cheap reads, Lock around the single mutating section) — simplified here
// to the one piece spec §4.H actually needs: a slot that accepts only its
// first write.
package coordinator

import (
	"runtime"
	"sync"

	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/rng"
	"github.com/katalvlaran/btorfalsify/searchengine"
	"github.com/katalvlaran/btorfalsify/witness"
)

// defaultSeed is the fixed base seed used when callers pass seed == 0,
// following tsp/rng.go's rngFromSeed policy ("seed==0 ⇒ use
// defaultRNGSeed; otherwise use the provided seed verbatim") — the CLI
// (spec §6) exposes no --seed flag, so every invocation uses this fixed
// default unless a library caller supplies its own.
const defaultSeed int64 = 1

// Report is what the first-finishing worker contributes to the shared
// slot: its outcome plus the pieces needed to replay a Sat witness (the
// working ctx/sys it searched against, its simulator and cluster analysis).
type Report struct {
	Outcome searchengine.Outcome
	Engine  *searchengine.Engine
	WorkCtx *ir.Context
	WorkSys *ir.TransitionSystem
}

// resultSlot is the "shared, lock-protected first result slot" of spec
// §4.H and §5: populated by whichever worker finishes first; once set, it
// is final (a later TrySet is a no-op, matching "once set, the slot is
// final").
type resultSlot struct {
	mu  sync.RWMutex
	set bool
	rep Report
}

func (s *resultSlot) TrySet(r Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return false
	}
	s.set = true
	s.rep = r
	return true
}

func (s *resultSlot) Get() (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rep, s.set
}

// Outcome is the coordinator's final, printable result: a search Result
// plus a rendered witness (only when Result == searchengine.Sat).
type Outcome struct {
	Result  searchengine.Result
	Witness *witness.Witness
}

// Run spawns N workers, each on its own ctx/sys obtained from
// workCtxFactory/workSysFactory (the simplified system every worker samples
// against), each seeded via rng.DeriveWorkerSeed(seed, i), and returns the
// first result any worker produces. Run takes no original system: printing
// the witness against the pre-simplification system is left to the caller.
//
// n <= 0 selects runtime.NumCPU() (spec §4.H: "N is either 1 ... or the
// platform's available parallelism"). maxCycles, if > 0, is divided
// (ceiling) across the n workers before being handed to each Engine via
// searchengine.WithMaxCycles.
func Run(workCtxFactory func() *ir.Context, workSysFactory func() *ir.TransitionSystem, seed int64, n int, maxCycles uint64, engineOpts ...searchengine.Option) (Outcome, error) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if seed == 0 {
		seed = defaultSeed
	}

	perWorkerCycles := uint64(0)
	if maxCycles > 0 {
		perWorkerCycles = (maxCycles + uint64(n) - 1) / uint64(n)
	}

	slot := &resultSlot{}
	errCh := make(chan error, n)
	reportCh := make(chan Report, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ctx := workCtxFactory()
			sys := workSysFactory()
			workerSeed := rng.DeriveWorkerSeed(seed, i)

			opts := append([]searchengine.Option(nil), engineOpts...)
			if perWorkerCycles > 0 {
				opts = append(opts, searchengine.WithMaxCycles(perWorkerCycles))
			}

			eng := searchengine.New(ctx, sys, workerSeed, opts...)
			outcome, err := eng.Run()
			if err != nil {
				errCh <- err
				return
			}
			reportCh <- Report{Outcome: outcome, Engine: eng, WorkCtx: ctx, WorkSys: sys}
		}(i)
	}

	go func() {
		wg.Wait()
		close(reportCh)
		close(errCh)
	}()

	for {
		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				return Outcome{}, err
			}
			if !ok {
				errCh = nil
			}
		case rep, ok := <-reportCh:
			if !ok {
				reportCh = nil
				break
			}
			if slot.TrySet(rep) {
				rep, _ := slot.Get()
				return finalize(rep)
			}
		}
		if errCh == nil && reportCh == nil {
			break
		}
	}

	if rep, ok := slot.Get(); ok {
		return finalize(rep)
	}
	return Outcome{Result: searchengine.Unknown}, nil
}

func finalize(rep Report) (Outcome, error) {
	if rep.Outcome.Result != searchengine.Sat {
		return Outcome{Result: rep.Outcome.Result}, nil
	}

	w, err := witness.Record(
		rep.WorkCtx,
		rep.WorkSys,
		rep.Engine.Simulator(),
		rep.Engine.S0(),
		rep.Outcome.RNGStart,
		rep.Engine.Clusters(),
		rep.Engine.Unconstrained(),
		rep.WorkSys.Bad,
		rep.Outcome.K,
		rep.Outcome.Bads,
		rep.Engine.SamplerOptions()...,
	)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: searchengine.Sat, Witness: w}, nil
}
