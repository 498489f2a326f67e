// Package witness implements spec §4.G: deterministic replay of a Sat
// episode into a Witness value, and spec §6's canonical textual witness
// format for printing it.
package witness

import "github.com/katalvlaran/btorfalsify/ir"

// Witness is the falsification result spec §4.G step 3 returns: the
// initial values of the free-init states as read from S0 (where every
// state starts at zero; states are never sampled), every cycle's sampled inputs
// (k-major, system input order), the detection cycle, and the indices of
// the bad predicates that held there.
type Witness struct {
	StateInit    []ir.Word
	InputData    []ir.Word
	K            uint64
	FailedSafety []int
}
