package witness

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/simplify"
)

// Print writes w in the canonical textual witness format of spec §6,
// against sys — the ORIGINAL, pre-simplification system (spec §4.H: "using
// the ORIGINAL, pre-simplification ctx/sys for witness printing"), so
// state/input names and iteration order match what the file format
// declared. Inputs whose name carries simplify.AnonymousInputPrefix are
// printed as all-zero bitstrings whatever InputData holds for them.
func Print(out io.Writer, sys *ir.TransitionSystem, w *Witness) error {
	bads := make([]string, len(w.FailedSafety))
	for i, bi := range w.FailedSafety {
		bads[i] = "b" + strconv.Itoa(bi)
	}
	if _, err := fmt.Fprintln(out, strings.Join(bads, " ")); err != nil {
		return err
	}

	if len(sys.States) > 0 {
		if _, err := fmt.Fprintln(out, "#0"); err != nil {
			return err
		}
		j := 0
		for i, st := range sys.States {
			if !st.HasFreeInit() {
				continue
			}
			v := w.StateInit[j]
			j++
			if _, err := fmt.Fprintf(out, "%d %s %s#0\n", i, bitstring(v, st.Width), st.Name); err != nil {
				return err
			}
		}
	}

	numInputs := len(sys.Inputs)
	for k := uint64(0); k <= w.K; k++ {
		if _, err := fmt.Fprintf(out, "@%d\n", k); err != nil {
			return err
		}
		for i, in := range sys.Inputs {
			v := w.InputData[k*uint64(numInputs)+uint64(i)]
			if simplify.IsAnonymous(in.Name) {
				v = 0
			}
			if _, err := fmt.Fprintf(out, "%d %s %s@%d\n", i, bitstring(v, in.Width), in.Name, k); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(out, ".")
	return err
}

// bitstring renders v as an MSB-first binary string of exactly width bits
// (spec §6), zero-padded on the left.
func bitstring(v ir.Word, width uint32) string {
	s := strconv.FormatUint(uint64(v&ir.Mask(width)), 2)
	if uint32(len(s)) < width {
		s = strings.Repeat("0", int(width)-len(s)) + s
	}
	return s
}
