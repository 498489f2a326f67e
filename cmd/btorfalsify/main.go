// Command btorfalsify bounded-randomly falsifies a word-level hardware
// transition system (spec §6 External interfaces).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/btorfalsify/coordinator"
	"github.com/katalvlaran/btorfalsify/ir"
	"github.com/katalvlaran/btorfalsify/parser"
	"github.com/katalvlaran/btorfalsify/searchengine"
	"github.com/katalvlaran/btorfalsify/simplify"
	"github.com/katalvlaran/btorfalsify/witness"
)

func main() {
	var (
		verbose      bool
		singleThread bool
		maxCycles    uint64
	)
	flag.BoolVar(&verbose, "v", false, "print progress diagnostics to stderr")
	flag.BoolVar(&verbose, "verbose", false, "print progress diagnostics to stderr")
	flag.BoolVar(&singleThread, "single-thread", false, "run one worker instead of one per CPU")
	flag.Uint64Var(&maxCycles, "max-cycles", 0, "total simulator-step budget across all workers (0 = unbounded)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: btorfalsify [-v] [--single-thread] [--max-cycles N] <file>")
		os.Exit(1)
	}

	path := flag.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "btorfalsify: %v\n", err)
		os.Exit(1)
	}
	origCtx, origSys, err := parser.Load(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "btorfalsify: failed to load %s: %v\n", path, err)
		os.Exit(1)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "btorfalsify: loaded %d inputs, %d states, %d constraints, %d bad properties\n",
			len(origSys.Inputs), len(origSys.States), len(origSys.Constraints), len(origSys.Bad))
	}

	workCtx, workSys := simplify.Simplify(origCtx.Clone(), origSys.Clone())

	n := 0
	if singleThread {
		n = 1
	}

	out, err := coordinator.Run(
		func() *ir.Context { return workCtx.Clone() },
		func() *ir.TransitionSystem { return workSys.Clone() },
		0, n, maxCycles,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "btorfalsify: %v\n", err)
		os.Exit(1)
	}

	switch out.Result {
	case searchengine.Unsat:
		fmt.Println("unsat")
	case searchengine.Sat:
		fmt.Println("sat")
		if err := witness.Print(os.Stdout, origSys, out.Witness); err != nil {
			fmt.Fprintf(os.Stderr, "btorfalsify: %v\n", err)
			os.Exit(1)
		}
	case searchengine.Unknown:
		// spec §6: empty output.
	}
}
