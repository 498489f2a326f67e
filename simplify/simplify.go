// Package simplify is the minimal in-repo stand-in for the external
// expression simplifier (spec §1 Out of scope: "Expression simplification
// and anonymous-input elimination"). It defines the one piece of shared
// contract the rest of the core depends on — the reserved name prefix
// identifying inputs the simplifier eliminated — and otherwise passes its
// input through unchanged, since this core never performs the elimination
// itself.
package simplify

import "github.com/katalvlaran/btorfalsify/ir"

// AnonymousInputPrefix marks inputs introduced or retained by an upstream
// simplification pass with no meaningful name of their own. The witness
// recorder (spec §4.G step 2b) zero-fills any input whose name starts with
// this prefix instead of reading a sampled value for it, since "no value
// was actually sampled" for such inputs (spec §6 witness textual format).
const AnonymousInputPrefix = "__anon_"

// IsAnonymous reports whether name identifies a simplifier-eliminated
// input.
func IsAnonymous(name string) bool {
	return len(name) >= len(AnonymousInputPrefix) && name[:len(AnonymousInputPrefix)] == AnonymousInputPrefix
}

// Simplify returns the system the search engine drives sampling against.
// This core implements no actual simplification (it is an external
// collaborator per spec §1); it returns ctx/sys unchanged so callers always
// have a well-defined "simplified" system to search, and the original
// system used for witness printing is simply a separate Clone taken before
// this call.
func Simplify(ctx *ir.Context, sys *ir.TransitionSystem) (*ir.Context, *ir.TransitionSystem) {
	return ctx, sys
}
