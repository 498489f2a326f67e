package constraints

import "github.com/katalvlaran/btorfalsify/ir"

// coneOfInfluence is the thin wrapper spec §4.B describes: it picks the
// traversal mode and delegates the actual leaf-finding to the ir package's
// COI primitives (ir/coi.go). init selects between the init and comb
// traversal modes defined there.
func coneOfInfluence(ctx *ir.Context, sys *ir.TransitionSystem, e ir.ExprRef, init bool) []ir.ExprRef {
	if init {
		return ir.ConeOfInfluenceInit(ctx, sys, e)
	}
	return ir.ConeOfInfluenceComb(ctx, e)
}
