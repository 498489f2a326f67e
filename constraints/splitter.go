// Package constraints implements the falsifier's constraint analysis and
// clustering: conjunction splitting (A), the cone-of-influence adapter (B),
// the constraint graph builder (C) and the cluster extractor (D) of
// spec §4. It is grounded directly on original_source/src/constraints.rs
// (cucapra/patron), the Rust ancestor of this exact subsystem.
package constraints

import "github.com/katalvlaran/btorfalsify/ir"

// Split decomposes a 1-bit expression into the conjunctive list of atomic
// sub-constraints whose conjunction equals e (spec §4.A):
//
//   - And(a, b) (width 1) recurses into a and b.
//   - Not(Or(a, b)) (width 1, De Morgan) recurses into Not(a) and Not(b),
//     materializing the Not nodes via ctx.Not so they are interned like
//     any other expression.
//   - anything else is atomic and is emitted as-is.
//
// The traversal is an explicit LIFO worklist (mirroring split_conjunction's
// SmallVec pop-from-end order in constraints.rs), so it terminates on any
// DAG; duplicate emissions are left for the caller to dedup (ConstraintCluster
// already sorts+dedups exprs on construction).
func Split(ctx *ir.Context, e ir.ExprRef) []ir.ExprRef {
	var out []ir.ExprRef
	todo := []ir.ExprRef{e}
	for len(todo) > 0 {
		cur := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		node := ctx.Get(cur)
		switch {
		case node.Op == ir.OpAnd && node.Width == 1:
			todo = append(todo, node.B, node.A)
		case node.Op == ir.OpNot && node.Width == 1 && isOrWidth1(ctx, node.A):
			inner := ctx.Get(node.A)
			todo = append(todo, ctx.Not(inner.B), ctx.Not(inner.A))
		default:
			out = append(out, cur)
		}
	}
	return out
}

func isOrWidth1(ctx *ir.Context, ref ir.ExprRef) bool {
	n := ctx.Get(ref)
	return n.Op == ir.OpOr && n.Width == 1
}
