package ir

// ConeOfInfluenceComb returns the free-symbol leaves root combinationally
// depends on: states are treated as opaque leaves (their Next/Init
// expressions are never traversed), matching spec §4.B "comb" mode.
//
// The traversal is an iterative worklist flood-fill, the same shape as
// gridgraph.ConnectedComponents' BFS over grid cells: an explicit slice
// stack, a visited set, no recursion, so it terminates on any DAG
// regardless of depth.
func ConeOfInfluenceComb(ctx *Context, root ExprRef) []ExprRef {
	return coiWalk(ctx, nil, root, false)
}

// ConeOfInfluenceInit returns the free-symbol leaves root depends on when
// evaluated during initialization (spec §4.B "init" mode): a state symbol
// with an explicit Init expression is transparent — the walk continues
// into Init — while a state with a free initial value is itself
// a leaf, exactly like an input.
//
// sys may be nil only if root provably contains no state symbols; passing
// the owning TransitionSystem is otherwise required to resolve each
// state's Init expression.
func ConeOfInfluenceInit(ctx *Context, sys *TransitionSystem, root ExprRef) []ExprRef {
	return coiWalk(ctx, sys, root, true)
}

func coiWalk(ctx *Context, sys *TransitionSystem, root ExprRef, init bool) []ExprRef {
	visited := make(map[ExprRef]bool)
	var leaves []ExprRef
	stack := []ExprRef{root}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[e] {
			continue
		}
		visited[e] = true

		node := ctx.Get(e)
		switch {
		case node.Op == OpInput:
			leaves = append(leaves, e)
		case node.Op == OpState:
			if init && sys != nil {
				if st := sys.StateOf(e); st != nil && st.Init != NoRef {
					stack = append(stack, st.Init)
					continue
				}
			}
			leaves = append(leaves, e)
		case node.Op == OpConst:
			// contributes no leaves
		default:
			for _, c := range node.Children() {
				if c != NoRef && !visited[c] {
					stack = append(stack, c)
				}
			}
		}
	}
	return leaves
}
