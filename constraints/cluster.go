package constraints

import (
	"sort"

	"github.com/katalvlaran/btorfalsify/ir"
)

// ConstraintCluster is the central analysis product of spec §3: a maximal
// set of atomic constraints sharing free symbols (transitively), along
// with the states and inputs in the union of their supports.
type ConstraintCluster struct {
	Exprs  []ir.ExprRef
	States []ir.ExprRef
	Inputs []ir.ExprRef
}

// NewConstraintCluster sorts and dedups each field, matching
// ConstraintCluster::new/dedup in constraints.rs.
func NewConstraintCluster(exprs, states, inputs []ir.ExprRef) ConstraintCluster {
	return ConstraintCluster{
		Exprs:  sortDedupRefs(exprs),
		States: sortDedupRefs(states),
		Inputs: sortDedupRefs(inputs),
	}
}

// Analyze implements spec §4.D (on top of §4.C's graph builder): connected
// components of the constraint graph, turned into ConstraintClusters.
// init selects the COI mode the graph was built with, exactly as
// analyze_constraints(ctx, sys, init) does in constraints.rs.
//
// Clusters are returned in order of their smallest member's vertex index,
// which is the deterministic order spec §4.D calls for and matches
// connected_components' behavior of sorting the node-index groups before
// labeling clusters.
func Analyze(ctx *ir.Context, sys *ir.TransitionSystem, init bool) []ConstraintCluster {
	g := buildConstraintGraph(ctx, sys, init)

	ids := g.Vertices()
	uf := newUnionFind(ids)
	for _, e := range g.Edges() {
		uf.union(e.From, e.To)
	}

	type component struct {
		nodes   []string
		exprSet map[ir.ExprRef]struct{}
	}
	components := make(map[string]*component)
	for _, id := range ids {
		root := uf.find(id)
		c, ok := components[root]
		if !ok {
			c = &component{exprSet: make(map[ir.ExprRef]struct{})}
			components[root] = c
		}
		c.nodes = append(c.nodes, id)
	}
	for _, e := range g.Edges() {
		root := uf.find(e.From)
		components[root].exprSet[ir.ExprRef(e.Weight)] = struct{}{}
	}

	out := make([]ConstraintCluster, 0, len(components))
	type indexed struct {
		cluster ConstraintCluster
		minNode uint64
	}
	indexedOut := make([]indexed, 0, len(components))
	for _, c := range components {
		var states, inputs []ir.ExprRef
		minNode := ^uint64(0)
		for _, id := range c.nodes {
			ref := vertexIDExpr(id)
			if uint64(ref) < minNode {
				minNode = uint64(ref)
			}
			if sys.IsState(ref) {
				states = append(states, ref)
			} else {
				inputs = append(inputs, ref)
			}
		}
		exprs := make([]ir.ExprRef, 0, len(c.exprSet))
		for e := range c.exprSet {
			exprs = append(exprs, e)
		}
		indexedOut = append(indexedOut, indexed{
			cluster: NewConstraintCluster(exprs, states, inputs),
			minNode: minNode,
		})
	}
	sort.Slice(indexedOut, func(i, j int) bool { return indexedOut[i].minNode < indexedOut[j].minNode })
	for _, e := range indexedOut {
		out = append(out, e.cluster)
	}
	return out
}

// UnconstrainedInputs returns the inputs declared on sys that appear in no
// cluster of clusters — spec §4.E's "unconstrained_input" set, sampled
// once per cycle with no rejection loop.
func UnconstrainedInputs(sys *ir.TransitionSystem, clusters []ConstraintCluster) []ir.ExprRef {
	covered := make(map[ir.ExprRef]struct{})
	for _, c := range clusters {
		for _, in := range c.Inputs {
			covered[in] = struct{}{}
		}
	}
	var out []ir.ExprRef
	for _, in := range sys.Inputs {
		if _, ok := covered[in.Symbol]; !ok {
			out = append(out, in.Symbol)
		}
	}
	return out
}
