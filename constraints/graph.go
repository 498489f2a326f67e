package constraints

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/btorfalsify/ir"
)

// exprVertexID is the constraint graph's vertex ID for a free-symbol leaf:
// the decimal rendering of its ExprRef. ExprRef is an opaque ≤32-bit handle
// (spec §3), so it round-trips through a string key exactly.
func exprVertexID(ref ir.ExprRef) string {
	return strconv.FormatUint(uint64(ref), 10)
}

func vertexIDExpr(id string) ir.ExprRef {
	v, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		panic(err)
	}
	return ir.ExprRef(v)
}

// constraintEdge is one atomic-constraint connection in the constraint
// hypergraph (spec §4.C): From/To are free-symbol leaf vertex IDs, Weight
// carries the originating sub-constraint's ExprRef (losslessly
// representable as int64, since ExprRef is ≤32 bits).
type constraintEdge struct {
	From, To string
	Weight   int64
}

// constraintGraph is an undirected multigraph with self-loops, sized to
// exactly what the cluster extractor (§4.D) needs: add a vertex at most
// once, append one edge per leaf-pair or self-loop a split constraint
// touches, then iterate both sets once per Analyze call.
//
// Modeled on the teacher's core.Graph surface (HasVertex/AddVertex/AddEdge/
// Vertices/Edges, sorted deterministic iteration) but written fresh rather
// than imported: this domain never removes a vertex or edge, never queries
// degree, neighbors or adjacency lists, is always undirected, and is built
// once per Analyze call and then discarded — core.Graph's directed/mixed-
// edge support, per-edge ID generation and RWMutex-guarded concurrent
// access would all be unused machinery carried for no caller. The
// original_source Rust implementation makes the same sizing choice, using
// petgraph's plain `UnGraphMap` rather than a general adjacency-list type.
type constraintGraph struct {
	vertices map[string]struct{}
	edges    []constraintEdge
}

func newConstraintGraph() *constraintGraph {
	return &constraintGraph{vertices: make(map[string]struct{})}
}

func (g *constraintGraph) HasVertex(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

func (g *constraintGraph) AddVertex(id string) {
	g.vertices[id] = struct{}{}
}

func (g *constraintGraph) AddEdge(from, to string, weight int64) {
	g.edges = append(g.edges, constraintEdge{From: from, To: to, Weight: weight})
}

// Vertices returns every vertex ID in sorted order, matching the teacher's
// deterministic-iteration contract — spec §4.D's cluster ordering depends
// on iterating vertices in a stable order.
func (g *constraintGraph) Vertices() []string {
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (g *constraintGraph) Edges() []constraintEdge {
	return g.edges
}

// buildConstraintGraph implements spec §4.C: an undirected multigraph whose
// nodes are free-symbol leaves and whose edges are the atomic constraints
// connecting them.
//
// Two different constraints may connect the same pair of leaves (hence a
// multigraph, not a simple graph), and a single-leaf constraint still needs
// a self-loop edge so the cluster extractor (§4.D) can attach it to that
// leaf's component (spec §4.C rule 5).
func buildConstraintGraph(ctx *ir.Context, sys *ir.TransitionSystem, init bool) *constraintGraph {
	g := newConstraintGraph()

	for _, c := range sys.Constraints {
		for _, sub := range Split(ctx, c.Expr) {
			leaves := coneOfInfluence(ctx, sys, sub, init)
			if !init {
				leaves = filterOutStates(sys, leaves)
			}
			leaves = sortDedupRefs(leaves)
			if len(leaves) == 0 {
				continue
			}

			for _, l := range leaves {
				id := exprVertexID(l)
				if !g.HasVertex(id) {
					g.AddVertex(id)
				}
			}

			weight := int64(sub)
			// Clique among all leaves, plus a self-loop per leaf (spec §4.C
			// rule 5): mirrors extract_constraint_graph's pop-and-pair loop
			// in constraints.rs, which also always emits the self-loop.
			for i, a := range leaves {
				for _, b := range leaves[i+1:] {
					g.AddEdge(exprVertexID(a), exprVertexID(b), weight)
				}
				g.AddEdge(exprVertexID(a), exprVertexID(a), weight)
			}
		}
	}
	return g
}

func filterOutStates(sys *ir.TransitionSystem, leaves []ir.ExprRef) []ir.ExprRef {
	out := leaves[:0:0]
	for _, l := range leaves {
		if !sys.IsState(l) {
			out = append(out, l)
		}
	}
	return out
}

func sortDedupRefs(refs []ir.ExprRef) []ir.ExprRef {
	if len(refs) == 0 {
		return refs
	}
	cp := append([]ir.ExprRef(nil), refs...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:1]
	for _, r := range cp[1:] {
		if r != out[len(out)-1] {
			out = append(out, r)
		}
	}
	return out
}
