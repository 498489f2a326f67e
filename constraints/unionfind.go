package constraints

// unionFind is a disjoint-set structure over string keys (constraint-graph
// vertex IDs), adapted from prim_kruskal/kruskal.go's inline DSU: the same
// path-compression-on-find / union-by-rank discipline, generalized into a
// small reusable type so the cluster extractor (spec §4.D) can drive it
// directly instead of re-deriving Kruskal's closures.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

// newUnionFind seeds one singleton set per id in ids.
func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
		uf.rank[id] = 0
	}
	return uf
}

// find returns u's set representative, path-compressing along the way.
func (uf *unionFind) find(u string) string {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}
	return u
}

// union merges u's and v's sets. A self-loop (u == v) still calls find,
// which is a no-op union but confirms u participates in the structure —
// exactly the role spec §4.D assigns self-loop edges.
func (uf *unionFind) union(u, v string) {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return
	}
	if uf.rank[ru] < uf.rank[rv] {
		uf.parent[ru] = rv
	} else {
		uf.parent[rv] = ru
		if uf.rank[ru] == uf.rank[rv] {
			uf.rank[ru]++
		}
	}
}
