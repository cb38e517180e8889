package grouper

import "sort"

// disjointSet is a classic union-find over row indices with path compression
// and union-by-rank. Set membership does not depend on the order unions are
// applied, which is what lets the pairwise comparisons run concurrently.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

// find returns the representative of x, compressing the path on the way up.
func (ds *disjointSet) find(x int) int {
	root := x
	for ds.parent[root] != root {
		root = ds.parent[root]
	}
	for ds.parent[x] != root {
		ds.parent[x], x = root, ds.parent[x]
	}
	return root
}

// union merges the sets containing a and b, attaching the shallower tree
// under the deeper one.
func (ds *disjointSet) union(a, b int) {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
}

// sets returns the equivalence classes. Classes are ordered by their
// smallest member and members ascend within a class, so output order is a
// pure function of the input order.
func (ds *disjointSet) sets() [][]int {
	byRoot := make(map[int][]int)
	for i := range ds.parent {
		root := ds.find(i)
		byRoot[root] = append(byRoot[root], i)
	}

	classes := make([][]int, 0, len(byRoot))
	for _, members := range byRoot {
		sort.Ints(members)
		classes = append(classes, members)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i][0] < classes[j][0]
	})
	return classes
}
