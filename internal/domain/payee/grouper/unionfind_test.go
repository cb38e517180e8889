package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisjointSetStartsAsSingletons(t *testing.T) {
	ds := newDisjointSet(4)
	assert.Equal(t, [][]int{{0}, {1}, {2}, {3}}, ds.sets())
}

func TestDisjointSetUnionIsTransitive(t *testing.T) {
	ds := newDisjointSet(5)
	ds.union(0, 1)
	ds.union(1, 2)

	assert.Equal(t, ds.find(0), ds.find(2))
	assert.NotEqual(t, ds.find(0), ds.find(3))
	assert.Equal(t, [][]int{{0, 1, 2}, {3}, {4}}, ds.sets())
}

func TestDisjointSetUnionIsIdempotent(t *testing.T) {
	ds := newDisjointSet(3)
	ds.union(0, 2)
	ds.union(2, 0)
	ds.union(0, 2)

	assert.Equal(t, [][]int{{0, 2}, {1}}, ds.sets())
}

func TestDisjointSetOrderIndependence(t *testing.T) {
	links := [][2]int{{0, 1}, {2, 3}, {1, 2}, {5, 6}}

	forward := newDisjointSet(7)
	for _, l := range links {
		forward.union(l[0], l[1])
	}

	backward := newDisjointSet(7)
	for i := len(links) - 1; i >= 0; i-- {
		backward.union(links[i][1], links[i][0])
	}

	assert.Equal(t, forward.sets(), backward.sets())
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4}, {5, 6}}, forward.sets())
}
