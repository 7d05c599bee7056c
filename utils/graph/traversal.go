package graph

import (
	"github.com/cs-au-dk/incdom/utils/hmap"
	W "github.com/cs-au-dk/incdom/utils/worklist"
)

type traversalFunc[T any] func(node T) (stop bool)

// Performs a breadth-first search from the provided start nodes, calling the
// provided function (f) for every reachable node, stopping early if f returns
// true.
// Returns whether the search stopped early (as a result of f returning true).
func (G Directed[T]) BFSV(f traversalFunc[T], starts ...T) bool {
	visited := hmap.NewMap[struct{}](G.hasher)
	for _, start := range starts {
		visited.Set(start, struct{}{})
	}

	done := false
	W.StartV(starts, func(node T, add func(T)) {
		if done || f(node) {
			done = true
			return
		}

		for _, next := range G.Succs(node) {
			if !visited.Contains(next) {
				visited.Set(next, struct{}{})
				add(next)
			}
		}
	})

	return done
}

// Performs a breadth-first search from the provided start node, calling the
// provided function (f) for every reachable node, stopping early if f returns
// true.
// Returns whether the search stopped early (as a result of f returning true).
func (G Directed[T]) BFS(start T, f traversalFunc[T]) bool {
	return G.BFSV(f, start)
}
