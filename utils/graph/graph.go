package graph

/*
	This package exposes utilities for working with directed graph structures.

	The caller provides the edge relations (successors and predecessors) as
	functions together with a hasher for the node type. Nothing is cached:
	the client may mutate the underlying graph between calls, and algorithms
	must always observe the current edge set.
*/

import (
	"github.com/benbjohnson/immutable"
)

type edgesOf[T any] func(node T) []T

// Directed describes a directed graph through its two edge relations.
// The node set is not materialized; algorithms discover nodes by traversal.
type Directed[T any] struct {
	hasher  immutable.Hasher[T]
	succsOf edgesOf[T]
	predsOf edgesOf[T]
}

func Of[T any](hasher immutable.Hasher[T], succsOf, predsOf edgesOf[T]) Directed[T] {
	return Directed[T]{hasher, succsOf, predsOf}
}

// Hasher exposes the node hasher so derived node-keyed containers can share it.
func (G Directed[T]) Hasher() immutable.Hasher[T] {
	return G.hasher
}

// Succs returns the successors of the given node.
func (G Directed[T]) Succs(node T) []T {
	return G.succsOf(node)
}

// Preds returns the predecessors of the given node.
func (G Directed[T]) Preds(node T) []T {
	return G.predsOf(node)
}

// Excluding derives a view of the graph in which the given node has been
// removed: no edge leads to or from it. The node itself can still be passed
// to Succs/Preds; it simply has no incident edges in the view.
func (G Directed[T]) Excluding(banned T) Directed[T] {
	filter := func(edges edgesOf[T]) edgesOf[T] {
		return func(node T) (ret []T) {
			if G.hasher.Equal(node, banned) {
				return nil
			}
			for _, e := range edges(node) {
				if !G.hasher.Equal(e, banned) {
					ret = append(ret, e)
				}
			}
			return
		}
	}

	return Directed[T]{G.hasher, filter(G.succsOf), filter(G.predsOf)}
}
