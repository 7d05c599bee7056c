package domtree

import (
	"github.com/cs-au-dk/incdom/utils/hmap"
	"github.com/cs-au-dk/incdom/utils/pq"
	"github.com/cs-au-dk/incdom/utils/worklist"
)

// InsertArc updates the tree after the arc from -> to was added to the CFG.
// The client must have added the arc before calling.
func (t *Tree[T]) InsertArc(from, to T) {
	t.inOutValid = false

	switch {
	case !t.Contains(from):
		// The arc lies inside the unreachable region. It matters only once
		// an insertion makes `from` reachable, and the DFS performed by that
		// insertion will discover it.
	case !t.Contains(to):
		t.insertUnreachable(from, to)
	default:
		t.insertReachable(from, to)
	}
}

// insertUnreachable attaches the subgraph that the new arc makes reachable.
// The DFS stays inside the unreachable region; arcs crossing back into the
// reachable region are collected and replayed as reachable insertions, since
// they may lower idoms inside the subtree that was just attached.
func (t *Tree[T]) insertUnreachable(from, to T) {
	var connecting [][2]T
	dfs := runDFS(t.g, to, func(parent, child T) bool {
		if t.Contains(child) {
			connecting = append(connecting, [2]T{parent, child})
			return false
		}
		return true
	})

	attachTo := from
	t.semiNCA(dfs, to, t.Level(from)+1, &attachTo)

	for _, arc := range connecting {
		t.insertReachable(arc[0], arc[1])
	}
}

// bucketElem orders the pending nodes of an insertion by tree level; the
// monotonic counter makes ties deterministic in discovery order.
type bucketElem[T any] struct {
	level int
	order int
	node  T
}

// insertReachable implements the depth-based search of Georgiadis, Italiano
// and Sridhar. Nodes whose idom must move up to the nearest common ancestor
// of the arc's endpoints are found by walking CFG successors, processing
// pending nodes shallowest first.
func (t *Tree[T]) insertReachable(from, to T) {
	nca := t.NCA(from, to)
	ncaLevel := t.Level(nca)
	// The new arc cannot lower any idom below the NCA.
	if t.Level(to) <= ncaLevel+1 {
		return
	}

	order := 0
	bucket := pq.Empty(func(a, b bucketElem[T]) bool {
		if a.level != b.level {
			return a.level < b.level
		}
		return a.order < b.order
	})
	affected := hmap.NewMap[struct{}](t.hasher)
	// Walked nodes, keyed to the deepest affected-node level they were
	// walked under; a later, deeper affected node must walk them again,
	// since more of their successors fall into its affected range.
	visited := hmap.NewMap[int](t.hasher)
	var affectedQueue []T

	enqueue := func(n T) {
		if !affected.Contains(n) {
			affected.Set(n, struct{}{})
			bucket.Add(bucketElem[T]{t.Level(n), order, n})
			order++
		}
	}
	enqueue(to)

	for !bucket.IsEmpty() {
		node := bucket.GetNext().node
		affectedQueue = append(affectedQueue, node)
		t.visitInsertion(node, t.Level(node), ncaLevel, enqueue, visited)
	}

	for _, node := range affectedQueue {
		t.setIDom(node, nca)
		t.levels.Set(node, ncaLevel+1)
	}
	t.updateLevels(affectedQueue)
}

// visitInsertion walks CFG successors from an affected node. Successors
// strictly deeper than the affected node are dominated by it and only need
// their levels refreshed later; successors at most as deep, but still below
// level(nca)+1, become affected themselves.
func (t *Tree[T]) visitInsertion(affectedNode T, rootLevel, ncaLevel int, enqueue func(T), visited *hmap.Map[T, int]) {
	stack := []T{affectedNode}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, succ := range t.g.Succs(node) {
			succLevel := t.Level(succ)
			if succLevel > rootLevel {
				if walked, ok := visited.GetOk(succ); !ok || walked < rootLevel {
					visited.Set(succ, rootLevel)
					stack = append(stack, succ)
				}
			} else if succLevel > ncaLevel+1 {
				enqueue(succ)
			}
		}
	}
}

// updateLevels refreshes the levels of everything dominated by the re-pointed
// nodes. After the update the affected nodes are all siblings under the NCA,
// so their subtrees are disjoint.
func (t *Tree[T]) updateLevels(affectedQueue []T) {
	worklist.StartV(affectedQueue, func(node T, add func(T)) {
		for _, child := range t.children.Get(node) {
			t.levels.Set(child, t.levels.Get(node)+1)
			add(child)
		}
	})
}
