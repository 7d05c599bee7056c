package domtree

import (
	"github.com/cs-au-dk/incdom/utils/graph"
	"github.com/cs-au-dk/incdom/utils/hmap"
)

// dfsInfo holds the per-node facts discovered by a DFS over the CFG.
// A node acquires an entry as soon as it is observed as a successor; it is
// numbered only if the descend predicate lets the traversal follow it.
type dfsInfo[T any] struct {
	// Predecessors of the node among the arcs traversed by this DFS.
	// Self-loops are not recorded.
	preds []T
	// Preorder number, or -1 while the node is merely observed.
	num int
	// Parent in the DFS spanning tree.
	parent    T
	hasParent bool
	visited   bool
}

type dfsResult[T any] struct {
	// numToNode[i] is the node with preorder number i.
	numToNode []T
	info      *hmap.Map[T, *dfsInfo[T]]
}

func (res *dfsResult[T]) infoOf(n T) *dfsInfo[T] {
	if i, ok := res.info.GetOk(n); ok {
		return i
	}
	i := &dfsInfo[T]{num: -1}
	res.info.Set(n, i)
	return i
}

// runDFS numbers the nodes reachable from start in preorder, recording DFS
// parents and the predecessors seen along traversed arcs. The descend
// predicate is consulted for every observed arc to an unvisited node; when it
// returns false the arc is still recorded, but the child is not followed.
//
// Successors are pushed in reverse of their iteration order so the first
// listed successor is visited first. Updates restrict descent through this
// predicate, which keeps the traversal inside a level-bounded region or
// inside the unreachable part of the CFG.
func runDFS[T any](g graph.Directed[T], start T, descend func(parent, child T) bool) *dfsResult[T] {
	hasher := g.Hasher()
	res := &dfsResult[T]{info: hmap.NewMap[*dfsInfo[T]](hasher)}

	res.infoOf(start)
	worklist := []T{start}

	for len(worklist) > 0 {
		node := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		info := res.infoOf(node)
		if info.visited {
			continue
		}
		info.visited = true
		info.num = len(res.numToNode)
		res.numToNode = append(res.numToNode, node)

		succs := g.Succs(node)
		for i := len(succs) - 1; i >= 0; i-- {
			succ := succs[i]
			if hasher.Equal(succ, node) {
				continue
			}
			succInfo := res.infoOf(succ)
			succInfo.preds = append(succInfo.preds, node)
			if !succInfo.visited && descend(node, succ) {
				worklist = append(worklist, succ)
				succInfo.parent = node
				succInfo.hasParent = true
			}
		}
	}

	return res
}
