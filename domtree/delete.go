package domtree

// DeleteArc updates the tree after the arc from -> to was removed from the
// CFG. The client must have removed the arc before calling.
func (t *Tree[T]) DeleteArc(from, to T) {
	t.inOutValid = false

	if !t.Contains(from) || t.hasher.Equal(to, t.root) {
		return
	}
	// A back arc: the target dominates the source, so every path through the
	// arc already visited the target. Nothing can change.
	if t.hasher.Equal(t.NCA(from, to), to) {
		return
	}

	if t.hasProperSupport(to) {
		t.deleteReachable(from, to)
	} else {
		t.deleteUnreachable(to)
	}
}

// hasProperSupport reports whether n is still reachable: some predecessor
// must be reachable without passing through n, i.e. not be dominated by it.
func (t *Tree[T]) hasProperSupport(n T) bool {
	for _, pred := range t.g.Preds(n) {
		if !t.Contains(pred) {
			continue
		}
		if !t.hasher.Equal(t.NCA(pred, n), n) {
			return true
		}
	}
	return false
}

// deleteReachable handles a deletion that leaves the target reachable. Only
// nodes inside the subtree of the target's current idom can acquire new
// dominators, so a level-bounded Semi-NCA over that subtree restores the
// tree.
func (t *Tree[T]) deleteReachable(from, to T) {
	subRoot := t.IDom(to)
	t.computeReachable(subRoot, t.Level(subRoot))
}

// deleteUnreachable removes the subtree of a target that lost reachability.
// The DFS from the target, descending only through strictly deeper nodes,
// visits exactly the dominator-tree subtree of the target; arcs leaving it
// mark surviving nodes whose idoms may have to move down, so the subtree
// under the nearest common ancestor of all of them is recomputed.
func (t *Tree[T]) deleteUnreachable(to T) {
	toLevel := t.Level(to)
	var boundary []T
	dfs := runDFS(t.g, to, func(_, child T) bool {
		if t.Level(child) > toLevel {
			return true
		}
		boundary = append(boundary, child)
		return false
	})

	minNode := to
	for _, b := range boundary {
		minNode = t.NCA(minNode, b)
	}

	for i := len(dfs.numToNode) - 1; i >= 0; i-- {
		t.eraseNode(dfs.numToNode[i])
	}

	if t.hasher.Equal(minNode, to) {
		return
	}
	t.computeReachable(minNode, t.Level(minNode))
}
