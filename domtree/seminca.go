package domtree

// Source: https://www.cs.princeton.edu/research/techreps/TR-737-05 (Semi-NCA)

// semiNCA computes immediate dominators for every node numbered by the given
// DFS and installs them in the tree.
//
// The first pass runs over the nodes in reverse preorder and computes each
// node's semi-dominator: the smallest preorder number reachable through a
// predecessor by a path whose intermediate nodes are deeper in the DFS tree
// than the node itself. Labels compress the walked ancestor paths so repeated
// climbs stay cheap. The second pass runs in preorder and resolves each
// node's immediate dominator by climbing from its DFS parent while the
// parent's number exceeds the node's semi-dominator number.
//
// attachTo, when non-nil, hangs the DFS root under an existing tree node
// (used when a previously unreachable subgraph becomes reachable). When
// attachTo is nil and the DFS root is the tree root, the tree root is made
// its own idom; otherwise the DFS root keeps its current idom and level, and
// only its subtree is recomputed. minLevel is the level of the subtree root;
// it bounds label propagation during the semi-dominator search.
func (t *Tree[T]) semiNCA(dfs *dfsResult[T], subRoot T, minLevel int, attachTo *T) {
	n := len(dfs.numToNode)

	// Everything below indexes nodes by preorder number.
	parent := make([]int, n)
	idom := make([]int, n)
	sdom := make([]int, n)
	label := make([]int, n)
	for i := 0; i < n; i++ {
		sdom[i], label[i] = i, i
		if i > 0 {
			info := dfs.info.Get(dfs.numToNode[i])
			parentNum := dfs.info.Get(info.parent).num
			parent[i], idom[i] = parentNum, parentNum
		}
	}

	// Reverse preorder: semi-dominators. A predecessor that the DFS reached
	// first contributes its own number (its sdom entry is still untouched at
	// this point); a predecessor numbered later contributes the best label
	// on its tree path down to the current node's subtree.
	for i := n - 1; i >= 1; i-- {
		node := dfs.numToNode[i]
		for _, pred := range dfs.info.Get(node).preds {
			candidate := dfs.info.Get(pred).num
			if candidate > i {
				candidate = t.sdomCandidate(dfs, candidate, i, minLevel, parent, sdom, label)
			}
			if sdom[candidate] < sdom[i] {
				sdom[i] = sdom[candidate]
			}
		}
	}

	// Preorder: resolve semi-dominators to immediate dominators by walking
	// towards the root. Idoms of smaller numbers are already final.
	for i := 1; i < n; i++ {
		for idom[i] > sdom[i] {
			idom[i] = idom[idom[i]]
		}
	}

	// Install the subtree root, then the remaining nodes in preorder so that
	// every level computation sees its parent's level already updated.
	switch {
	case attachTo != nil:
		t.setIDom(subRoot, *attachTo)
		t.levels.Set(subRoot, t.levels.Get(*attachTo)+1)
	case t.hasher.Equal(subRoot, t.root):
		t.idoms.Set(t.root, t.root)
		t.levels.Set(t.root, 0)
	}

	for i := 1; i < n; i++ {
		node := dfs.numToNode[i]
		idomNode := dfs.numToNode[idom[i]]
		t.setIDom(node, idomNode)
		t.levels.Set(node, t.levels.Get(idomNode)+1)
		t.preorderParents.Set(node, dfs.info.Get(node).parent)
	}
}

// sdomCandidate walks the DFS tree from the given predecessor up to, but not
// into, the subtree entry at number limit, and returns the number holding the
// smallest semi-dominator seen on the path. The walk never crosses a node
// lying above minLevel, which keeps label propagation inside the subtree
// being recomputed. Visited path segments are label-compressed.
func (t *Tree[T]) sdomCandidate(dfs *dfsResult[T], predNum, limit, minLevel int, parent, sdom, label []int) int {
	path := []int{predNum}
	next := parent[predNum]
	for next > limit {
		if level, ok := t.levels.GetOk(dfs.numToNode[next]); ok && level < minLevel {
			break
		}
		path = append(path, next)
		next = parent[next]
	}

	for i := len(path) - 2; i >= 0; i-- {
		if sdom[label[path[i+1]]] < sdom[label[path[i]]] {
			label[path[i]] = label[path[i+1]]
		}
		// The label now covers the segment up to next, so later climbs from
		// this node can jump there directly.
		parent[path[i]] = next
	}

	return label[predNum]
}
