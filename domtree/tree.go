package domtree

/*
	Package domtree maintains the dominator tree of a rooted control-flow
	graph under arc insertions and deletions, without recomputing the tree
	from scratch on every change.

	The initial tree is built with the Semi-NCA algorithm over a DFS
	spanning tree of the CFG. Updates follow the depth-based search scheme
	of Georgiadis, Italiano and Sridhar: an arc insertion re-points the
	affected nodes at the nearest common ancestor of the arc's endpoints,
	and an arc deletion recomputes a level-bounded subtree (or removes the
	subtree that lost reachability).

	The tree only ever holds non-owning references to CFG nodes. The client
	mutates its CFG first and then reports the change through InsertArc or
	DeleteArc; the two must describe the same arc, and the CFG must not
	change otherwise between updates.
*/

import (
	"fmt"

	"github.com/benbjohnson/immutable"

	"github.com/cs-au-dk/incdom/utils/graph"
	"github.com/cs-au-dk/incdom/utils/hmap"
)

type inOutPair struct {
	in, out int
}

// Tree is the dominator tree of the subgraph reachable from a fixed root.
// A node is tracked exactly while it is reachable; unreachable nodes are
// unknown to the tree until an insertion connects them.
type Tree[T any] struct {
	g      graph.Directed[T]
	root   T
	hasher immutable.Hasher[T]

	// idoms maps every reachable node to its immediate dominator.
	// The root maps to itself.
	idoms *hmap.Map[T, T]
	// levels is depth in the dominator tree; 0 at the root.
	levels *hmap.Map[T, int]
	// children is the inverse of idoms, minus the root self-loop.
	// Slices keep insertion order, which makes traversals deterministic.
	children *hmap.Map[T, []T]
	// preorderParents records parents in the most recent DFS spanning tree
	// that visited each node.
	preorderParents *hmap.Map[T, T]

	// inOut caches preorder entry/exit counters of the dominator tree for
	// O(1) dominance queries. Rebuilt lazily after mutations.
	inOut      *hmap.Map[T, inOutPair]
	inOutValid bool
}

// New computes the dominator tree of the subgraph of g reachable from root.
func New[T any](g graph.Directed[T], root T) *Tree[T] {
	hasher := g.Hasher()
	t := &Tree[T]{
		g:               g,
		root:            root,
		hasher:          hasher,
		idoms:           hmap.NewMap[T](hasher),
		levels:          hmap.NewMap[int](hasher),
		children:        hmap.NewMap[[]T](hasher),
		preorderParents: hmap.NewMap[T](hasher),
		inOut:           hmap.NewMap[inOutPair](hasher),
	}
	t.computeReachable(root, 0)
	return t
}

// computeReachable (re)computes dominators for the subtree rooted at subRoot,
// descending only through nodes that are new or strictly below minLevel.
// With subRoot = root and minLevel = 0 this constructs the full tree.
func (t *Tree[T]) computeReachable(subRoot T, minLevel int) {
	dfs := runDFS(t.g, subRoot, func(_, child T) bool {
		level, ok := t.levels.GetOk(child)
		return !ok || level > minLevel
	})
	t.semiNCA(dfs, subRoot, minLevel, nil)
}

func (t *Tree[T]) Root() T {
	return t.root
}

// Size returns the number of reachable nodes.
func (t *Tree[T]) Size() int {
	return t.idoms.Len()
}

// Contains reports whether n is reachable from the root.
func (t *Tree[T]) Contains(n T) bool {
	return t.idoms.Contains(n)
}

// IDom returns the immediate dominator of n; the root is its own idom.
// Querying a node outside the tree is a programmer error.
func (t *Tree[T]) IDom(n T) T {
	idom, ok := t.idoms.GetOk(n)
	if !ok {
		panic(fmt.Errorf("IDom: %v is not reachable", n))
	}
	return idom
}

// Level returns the depth of n in the dominator tree; 0 at the root.
func (t *Tree[T]) Level(n T) int {
	level, ok := t.levels.GetOk(n)
	if !ok {
		panic(fmt.Errorf("Level: %v is not reachable", n))
	}
	return level
}

// PreorderParent returns n's parent in the spanning tree of the most recent
// CFG DFS that visited n, if that DFS did not start at n.
func (t *Tree[T]) PreorderParent(n T) (T, bool) {
	return t.preorderParents.GetOk(n)
}

// Children returns the nodes whose immediate dominator is n. The returned
// slice is owned by the tree and must not be modified.
func (t *Tree[T]) Children(n T) []T {
	return t.children.Get(n)
}

// NCA returns the nearest common ancestor of a and b in the dominator tree.
func (t *Tree[T]) NCA(a, b T) T {
	if !t.Contains(a) || !t.Contains(b) {
		panic(fmt.Errorf("NCA: %v or %v is not reachable", a, b))
	}

	for !t.hasher.Equal(a, b) {
		if t.Level(a) < t.Level(b) {
			b = t.IDom(b)
		} else {
			a = t.IDom(a)
		}
	}
	return a
}

// Dominates reports whether a dominates b, reflexively. Nodes outside the
// tree dominate nothing and are dominated by nothing. The in/out cache is
// rebuilt if a mutation invalidated it; Dominates is therefore not safe for
// concurrent use.
func (t *Tree[T]) Dominates(a, b T) bool {
	if !t.Contains(a) || !t.Contains(b) {
		return false
	}
	if !t.inOutValid {
		t.recomputeInOut()
	}

	aNums, bNums := t.inOut.Get(a), t.inOut.Get(b)
	return aNums.in <= bNums.in && bNums.out <= aNums.out
}

// recomputeInOut assigns entry/exit counters of a DFS over the dominator
// tree itself. The cache is never updated incrementally.
func (t *Tree[T]) recomputeInOut() {
	t.inOut = hmap.NewMap[inOutPair](t.hasher)

	type frame struct {
		node T
		next int
	}
	counter := 0
	stack := []frame{{t.root, 0}}
	t.inOut.Set(t.root, inOutPair{in: counter})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.children.Get(top.node)
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			counter++
			t.inOut.Set(child, inOutPair{in: counter})
			stack = append(stack, frame{child, 0})
			continue
		}

		counter++
		nums := t.inOut.Get(top.node)
		nums.out = counter
		t.inOut.Set(top.node, nums)
		stack = stack[:len(stack)-1]
	}

	t.inOutValid = true
}

func (t *Tree[T]) hasChild(n, child T) bool {
	for _, c := range t.children.Get(n) {
		if t.hasher.Equal(c, child) {
			return true
		}
	}
	return false
}

func (t *Tree[T]) addChild(n, child T) {
	t.children.Set(n, append(t.children.Get(n), child))
}

func (t *Tree[T]) removeChild(n, child T) {
	children := t.children.Get(n)
	for i, c := range children {
		if t.hasher.Equal(c, child) {
			t.children.Set(n, append(children[:i:i], children[i+1:]...))
			return
		}
	}
	panic(fmt.Errorf("%v is not a child of %v", child, n))
}

// setIDom installs or re-points the immediate dominator of n, keeping the
// children map in sync.
func (t *Tree[T]) setIDom(n, idom T) {
	if old, ok := t.idoms.GetOk(n); ok {
		if t.hasher.Equal(old, idom) {
			return
		}
		if !t.hasher.Equal(old, n) {
			t.removeChild(old, n)
		}
	}
	t.idoms.Set(n, idom)
	if !t.hasher.Equal(n, idom) {
		t.addChild(idom, n)
	}
}

// eraseNode forgets a node that lost reachability. The link from a surviving
// idom is removed eagerly; links among nodes erased in the same batch go away
// with their children entries.
func (t *Tree[T]) eraseNode(n T) {
	if idom, ok := t.idoms.GetOk(n); ok && !t.hasher.Equal(idom, n) && t.idoms.Contains(idom) {
		t.removeChild(idom, n)
	}
	t.idoms.Delete(n)
	t.levels.Delete(n)
	t.preorderParents.Delete(n)
	t.children.Delete(n)
}
