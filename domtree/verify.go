package domtree

import (
	"errors"
	"fmt"

	"github.com/spakin/disjoint"

	"github.com/cs-au-dk/incdom/utils/hmap"
)

// Verification selects which properties Verify checks. Levels combine as a
// bitmask; higher levels are increasingly expensive.
type Verification uint

const (
	// Basic checks the structural invariants: tree shape, level
	// consistency and children consistency.
	Basic Verification = 1 << iota
	// CFG checks the tree against CFG semantics: the tracked nodes are
	// exactly the reachable ones, and removing any node's idom from the
	// CFG disconnects the node (the parent property).
	CFG
	// Sibling checks that no dominator-tree sibling dominates another.
	Sibling
	// OldDT compares the tree against a full from-scratch recomputation.
	OldDT
)

const (
	None   Verification = 0
	Normal              = Basic | CFG | OldDT
	Full                = Basic | CFG | Sibling | OldDT
)

// Verification failures carry one of these sentinel categories, so a caller
// can tell precisely which invariant broke.
var (
	ErrTreeShape       = errors.New("idoms do not form a tree rooted at the entry")
	ErrLevels          = errors.New("levels are inconsistent with dominator tree depth")
	ErrChildren        = errors.New("children map is inconsistent with idoms")
	ErrReachability    = errors.New("tracked nodes differ from the CFG-reachable nodes")
	ErrParentProperty  = errors.New("parent property violated")
	ErrSiblingProperty = errors.New("sibling property violated")
	ErrOldDT           = errors.New("tree differs from a from-scratch recomputation")
	ErrNCA             = errors.New("nca disagrees with offline Tarjan LCA")
)

// Verify checks the selected properties and returns the first failure found,
// wrapped around its sentinel category, or nil.
func (t *Tree[T]) Verify(level Verification) error {
	if level&Basic != 0 {
		if err := t.verifyTreeShape(); err != nil {
			return err
		}
		if err := t.verifyLevels(); err != nil {
			return err
		}
		if err := t.verifyChildren(); err != nil {
			return err
		}
	}
	if level&CFG != 0 {
		if err := t.verifyReachability(); err != nil {
			return err
		}
		if err := t.verifyParentProperty(); err != nil {
			return err
		}
	}
	if level&Sibling != 0 {
		if err := t.verifySiblingProperty(); err != nil {
			return err
		}
	}
	if level&OldDT != 0 {
		if err := t.verifyWithOldDT(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree[T]) verifyTreeShape() error {
	if !t.Contains(t.root) || !t.hasher.Equal(t.IDom(t.root), t.root) {
		return fmt.Errorf("%w: root %v is not its own idom", ErrTreeShape, t.root)
	}

	size := t.Size()
	var err error
	t.idoms.ForEach(func(node, idom T) {
		if err != nil {
			return
		}
		if !t.Contains(idom) {
			err = fmt.Errorf("%w: idom of %v is the untracked node %v", ErrTreeShape, node, idom)
			return
		}
		// The idom chain must reach the root without cycling.
		steps := 0
		for cur := node; !t.hasher.Equal(cur, t.root); cur = t.IDom(cur) {
			if steps++; steps > size {
				err = fmt.Errorf("%w: idom chain from %v cycles", ErrTreeShape, node)
				return
			}
		}
	})
	return err
}

// VerifyLevels checks level consistency on its own: the root at level 0 and
// every other node exactly one level below its idom. Verify(Basic) includes
// this check; the standalone entry point exists for callers that track
// levels across updates and want the cheapest possible probe.
func (t *Tree[T]) VerifyLevels() error {
	return t.verifyLevels()
}

func (t *Tree[T]) verifyLevels() error {
	var err error
	t.idoms.ForEach(func(node, idom T) {
		if err != nil {
			return
		}
		switch {
		case t.hasher.Equal(node, t.root):
			if t.Level(node) != 0 {
				err = fmt.Errorf("%w: root %v has level %d", ErrLevels, node, t.Level(node))
			}
		case t.Level(node) != t.Level(idom)+1:
			err = fmt.Errorf("%w: %v has level %d under idom %v with level %d",
				ErrLevels, node, t.Level(node), idom, t.Level(idom))
		}
	})
	return err
}

func (t *Tree[T]) verifyChildren() error {
	childCount := 0
	var err error
	t.children.ForEach(func(node T, children []T) {
		if err != nil {
			return
		}
		childCount += len(children)
		for _, c := range children {
			if t.hasher.Equal(c, t.root) {
				err = fmt.Errorf("%w: root %v is a child of %v", ErrChildren, c, node)
				return
			}
			if !t.Contains(c) || !t.hasher.Equal(t.IDom(c), node) {
				err = fmt.Errorf("%w: %v is a child of %v but its idom is not", ErrChildren, c, node)
				return
			}
		}
	})
	if err != nil {
		return err
	}

	t.idoms.ForEach(func(node, idom T) {
		if err == nil && !t.hasher.Equal(node, t.root) && !t.hasChild(idom, node) {
			err = fmt.Errorf("%w: %v is missing from the children of its idom %v", ErrChildren, node, idom)
		}
	})
	if err != nil {
		return err
	}

	if childCount != t.Size()-1 {
		return fmt.Errorf("%w: %d children for %d non-root nodes", ErrChildren, childCount, t.Size()-1)
	}
	return nil
}

func (t *Tree[T]) verifyReachability() error {
	reachable := hmap.NewMap[struct{}](t.hasher)
	t.g.BFS(t.root, func(node T) bool {
		reachable.Set(node, struct{}{})
		return false
	})

	if reachable.Len() != t.Size() {
		return fmt.Errorf("%w: %d reachable vs %d tracked", ErrReachability, reachable.Len(), t.Size())
	}
	var err error
	reachable.ForEach(func(node T, _ struct{}) {
		if err == nil && !t.Contains(node) {
			err = fmt.Errorf("%w: reachable node %v is not tracked", ErrReachability, node)
		}
	})
	return err
}

// verifyParentProperty checks that removing idom(n) from the CFG makes n
// unreachable, for every tracked n. Removing the root trivially disconnects
// everything, so nodes sitting directly below it are skipped.
func (t *Tree[T]) verifyParentProperty() error {
	var err error
	t.idoms.ForEach(func(node, idom T) {
		if err != nil || t.hasher.Equal(node, t.root) || t.hasher.Equal(idom, t.root) {
			return
		}
		reached := t.g.Excluding(idom).BFS(t.root, func(cur T) bool {
			return t.hasher.Equal(cur, node)
		})
		if reached {
			err = fmt.Errorf("%w: %v stays reachable without its idom %v", ErrParentProperty, node, idom)
		}
	})
	return err
}

// verifySiblingProperty checks that no sibling dominates another: for every
// tracked node a, all siblings of a must stay reachable with a removed.
func (t *Tree[T]) verifySiblingProperty() error {
	var err error
	t.children.ForEach(func(_ T, siblings []T) {
		if err != nil || len(siblings) < 2 {
			return
		}
		for _, excluded := range siblings {
			view := t.g.Excluding(excluded)
			reached := hmap.NewMap[struct{}](t.hasher)
			view.BFS(t.root, func(cur T) bool {
				reached.Set(cur, struct{}{})
				return false
			})
			for _, sibling := range siblings {
				if t.hasher.Equal(sibling, excluded) {
					continue
				}
				if !reached.Contains(sibling) {
					err = fmt.Errorf("%w: removing %v disconnects its sibling %v",
						ErrSiblingProperty, excluded, sibling)
					return
				}
			}
		}
	})
	return err
}

func (t *Tree[T]) verifyWithOldDT() error {
	fresh := New(t.g, t.root)
	if fresh.Size() != t.Size() {
		return fmt.Errorf("%w: %d tracked vs %d recomputed", ErrOldDT, t.Size(), fresh.Size())
	}
	var err error
	t.idoms.ForEach(func(node, idom T) {
		if err != nil {
			return
		}
		if !fresh.Contains(node) {
			err = fmt.Errorf("%w: %v is tracked but not reachable", ErrOldDT, node)
		} else if freshIDom := fresh.IDom(node); !t.hasher.Equal(freshIDom, idom) {
			err = fmt.Errorf("%w: idom of %v is %v, recomputation says %v", ErrOldDT, node, idom, freshIDom)
		}
	})
	return err
}

// VerifyNCA cross-checks the climbing NCA query for every pair of tracked
// nodes against Tarjan's offline LCA over the dominator tree, with
// union-find by rank and path compression.
func (t *Tree[T]) VerifyNCA() error {
	elems := hmap.NewMap[*disjoint.Element](t.hasher)
	var finished []T

	var err error
	var walk func(node T)
	walk = func(node T) {
		elem := disjoint.NewElement()
		elem.Data = node
		elems.Set(node, elem)

		for _, child := range t.children.Get(node) {
			walk(child)
			disjoint.Union(elem, elems.Get(child))
			elems.Get(node).Find().Data = node
		}

		for _, other := range finished {
			lca := elems.Get(other).Find().Data.(T)
			if err == nil && !t.hasher.Equal(lca, t.NCA(node, other)) {
				err = fmt.Errorf("%w: nca(%v, %v) = %v, offline says %v",
					ErrNCA, node, other, t.NCA(node, other), lca)
			}
		}
		finished = append(finished, node)
	}
	walk(t.root)
	return err
}
