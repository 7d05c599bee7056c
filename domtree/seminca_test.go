package domtree

import "testing"

func TestConstructionJoinBelowBranch(t *testing.T) {
	// n4 joins two paths that split at n2, not at the DFS parent chain.
	_, cfg, tree := mustParse(t, `p 5 5 1 0
a 1 2
a 2 3
a 3 4
a 2 5
a 5 4
e
`)

	if err := tree.Verify(Full); err != nil {
		t.Fatal(err)
	}
	checkIDoms(t, cfg, tree, map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 2})
	checkLevels(t, cfg, tree, map[int]int{4: 2})
}

func TestConstructionIrreducible(t *testing.T) {
	// The classic irreducible shape: a two-node cycle entered from both
	// sides, with a second cycle below it.
	_, cfg, tree := mustParse(t, `p 5 8 1 0
a 1 2
a 1 3
a 2 3
a 3 2
a 2 4
a 3 5
a 4 5
a 5 4
e
`)

	if err := tree.Verify(Full); err != nil {
		t.Fatal(err)
	}
	checkIDoms(t, cfg, tree, map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1})
	checkLevels(t, cfg, tree, map[int]int{2: 1, 3: 1, 4: 1, 5: 1})
}

func TestConstructionSkipsUnreachable(t *testing.T) {
	_, cfg, tree := mustParse(t, `p 5 3 1 0
a 1 2
a 3 4
a 4 5
e
`)

	if tree.Size() != 2 {
		t.Errorf("tracked %d nodes, want 2", tree.Size())
	}
	for _, id := range []int{3, 4, 5} {
		if tree.Contains(cfg.Block(id)) {
			t.Errorf("unreachable n%d is tracked", id)
		}
	}
}
