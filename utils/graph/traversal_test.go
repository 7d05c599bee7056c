package graph

import (
	"sort"
	"testing"
)

func collectBFS(G Directed[int], start int) []int {
	var order []int
	G.BFS(start, func(n int) bool {
		order = append(order, n)
		return false
	})
	return order
}

func TestBFSVisitsReachable(t *testing.T) {
	order := collectBFS(_sampleGraph, 0)

	sorted := append([]int{}, order...)
	sort.Ints(sorted)
	want := []int{0, 1, 2, 3, 4, 5}
	if len(sorted) != len(want) {
		t.Fatalf("visited %v, want %v", sorted, want)
	}
	for i, n := range want {
		if sorted[i] != n {
			t.Fatalf("visited %v, want %v", sorted, want)
		}
	}
	if order[0] != 0 {
		t.Errorf("BFS started at %d", order[0])
	}
}

func TestBFSStopsEarly(t *testing.T) {
	steps := 0
	stopped := _sampleGraph.BFS(0, func(n int) bool {
		steps++
		return n == 3
	})
	if !stopped {
		t.Error("search should have stopped early")
	}
	if steps > 5 {
		t.Errorf("visited %d nodes after the stop condition", steps)
	}
}

func TestExcluding(t *testing.T) {
	// Node 3 sits on every path from 1 to 5 once 2 is banned.
	view := _sampleGraph.Excluding(2)

	if view.BFS(0, func(n int) bool { return n == 4 }) {
		t.Error("4 should be unreachable without 2")
	}
	if !view.BFS(0, func(n int) bool { return n == 5 }) {
		t.Error("5 should stay reachable through 1 -> 3")
	}
	for _, p := range view.Preds(3) {
		if p == 2 {
			t.Error("banned node still appears among predecessors")
		}
	}
	if es := view.Succs(2); len(es) != 0 {
		t.Errorf("banned node still has successors: %v", es)
	}
}
