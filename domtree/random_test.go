package domtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs-au-dk/incdom/input"
)

// The randomized suite drives long update sequences on small dense graphs
// and checks, after every step, that the incrementally maintained tree is
// the one a from-scratch recomputation produces (along with the structural,
// parent and sibling properties).

type arc struct{ from, to int }

func TestRandomizedUpdates(t *testing.T) {
	rng := rand.New(rand.NewSource(0x1d0e))

	for round := 0; round < 30; round++ {
		round := round
		t.Run(fmt.Sprintf("round-%d", round), func(t *testing.T) {
			n := 6 + rng.Intn(7)
			present := map[arc]bool{}
			var all []arc
			for x := 1; x <= n; x++ {
				for y := 1; y <= n; y++ {
					if x != y {
						all = append(all, arc{x, y})
					}
				}
			}

			cfg := input.NewCFG(n, 1)
			for _, a := range all {
				if rng.Intn(n) < 2 {
					present[a] = true
					cfg.Connect(cfg.Block(a.from), cfg.Block(a.to))
				}
			}

			tree := New(cfg.Graph(), cfg.Entry())
			require.NoError(t, tree.Verify(Full))

			for step := 0; step < 40; step++ {
				var candidates []arc
				insert := rng.Intn(2) == 0
				for _, a := range all {
					if present[a] != insert {
						candidates = append(candidates, a)
					}
				}
				if len(candidates) == 0 {
					continue
				}
				a := candidates[rng.Intn(len(candidates))]
				from, to := cfg.Block(a.from), cfg.Block(a.to)

				if insert {
					present[a] = true
					cfg.Connect(from, to)
					tree.InsertArc(from, to)
				} else {
					delete(present, a)
					cfg.Disconnect(from, to)
					tree.DeleteArc(from, to)
				}

				op := "delete"
				if insert {
					op = "insert"
				}
				require.NoError(t, tree.Verify(Full),
					"round %d step %d: %s %v -> %v", round, step, op, from, to)
			}

			require.NoError(t, tree.VerifyNCA())
		})
	}
}

// Unreachable regions with internal structure must attach in one piece and
// detach in one piece.
func TestRandomizedReachabilityFlips(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		n := 10
		cfg := input.NewCFG(n, 1)
		// A reachable half and an initially disconnected half, each wired
		// randomly, with a single bridge arc that is repeatedly flipped.
		wire := func(lo, hi int) {
			for x := lo; x <= hi; x++ {
				for y := lo; y <= hi; y++ {
					if x != y && rng.Intn(3) == 0 {
						cfg.Connect(cfg.Block(x), cfg.Block(y))
					}
				}
			}
		}
		for x := 2; x <= n/2; x++ {
			cfg.Connect(cfg.Block(1), cfg.Block(x))
		}
		wire(2, n/2)
		wire(n/2+1, n)

		tree := New(cfg.Graph(), cfg.Entry())
		require.NoError(t, tree.Verify(Full))

		bridge := arc{1 + rng.Intn(n/2), n/2 + 1 + rng.Intn(n/2)}
		from, to := cfg.Block(bridge.from), cfg.Block(bridge.to)
		for flip := 0; flip < 4; flip++ {
			cfg.Connect(from, to)
			tree.InsertArc(from, to)
			require.NoError(t, tree.Verify(Full), "round %d flip %d: insert", round, flip)
			require.True(t, tree.Contains(to))

			cfg.Disconnect(from, to)
			tree.DeleteArc(from, to)
			require.NoError(t, tree.Verify(Full), "round %d flip %d: delete", round, flip)
		}
	}
}
