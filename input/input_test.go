package input

import (
	"strings"
	"testing"
)

const sampleSrc = `p 4 3 1 0
a 1 2
a 2 3
a 3 4
e
i 1 4
d 3 4
`

func TestParse(t *testing.T) {
	g, err := Parse(strings.NewReader(sampleSrc))
	if err != nil {
		t.Fatal(err)
	}

	if g.NodesNum != 4 || g.Entry != 1 {
		t.Errorf("header parsed as %d nodes, entry %d", g.NodesNum, g.Entry)
	}
	if len(g.Arcs) != 3 {
		t.Errorf("got %d arcs, want 3", len(g.Arcs))
	}
	want := []Update{{Insert, 1, 4}, {Delete, 3, 4}}
	if len(g.Updates) != len(want) {
		t.Fatalf("got %d updates, want %d", len(g.Updates), len(want))
	}
	for i, u := range want {
		if g.Updates[i] != u {
			t.Errorf("update %d parsed as %v, want %v", i, g.Updates[i], u)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct{ name, src, fragment string }{
		{"unknown action", "p 2 1 1 0\nx 1 2\n", "unknown action"},
		{"arc out of range", "p 2 1 1 0\na 1 3\n", "outside node range"},
		{"malformed arc", "p 2 1 1 0\na 1\n", "expected"},
		{"arc before header", "a 1 2\n", "before problem line"},
		{"bad header", "p 2 1\n", "malformed problem line"},
		{"missing header", "", "missing problem line"},
		{"bad entry", "p 2 1 5 0\n", "entry 5 outside"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.src)); err == nil {
				t.Error("expected a parse error")
			} else if !strings.Contains(err.Error(), tc.fragment) {
				t.Errorf("error %q does not mention %q", err, tc.fragment)
			}
		})
	}
}

func TestParseNamesTheLine(t *testing.T) {
	_, err := Parse(strings.NewReader("p 2 1 1 0\na 1 2\nq 0 0\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %v does not name line 3", err)
	}
}

func TestCFGMutation(t *testing.T) {
	g, err := Parse(strings.NewReader(sampleSrc))
	if err != nil {
		t.Fatal(err)
	}
	cfg := g.ToCFG()
	G := cfg.Graph()

	n3, n4 := cfg.Block(3), cfg.Block(4)
	if len(G.Succs(n3)) != 1 || G.Succs(n3)[0] != n4 {
		t.Errorf("succs(n3) = %v", G.Succs(n3))
	}
	if len(G.Preds(n4)) != 1 || G.Preds(n4)[0] != n3 {
		t.Errorf("preds(n4) = %v", G.Preds(n4))
	}

	for _, u := range g.Updates {
		g.Apply(cfg, u)
	}
	// After i 1 4 and d 3 4, n4 keeps exactly the arc from the entry.
	if preds := G.Preds(n4); len(preds) != 1 || preds[0] != cfg.Entry() {
		t.Errorf("preds(n4) = %v after updates", preds)
	}
	if succs := G.Succs(n3); len(succs) != 0 {
		t.Errorf("succs(n3) = %v after updates", succs)
	}
}

func TestDisconnectMissingArcPanics(t *testing.T) {
	cfg := NewCFG(2, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	cfg.Disconnect(cfg.Block(1), cfg.Block(2))
}
