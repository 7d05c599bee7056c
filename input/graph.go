package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// The textual graph format is line based:
//
//	p <nodes> <arcs> <entry> <dummy>
//	a <x> <y>          initial arc
//	e                  end of initial graph
//	i <x> <y>          later insertion update
//	d <x> <y>          later deletion update
//
// Node ids are 1-based. Lines are processed in file order.

type Op int

const (
	Insert Op = iota
	Delete
)

func (op Op) String() string {
	if op == Insert {
		return "insert"
	}
	return "delete"
}

// Update is a pending CFG mutation read from the input file.
type Update struct {
	Op       Op
	From, To int
}

// Graph is a parsed input graph: the initial arc set plus the update script.
type Graph struct {
	NodesNum int
	Entry    int
	Arcs     [][2]int
	Updates  []Update
}

// Parse reads the textual graph format. Errors name the offending line.
func Parse(r io.Reader) (*Graph, error) {
	g := &Graph{}
	seenHeader := false

	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		fields := strings.Fields(line)
		action := fields[0]

		readArc := func() (x, y int, err error) {
			if len(fields) != 3 {
				return 0, 0, fmt.Errorf("line %d: expected '%s <x> <y>', got %q", lineNum, action, line)
			}
			if _, err := fmt.Sscanf(fields[1]+" "+fields[2], "%d %d", &x, &y); err != nil {
				return 0, 0, fmt.Errorf("line %d: malformed arc %q", lineNum, line)
			}
			if x < 1 || x > g.NodesNum || y < 1 || y > g.NodesNum {
				return 0, 0, fmt.Errorf("line %d: arc %d -> %d outside node range 1..%d", lineNum, x, y, g.NodesNum)
			}
			return x, y, nil
		}

		switch action {
		case "p":
			if seenHeader {
				return nil, fmt.Errorf("line %d: duplicate problem line %q", lineNum, line)
			}
			var arcsNum, dummy int
			if n, err := fmt.Sscanf(line, "p %d %d %d %d", &g.NodesNum, &arcsNum, &g.Entry, &dummy); n != 4 || err != nil {
				return nil, fmt.Errorf("line %d: malformed problem line %q", lineNum, line)
			}
			if g.Entry < 1 || g.Entry > g.NodesNum {
				return nil, fmt.Errorf("line %d: entry %d outside node range 1..%d", lineNum, g.Entry, g.NodesNum)
			}
			g.Arcs = make([][2]int, 0, arcsNum)
			seenHeader = true

		case "a", "i", "d":
			if !seenHeader {
				return nil, fmt.Errorf("line %d: %q before problem line", lineNum, line)
			}
			x, y, err := readArc()
			if err != nil {
				return nil, err
			}
			switch action {
			case "a":
				g.Arcs = append(g.Arcs, [2]int{x, y})
			case "i":
				g.Updates = append(g.Updates, Update{Insert, x, y})
			case "d":
				g.Updates = append(g.Updates, Update{Delete, x, y})
			}

		case "e":
			// End of initial graph; updates follow.

		default:
			return nil, fmt.Errorf("line %d: unknown action %q", lineNum, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenHeader {
		return nil, fmt.Errorf("missing problem line")
	}

	return g, nil
}

// ParseFile reads a graph from the file at the given path.
func ParseFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ToCFG materializes the initial graph. Updates are not applied.
func (g *Graph) ToCFG() *CFG {
	cfg := NewCFG(g.NodesNum, g.Entry)
	for _, a := range g.Arcs {
		cfg.Connect(cfg.Block(a[0]), cfg.Block(a[1]))
	}
	return cfg
}

// Apply performs a single update on the CFG. The dominator tree of the CFG,
// if any, must be notified separately after this returns.
func (g *Graph) Apply(cfg *CFG, u Update) (from, to *Block) {
	from, to = cfg.Block(u.From), cfg.Block(u.To)
	if u.Op == Insert {
		cfg.Connect(from, to)
	} else {
		cfg.Disconnect(from, to)
	}
	return
}
