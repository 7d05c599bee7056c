package graph_test

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/cs-au-dk/incdom/domtree"
	"github.com/cs-au-dk/incdom/utils/graph"
)

const src = `package p

func abs(x int) int {
	if x < 0 {
		x = -x
	}
	for i := 0; i < x; i++ {
		if i%2 == 0 {
			x++
		}
	}
	return x
}
`

func buildSSA(t *testing.T) *ssa.Function {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	pkg, _, err := ssautil.BuildPackage(
		&types.Config{Importer: importer.Default()},
		fset, types.NewPackage("p", ""), []*ast.File{file},
		ssa.SanityCheckFunctions)
	if err != nil {
		t.Fatal(err)
	}
	return pkg.Func("abs")
}

func TestDominatorsOverSSACFG(t *testing.T) {
	fun := buildSSA(t)
	G := graph.FromSSAFunction(fun)
	entry := fun.Blocks[0]

	tree := domtree.New(G, entry)
	if err := tree.Verify(domtree.Full); err != nil {
		t.Fatal(err)
	}

	for _, bb := range fun.Blocks {
		if !tree.Contains(bb) {
			continue
		}
		if !tree.Dominates(entry, bb) {
			t.Errorf("entry does not dominate %v", bb)
		}
		// The SSA package computes its own dominator tree; ours must agree.
		if idom := bb.Idom(); idom != nil && tree.IDom(bb) != idom {
			t.Errorf("idom(%v) = %v, ssa says %v", bb, tree.IDom(bb), idom)
		}
	}
}
