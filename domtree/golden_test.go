package domtree

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestPrintGolden(t *testing.T) {
	gold := goldie.New(t)

	g, cfg, tree := mustParse(t, `p 4 3 1 0
a 1 2
a 2 3
a 3 4
e
i 1 4
`)
	step(t, g, cfg, tree, g.Updates[0])

	gold.Assert(t, "linear-shortcut", []byte(tree.String()))
}
