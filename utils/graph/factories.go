package graph

import (
	"github.com/cs-au-dk/incdom/utils"

	"golang.org/x/tools/go/ssa"
)

// FromSSAFunction creates a Directed graph over the basic blocks of an SSA
// function, so a dominator tree can be maintained directly over the CFG that
// golang.org/x/tools produces.
func FromSSAFunction(fun *ssa.Function) Directed[*ssa.BasicBlock] {
	return Of[*ssa.BasicBlock](
		utils.PointerHasher[*ssa.BasicBlock]{},
		func(bb *ssa.BasicBlock) []*ssa.BasicBlock { return bb.Succs },
		func(bb *ssa.BasicBlock) []*ssa.BasicBlock { return bb.Preds },
	)
}
