package input

import (
	"fmt"

	"github.com/cs-au-dk/incdom/utils"
	"github.com/cs-au-dk/incdom/utils/graph"
)

// Block is a basic block surrogate in a test CFG. Identity is pointer
// identity; the numeric id is used for parsing, printing and hashing.
type Block struct {
	id    int
	succs []*Block
	preds []*Block
}

func (b *Block) ID() int {
	return b.id
}

func (b *Block) String() string {
	return fmt.Sprintf("n%d", b.id)
}

// Hash returns a deterministic hash derived from the block id, so node-keyed
// state does not depend on allocation addresses.
func (b *Block) Hash() uint32 {
	return uint32(b.id) * 2654435761
}

func (b *Block) Equal(o *Block) bool {
	return b == o
}

// CFG is a mutable control-flow graph over numbered blocks. Arcs are stored
// on both endpoints so the graph exposes successor and predecessor iteration.
type CFG struct {
	entry  *Block
	blocks []*Block
}

// NewCFG creates a CFG with blocks numbered 1 through nodesNum and no arcs.
func NewCFG(nodesNum, entry int) *CFG {
	if entry < 1 || entry > nodesNum {
		panic(fmt.Errorf("entry %d outside node range 1..%d", entry, nodesNum))
	}

	cfg := &CFG{blocks: make([]*Block, nodesNum)}
	for i := range cfg.blocks {
		cfg.blocks[i] = &Block{id: i + 1}
	}
	cfg.entry = cfg.blocks[entry-1]
	return cfg
}

func (c *CFG) Entry() *Block {
	return c.entry
}

// Block returns the block with the given 1-based id.
func (c *CFG) Block(id int) *Block {
	if id < 1 || id > len(c.blocks) {
		panic(fmt.Errorf("block id %d outside node range 1..%d", id, len(c.blocks)))
	}
	return c.blocks[id-1]
}

func (c *CFG) Blocks() []*Block {
	return c.blocks
}

// Connect adds the arc from -> to.
func (c *CFG) Connect(from, to *Block) {
	from.succs = append(from.succs, to)
	to.preds = append(to.preds, from)
}

// Disconnect removes one occurrence of the arc from -> to. Removing an arc
// that is not present is a programmer error.
func (c *CFG) Disconnect(from, to *Block) {
	removeOne := func(l []*Block, b *Block) []*Block {
		for i, x := range l {
			if x == b {
				return append(l[:i:i], l[i+1:]...)
			}
		}
		panic(fmt.Errorf("arc %v -> %v is not in the CFG", from, to))
	}

	from.succs = removeOne(from.succs, to)
	to.preds = removeOne(to.preds, from)
}

// Graph exposes the CFG through the edge-relation adapter consumed by the
// graph algorithms. The returned value reads through to the CFG, so arcs
// added or removed later are observed.
func (c *CFG) Graph() graph.Directed[*Block] {
	return graph.Of[*Block](
		utils.HashableHasher[*Block](),
		func(b *Block) []*Block { return b.succs },
		func(b *Block) []*Block { return b.preds },
	)
}
