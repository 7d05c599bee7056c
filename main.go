package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/cs-au-dk/incdom/domtree"
	"github.com/cs-au-dk/incdom/input"
	"github.com/cs-au-dk/incdom/utils"
	"github.com/cs-au-dk/incdom/utils/dot"
)

func parseVerification(level string) domtree.Verification {
	switch level {
	case "basic":
		return domtree.Basic
	case "cfg":
		return domtree.Basic | domtree.CFG
	case "sibling":
		return domtree.Basic | domtree.Sibling
	case "olddt":
		return domtree.OldDT
	case "normal":
		return domtree.Normal
	case "full":
		return domtree.Full
	}
	log.Fatalln(fmt.Errorf("unknown verification level %q", level))
	return domtree.None
}

// applyUpdate pushes one parsed update into the CFG and the tree.
func applyUpdate(g *input.Graph, cfg *input.CFG, tree *domtree.Tree[*input.Block], u input.Update) (*input.Block, *input.Block) {
	from, to := g.Apply(cfg, u)
	if u.Op == input.Insert {
		tree.InsertArc(from, to)
	} else {
		tree.DeleteArc(from, to)
	}
	return from, to
}

func taskVerify(g *input.Graph) {
	green := utils.CanColorize(color.New(color.FgGreen).SprintFunc())
	red := utils.CanColorize(color.New(color.FgRed).SprintFunc())
	cyan := utils.CanColorize(color.New(color.FgCyan).SprintFunc())

	level := parseVerification(utils.Opts().VerifyLevel())
	cfg := g.ToCFG()
	tree := domtree.New(cfg.Graph(), cfg.Entry())

	check := func(step string) {
		if err := tree.Verify(level); err != nil {
			log.Fatalln(red(fmt.Sprintf("%s: %v", step, err)))
		}
		utils.VerbosePrint("%s\n", green(step))
	}

	check("construction")
	for i, u := range g.Updates {
		from, to := applyUpdate(g, cfg, tree, u)
		check(fmt.Sprintf("update %d: %v %v -> %v", i+1, u.Op, from, to))
	}

	fmt.Println(green("OK:"), "construction and", len(g.Updates), "updates verified on", cyan(utils.Opts().File()))
}

func taskPrint(g *input.Graph) {
	cfg := g.ToCFG()
	tree := domtree.New(cfg.Graph(), cfg.Entry())
	for _, u := range g.Updates {
		applyUpdate(g, cfg, tree, u)
	}
	tree.Print(os.Stdout)
}

func taskDot(g *input.Graph) {
	cfg := g.ToCFG()
	tree := domtree.New(cfg.Graph(), cfg.Entry())
	for _, u := range g.Updates {
		applyUpdate(g, cfg, tree, u)
	}

	dg := &dot.DotGraph{
		Name:  "incdom",
		Title: utils.Opts().File(),
	}
	nodes := map[*input.Block]*dot.DotNode{}
	for _, b := range cfg.Blocks() {
		n := &dot.DotNode{ID: b.String(), Attrs: dot.DotAttrs{}}
		if !tree.Contains(b) {
			n.Attrs["fillcolor"] = "lightgray"
		} else if b == cfg.Entry() {
			n.Attrs["fillcolor"] = "palegreen"
		}
		nodes[b] = n
		dg.Nodes = append(dg.Nodes, n)
	}
	for _, b := range cfg.Blocks() {
		for _, succ := range cfg.Graph().Succs(b) {
			dg.Edges = append(dg.Edges, &dot.DotEdge{From: nodes[b], To: nodes[succ], Attrs: dot.DotAttrs{}})
		}
		if tree.Contains(b) && b != cfg.Entry() {
			dg.Edges = append(dg.Edges, &dot.DotEdge{
				From:  nodes[tree.IDom(b)],
				To:    nodes[b],
				Attrs: dot.DotAttrs{"color": "red", "style": "dashed"},
			})
		}
	}

	outname := utils.Opts().Output()
	if outname == "" {
		outname = "incdom"
	}
	f, err := os.Create(outname + ".dot")
	if err != nil {
		log.Fatalln(err)
	}
	if err := dg.WriteDot(f); err != nil {
		f.Close()
		log.Fatalln(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln(err)
	}

	src, err := os.ReadFile(outname + ".dot")
	if err != nil {
		log.Fatalln(err)
	}
	img, err := dot.DotToImage(outname, utils.Opts().Format(), src)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Rendered", img)
}

func taskBench(g *input.Graph) {
	func() {
		defer utils.TimeTrack(time.Now(), "incremental maintenance")
		cfg := g.ToCFG()
		tree := domtree.New(cfg.Graph(), cfg.Entry())
		for _, u := range g.Updates {
			applyUpdate(g, cfg, tree, u)
		}
	}()

	func() {
		defer utils.TimeTrack(time.Now(), "from-scratch recomputation")
		cfg := g.ToCFG()
		tree := domtree.New(cfg.Graph(), cfg.Entry())
		for _, u := range g.Updates {
			g.Apply(cfg, u)
			tree = domtree.New(cfg.Graph(), cfg.Entry())
		}
		_ = tree
	}()
}

func main() {
	utils.ParseFlags()

	g, err := input.ParseFile(utils.Opts().File())
	if err != nil {
		log.Fatalln(err)
	}

	switch utils.Opts().Task() {
	case "verify":
		taskVerify(g)
	case "print":
		taskPrint(g)
	case "dot":
		taskDot(g)
	case "bench":
		taskBench(g)
	}
}
