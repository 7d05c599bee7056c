package utils

import (
	"flag"
	"fmt"
	"log"
	"strings"
)

type options struct {
	file        string
	task        string
	verifyLevel string
	format      string
	output      string
	noColorize  bool
	verbose     bool
}

var opts options

var task = []struct{ flag, explanation string }{{
	"verify",
	"Applies every update incrementally, verifying the dominator tree after each step",
}, {
	"print",
	"Applies every update incrementally and prints the final dominator tree",
}, {
	"dot",
	"Renders the final CFG and its dominator tree via graphviz",
}, {
	"bench",
	"Times incremental maintenance against from-scratch recomputation at every step",
}}

func taskList() string {
	strs := make([]string, 0, len(task))
	for _, t := range task {
		strs = append(strs, t.flag+" -- "+t.explanation)
	}
	return strings.Join(strs, "\n")
}

// ParseFlags registers and parses the command line options.
func ParseFlags() {
	flag.StringVar(&opts.file, "file", "", "Input graph file in the textual p/a/e/i/d format")
	flag.StringVar(&opts.task, "task", "verify", "Task to perform:\n"+taskList())
	flag.StringVar(&opts.verifyLevel, "verify-level", "full", "Verification level: basic, cfg, sibling, olddt, normal or full")
	flag.StringVar(&opts.format, "format", "svg", "Output image format for the dot task")
	flag.StringVar(&opts.output, "output", "", "Output file name prefix for the dot task")
	flag.BoolVar(&opts.noColorize, "no-colorize", false, "Disable colored terminal output")
	flag.BoolVar(&opts.verbose, "verbose", false, "Print extra progress information")
	flag.Parse()

	if opts.file == "" {
		log.Fatalln("No input graph. Provide one with -file")
	}
	found := false
	for _, t := range task {
		found = found || t.flag == opts.task
	}
	if !found {
		log.Fatalln(fmt.Errorf("unknown task %q", opts.task))
	}
}

func Opts() options { return opts }

func (o options) File() string        { return o.file }
func (o options) Task() string        { return o.task }
func (o options) VerifyLevel() string { return o.verifyLevel }
func (o options) Format() string      { return o.format }
func (o options) Output() string      { return o.output }
func (o options) Verbose() bool       { return o.verbose }
