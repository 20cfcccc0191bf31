package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/kr/pretty"
)

type interpDumper struct {
	in  *Interp
	out io.Writer
}

type funcSummary struct {
	Name   string
	Params int
	Blocks int
	Insts  int
}

// dump writes a post-run summary: module shape, the global table, surviving
// register bindings, and the suspended-frame count.
func (dump interpDumper) dump() {
	fmt.Fprintf(dump.out, "# Interpreter Dump\n")
	fmt.Fprintf(dump.out, "  entry: %v\n", dump.in.entry)
	fmt.Fprintf(dump.out, "  frames: %v suspended\n", len(dump.in.calls))

	dump.dumpFuncs()
	dump.dumpGlobals()
	dump.dumpLocals()
}

func (dump interpDumper) dumpFuncs() {
	if dump.in.mod == nil {
		return
	}
	fmt.Fprintf(dump.out, "# Functions\n")
	for _, fn := range dump.in.mod.Funcs {
		sum := funcSummary{Name: fn.Name(), Params: len(fn.Params), Blocks: len(fn.Blocks)}
		for _, blk := range fn.Blocks {
			sum.Insts += len(blk.Insts) + 1 // count the terminator
		}
		pretty.Fprintf(dump.out, "  %# v\n", sum)
	}
}

func (dump interpDumper) dumpGlobals() {
	fmt.Fprintf(dump.out, "# Globals\n")
	for _, name := range sortedKeys(dump.in.globals) {
		fmt.Fprintf(dump.out, "  @%v = %v\n", name, dump.in.globals[name])
	}
}

func (dump interpDumper) dumpLocals() {
	fmt.Fprintf(dump.out, "# Registers\n")
	for _, reg := range sortedKeys(dump.in.locals) {
		fmt.Fprintf(dump.out, "  %v = %v\n", reg, dump.in.locals[reg])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
