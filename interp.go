package main

import (
	"context"
	"errors"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Interp interprets one LLVM module. Instantiate one per run; the module
// and global table are read-only once execution starts, while locals and
// calls mutate as frames come and go.
type Interp struct {
	Core

	mod   *ir.Module
	entry string

	funcs   map[string]*ir.Func
	globals map[string]constant.Constant

	locals frame
	calls  []savedFrame
}

// A frame maps virtual register names to their current value. Values are
// kept in operand form and re-resolved on each read; instruction results
// land here as fresh constants.
type frame map[string]value.Value

// A callSite records where a suspended caller resumes once its callee
// returns: the instruction just past the call, and the register (if any)
// that receives the returned value.
type callSite struct {
	fn   *ir.Func
	blk  *ir.Block
	inst int
	dest string
}

type savedFrame struct {
	locals frame
	site   callSite
}

// outcome is what executing a block run yields: suspension at a call site,
// or a return out of the frame.
type outcome struct {
	call *ir.InstCall // non-nil: execution stopped just before a call
	blk  *ir.Block    // block holding that call
	next int          // instruction index past the call
	ret  value.Value  // resolved return value; nil for a void return
}

var errNoModule = errors.New("no module loaded")

// run is the top-level driver loop: execute a block run, then route the
// outcome through the explicit call stack.
func (in *Interp) run(ctx context.Context) error {
	if in.mod == nil {
		return errNoModule
	}
	if err := in.index(); err != nil {
		return err
	}

	fn := in.funcs[in.entry]
	if fn == nil || len(fn.Blocks) == 0 {
		return entryError(in.entry)
	}

	in.locals = make(frame)
	blk, inst := fn.Blocks[0], 0
	for {
		out := in.execBlock(ctx, fn, blk, inst)

		if out.call == nil {
			if len(in.calls) == 0 {
				return in.out.Flush()
			}
			top := in.calls[len(in.calls)-1]
			in.calls = in.calls[:len(in.calls)-1]
			in.locals = top.locals
			if out.ret != nil && top.site.dest != "" {
				in.locals[top.site.dest] = out.ret
			}
			fn, blk, inst = top.site.fn, top.site.blk, top.site.inst
			continue
		}

		call := out.call
		switch name := in.calleeName(call); {
		case in.funcs[name] != nil && len(in.funcs[name].Blocks) > 0:
			callee := in.funcs[name]
			in.calls = append(in.calls, savedFrame{
				locals: in.locals,
				site:   callSite{fn: fn, blk: out.blk, inst: out.next, dest: callDest(call)},
			})
			in.locals = in.bindParams(callee, call)
			fn, blk, inst = callee, callee.Blocks[0], 0
		case name == "printf":
			// The builtin resumes the suspended frame directly; no frame
			// round-trips the call stack.
			in.printf(call)
			blk, inst = out.blk, out.next
		default:
			in.halt(unsupportedError("call to unknown function @" + name))
		}
	}
}

// calleeName resolves the called symbol's name; only direct calls are in
// the covered subset.
func (in *Interp) calleeName(call *ir.InstCall) string {
	switch callee := call.Callee.(type) {
	case *ir.Func:
		return callee.Name()
	case *ir.Global:
		return callee.Name()
	}
	in.halt(unsupportedError("indirect call through " + call.Callee.Ident()))
	return ""
}

func callDest(call *ir.InstCall) string {
	if call.Type().Equal(types.Void) {
		return ""
	}
	return call.Ident()
}

// bindParams seeds the callee frame: each formal parameter binds its
// argument operand verbatim. Constants are the only operand form that
// survives the frame switch; a register-valued argument reads as undefined
// inside the callee.
func (in *Interp) bindParams(fn *ir.Func, call *ir.InstCall) frame {
	if len(call.Args) < len(fn.Params) {
		in.halt(unsupportedError("call to @" + fn.Name() + " with missing arguments"))
	}
	locals := make(frame, len(fn.Params))
	for i, param := range fn.Params {
		locals[param.Ident()] = call.Args[i]
	}
	return locals
}
