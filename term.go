package main

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// terminate evaluates blk's terminator, yielding either the next block
// within the same function or a return outcome. A returned operand is
// resolved against the current (callee) frame here, before the driver
// unwinds it; propagating the operand verbatim would dangle callee-local
// register names into the caller's frame.
func (in *Interp) terminate(blk *ir.Block) (*ir.Block, outcome) {
	switch term := blk.Term.(type) {
	case *ir.TermRet:
		if term.X == nil {
			return nil, outcome{}
		}
		return nil, outcome{ret: in.resolve(term.X)}

	case *ir.TermBr:
		return in.block(term.Target), outcome{}

	case *ir.TermCondBr:
		switch cond := in.intVal(term.Cond); cond {
		case 1:
			return in.block(term.TargetTrue), outcome{}
		case 0:
			return in.block(term.TargetFalse), outcome{}
		default:
			in.halt(unsupportedError(fmt.Sprintf("conditional branch on %v", cond)))
		}

	case *ir.TermSwitch:
		bits := in.intWidth(term.X.Type())
		key := maskTo(in.intVal(term.X), bits)
		for _, c := range term.Cases {
			if maskTo(in.intVal(c.X), bits) == key {
				return in.block(c.Target), outcome{}
			}
		}
		return in.block(term.TargetDefault), outcome{}

	default:
		in.halt(unsupportedError("terminator " + term.LLString()))
	}
	return nil, outcome{}
}

func (in *Interp) block(v value.Value) *ir.Block {
	blk, ok := v.(*ir.Block)
	if !ok {
		in.halt(unsupportedError("branch target " + v.Ident()))
	}
	return blk
}
