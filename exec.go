package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// execBlock executes blk from instruction index start, following in-frame
// terminators, until it either suspends at a call or returns out of the
// frame. The driver owns resume bookkeeping, so the call itself is not
// advanced past here.
func (in *Interp) execBlock(ctx context.Context, fn *ir.Func, blk *ir.Block, start int) outcome {
	for {
		if err := ctx.Err(); err != nil {
			in.halt(err)
		}
		for i := start; i < len(blk.Insts); i++ {
			inst := blk.Insts[i]
			if in.logfn != nil {
				in.logf("@", "%v.%v %v", fn.Name(), blk.Name(), inst.LLString())
			}
			if call, ok := inst.(*ir.InstCall); ok {
				return outcome{call: call, blk: blk, next: i + 1}
			}
			in.step(inst)
		}
		if in.logfn != nil {
			in.logf("@", "%v.%v %v", fn.Name(), blk.Name(), blk.Term.LLString())
		}
		next, out := in.terminate(blk)
		if next == nil {
			return out
		}
		blk, start = next, 0
	}
}

// step dispatches one non-call instruction, writing at most one register.
func (in *Interp) step(inst ir.Instruction) {
	switch inst := inst.(type) {
	case *ir.InstAlloca:
		// Reserves a register name only; the first store materialises it.
	case *ir.InstStore:
		in.store(inst.Dst, inst.Src)
	case *ir.InstLoad:
		in.bind(inst.Ident(), in.regValue(inst.Src))
	case *ir.InstAdd:
		in.intBinop(inst.Ident(), opAdd, inst.X, inst.Y)
	case *ir.InstSub:
		in.intBinop(inst.Ident(), opSub, inst.X, inst.Y)
	case *ir.InstMul:
		in.intBinop(inst.Ident(), opMul, inst.X, inst.Y)
	case *ir.InstUDiv:
		in.intBinop(inst.Ident(), opUDiv, inst.X, inst.Y)
	case *ir.InstSDiv:
		in.intBinop(inst.Ident(), opSDiv, inst.X, inst.Y)
	case *ir.InstURem:
		in.intBinop(inst.Ident(), opURem, inst.X, inst.Y)
	case *ir.InstSRem:
		in.intBinop(inst.Ident(), opSRem, inst.X, inst.Y)
	case *ir.InstFAdd:
		in.floatBinop(inst.Ident(), opAdd, inst.X, inst.Y)
	case *ir.InstFSub:
		in.floatBinop(inst.Ident(), opSub, inst.X, inst.Y)
	case *ir.InstFMul:
		in.floatBinop(inst.Ident(), opMul, inst.X, inst.Y)
	case *ir.InstFDiv:
		in.floatBinop(inst.Ident(), opDiv, inst.X, inst.Y)
	case *ir.InstSExt:
		in.extend(inst.Ident(), inst.From, inst.To, true)
	case *ir.InstZExt:
		in.extend(inst.Ident(), inst.From, inst.To, false)
	case *ir.InstFPExt:
		in.fpext(inst.Ident(), inst.From, inst.To)
	case *ir.InstICmp:
		in.icmp(inst.Ident(), inst.Pred, inst.X, inst.Y)
	default:
		in.halt(unsupportedError("instruction " + inst.LLString()))
	}
}

// store rebinds the destination register to the stored value. Locals are
// register rebinds here, not memory writes: the covered C subset generates
// no pointer arithmetic into locals, so an aliased store cannot be
// observed. Growing past that subset needs a byte-addressable local store.
func (in *Interp) store(dst, src value.Value) {
	if _, ok := dst.(constant.Constant); ok {
		in.halt(unsupportedError("store through " + dst.Ident()))
	}
	if _, ok := src.(constant.Constant); ok {
		in.bind(dst.Ident(), src)
		return
	}
	in.bind(dst.Ident(), in.regValue(src))
}

type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
	opUDiv
	opSDiv
	opURem
	opSRem
)

var errDivideByZero = errors.New("integer division by zero")

// intBinop performs width-correct integer arithmetic at the operand's
// declared bit width and stores a fresh constant of that exact width.
func (in *Interp) intBinop(dest string, op binOp, x, y value.Value) {
	bits := in.intWidth(x.Type())
	a, b := in.intVal(x), in.intVal(y)

	var res uint64
	switch bits {
	case 32:
		res = uint64(in.intOp32(op, uint32(a), uint32(b)))
	case 64:
		res = in.intOp64(op, a, b)
	default:
		in.halt(unsupportedError(fmt.Sprintf("%v-bit integer arithmetic", bits)))
	}
	in.bind(dest, newInt(x.Type().(*types.IntType), res))
}

func (in *Interp) intOp32(op binOp, a, b uint32) uint32 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opUDiv:
		in.checkDiv(uint64(b))
		return a / b
	case opSDiv:
		in.checkDiv(uint64(b))
		return uint32(int32(a) / int32(b))
	case opURem:
		in.checkDiv(uint64(b))
		return a % b
	case opSRem:
		in.checkDiv(uint64(b))
		return uint32(int32(a) % int32(b))
	}
	panic("unreachable")
}

func (in *Interp) intOp64(op binOp, a, b uint64) uint64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opUDiv:
		in.checkDiv(b)
		return a / b
	case opSDiv:
		in.checkDiv(b)
		return uint64(int64(a) / int64(b))
	case opURem:
		in.checkDiv(b)
		return a % b
	case opSRem:
		in.checkDiv(b)
		return uint64(int64(a) % int64(b))
	}
	panic("unreachable")
}

func (in *Interp) checkDiv(b uint64) {
	if b == 0 {
		in.halt(errDivideByZero)
	}
}

// floatBinop performs IEEE arithmetic at the operand's declared FP kind.
func (in *Interp) floatBinop(dest string, op binOp, x, y value.Value) {
	switch kind := in.floatKind(x.Type()); kind {
	case types.FloatKindFloat:
		res := in.floatOp(op, float64(in.float32Val(x)), float64(in.float32Val(y)))
		in.bind(dest, constant.NewFloat(types.Float, float64(float32(res))))
	case types.FloatKindDouble:
		res := in.floatOp(op, in.float64Val(x), in.float64Val(y))
		in.bind(dest, constant.NewFloat(types.Double, res))
	default:
		in.halt(unsupportedError(fmt.Sprintf("%v arithmetic", kind)))
	}
}

func (in *Interp) floatOp(op binOp, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		return a / b
	}
	panic("unreachable")
}

// extend widens an integer register: zext zero-pads the source payload,
// sext sign-extends it from its declared width first.
func (in *Interp) extend(dest string, from value.Value, to types.Type, signed bool) {
	src := in.intWidth(from.Type())
	in.intWidth(to) // reject non-integer targets before the assertion below

	p := maskTo(in.intVal(from), src)
	if signed {
		p = uint64(signExtend(p, src))
	}
	in.bind(dest, newInt(to.(*types.IntType), p))
}

// fpext converts Single to Double; no other widening appears in the subset.
func (in *Interp) fpext(dest string, from value.Value, to types.Type) {
	if in.floatKind(from.Type()) != types.FloatKindFloat || in.floatKind(to) != types.FloatKindDouble {
		in.halt(unsupportedError("fpext from " + from.Type().String() + " to " + to.String()))
	}
	in.bind(dest, constant.NewFloat(types.Double, float64(in.float32Val(from))))
}

// icmp compares at the operand's declared width and stores an i8 0 or 1.
// Signed predicates reinterpret both payloads as two's-complement at that
// width; comparing raw 64-bit payloads misorders negative narrow values.
func (in *Interp) icmp(dest string, pred enum.IPred, x, y value.Value) {
	bits := in.intWidth(x.Type())
	a := maskTo(in.intVal(x), bits)
	b := maskTo(in.intVal(y), bits)
	sa, sb := signExtend(a, bits), signExtend(b, bits)

	var truth bool
	switch pred {
	case enum.IPredEQ:
		truth = a == b
	case enum.IPredNE:
		truth = a != b
	case enum.IPredULT:
		truth = a < b
	case enum.IPredULE:
		truth = a <= b
	case enum.IPredUGT:
		truth = a > b
	case enum.IPredUGE:
		truth = a >= b
	case enum.IPredSLT:
		truth = sa < sb
	case enum.IPredSLE:
		truth = sa <= sb
	case enum.IPredSGT:
		truth = sa > sb
	case enum.IPredSGE:
		truth = sa >= sb
	default:
		in.halt(unsupportedError(fmt.Sprintf("icmp predicate %v", pred)))
	}
	in.bind(dest, newInt(types.I8, boolInt(truth)))
}

func boolInt(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
