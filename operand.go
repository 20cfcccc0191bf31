package main

import (
	"fmt"
	"math"
	"math/big"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type unsupportedError string
type undefinedError string

func (what unsupportedError) Error() string { return "unsupported " + string(what) }
func (reg undefinedError) Error() string {
	return fmt.Sprintf("read of undefined register %v", string(reg))
}

func (in *Interp) bind(reg string, v value.Value) {
	in.locals[reg] = v
}

// regValue reads the current binding of the register named by v.
func (in *Interp) regValue(v value.Value) value.Value {
	cur, ok := in.locals[v.Ident()]
	if !ok {
		in.halt(undefinedError(v.Ident()))
	}
	return cur
}

// resolve chases register indirection until it reaches a constant. Stored
// values stay in operand form, so a read may hop several bindings.
func (in *Interp) resolve(v value.Value) constant.Constant {
	for {
		if c, ok := v.(constant.Constant); ok {
			return c
		}
		v = in.regValue(v)
	}
}

// intVal resolves v to its integer payload as a 64-bit bitfield.
func (in *Interp) intVal(v value.Value) uint64 {
	c, ok := in.resolve(v).(*constant.Int)
	if !ok {
		in.halt(unsupportedError("integer operand " + v.Ident()))
	}
	return low64(c)
}

func (in *Interp) float32Val(v value.Value) float32 {
	c := in.floatConst(v)
	if c.NaN {
		return float32(math.NaN())
	}
	f, _ := c.X.Float32()
	return f
}

func (in *Interp) float64Val(v value.Value) float64 {
	c := in.floatConst(v)
	if c.NaN {
		return math.NaN()
	}
	f, _ := c.X.Float64()
	return f
}

func (in *Interp) floatConst(v value.Value) *constant.Float {
	c, ok := in.resolve(v).(*constant.Float)
	if !ok {
		in.halt(unsupportedError("floating-point operand " + v.Ident()))
	}
	return c
}

func (in *Interp) intWidth(t types.Type) uint64 {
	it, ok := t.(*types.IntType)
	if !ok {
		in.halt(unsupportedError("integer operand of type " + t.String()))
	}
	return it.BitSize
}

func (in *Interp) floatKind(t types.Type) types.FloatKind {
	ft, ok := t.(*types.FloatType)
	if !ok {
		in.halt(unsupportedError("floating-point operand of type " + t.String()))
	}
	return ft.Kind
}

// newInt builds a fresh constant carrying the exact target width; the
// payload is the value's two's-complement bit pattern.
func newInt(t *types.IntType, payload uint64) *constant.Int {
	return &constant.Int{Typ: t, X: new(big.Int).SetUint64(maskTo(payload, t.BitSize))}
}

// low64 reads a constant's two's-complement payload into a 64-bit bitfield.
func low64(c *constant.Int) uint64 {
	if c.X.Sign() < 0 {
		return uint64(c.X.Int64())
	}
	return c.X.Uint64()
}

// maskTo truncates a payload to its low bits.
func maskTo(p, bits uint64) uint64 {
	if bits >= 64 {
		return p
	}
	return p & (1<<bits - 1)
}

// signExtend reinterprets the low bits of p as a two's-complement value of
// the given width.
func signExtend(p, bits uint64) int64 {
	if bits >= 64 {
		return int64(p)
	}
	shift := 64 - bits
	return int64(p<<shift) >> shift
}
