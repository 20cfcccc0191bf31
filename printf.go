package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type formatError string

func (mess formatError) Error() string { return "printf: " + string(mess) }

// printf renders a call to the external printf symbol onto the console.
// One whole line is always emitted: the assembled text plus a newline, even
// when the format string carries its own. Existing fixtures depend on the
// extra newline, so it is an observable contract here, not a bug to fix.
func (in *Interp) printf(call *ir.InstCall) {
	if len(call.Args) == 0 {
		in.halt(formatError("missing format argument"))
	}
	_, format := in.literalBytes(call.Args[0])
	args := call.Args[1:]

	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		switch c := format[i]; c {
		case '%':
			i++
			if i >= len(format) || format[i] == 0 {
				in.halt(formatError("dangling % at end of format"))
			}
			switch format[i] {
			case 'd', 'f', 's':
			default:
				in.halt(formatError(fmt.Sprintf("unsupported conversion %%%c", format[i])))
			}
			if len(args) == 0 {
				in.halt(formatError("not enough arguments"))
			}
			sb.WriteString(in.formatArg(args[0]))
			args = args[1:]
		case 0:
			// terminating NUL
		default:
			sb.WriteByte(c)
		}
	}
	in.print(sb.String())
}

// formatArg renders one positional argument according to its declared type
// rather than the conversion character; the covered C subset never
// disagrees between the two.
func (in *Interp) formatArg(arg value.Value) string {
	switch t := arg.Type().(type) {
	case *types.IntType:
		p := in.intVal(arg)
		switch t.BitSize {
		case 32:
			return strconv.FormatInt(int64(int32(p)), 10)
		case 64:
			return strconv.FormatInt(int64(p), 10)
		default:
			in.halt(unsupportedError(fmt.Sprintf("rendering of %v-bit integer", t.BitSize)))
		}
	case *types.FloatType:
		switch t.Kind {
		case types.FloatKindFloat:
			return strconv.FormatFloat(float64(in.float32Val(arg)), 'g', -1, 32)
		case types.FloatKindDouble:
			return strconv.FormatFloat(in.float64Val(arg), 'g', -1, 64)
		default:
			in.halt(unsupportedError(fmt.Sprintf("rendering of %v", t.Kind)))
		}
	case *types.PointerType:
		name, b := in.literalBytes(arg)
		if !strings.HasPrefix(name, ".str") {
			in.halt(formatError("argument @" + name + " is not a string literal"))
		}
		return string(bytes.TrimRight(b, "\x00"))
	}
	in.halt(unsupportedError("rendering of operand of type " + arg.Type().String()))
	return ""
}

// literalBytes resolves a string-literal operand to its global's name and
// initializer bytes. Both the constant-GEP form older clang emits and the
// direct global reference of opaque-pointer clang are accepted.
func (in *Interp) literalBytes(v value.Value) (string, []byte) {
	c := in.resolve(v)
	if gep, ok := c.(*constant.ExprGetElementPtr); ok {
		c = gep.Src
	}
	g, ok := c.(*ir.Global)
	if !ok {
		in.halt(formatError("operand " + v.Ident() + " does not name a global"))
	}
	init, ok := in.globals[g.Name()]
	if !ok {
		in.halt(formatError("global @" + g.Name() + " has no recorded initializer"))
	}
	switch arr := init.(type) {
	case *constant.CharArray:
		return g.Name(), arr.X
	case *constant.Array:
		b := make([]byte, 0, len(arr.Elems))
		for _, elem := range arr.Elems {
			ci, ok := elem.(*constant.Int)
			if !ok {
				in.halt(formatError("global @" + g.Name() + " is not a byte array"))
			}
			b = append(b, byte(low64(ci)))
		}
		return g.Name(), b
	}
	in.halt(formatError("global @" + g.Name() + " is not a byte array"))
	return "", nil
}
