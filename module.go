package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/pkg/errors"
)

// Load reads an LLVM module from path. Raw bitcode is piped through llvm-dis
// (already present wherever clang is); textual IR parses directly.
func Load(path string) (*ir.Module, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %v", path)
	}
	if isBitcode(buf) {
		out, err := exec.Command("llvm-dis", "-o", "-", path).Output()
		if err != nil {
			return nil, errors.Wrapf(err, "disassemble %v", path)
		}
		buf = out
	}
	mod, err := asm.ParseBytes(path, buf)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %v", path)
	}
	return mod, nil
}

// isBitcode reports whether buf starts with the bitcode magic, bare or
// behind the offset wrapper header.
func isBitcode(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte("BC\xc0\xde")) ||
		bytes.HasPrefix(buf, []byte{0xde, 0xc0, 0x17, 0x0b})
}

// index builds the function-name index and the global-variable table.
// Function lookup by name sits on the call path, so the module's slices are
// indexed once up front rather than scanned per call.
func (in *Interp) index() error {
	in.funcs = make(map[string]*ir.Func, len(in.mod.Funcs))
	for _, fn := range in.mod.Funcs {
		in.funcs[fn.Name()] = fn
	}
	in.globals = make(map[string]constant.Constant, len(in.mod.Globals))
	for _, g := range in.mod.Globals {
		if g.Init == nil {
			return errors.Errorf("global @%v has no initializer", g.Name())
		}
		in.globals[g.Name()] = g.Init
	}
	return nil
}

type entryError string

func (name entryError) Error() string { return fmt.Sprintf("no %v function", string(name)) }
