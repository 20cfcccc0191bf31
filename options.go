package main

import (
	"io"

	"github.com/bcwalk/bcwalk/internal/flushio"
	"github.com/llir/llvm/ir"
)

type moduleOption struct{ mod *ir.Module }
type entryOption string
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})

func (o moduleOption) apply(in *Interp) { in.mod = o.mod }
func (o entryOption) apply(in *Interp)  { in.entry = string(o) }

func (o outputOption) apply(in *Interp) {
	if in.out != nil {
		in.out.Flush()
	}
	in.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

func (o teeOption) apply(in *Interp) {
	in.out = flushio.WriteFlushers(in.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

func (logfn withLogfn) apply(in *Interp) {
	in.logfn = logfn
}
