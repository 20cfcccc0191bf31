package main

import (
	"context"
	"errors"
	"io"

	"github.com/bcwalk/bcwalk/internal/panicerr"
	"github.com/llir/llvm/ir"
)

// New creates an interpreter from the given options; pass at least
// WithModule before Run.
func New(opts ...Option) *Interp {
	var in Interp
	defaultOptions.apply(&in)
	Options(opts...).apply(&in)
	return &in
}

// Run interprets the module's entry function to completion, returning any
// fatal condition as an error.
func (in *Interp) Run(ctx context.Context) error {
	err := panicerr.Recover("interp", func() error {
		return in.run(ctx)
	})
	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	return err
}

func WithModule(mod *ir.Module) Option { return moduleOption{mod} }
func WithEntry(name string) Option     { return entryOption(name) }
func WithOutput(w io.Writer) Option    { return outputOption{w} }
func WithTee(w io.Writer) Option       { return teeOption{w} }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type Option interface{ apply(in *Interp) }

var defaultOptions = Options(
	entryOption("main"),
	outputOption{io.Discard},
)

// Options flattens many options into one, eliding nils.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	}
	return res
}

type noption struct{}

func (noption) apply(in *Interp) {}

type options []Option

func (opts options) apply(in *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}
