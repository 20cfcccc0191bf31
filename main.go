package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/bcwalk/bcwalk/internal/logio"
)

func main() {
	var (
		entry   string
		timeout time.Duration
		trace   bool
		dump    bool
	)
	flag.StringVar(&entry, "entry", "main", "name of the function to interpret")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable instruction trace logging")
	flag.BoolVar(&dump, "dump", false, "print a state dump after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if flag.NArg() != 1 {
		log.Errorf("usage: %v [flags] <bitcode-file>", os.Args[0])
		return
	}

	mod, err := Load(flag.Arg(0))
	if err != nil {
		log.ErrorIf(err)
		return
	}

	opts := []Option{
		WithModule(mod),
		WithEntry(entry),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	in := New(opts...)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer interpDumper{in: in, out: lw}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(in.Run(ctx))
}
