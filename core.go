package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bcwalk/bcwalk/internal/flushio"
)

// Core carries the interpreter's host-facing state: the console sink that
// printf renders into, anything needing teardown, and trace logging.
type Core struct {
	logging
	out     flushio.WriteFlusher
	closers []io.Closer
}

func (core *Core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt aborts interpretation with err; Run recovers it into a plain error
// return. Fatal conditions met during execution funnel through here; setup
// failures (no module, missing entry function, a global without initializer)
// are returned by run directly.
func (core *Core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

// print emits one finished line on the console sink.
func (core *Core) print(line string) {
	if _, err := io.WriteString(core.out, line+"\n"); err != nil {
		core.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
