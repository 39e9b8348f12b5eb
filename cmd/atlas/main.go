// Package main provides the atlas CLI: it loads configuration, runs loader
// scenarios against an in-process registry and reports the outcome.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// codedError carries the process exit code for an error.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func userError(err error) error   { return &codedError{code: exitUserError, err: err} }
func systemError(err error) error { return &codedError{code: exitSysError, err: err} }

// exitCode maps an error to the process exit code. Errors that do not carry
// one are usage errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
