// Package main provides the stashvault CLI, a small front door over the
// embedded price-checker store.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/exiletools/stashvault/pkg/types"
)

// Exit codes: user errors (bad arguments, invalid input) exit 1, system
// errors (store failures, I/O) exit 2.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidLeague),
		errors.Is(err, types.ErrInvalidPlugin),
		errors.Is(err, types.ErrMissingPrice):
		return exitUserError
	default:
		return exitSysError
	}
}
