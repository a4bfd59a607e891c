package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/simnet-io/simnet/internal/shell/compiler"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitCompileError  = 2
	ExitMissingConfig = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var missing *compiler.MissingConfigError
		if errors.As(err, &missing) {
			return ExitMissingConfig
		}
		if errors.Is(err, compiler.ErrMissingNodeConfig) {
			return ExitMissingConfig
		}
		return ExitCompileError
	}
	return ExitSuccess
}
