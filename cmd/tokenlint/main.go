// Command tokenlint checks the design tokens of a stylesheet, page or token
// file against the site's naming and scale conventions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/tokenlint/internal/log"
)

// Exit codes
const (
	exitOK       = 0
	exitFailures = 1
	exitError    = 2
)

// exitCodeError ends the process with a code and no further message
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

// run executes the command line and maps the outcome to an exit code
func run(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var exit *exitCodeError
	if errors.As(err, &exit) {
		return exit.code
	}
	log.Error("%v", err)
	return exitError
}
