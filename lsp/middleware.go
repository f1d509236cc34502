package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/tokenlint/internal/log"
	"github.com/tliron/glsp"
)

// recoverPanic turns a handler panic into an error reported to the client
func recoverPanic(ctx *glsp.Context, methodName string, err *error) {
	if r := recover(); r != nil {
		log.Error("PANIC in %s: %v\n%s", methodName, r, debug.Stack())
		logError(ctx, "Internal error in %s: %v", methodName, r)
		*err = fmt.Errorf("internal error in %s", methodName)
	}
}

// method wraps a request handler with panic recovery and logging
func method[P, R any](
	s *Server,
	methodName string,
	handler func(*Server, *glsp.Context, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer recoverPanic(ctx, methodName, &err)

		log.Debug("%s started", methodName)
		result, err = handler(s, ctx, params)
		if err != nil {
			logError(ctx, "%s: %v", methodName, err)
			var zero R
			return zero, fmt.Errorf("%s: %w", methodName, err)
		}
		log.Debug("%s completed", methodName)
		return result, nil
	}
}

// notify wraps a notification handler
func notify[P any](
	s *Server,
	methodName string,
	handler func(*Server, *glsp.Context, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer recoverPanic(ctx, methodName, &err)

		log.Debug("%s started", methodName)
		if err = handler(s, ctx, params); err != nil {
			logError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}
		log.Debug("%s completed", methodName)
		return nil
	}
}

// noParam wraps a handler that takes no params, like shutdown
func noParam(
	s *Server,
	methodName string,
	handler func(*Server, *glsp.Context) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer recoverPanic(ctx, methodName, &err)

		log.Debug("%s started", methodName)
		if err = handler(s, ctx); err != nil {
			logError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}
		log.Debug("%s completed", methodName)
		return nil
	}
}
