// Package logging defines the structured logger shared by the diary server
// (JSON lines on stdout) and the CLI (text lines on stderr). SlogLogger wraps
// log/slog; Nop discards everything and is meant for tests.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "user registered", "username", name)
type Logger interface {
	// Debug logs details that are only useful while diagnosing a problem,
	// such as the precise reason a bearer token was rejected.
	Debug(ctx context.Context, msg string, args ...any)

	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given pairs, e.g. "module".
	With(args ...any) Logger
}
