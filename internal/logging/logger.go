// Package logging is the structured logger every StaffKeeper component
// writes through. SlogLogger is the only implementation.
package logging

import "context"

// Logger takes key/value pairs after the message:
//
//	log.Info(ctx, "login succeeded", "subject", id.SubjectID, "role", id.Role)
//
// ctx is accepted on every call so handlers can pick request-scoped values.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that prefixes every record with args.
	With(args ...any) Logger
}
