package client

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/google/uuid"
)

// TokenSource supplies the current bearer credential; "" means none.
type TokenSource interface {
	AccessToken() string
}

type TokenSourceFunc func() string

func (f TokenSourceFunc) AccessToken() string { return f() }

// RequestIDInterceptor assigns a request id to calls that have none.
func RequestIDInterceptor() Interceptor {
	return func(ctx context.Context, call *Call, next Invoker) error {
		if call.ID == "" {
			call.ID = uuid.NewString()
		}
		return next(WithRequestID(ctx, call.ID), call)
	}
}

// BearerInterceptor attaches the credential from src to non-public calls.
func BearerInterceptor(src TokenSource) Interceptor {
	return func(ctx context.Context, call *Call, next Invoker) error {
		if !call.Public() {
			if tok := src.AccessToken(); tok != "" {
				ctx = WithAccessToken(ctx, tok)
			}
		}
		return next(ctx, call)
	}
}

// TimeoutInterceptor bounds every call by d. A zero d disables it.
func TimeoutInterceptor(d time.Duration) Interceptor {
	return func(ctx context.Context, call *Call, next Invoker) error {
		if d <= 0 {
			return next(ctx, call)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx, call)
	}
}

// LoggingInterceptor logs the outcome of every call.
func LoggingInterceptor(l logging.Logger) Interceptor {
	return func(ctx context.Context, call *Call, next Invoker) error {
		start := time.Now()
		err := next(ctx, call)

		args := []any{"op", call.Op, "request_id", call.ID, "elapsed", time.Since(start)}
		switch {
		case err == nil:
			l.Debug(ctx, "call completed", args...)
		case errors.Is(err, context.Canceled):
			l.Debug(ctx, "call canceled", args...)
		default:
			if se, ok := AsStatus(err); ok {
				args = append(args, "status", se.Status)
			}
			l.Warn(ctx, "call failed", append(args, "error", err)...)
		}
		return err
	}
}
