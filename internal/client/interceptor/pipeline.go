// Package interceptor holds the error pipeline every backend call passes
// through. It reacts to authorization failures the same way no matter which
// component issued the call, and always returns the original error.
package interceptor

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/client/client"
	"github.com/dmitrijs2005/staffkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/staffkeeper/internal/client/notify"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
)

const (
	SummaryUnauthorized = "Unauthorized"
	DetailUnauthorized  = "Please log in again."
	SummaryForbidden    = "Access Denied"
	DetailForbidden     = "You do not have permission."
	SummaryError        = "Error"
	FallbackDetail      = "An unknown error occurred"
)

// LogoutFunc invalidates the session.
type LogoutFunc func(ctx context.Context) error

// Navigator moves the application to another surface.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

type Pipeline struct {
	logout  LogoutFunc
	nav     Navigator
	neutral string
	sink    notify.Sink
	metrics *metrics.Metrics
	logger  logging.Logger
}

// New builds the pipeline. logout is resolved at call time, so it may close
// over a service constructed after the pipeline.
func New(logout LogoutFunc, nav Navigator, neutral string, sink notify.Sink, m *metrics.Metrics, logger logging.Logger) *Pipeline {
	return &Pipeline{
		logout:  logout,
		nav:     nav,
		neutral: neutral,
		sink:    sink,
		metrics: m,
		logger:  logger.With("module", "error_pipeline"),
	}
}

// Intercept is a client.Interceptor. It must be installed first in the chain.
//
// Public calls (login, register, ping) are returned untouched: their callers
// report failures themselves and a failed login must not log anybody out.
// Canceled calls are returned silently.
func (p *Pipeline) Intercept(ctx context.Context, call *client.Call, next client.Invoker) error {
	err := next(ctx, call)
	if err == nil || call.Public() {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	// Reactions must not be cut short by the caller's deadline.
	rctx := context.WithoutCancel(ctx)

	se, _ := client.AsStatus(err)
	status := 0
	if se != nil {
		status = se.Status
	}

	switch status {
	case http.StatusUnauthorized:
		p.metrics.ObserveRequestFailure(metrics.ClassUnauthorized)
		p.logger.Warn(rctx, "unauthorized response, logging out", "op", call.Op, "request_id", call.ID)
		if lerr := p.logout(rctx); lerr != nil {
			p.logger.Error(rctx, "logout after unauthorized response failed", "error", lerr)
		}
		p.sink.Notify(notify.Notification{Severity: notify.SeverityError, Summary: SummaryUnauthorized, Detail: DetailUnauthorized})

	case http.StatusForbidden:
		p.metrics.ObserveRequestFailure(metrics.ClassForbidden)
		p.logger.Warn(rctx, "forbidden response", "op", call.Op, "request_id", call.ID)
		p.sink.Notify(notify.Notification{Severity: notify.SeverityError, Summary: SummaryForbidden, Detail: DetailForbidden})
		if nerr := p.nav.Navigate(rctx, p.neutral); nerr != nil {
			p.logger.Error(rctx, "navigation after forbidden response failed", "error", nerr)
		}

	default:
		p.metrics.ObserveRequestFailure(metrics.ClassOther)
		p.sink.Notify(notify.Notification{Severity: notify.SeverityError, Summary: SummaryError, Detail: Detail(se)})
	}

	return err
}

// Detail is the most specific message available for a failed call: the
// server's message, else the status text, else a fixed fallback.
func Detail(se *client.StatusError) string {
	switch {
	case se == nil:
		return FallbackDetail
	case se.Message != "":
		return se.Message
	case se.StatusText != "":
		return se.StatusText
	default:
		return FallbackDetail
	}
}
