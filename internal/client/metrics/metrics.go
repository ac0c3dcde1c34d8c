// Package metrics holds the client's prometheus counters. All methods are
// safe on a nil *Metrics so components can run without instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staffkeeper"

// Login results.
const (
	LoginSuccess    = "success"
	LoginFailure    = "failure"
	LoginSuperseded = "superseded"
)

// Request failure classes.
const (
	ClassUnauthorized = "unauthorized"
	ClassForbidden    = "forbidden"
	ClassOther        = "other"
)

type Metrics struct {
	registry        *prometheus.Registry
	logins          *prometheus.CounterVec
	logouts         prometheus.Counter
	requestFailures *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Session invalidations, explicit or forced.",
		}),
		requestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_failures_total",
			Help:      "Failed backend calls seen by the error pipeline, by class.",
		}, []string{"class"}),
	}
	m.registry.MustRegister(m.logins, m.logouts, m.requestFailures)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveLogout() {
	if m == nil {
		return
	}
	m.logouts.Inc()
}

func (m *Metrics) ObserveRequestFailure(class string) {
	if m == nil {
		return
	}
	m.requestFailures.WithLabelValues(class).Inc()
}

// Logins returns the login counter for result.
func (m *Metrics) Logins(result string) prometheus.Counter {
	return m.logins.WithLabelValues(result)
}

func (m *Metrics) Logouts() prometheus.Counter {
	return m.logouts
}

// RequestFailures returns the failure counter for class.
func (m *Metrics) RequestFailures(class string) prometheus.Counter {
	return m.requestFailures.WithLabelValues(class)
}
