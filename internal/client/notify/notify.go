// Package notify is the outbound side of user-facing notifications. The
// session layer only produces {severity, summary, detail} triples; sinks
// decide how to render them.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarn    Severity = "warn"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

type Notification struct {
	Severity Severity
	Summary  string
	Detail   string
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s: %s", n.Severity, n.Summary, n.Detail)
}

type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(n Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

// WriterSink prints one line per notification.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, n.String())
}
