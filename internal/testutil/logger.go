// Package testutil routes structured logs into tests.
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes to t.Log.
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, _ := NewRecordingLogger(t)
	return logger
}

// NewRecordingLogger is NewTestLogger that also keeps every record so tests
// can assert on what was logged.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *LogRecorder) {
	t.Helper()
	rec := &LogRecorder{t: t, log: &entryLog{}}
	return slog.New(rec), rec
}

// Entry is one recorded log record. Attribute values are rendered with
// slog.Value.String; grouped keys are joined with dots.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

type entryLog struct {
	mu      sync.Mutex
	entries []Entry
}

// LogRecorder is a slog.Handler shared by a logger and everything derived
// from it with With or WithGroup.
type LogRecorder struct {
	t      testing.TB
	log    *entryLog
	attrs  []slog.Attr
	prefix string
}

// Enabled accepts every level.
func (h *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle records r and writes it to the test log.
func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Message: r.Message, Attrs: make(map[string]string)}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Level, r.Message)
	add := func(key string, v slog.Value) {
		val := v.Resolve().String()
		e.Attrs[key] = val
		fmt.Fprintf(&b, " %s=%s", key, val)
	}
	for _, a := range h.attrs {
		add(a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(h.prefix+a.Key, a.Value)
		return true
	})

	h.log.mu.Lock()
	h.log.entries = append(h.log.entries, e)
	h.log.mu.Unlock()

	h.t.Helper()
	h.t.Log(b.String())
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &next
}

// WithGroup returns a handler that qualifies later keys with name.
func (h *LogRecorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// Entries returns a copy of everything recorded so far.
func (h *LogRecorder) Entries() []Entry {
	h.log.mu.Lock()
	defer h.log.mu.Unlock()
	return append([]Entry{}, h.log.entries...)
}

// Find returns the recorded entries with the given message, in order.
func (h *LogRecorder) Find(msg string) []Entry {
	var found []Entry
	for _, e := range h.Entries() {
		if e.Message == msg {
			found = append(found, e)
		}
	}
	return found
}
