package testutils

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder stores the records handled by a MockHandler and the handlers derived from it.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

// MockHandler is a slog.Handler recording what it is asked to log.
type MockHandler struct {
	IgnoreBelow slog.Level

	attrs  []slog.Attr
	prefix string
	rec    *recorder
}

// NewMockHandler returns a handler recording records strictly above ignoreBelow.
func NewMockHandler(ignoreBelow slog.Level) MockHandler {
	return MockHandler{
		IgnoreBelow: ignoreBelow,
		rec:         &recorder{},
	}
}

// AssertLevels checks how many records were logged per level. A nil map expects no record at all.
func (h *MockHandler) AssertLevels(t *testing.T, levels map[slog.Level]uint) bool {
	t.Helper()

	records := h.records()
	if levels == nil {
		return assert.Empty(t, records, "No record should be logged")
	}

	got := make(map[slog.Level]uint)
	for _, r := range records {
		got[r.Level]++
	}
	return assert.Equal(t, levels, got, "Unexpected number of records per level")
}

// OutputLogs prints the recorded logs to the test log.
func (h *MockHandler) OutputLogs(t *testing.T) {
	t.Helper()

	for _, r := range h.records() {
		t.Logf("Logged %v %s:", r.Level, r.Message)
		r.Attrs(func(a slog.Attr) bool {
			t.Log(a.String())
			return true
		})
	}
}

func (h *MockHandler) records() []slog.Record {
	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	return append([]slog.Record(nil), h.rec.records...)
}

// Enabled implements slog.Handler.
func (h *MockHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > h.IgnoreBelow
}

// Handle implements slog.Handler.
func (h *MockHandler) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	for _, a := range h.attrs {
		r.AddAttrs(a)
	}
	if h.prefix != "" {
		r.Message = h.prefix + r.Message
	}

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	h.rec.records = append(h.rec.records, r)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *MockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &n
}

// WithGroup implements slog.Handler.
func (h *MockHandler) WithGroup(name string) slog.Handler {
	n := *h
	n.prefix = h.prefix + name + "."
	return &n
}
