package browser

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// TraceEvent is one page operation as seen by the trace recorder.
type TraceEvent struct {
	Time       time.Time `json:"time"`
	Page       string    `json:"page"`
	Action     string    `json:"action"`
	Target     string    `json:"target,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

// TraceRecorder collects page operations across the whole run for post-run
// diagnosis. A nil recorder is valid and records nothing.
type TraceRecorder struct {
	mu     sync.Mutex
	events []TraceEvent
}

// NewTraceRecorder creates an empty recorder.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{}
}

// Record appends one event. Safe for concurrent use.
func (r *TraceRecorder) Record(event TraceEvent) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *TraceRecorder) Events() []TraceEvent {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TraceEvent(nil), r.events...)
}

// WriteArchive writes the recorded events as trace.json inside a zip
// archive, the shape the diagnostics bucket expects.
func (r *TraceRecorder) WriteArchive(w io.Writer) error {
	zw := zip.NewWriter(w)
	f, err := zw.Create("trace.json")
	if err != nil {
		return fmt.Errorf("create trace entry: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Events()); err != nil {
		return fmt.Errorf("encode trace events: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close trace archive: %w", err)
	}
	return nil
}
