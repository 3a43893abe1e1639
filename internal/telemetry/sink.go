package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Sink delivers events to a collection backend. Implementations return
// errors explicitly; the emitter logs and swallows them at the call site
// so delivery trouble never propagates into the pipeline.
type Sink interface {
	Emit(ctx context.Context, event Event) error
	Close(ctx context.Context) error
}

// NoopSink is the default when no sink is configured: every emission is a
// silent no-op.
type NoopSink struct{}

// Emit discards the event.
func (NoopSink) Emit(context.Context, Event) error { return nil }

// Close does nothing.
func (NoopSink) Close(context.Context) error { return nil }

// FileSink appends events as JSON lines to a local file.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewFileSink opens (or creates) the JSONL file at path for appending.
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry file %s: %w", path, err)
	}
	return &FileSink{file: file, enc: json.NewEncoder(file)}, nil
}

// Emit writes one event as a JSON line.
func (s *FileSink) Emit(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(event); err != nil {
		return fmt.Errorf("failed to write telemetry event: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (s *FileSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
