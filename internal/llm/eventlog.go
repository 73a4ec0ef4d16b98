package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Event describes one model request for the audit log.
type Event struct {
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventSink records model request events. Implementations must be safe for
// concurrent use; a failing sink must never fail the request it records.
type EventSink interface {
	Append(ctx context.Context, e Event) error
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Append(context.Context, Event) error { return nil }

// FileSink appends human-readable request records to a single log file.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (creating directories as needed) an append-only request
// log at path.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}
	return &FileSink{file: f}, nil
}

func (s *FileSink) Append(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "=== LLM REQUEST %s ===\n", e.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "provider=%s model=%s purpose=%s latency=%dms tokens=%d/%d success=%t\n",
		e.Provider, e.Model, e.Purpose, e.LatencyMs, e.InputTokens, e.OutputTokens, e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(&b, "error: %s\n", e.ErrorMessage)
	}
	if e.RequestBody != "" {
		fmt.Fprintf(&b, "--- request ---\n%s\n", strings.TrimRight(e.RequestBody, "\n"))
	}
	if e.ResponseBody != "" {
		fmt.Fprintf(&b, "--- response ---\n%s\n", strings.TrimRight(e.ResponseBody, "\n"))
	}
	b.WriteString("===\n\n")

	if _, err := s.file.WriteString(b.String()); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close closes the underlying log file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
