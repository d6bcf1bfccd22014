package fresco

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// EventLogger is the interface for recording store mutations.
type EventLogger interface {
	LogEvent(event Event) error
}

// Event is a single store mutation or action outcome.
type Event struct {
	Action       string    `json:"action"`
	Timestamp    time.Time `json:"timestamp"`
	RecipeID     string    `json:"recipe_id,omitempty"`
	IngredientID string    `json:"ingredient_id,omitempty"`
	Servings     int       `json:"servings,omitempty"`
	Count        int       `json:"count,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// FileEventLogger accumulates events and writes them to the writer on Flush.
// It is safe for concurrent use.
type FileEventLogger struct {
	mu     sync.Mutex
	events []Event
	writer io.Writer
}

func NewFileEventLogger(writer io.Writer) *FileEventLogger {
	return &FileEventLogger{
		events: make([]Event, 0),
		writer: writer,
	}
}

// LogEvent buffers the event (does not flush immediately)
func (l *FileEventLogger) LogEvent(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// Flush writes all buffered events as one JSON document.
func (l *FileEventLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil || len(l.events) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"session": map[string]any{
			"timestamp": time.Now(),
			"events":    l.events,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}

	l.events = l.events[:0]
	return nil
}

type NoOpEventLogger struct{}

func NewNoOpEventLogger() *NoOpEventLogger {
	return &NoOpEventLogger{}
}

func (nop *NoOpEventLogger) LogEvent(event Event) error {
	return nil
}

// StdoutEventLogger writes each event as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutEventLogger struct {
	mu  sync.Mutex
	out io.Writer
}

func NewStdoutEventLogger() *StdoutEventLogger {
	return &StdoutEventLogger{out: os.Stdout}
}

func (l *StdoutEventLogger) LogEvent(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
