package events

import (
	"context"
	"time"
)

// Event topic constants
const (
	TopicImportStarted   = "sales.import.started"
	TopicImportCompleted = "sales.import.completed"
	TopicImportFailed    = "sales.import.failed"

	// TopicAll matches every sales event.
	TopicAll = "sales.>"
)

// Event types

type ImportStarted struct {
	BatchID   string    `json:"batch_id"`
	Source    string    `json:"source"`
	Truncate  bool      `json:"truncate"`
	StartedAt time.Time `json:"started_at"`
}

type ImportCompleted struct {
	BatchID    string        `json:"batch_id"`
	Source     string        `json:"source"`
	Inserted   int           `json:"inserted"`
	Skipped    int           `json:"skipped"`
	Duration   time.Duration `json:"duration_ns"`
	FinishedAt time.Time     `json:"finished_at"`
}

type ImportFailed struct {
	BatchID  string `json:"batch_id"`
	Source   string `json:"source"`
	Inserted int    `json:"inserted"` // rows committed before the failure
	Error    string `json:"error"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
