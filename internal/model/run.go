package model

import "time"

// RunStatus represents the final state of a parse run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusPartial  RunStatus = "partial" // finished, but some documents were skipped
	RunStatusFailed   RunStatus = "failed"
)

// ParseRun records one pipeline invocation over a set of documents.
type ParseRun struct {
	ID           string     `json:"id"`
	Documents    []string   `json:"documents"`
	Status       RunStatus  `json:"status"`
	ProfileCount int        `json:"profile_count"`
	RecordCount  int        `json:"record_count"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
