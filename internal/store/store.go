package store

import (
	"context"
	"time"
)

// Result is a persisted game outcome.
type Result struct {
	ID            int64
	Room          string
	Winner        string
	WinningValues []Value
	EndedAt       time.Time
}

// Value is one winning item id. Numeric keeps the JSON kind the client used.
type Value struct {
	ID      string `json:"id"`
	Numeric bool   `json:"numeric,omitempty"`
}

// ResultFilter narrows ListResults.
type ResultFilter struct {
	Room  string // empty for all rooms
	Limit int    // 0 means DefaultResultLimit
}

// DefaultResultLimit caps ListResults when no limit is given.
const DefaultResultLimit = 50

// ResultStore persists game outcomes. Room and membership state is never stored.
type ResultStore interface {
	SaveResult(ctx context.Context, r *Result) error
	ListResults(ctx context.Context, filter ResultFilter) ([]Result, error)
	Close() error
}
