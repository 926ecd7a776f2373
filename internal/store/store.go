// Package store keeps a history of solver runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotInitialized is returned by backends used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Run is one solver leg applied to one instance.
type Run struct {
	ID        string    `json:"id"`
	Instance  string    `json:"instance"`
	Solver    string    `json:"solver"`
	Value     int       `json:"value"`
	Weight    int       `json:"weight"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Seed      int64     `json:"seed"`
	Selection []bool    `json:"selection"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRun stamps r with a fresh ID and creation time when they are missing.
func NewRun(r Run, now time.Time) Run {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}
	return r
}

// Store persists runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	// ListRuns returns the runs of instance in insertion order.
	ListRuns(ctx context.Context, instance string) ([]Run, error)
}
