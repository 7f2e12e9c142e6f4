// Package review models the asynchronous human-review queue fed by
// flagged (not blocked) content.
package review

import (
	"context"
	"time"
)

// Status tracks a review record through the queue.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// Record is one flagged field awaiting human review. Blocked content
// never produces a record; it never reached storage in the first place.
type Record struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Field      string     `json:"field"`
	Category   string     `json:"category"`
	Score      float64    `json:"score"`
	CreatedAt  time.Time  `json:"created_at"`
	Status     Status     `json:"status"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Store defines the persistence interface for review records.
// Implementations must be safe for concurrent use.
type Store interface {
	CreateReview(ctx context.Context, record Record) error
	GetReview(ctx context.Context, id string) (*Record, error)
	ListPendingReviews(ctx context.Context) ([]Record, error)
	ResolveReview(ctx context.Context, id, resolvedBy string) error
}
