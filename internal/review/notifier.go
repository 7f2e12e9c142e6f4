package review

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/verdantsocial/verdant/internal/metrics"
)

// SubjectReview is the NATS subject review records are published to.
// The review worker subscribes here and persists them.
const SubjectReview = "moderation.review"

// Notifier publishes flagged fields to the review queue. Publishing is
// fire-and-forget: a failure to enqueue a review must never fail the
// user-facing request, so errors are logged and counted, not returned.
type Notifier struct {
	conn *nats.Conn
}

// NewNotifier creates a notifier over an established NATS connection.
func NewNotifier(conn *nats.Conn) *Notifier {
	return &Notifier{conn: conn}
}

// Flagged publishes one flagged field as a pending review record.
// Satisfies the pipeline's ReviewNotifier interface.
func (n *Notifier) Flagged(ctx context.Context, userID, field, category string, score float64) {
	record := Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Field:     field,
		Category:  category,
		Score:     score,
		CreatedAt: time.Now().UTC(),
		Status:    StatusPending,
	}

	data, err := json.Marshal(record)
	if err != nil {
		metrics.ReviewNotificationsTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("user_id", userID).Msg("review: marshal record failed")
		return
	}

	if err := n.conn.Publish(SubjectReview, data); err != nil {
		metrics.ReviewNotificationsTotal.WithLabelValues("failed").Inc()
		log.Warn().Err(err).
			Str("user_id", userID).
			Str("field", field).
			Msg("review: publish failed, review record dropped")
		return
	}

	metrics.ReviewNotificationsTotal.WithLabelValues("published").Inc()
}
