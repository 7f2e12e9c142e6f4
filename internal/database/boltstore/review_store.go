package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/verdantsocial/verdant/internal/review"
)

// ReviewStore provides persistent storage for flagged-content review
// records.
type ReviewStore struct {
	db *bolt.DB
}

// Ensure ReviewStore implements the interface at compile time.
var _ review.Store = (*ReviewStore)(nil)

// CreateReview stores a review record and indexes it as pending.
func (s *ReviewStore) CreateReview(ctx context.Context, record review.Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(BucketReviewRecords)
		if records == nil {
			return fmt.Errorf("bucket not found: %s", BucketReviewRecords)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal review record: %w", err)
		}
		if err := records.Put([]byte(record.ID), data); err != nil {
			return err
		}

		pending := tx.Bucket(BucketReviewPending)
		if pending == nil {
			return fmt.Errorf("bucket not found: %s", BucketReviewPending)
		}
		return pending.Put(pendingKey(record), nil)
	})
}

// GetReview retrieves a review record by ID, or nil if not found.
func (s *ReviewStore) GetReview(ctx context.Context, id string) (*review.Record, error) {
	var record *review.Record

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BucketReviewRecords)
		if bucket == nil {
			return nil
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		record = &review.Record{}
		return json.Unmarshal(data, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get review record: %w", err)
	}
	return record, nil
}

// ListPendingReviews returns pending records in creation order.
func (s *ReviewStore) ListPendingReviews(ctx context.Context) ([]review.Record, error) {
	var records []review.Record

	err := s.db.View(func(tx *bolt.Tx) error {
		pending := tx.Bucket(BucketReviewPending)
		recordsBucket := tx.Bucket(BucketReviewRecords)
		if pending == nil || recordsBucket == nil {
			return nil
		}

		return pending.ForEach(func(k, _ []byte) error {
			id := idFromPendingKey(k)
			data := recordsBucket.Get(id)
			if data == nil {
				return nil
			}
			var record review.Record
			if err := json.Unmarshal(data, &record); err != nil {
				return nil
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}
	return records, nil
}

// ResolveReview marks a record resolved and drops it from the pending
// index.
func (s *ReviewStore) ResolveReview(ctx context.Context, id, resolvedBy string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(BucketReviewRecords)
		if records == nil {
			return fmt.Errorf("bucket not found: %s", BucketReviewRecords)
		}

		data := records.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("review record not found: %s", id)
		}

		var record review.Record
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal review record: %w", err)
		}

		now := time.Now().UTC()
		record.Status = review.StatusResolved
		record.ResolvedBy = resolvedBy
		record.ResolvedAt = &now

		updated, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal review record: %w", err)
		}
		if err := records.Put([]byte(id), updated); err != nil {
			return err
		}

		pending := tx.Bucket(BucketReviewPending)
		if pending == nil {
			return nil
		}
		return pending.Delete(pendingKey(record))
	})
}

// pendingKey builds the time-ordered pending index key {timestamp:id}.
func pendingKey(record review.Record) []byte {
	return []byte(record.CreatedAt.UTC().Format(time.RFC3339Nano) + ":" + record.ID)
}

// idFromPendingKey extracts the record ID from a pending index key.
func idFromPendingKey(k []byte) []byte {
	for i := len(k) - 1; i >= 0; i-- {
		if k[i] == ':' {
			return k[i+1:]
		}
	}
	return k
}
