package boltstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantsocial/verdant/internal/review"
)

func openTestStore(t *testing.T) *ReviewStore {
	t.Helper()
	store, err := Open(Options{Path: filepath.Join(t.TempDir(), "review.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store.ReviewStore()
}

func testRecord(id string, createdAt time.Time) review.Record {
	return review.Record{
		ID:        id,
		UserID:    "u1",
		Field:     "body",
		Category:  "INSULT",
		Score:     0.61,
		CreatedAt: createdAt,
		Status:    review.StatusPending,
	}
}

func TestCreateAndGetReview(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := testRecord("r1", time.Now().UTC())
	require.NoError(t, store.CreateReview(ctx, record))

	got, err := store.GetReview(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.UserID, got.UserID)
	assert.Equal(t, record.Category, got.Category)
	assert.Equal(t, review.StatusPending, got.Status)
}

func TestGetReview_Missing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetReview(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPendingReviews_CreationOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.CreateReview(ctx, testRecord("newer", now)))
	require.NoError(t, store.CreateReview(ctx, testRecord("older", now.Add(-time.Hour))))

	pending, err := store.ListPendingReviews(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "older", pending[0].ID)
	assert.Equal(t, "newer", pending[1].ID)
}

func TestResolveReview(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateReview(ctx, testRecord("r1", time.Now().UTC())))
	require.NoError(t, store.ResolveReview(ctx, "r1", "mod-42"))

	got, err := store.GetReview(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, review.StatusResolved, got.Status)
	assert.Equal(t, "mod-42", got.ResolvedBy)
	require.NotNil(t, got.ResolvedAt)

	pending, err := store.ListPendingReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestResolveReview_Missing(t *testing.T) {
	store := openTestStore(t)

	err := store.ResolveReview(context.Background(), "nope", "mod-42")
	assert.Error(t, err)
}
