// Package sqlitestore provides SQLite-backed store implementations.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/verdantsocial/verdant/internal/moderation/account"
)

// AccountStore implements account.Store using SQLite. It owns only the
// moderation columns of the profiles table; the wider profile row
// belongs to the account service.
type AccountStore struct {
	db *sql.DB
}

// Ensure AccountStore implements the interface at compile time.
var _ account.Store = (*AccountStore)(nil)

// Open opens (or creates) a SQLite database at path and applies the
// moderation schema.
func Open(path string) (*AccountStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &AccountStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewAccountStore creates an AccountStore backed by an existing
// database. The database must already have the moderation schema.
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			user_id               TEXT PRIMARY KEY,
			moderation_status     TEXT NOT NULL DEFAULT 'active',
			suspended_until       TEXT,
			ban_reason            TEXT,
			is_deleted            INTEGER NOT NULL DEFAULT 0,
			deleted_at            TEXT,
			external_identity_ref TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("apply moderation schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *AccountStore) Close() error {
	return s.db.Close()
}

// GetModerationRecord returns the moderation fields for one user, or
// (nil, nil) when the user does not exist.
func (s *AccountStore) GetModerationRecord(ctx context.Context, userID string) (*account.Record, error) {
	var (
		r              account.Record
		suspendedUntil sql.NullString
		banReason      sql.NullString
		isDeleted      int
		deletedAt      sql.NullString
		identityRef    sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, moderation_status, suspended_until, ban_reason,
		       is_deleted, deleted_at, external_identity_ref
		FROM profiles WHERE user_id = ?
	`, userID).Scan(&r.UserID, &r.Status, &suspendedUntil, &banReason,
		&isDeleted, &deletedAt, &identityRef)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get moderation record: %w", err)
	}

	r.SuspendedUntil = parseNullTime(suspendedUntil)
	r.BanReason = banReason.String
	r.IsDeleted = isDeleted == 1
	r.DeletedAt = parseNullTime(deletedAt)
	r.ExternalIdentityRef = identityRef.String
	return &r, nil
}

// UpdateModerationFields applies a patch to only the moderation columns
// of one row, by primary key. Concurrent unrelated updates to the same
// row are never clobbered because no other column appears in the
// statement.
func (s *AccountStore) UpdateModerationFields(ctx context.Context, userID string, patch account.Patch) error {
	var (
		sets []string
		args []any
	)

	if patch.Status != nil {
		sets = append(sets, "moderation_status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.ClearSuspendedUntil {
		sets = append(sets, "suspended_until = NULL")
	}
	if patch.IsDeleted != nil {
		deleted := 0
		if *patch.IsDeleted {
			deleted = 1
		}
		sets = append(sets, "is_deleted = ?")
		args = append(args, deleted)
	}
	if patch.ClearDeletedAt {
		sets = append(sets, "deleted_at = NULL")
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID)
	_, err := s.db.ExecContext(ctx,
		"UPDATE profiles SET "+strings.Join(sets, ", ")+" WHERE user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update moderation fields: %w", err)
	}
	return nil
}

// PutModerationRecord upserts a full moderation record. Used by
// moderation tooling and backfills, not by the gate itself.
func (s *AccountStore) PutModerationRecord(ctx context.Context, r account.Record) error {
	isDeleted := 0
	if r.IsDeleted {
		isDeleted = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, moderation_status, suspended_until, ban_reason,
		                      is_deleted, deleted_at, external_identity_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			moderation_status     = excluded.moderation_status,
			suspended_until       = excluded.suspended_until,
			ban_reason            = excluded.ban_reason,
			is_deleted            = excluded.is_deleted,
			deleted_at            = excluded.deleted_at,
			external_identity_ref = excluded.external_identity_ref
	`, r.UserID, string(r.Status), formatNullTime(r.SuspendedUntil), nullString(r.BanReason),
		isDeleted, formatNullTime(r.DeletedAt), nullString(r.ExternalIdentityRef))
	if err != nil {
		return fmt.Errorf("put moderation record: %w", err)
	}
	return nil
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
