// Package account implements the account-status gate: a state machine
// over a user's moderation record evaluated on every mutating request,
// with lazy transitions (suspension expiry, soft-delete reactivation)
// applied as a side effect of the check.
package account

import "time"

// Status is the stored moderation status of an account.
type Status string

const (
	StatusActive       Status = "active"
	StatusShadowBanned Status = "shadow_banned"
	StatusSuspended    Status = "suspended"
	StatusBanned       Status = "banned"
)

// Record is the moderation slice of one user's profile row. The
// account/profile store owns the row; the gate reads and conditionally
// updates only these fields.
type Record struct {
	UserID string
	Status Status
	// SuspendedUntil is meaningful only while Status is suspended;
	// nil there means an indefinite suspension.
	SuspendedUntil *time.Time
	BanReason      string
	IsDeleted      bool
	DeletedAt      *time.Time
	// ExternalIdentityRef points at the user's login identity in the
	// identity provider; empty when the account has none.
	ExternalIdentityRef string
}
