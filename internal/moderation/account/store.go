package account

import "context"

// Store is the narrow slice of the account/profile store the gate
// needs. Implementations must be safe for concurrent use.
type Store interface {
	// GetModerationRecord returns the moderation fields for one user,
	// or (nil, nil) when no such user exists.
	GetModerationRecord(ctx context.Context, userID string) (*Record, error)

	// UpdateModerationFields applies a patch to only the moderation
	// columns of the user's row, by primary key. It must not touch any
	// other column: concurrent unrelated updates to the same row may
	// not be clobbered.
	UpdateModerationFields(ctx context.Context, userID string, patch Patch) error
}

// Patch is a partial update of the moderation fields. Pointer fields are
// applied when non-nil; the Clear flags express an explicit set-to-null,
// which a nil pointer cannot.
type Patch struct {
	Status              *Status
	ClearSuspendedUntil bool
	IsDeleted           *bool
	ClearDeletedAt      bool
}

// IdentityProvider re-enables a user's external login identity after a
// soft-delete reactivation. Failures are non-fatal to the check and are
// reconciled out-of-band.
type IdentityProvider interface {
	ReenableIdentity(ctx context.Context, externalRef string) error
}
