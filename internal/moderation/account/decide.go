package account

import (
	"time"

	"github.com/verdantsocial/verdant/internal/moderation"
)

// GracePeriod is the window after soft-deletion during which an account
// self-reactivates on its next request. It balances mistaken-deletion
// recovery against how long a deleted identity stays reconstructable.
const GracePeriod = 30 * 24 * time.Hour

// State is the decoded moderation state of an account: exactly one of
// Active, ShadowBanned, Suspended, Banned, or SoftDeleted.
type State interface{ state() }

type Active struct{}

// ShadowBanned is indistinguishable from Active from the caller's
// perspective; the restriction is applied elsewhere and never surfaced
// to the affected user.
type ShadowBanned struct{}

type Suspended struct {
	Until  *time.Time // nil means indefinite
	Reason string
}

type Banned struct {
	Reason string
}

type SoftDeleted struct {
	Since *time.Time // nil means undated; treated as permanently gone
}

func (Active) state()       {}
func (ShadowBanned) state() {}
func (Suspended) state()    {}
func (Banned) state()       {}
func (SoftDeleted) state()  {}

// StateOf decodes a record into its moderation state. Banned and
// suspended take precedence over the deletion flags: a ban is terminal
// no matter what else the row says.
func StateOf(r *Record) State {
	switch r.Status {
	case StatusBanned:
		return Banned{Reason: r.BanReason}
	case StatusSuspended:
		return Suspended{Until: r.SuspendedUntil, Reason: r.BanReason}
	}
	if r.IsDeleted {
		return SoftDeleted{Since: r.DeletedAt}
	}
	if r.Status == StatusShadowBanned {
		return ShadowBanned{}
	}
	return Active{}
}

// Transition names for logging and metrics.
const (
	TransitionSuspensionExpired = "suspension_expired"
	TransitionReactivated       = "reactivated"
)

// Decision is the pure outcome of evaluating a state at a point in
// time: whether the request may proceed, the denial if not, and the
// state transition to persist if one is due.
type Decision struct {
	Allowed bool
	Denial  *moderation.Denial

	// Patch, when non-nil, must be applied to the record as a side
	// effect of the check. The patch is idempotent: a racing duplicate
	// write sets the same target state.
	Patch      *Patch
	Transition string

	// ReenableIdentity is set on soft-delete reactivation when the
	// external login identity should be re-enabled (best-effort).
	ReenableIdentity bool
}

// Decide evaluates the transition table. Pure: no I/O, no clock access
// beyond the now argument.
func Decide(state State, now time.Time) Decision {
	switch s := state.(type) {
	case Active, ShadowBanned:
		return Decision{Allowed: true}

	case Banned:
		msg := s.Reason
		if msg == "" {
			msg = moderation.MsgBannedDefault
		}
		return Decision{Denial: &moderation.Denial{
			Code:    moderation.DenialBanned,
			Message: msg,
		}}

	case Suspended:
		if s.Until != nil && s.Until.Before(now) {
			active := StatusActive
			return Decision{
				Allowed:    true,
				Patch:      &Patch{Status: &active, ClearSuspendedUntil: true},
				Transition: TransitionSuspensionExpired,
			}
		}
		msg := s.Reason
		if msg == "" {
			msg = moderation.MsgSuspendedDefault
		}
		return Decision{Denial: &moderation.Denial{
			Code:    moderation.DenialSuspended,
			Message: msg,
			Until:   s.Until,
		}}

	case SoftDeleted:
		// An undated deletion is treated as permanently gone rather
		// than guessed recoverable.
		if s.Since != nil && now.Sub(*s.Since) <= GracePeriod {
			notDeleted := false
			return Decision{
				Allowed:          true,
				Patch:            &Patch{IsDeleted: &notDeleted, ClearDeletedAt: true},
				Transition:       TransitionReactivated,
				ReenableIdentity: true,
			}
		}
		return Decision{Denial: &moderation.Denial{
			Code:    moderation.DenialGone,
			Message: moderation.MsgGone,
		}}
	}

	// Unreachable with the states this package constructs.
	return Decision{Denial: &moderation.Denial{
		Code:    moderation.DenialGone,
		Message: moderation.MsgGone,
	}}
}
