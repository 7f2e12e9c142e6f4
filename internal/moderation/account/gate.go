package account

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verdantsocial/verdant/internal/metrics"
	"github.com/verdantsocial/verdant/internal/moderation"
)

// Result is the outcome of an account status check.
type Result struct {
	Allowed bool
	Denial  *moderation.Denial
}

// Gate evaluates the account state machine against the store. The
// decision logic lives in Decide; the gate is the I/O shell that
// fetches, applies transitions, and fires the identity re-enable.
type Gate struct {
	store    Store
	identity IdentityProvider // may be nil when no provider is wired

	// now is injectable so tests control the clock.
	now func() time.Time
}

// NewGate creates a gate over the given store. identity may be nil;
// reactivations then skip the external re-enable.
func NewGate(store Store, identity IdentityProvider) *Gate {
	return &Gate{store: store, identity: identity, now: time.Now}
}

// Check evaluates whether a request from userID may proceed, applying
// any lazy state transition that is due. Failures reading or updating
// the record are returned as errors (fail closed): an unreadable record
// is never implicitly allowed.
func (g *Gate) Check(ctx context.Context, userID string) (Result, error) {
	record, err := g.store.GetModerationRecord(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("account record read: %w: %w",
			moderation.ErrDependencyUnavailable, err)
	}
	if record == nil {
		metrics.AccountChecksTotal.WithLabelValues("not_found").Inc()
		return Result{Denial: &moderation.Denial{
			Code:    moderation.DenialNotFound,
			Message: moderation.MsgNotFound,
		}}, nil
	}

	decision := Decide(StateOf(record), g.now())

	if decision.Patch != nil {
		if err := g.store.UpdateModerationFields(ctx, userID, *decision.Patch); err != nil {
			return Result{}, fmt.Errorf("account transition %s: %w: %w",
				decision.Transition, moderation.ErrDependencyUnavailable, err)
		}
		metrics.AccountTransitionsTotal.WithLabelValues(decision.Transition).Inc()
		log.Info().
			Str("user_id", userID).
			Str("transition", decision.Transition).
			Msg("account: lazy state transition applied")
	}

	if decision.ReenableIdentity {
		g.reenableIdentity(ctx, record)
	}

	if decision.Allowed {
		metrics.AccountChecksTotal.WithLabelValues("allowed").Inc()
		return Result{Allowed: true}, nil
	}

	metrics.AccountChecksTotal.WithLabelValues(string(decision.Denial.Code)).Inc()
	return Result{Denial: decision.Denial}, nil
}

// reenableIdentity re-enables the external login identity after a
// reactivation. Best-effort: the account is already consistent without
// it, so failures are logged and reconciled out-of-band, never
// propagated to the caller.
func (g *Gate) reenableIdentity(ctx context.Context, record *Record) {
	if g.identity == nil || record.ExternalIdentityRef == "" {
		return
	}
	if err := g.identity.ReenableIdentity(ctx, record.ExternalIdentityRef); err != nil {
		metrics.IdentityReenableFailuresTotal.Inc()
		log.Warn().Err(err).
			Str("user_id", record.UserID).
			Str("identity_ref", record.ExternalIdentityRef).
			Msg("account: identity re-enable failed, will reconcile out-of-band")
	}
}
