// Package pipeline composes the moderation gates into the single
// pass/deny decision run in front of every mutating operation.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verdantsocial/verdant/internal/metrics"
	"github.com/verdantsocial/verdant/internal/moderation"
	"github.com/verdantsocial/verdant/internal/moderation/account"
	"github.com/verdantsocial/verdant/internal/moderation/filter"
	"github.com/verdantsocial/verdant/internal/moderation/toxicity"
	"github.com/verdantsocial/verdant/internal/tracing"
)

// Field is one user-supplied text field of a mutating request.
type Field struct {
	Name string
	Text string
}

// FlaggedField records a field the toxicity gate flagged for human
// review. The caller (or the wired notifier) persists it; the pipeline
// itself keeps nothing.
type FlaggedField struct {
	Field    string
	Category string
	Score    float64
}

// Result is the pipeline verdict for one mutating request.
type Result struct {
	Allowed bool
	Denial  *moderation.Denial
	Flagged []FlaggedField
}

// AccountGate, ContentFilter, and ToxicityGate are the stage contracts;
// the concrete gates in sibling packages satisfy them.
type AccountGate interface {
	Check(ctx context.Context, userID string) (account.Result, error)
}

type ContentFilter interface {
	Check(ctx context.Context, text string) filter.Verdict
}

type ToxicityGate interface {
	Classify(ctx context.Context, text string) (toxicity.Verdict, error)
}

// ReviewNotifier receives flagged fields for asynchronous human review.
// Implementations must be fire-and-forget: they log their own failures
// and never block or fail the request.
type ReviewNotifier interface {
	Flagged(ctx context.Context, userID, field, category string, score float64)
}

// Pipeline runs account gating, wordlist filtering, and toxicity
// classification in that fixed order: the account check is cheapest and
// most determinative, the wordlist catches clear violations before the
// classifier call, and the classifier runs last because it is the most
// expensive dependency.
type Pipeline struct {
	accounts AccountGate
	filter   ContentFilter
	toxicity ToxicityGate
	notifier ReviewNotifier // may be nil
}

// New creates a pipeline. notifier may be nil; flagged fields are then
// only returned to the caller.
func New(accounts AccountGate, f ContentFilter, tox ToxicityGate, notifier ReviewNotifier) *Pipeline {
	return &Pipeline{accounts: accounts, filter: f, toxicity: tox, notifier: notifier}
}

// Evaluate gates one mutating request with zero or more text fields.
// Denials are returned in the Result; only infrastructure failures
// (account store, classifier) travel the error return, and they fail
// the request closed.
func (p *Pipeline) Evaluate(ctx context.Context, userID string, fields []Field) (Result, error) {
	start := time.Now()
	ctx, span := tracing.PipelineSpan(ctx, userID, len(fields))
	defer span.End()

	result, err := p.evaluate(ctx, userID, fields)
	tracing.EndWithError(span, err)

	outcome := "allowed"
	switch {
	case err != nil:
		outcome = "error"
	case !result.Allowed:
		outcome = "denied_" + strings.ToLower(string(result.Denial.Code))
	case len(result.Flagged) > 0:
		outcome = "flagged"
	}
	metrics.PipelineEvaluationsTotal.WithLabelValues(outcome).Inc()
	metrics.PipelineDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return result, err
}

func (p *Pipeline) evaluate(ctx context.Context, userID string, fields []Field) (Result, error) {
	acct, err := p.accounts.Check(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if !acct.Allowed {
		return Result{Denial: acct.Denial}, nil
	}

	// Wordlist pass over every field before any classifier call.
	checked := fields[:0:0]
	for _, f := range fields {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		verdict := p.filter.Check(ctx, f.Text)
		if verdict.Severity >= moderation.SeverityHigh {
			// The matched category is logged server-side but never
			// surfaced: echoing it back would help evasion.
			log.Info().
				Str("user_id", userID).
				Str("field", f.Name).
				Str("severity", verdict.Severity.String()).
				Msg("pipeline: content denied by filter")
			return Result{Denial: &moderation.Denial{
				Code:    moderation.DenialContentViolation,
				Message: moderation.MsgContentViolation,
			}}, nil
		}
		checked = append(checked, f)
	}

	var flagged []FlaggedField
	for _, f := range checked {
		verdict, err := p.toxicity.Classify(ctx, f.Text)
		if err != nil {
			// Fail closed: a classifier outage must not let content
			// through unmoderated.
			return Result{}, err
		}

		switch verdict.Action {
		case toxicity.ActionBlock:
			return Result{Denial: &moderation.Denial{
				Code:    moderation.DenialContentViolation,
				Message: moderation.MsgContentViolation,
			}}, nil
		case toxicity.ActionFlag:
			ff := FlaggedField{
				Field:    f.Name,
				Category: verdict.TopCategory,
				Score:    verdict.MaxScore,
			}
			flagged = append(flagged, ff)
			if p.notifier != nil {
				p.notifier.Flagged(ctx, userID, ff.Field, ff.Category, ff.Score)
			}
		}
	}

	return Result{Allowed: true, Flagged: flagged}, nil
}
