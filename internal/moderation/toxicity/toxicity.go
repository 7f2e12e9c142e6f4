// Package toxicity maps external classifier scores into moderation
// actions. The scoring model lives behind the Classifier interface; this
// package owns only the decision mapping.
package toxicity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verdantsocial/verdant/internal/metrics"
	"github.com/verdantsocial/verdant/internal/moderation"
)

// Action is the gate's decision for one piece of text.
type Action string

const (
	// ActionPass lets the operation proceed untouched.
	ActionPass Action = "pass"
	// ActionFlag lets the operation proceed but queues the content for
	// asynchronous human review.
	ActionFlag Action = "flag"
	// ActionBlock stops the operation before any side effect.
	ActionBlock Action = "block"
)

// CategoryScore is one classifier category with its confidence score.
type CategoryScore struct {
	Name  string
	Score float64
}

// Classifier scores text for toxicity. Implementations call an external
// service; scores are in [0,1] per category.
type Classifier interface {
	Score(ctx context.Context, text string) ([]CategoryScore, error)
}

// Verdict is produced fresh per call and never persisted here;
// persisting flagged content for review is the caller's job.
type Verdict struct {
	Action      Action
	MaxScore    float64
	TopCategory string
	Categories  []CategoryScore
}

// Default thresholds over the max category score. These track the
// upstream classifier's calibration and are overridable per deployment.
const (
	DefaultBlockThreshold = 0.85
	DefaultFlagThreshold  = 0.50
)

// Gate turns classifier scores into pass/flag/block decisions.
type Gate struct {
	classifier     Classifier
	blockThreshold float64
	flagThreshold  float64
}

// NewGate creates a gate with the default thresholds.
func NewGate(classifier Classifier) *Gate {
	return &Gate{
		classifier:     classifier,
		blockThreshold: DefaultBlockThreshold,
		flagThreshold:  DefaultFlagThreshold,
	}
}

// NewGateWithThresholds creates a gate with explicit thresholds.
func NewGateWithThresholds(classifier Classifier, block, flag float64) *Gate {
	return &Gate{classifier: classifier, blockThreshold: block, flagThreshold: flag}
}

// Classify scores text and maps the result to an action. A classifier
// failure is returned as an error wrapping ErrDependencyUnavailable and
// is never silently treated as a pass; whether to fail the request or
// degrade is the caller's explicit choice.
func (g *Gate) Classify(ctx context.Context, text string) (Verdict, error) {
	start := time.Now()
	scores, err := g.classifier.Score(ctx, text)
	metrics.ClassifierDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return Verdict{}, fmt.Errorf("toxicity classifier: %w: %w",
			moderation.ErrDependencyUnavailable, err)
	}

	verdict := Verdict{Action: ActionPass, Categories: scores}
	for _, cs := range scores {
		if cs.Score > verdict.MaxScore {
			verdict.MaxScore = cs.Score
			verdict.TopCategory = cs.Name
		}
	}

	switch {
	case verdict.MaxScore >= g.blockThreshold:
		verdict.Action = ActionBlock
	case verdict.MaxScore >= g.flagThreshold:
		verdict.Action = ActionFlag
	}

	metrics.ToxicityActionsTotal.WithLabelValues(string(verdict.Action)).Inc()
	if verdict.Action != ActionPass {
		log.Debug().
			Str("action", string(verdict.Action)).
			Str("category", verdict.TopCategory).
			Float64("score", verdict.MaxScore).
			Msg("toxicity: non-pass verdict")
	}

	return verdict, nil
}
