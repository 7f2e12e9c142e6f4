package toxicity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantsocial/verdant/internal/moderation"
)

type mockClassifier struct {
	scoreFunc func(ctx context.Context, text string) ([]CategoryScore, error)
}

func (m *mockClassifier) Score(ctx context.Context, text string) ([]CategoryScore, error) {
	return m.scoreFunc(ctx, text)
}

func fixedScores(scores ...CategoryScore) *mockClassifier {
	return &mockClassifier{scoreFunc: func(ctx context.Context, text string) ([]CategoryScore, error) {
		return scores, nil
	}}
}

func TestClassify_ActionMapping(t *testing.T) {
	tests := []struct {
		name       string
		scores     []CategoryScore
		wantAction Action
		wantTop    string
		wantMax    float64
	}{
		{
			name:       "no categories passes",
			scores:     nil,
			wantAction: ActionPass,
		},
		{
			name:       "low scores pass",
			scores:     []CategoryScore{{Name: "INSULT", Score: 0.12}, {Name: "THREAT", Score: 0.03}},
			wantAction: ActionPass,
			wantTop:    "INSULT",
			wantMax:    0.12,
		},
		{
			name:       "mid score flags",
			scores:     []CategoryScore{{Name: "INSULT", Score: 0.62}},
			wantAction: ActionFlag,
			wantTop:    "INSULT",
			wantMax:    0.62,
		},
		{
			name:       "flag threshold boundary flags",
			scores:     []CategoryScore{{Name: "PROFANITY", Score: 0.50}},
			wantAction: ActionFlag,
			wantTop:    "PROFANITY",
			wantMax:    0.50,
		},
		{
			name:       "high score blocks",
			scores:     []CategoryScore{{Name: "HATE_SPEECH", Score: 0.93}},
			wantAction: ActionBlock,
			wantTop:    "HATE_SPEECH",
			wantMax:    0.93,
		},
		{
			name:       "max across categories decides",
			scores:     []CategoryScore{{Name: "INSULT", Score: 0.4}, {Name: "THREAT", Score: 0.9}},
			wantAction: ActionBlock,
			wantTop:    "THREAT",
			wantMax:    0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(fixedScores(tt.scores...))
			verdict, err := gate.Classify(context.Background(), "some text")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, verdict.Action)
			assert.Equal(t, tt.wantTop, verdict.TopCategory)
			assert.InDelta(t, tt.wantMax, verdict.MaxScore, 1e-9)
			assert.Equal(t, tt.scores, verdict.Categories)
		})
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	gate := NewGateWithThresholds(fixedScores(CategoryScore{Name: "INSULT", Score: 0.3}), 0.6, 0.2)
	verdict, err := gate.Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, ActionFlag, verdict.Action)
}

func TestClassify_ClassifierFailureIsNotPass(t *testing.T) {
	boom := errors.New("comprehend timeout")
	gate := NewGate(&mockClassifier{scoreFunc: func(ctx context.Context, text string) ([]CategoryScore, error) {
		return nil, boom
	}})

	_, err := gate.Classify(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, moderation.ErrDependencyUnavailable)
	assert.ErrorIs(t, err, boom)
}
