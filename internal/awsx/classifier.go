package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/comprehend"

	"github.com/verdantsocial/verdant/internal/moderation/toxicity"
	"github.com/verdantsocial/verdant/internal/tracing"
)

// ComprehendAPI is the slice of the Comprehend client the classifier uses.
type ComprehendAPI interface {
	DetectToxicContentWithContext(ctx aws.Context, input *comprehend.DetectToxicContentInput, opts ...request.Option) (*comprehend.DetectToxicContentOutput, error)
}

// ToxicityClassifier scores text with Comprehend's toxic-content
// detection. Satisfies toxicity.Classifier; the action mapping stays in
// the toxicity gate.
type ToxicityClassifier struct {
	client       ComprehendAPI
	languageCode string
}

// NewToxicityClassifier creates a classifier over a Comprehend client.
// languageCode defaults to "en" when empty.
func NewToxicityClassifier(client ComprehendAPI, languageCode string) *ToxicityClassifier {
	if languageCode == "" {
		languageCode = "en"
	}
	return &ToxicityClassifier{client: client, languageCode: languageCode}
}

// NewToxicityClassifierFromSession creates a classifier using the
// default Comprehend client for the given session.
func NewToxicityClassifierFromSession(sess *session.Session, languageCode string) *ToxicityClassifier {
	return NewToxicityClassifier(comprehend.New(sess), languageCode)
}

// Score classifies one piece of text and returns the per-category
// scores. Multiple result segments are folded to the max score per
// category name.
func (c *ToxicityClassifier) Score(ctx context.Context, text string) ([]toxicity.CategoryScore, error) {
	ctx, span := tracing.ClassifierSpan(ctx)
	defer span.End()

	out, err := c.client.DetectToxicContentWithContext(ctx, &comprehend.DetectToxicContentInput{
		LanguageCode: aws.String(c.languageCode),
		TextSegments: []*comprehend.TextSegment{
			{Text: aws.String(text)},
		},
	})
	if err != nil {
		tracing.EndWithError(span, err)
		return nil, fmt.Errorf("detect toxic content: %w", err)
	}

	maxByName := make(map[string]float64)
	var order []string
	for _, result := range out.ResultList {
		for _, label := range result.Labels {
			if label.Name == nil || label.Score == nil {
				continue
			}
			name := *label.Name
			if _, seen := maxByName[name]; !seen {
				order = append(order, name)
			}
			if *label.Score > maxByName[name] {
				maxByName[name] = *label.Score
			}
		}
	}

	scores := make([]toxicity.CategoryScore, 0, len(order))
	for _, name := range order {
		scores = append(scores, toxicity.CategoryScore{Name: name, Score: maxByName[name]})
	}
	return scores, nil
}
