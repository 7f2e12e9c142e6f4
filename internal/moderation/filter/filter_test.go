package filter

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/verdantsocial/verdant/internal/moderation"
	"github.com/verdantsocial/verdant/internal/moderation/policy"
)

// fixedList serves a static policy list without any I/O.
type fixedList struct {
	list *policy.List
}

func (f fixedList) Get(ctx context.Context) *policy.List { return f.list }

func testFilter() *Filter {
	return New(fixedList{list: &policy.List{
		Critical:  []string{"badslur"},
		Profanity: []string{"dangit"},
		Harassment: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bi will find you\b`),
			regexp.MustCompile(`(?i)\bte voy a matar\b`),
		},
		Spam: []*regexp.Regexp{
			regexp.MustCompile(`(?i)https?://\S+`),
		},
		Phishing: []*regexp.Regexp{
			regexp.MustCompile(`(?i)verify your account`),
		},
		FetchedAt: time.Now(),
	}})
}

func TestCheck_CleanText(t *testing.T) {
	v := testFilter().Check(context.Background(), "what a lovely morning")
	assert.True(t, v.Clean)
	assert.Empty(t, v.Violations)
	assert.Equal(t, moderation.SeverityNone, v.Severity)
}

func TestCheck_EmptyAndWhitespace(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  "} {
		v := testFilter().Check(context.Background(), text)
		assert.True(t, v.Clean, "input %q must be clean", text)
		assert.Equal(t, moderation.SeverityNone, v.Severity)
	}
}

func TestCheck_CriticalWordEvasion(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", "you are a badslur"},
		{"uppercase", "you are a BADSLUR"},
		{"zero width insertion", "you are a bad​slur"},
		{"combining mark insertion", "you are a bädslur"},
		{"cyrillic homoglyph", "you are a bаdslur"}, // Cyrillic а
		{"leet substitution", "you are a b4d5lur"},
	}

	f := testFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := f.Check(context.Background(), tt.text)
			assert.False(t, v.Clean)
			assert.True(t, v.Has(moderation.CategoryHateSpeech))
			assert.Equal(t, moderation.SeverityCritical, v.Severity)
		})
	}
}

func TestCheck_WordBoundaries(t *testing.T) {
	f := testFilter()

	// Embedded inside a longer word is not a match.
	v := f.Check(context.Background(), "abadslurb is a place name")
	assert.True(t, v.Clean)

	// Punctuation still forms a boundary.
	v = f.Check(context.Background(), "badslur!")
	assert.False(t, v.Clean)
}

func TestCheck_Profanity(t *testing.T) {
	v := testFilter().Check(context.Background(), "oh dangit not again")
	assert.False(t, v.Clean)
	assert.True(t, v.Has(moderation.CategoryProfanity))
	assert.Equal(t, moderation.SeverityHigh, v.Severity)
}

func TestCheck_HarassmentAgainstRawText(t *testing.T) {
	f := testFilter()

	v := f.Check(context.Background(), "I will find you")
	assert.True(t, v.Has(moderation.CategoryHarassment))
	assert.Equal(t, moderation.SeverityCritical, v.Severity)

	v = f.Check(context.Background(), "te voy a matar")
	assert.True(t, v.Has(moderation.CategoryHarassment))
}

func TestCheck_SpamAndPhishing(t *testing.T) {
	f := testFilter()

	v := f.Check(context.Background(), "buy now at https://spam.example/deal")
	assert.True(t, v.Has(moderation.CategorySpam))
	assert.Equal(t, moderation.SeverityMedium, v.Severity)

	v = f.Check(context.Background(), "please verify your account here")
	assert.True(t, v.Has(moderation.CategoryPhishing))
	assert.Equal(t, moderation.SeverityHigh, v.Severity)
}

func TestCheck_SeverityTakesWorstCategory(t *testing.T) {
	// Profanity alone is high, but adding harassment escalates to critical.
	v := testFilter().Check(context.Background(), "dangit, i will find you")
	assert.True(t, v.Has(moderation.CategoryProfanity))
	assert.True(t, v.Has(moderation.CategoryHarassment))
	assert.Equal(t, moderation.SeverityCritical, v.Severity)
}

func TestCheck_FallbackListWhenFetchFails(t *testing.T) {
	// A cache whose store always errors must still serve verdicts.
	cache := policy.NewCache(failingStore{}, "b", "k")
	f := New(cache)

	v := f.Check(context.Background(), "some clean sentence")
	assert.True(t, v.Clean)

	// The fallback critical list is still enforced.
	v = f.Check(context.Background(), "total nazi rhetoric")
	assert.False(t, v.Clean)
	assert.True(t, v.Has(moderation.CategoryHateSpeech))
}

type failingStore struct{}

func (failingStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	return nil, context.DeadlineExceeded
}
