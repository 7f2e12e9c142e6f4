// Package filter classifies user text against the policy blocklists,
// combining evasion-resistant normalization with word-boundary matching.
package filter

import (
	"context"
	"regexp"
	"strings"

	"github.com/verdantsocial/verdant/internal/metrics"
	"github.com/verdantsocial/verdant/internal/moderation"
	"github.com/verdantsocial/verdant/internal/moderation/policy"
	"github.com/verdantsocial/verdant/internal/moderation/textnorm"
)

// ListSource provides the current policy list. Satisfied by
// *policy.Cache; tests inject a fixed list.
type ListSource interface {
	Get(ctx context.Context) *policy.List
}

// Verdict is the outcome of filtering one piece of text. Severity is
// derived from the violation set, never stored.
type Verdict struct {
	Clean      bool
	Violations map[moderation.ViolationCategory]struct{}
	Severity   moderation.Severity
}

// Has reports whether the verdict contains the given category.
func (v Verdict) Has(cat moderation.ViolationCategory) bool {
	_, ok := v.Violations[cat]
	return ok
}

// Filter matches text against the current policy list.
type Filter struct {
	lists ListSource
}

// New creates a Filter reading policy lists from src.
func New(src ListSource) *Filter {
	return &Filter{lists: src}
}

// Check classifies text into a violation set. Empty or whitespace-only
// input is always clean. Wordlist entries are tested against both the
// lowercased raw text and the normalized text: the raw pass catches
// spacing evasion that normalization would merge across a boundary, the
// normalized pass catches substitution evasion. Harassment, spam, and
// phishing patterns are multi-word expressions and run against the raw
// text only.
func (f *Filter) Check(ctx context.Context, text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{Clean: true, Violations: map[moderation.ViolationCategory]struct{}{}}
	}

	list := f.lists.Get(ctx)
	rawLower := strings.ToLower(text)
	normalized := textnorm.Normalize(text)

	violations := make(map[moderation.ViolationCategory]struct{})

	if matchWordlist(list.Critical, rawLower, normalized) {
		violations[moderation.CategoryHateSpeech] = struct{}{}
	}
	if matchWordlist(list.Profanity, rawLower, normalized) {
		violations[moderation.CategoryProfanity] = struct{}{}
	}
	if matchPatterns(list.Harassment, text) {
		violations[moderation.CategoryHarassment] = struct{}{}
	}
	if matchPatterns(list.Spam, text) {
		violations[moderation.CategorySpam] = struct{}{}
	}
	if matchPatterns(list.Phishing, text) {
		violations[moderation.CategoryPhishing] = struct{}{}
	}

	for cat := range violations {
		metrics.FilterViolationsTotal.WithLabelValues(string(cat)).Inc()
	}

	return Verdict{
		Clean:      len(violations) == 0,
		Violations: violations,
		Severity:   moderation.SeverityFor(violations),
	}
}

// matchWordlist tests each word as a boundary-anchored case-insensitive
// pattern against both text forms. Metacharacters in the word itself are
// escaped, so list entries are literal words, not patterns.
func matchWordlist(words []string, rawLower, normalized string) bool {
	for _, word := range words {
		if word == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(rawLower) || re.MatchString(normalized) {
			return true
		}
	}
	return false
}

func matchPatterns(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
