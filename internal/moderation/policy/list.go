// Package policy provides the blocklist document used by the content
// filter: its schema, a compiled-in fallback, and a TTL cache over the
// remote copy in the object store.
package policy

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// List is an immutable snapshot of the moderation blocklists. It is
// replaced wholesale on refresh, never mutated in place, so readers may
// hold a *List across calls without locking.
type List struct {
	// Critical words map to the hate_speech violation category.
	Critical []string
	// Profanity words map to the profanity category.
	Profanity []string
	// Harassment patterns are multi-word threat/self-harm expressions
	// matched against raw (un-normalized) text.
	Harassment []*regexp.Regexp
	// Spam and Phishing patterns cover link/contact bait.
	Spam     []*regexp.Regexp
	Phishing []*regexp.Regexp

	FetchedAt time.Time
}

// document is the JSON schema of the remote policy object.
type document struct {
	Critical           []string `json:"critical"`
	Profanity          []string `json:"profanity"`
	HarassmentPatterns []string `json:"harassment_patterns"`
	SpamPatterns       []string `json:"spam_patterns"`
	PhishingPatterns   []string `json:"phishing_patterns"`
}

// Parse decodes a policy document and compiles its patterns. Individual
// patterns that fail to compile are skipped with a warning rather than
// rejecting the whole document; a document that is not valid JSON is an
// error and the caller falls back.
func Parse(data []byte) (*List, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse policy document: %w", err)
	}

	return &List{
		Critical:   doc.Critical,
		Profanity:  doc.Profanity,
		Harassment: compilePatterns("harassment", doc.HarassmentPatterns),
		Spam:       compilePatterns("spam", doc.SpamPatterns),
		Phishing:   compilePatterns("phishing", doc.PhishingPatterns),
	}, nil
}

func compilePatterns(kind string, patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			log.Warn().Err(err).Str("kind", kind).Str("pattern", p).
				Msg("policy: skipping invalid pattern")
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}
