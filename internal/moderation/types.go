// Package moderation holds the shared vocabulary of the moderation
// pipeline: violation categories, severity ranking, and the denial
// taxonomy surfaced to callers.
package moderation

import "time"

// ViolationCategory identifies a class of content-policy violation.
type ViolationCategory string

const (
	CategoryProfanity  ViolationCategory = "profanity"
	CategoryHateSpeech ViolationCategory = "hate_speech"
	CategoryHarassment ViolationCategory = "harassment"
	CategorySpam       ViolationCategory = "spam"
	CategoryPhishing   ViolationCategory = "phishing"
)

// Severity ranks how serious a set of violations is. Values are ordered;
// comparisons like sev >= SeverityHigh are meaningful.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// SeverityFor derives the overall severity from the set of violation
// categories present. The mapping is fixed: hate speech and harassment
// are critical, profanity and phishing are high, spam is medium, and any
// other non-empty set is low.
func SeverityFor(categories map[ViolationCategory]struct{}) Severity {
	if len(categories) == 0 {
		return SeverityNone
	}
	if _, ok := categories[CategoryHateSpeech]; ok {
		return SeverityCritical
	}
	if _, ok := categories[CategoryHarassment]; ok {
		return SeverityCritical
	}
	if _, ok := categories[CategoryProfanity]; ok {
		return SeverityHigh
	}
	if _, ok := categories[CategoryPhishing]; ok {
		return SeverityHigh
	}
	if _, ok := categories[CategorySpam]; ok {
		return SeverityMedium
	}
	return SeverityLow
}

// DenialCode classifies why a request was denied.
type DenialCode string

const (
	DenialNotFound         DenialCode = "NOT_FOUND"
	DenialSuspended        DenialCode = "SUSPENDED"
	DenialBanned           DenialCode = "BANNED"
	DenialGone             DenialCode = "GONE"
	DenialContentViolation DenialCode = "CONTENT_VIOLATION"
)

// Denial is a policy decision against the request. It is a value, not an
// error: infrastructure failures travel the error return instead.
type Denial struct {
	Code    DenialCode
	Message string
	// Until is set for time-bounded suspensions; nil means indefinite
	// (or not applicable to the code).
	Until *time.Time
}

// User-facing denial messages. The content-violation message is
// deliberately generic so callers never echo back which rule matched.
const (
	MsgBannedDefault    = "This account has been permanently banned."
	MsgSuspendedDefault = "This account is temporarily suspended."
	MsgGone             = "This account is no longer available."
	MsgContentViolation = "This content violates our community guidelines."
	MsgNotFound         = "Account not found."
)
