package policy

import "regexp"

// Fallback returns the compiled-in minimal list used when the remote
// document cannot be fetched or parsed. Coverage is deliberately coarse:
// it exists so an object-store outage never leaves the filter running
// with an empty list, not to replace the curated remote document.
func Fallback() *List {
	return &List{
		Critical: []string{
			"nazi",
			"subhuman",
			"ethnic cleansing",
		},
		Profanity: []string{
			"fuck",
			"shit",
			"asshole",
			"bitch",
			"cunt",
		},
		Harassment: []*regexp.Regexp{
			// Direct threats, English and Spanish.
			regexp.MustCompile(`(?i)\b(i\s*('|a)?m\s+going\s+to|i\s+will|i('|a)?ma|gonna)\s+(kill|hurt|beat|find)\s+(you|u|your)\b`),
			regexp.MustCompile(`(?i)\bte\s+voy\s+a\s+(matar|encontrar|lastimar)\b`),
			// Self-harm incitement.
			regexp.MustCompile(`(?i)\b(kill\s*yourself|kys|go\s+die)\b`),
			regexp.MustCompile(`(?i)\bm[aá]tate\b`),
		},
		Spam: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(https?://\S+|www\.\S+)`),
		},
		Phishing: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(verify\s+your\s+account|claim\s+your\s+(prize|reward)|free\s+(gift\s*card|crypto|money))\b`),
		},
	}
}
