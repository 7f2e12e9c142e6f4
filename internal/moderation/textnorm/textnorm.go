// Package textnorm canonicalizes user text before wordlist matching.
// Each step folds the input toward a smaller alphabet, so the pipeline
// composes: no step can reintroduce a character an earlier step removed.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, collapsing
// accent-based obfuscation (e.g. a diaeresis inserted mid-word) to base
// letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// homoglyphs maps visually-identical characters from other scripts to
// their Latin equivalents. Curated, not exhaustive: these are the
// substitutions seen in actual filter-evasion attempts, mostly Cyrillic
// and Greek look-alikes.
var homoglyphs = map[rune]rune{
	// Cyrillic lowercase
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'у': 'y',
	'х': 'x', 'і': 'i', 'ј': 'j', 'ѕ': 's', 'ԁ': 'd', 'ԛ': 'q',
	'ԝ': 'w', 'һ': 'h', 'ѵ': 'v', 'ё': 'e',
	// Cyrillic uppercase
	'А': 'A', 'В': 'B', 'Е': 'E', 'К': 'K', 'М': 'M', 'Н': 'H',
	'О': 'O', 'Р': 'P', 'С': 'C', 'Т': 'T', 'У': 'Y', 'Х': 'X',
	'Ѕ': 'S', 'І': 'I', 'Ј': 'J',
	// Greek
	'ο': 'o', 'ν': 'v', 'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z',
	'Η': 'H', 'Ι': 'I', 'Κ': 'K', 'Μ': 'M', 'Ν': 'N', 'Ο': 'O',
	'Ρ': 'P', 'Τ': 'T', 'Υ': 'Y', 'Χ': 'X',
}

// leet maps digit/symbol substitutes back to letters. Applied after
// casefolding, so only lowercase letters appear on the right side.
var leet = map[rune]rune{
	'@': 'a', '0': 'o', '1': 'i', '!': 'i', '|': 'i', '3': 'e',
	'4': 'a', '5': 's', '$': 's', '7': 't', '8': 'b', '9': 'g',
	'6': 'g', '2': 'z', '+': 't',
}

// Normalize canonicalizes raw text into a form resistant to common
// filter-evasion tricks. Pure and deterministic; idempotent, so
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	// 1. Strip zero-width and invisible formatting characters
	// (Unicode Cf covers ZWSP, ZWJ/ZWNJ, soft hyphen, BOM, bidi
	// controls) used to split tokens invisibly.
	text = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, text)

	// 2. NFD + combining mark removal.
	if folded, _, err := transform.String(stripMarks, text); err == nil {
		text = folded
	}

	// 3. Homoglyph folding.
	text = strings.Map(func(r rune) rune {
		if latin, ok := homoglyphs[r]; ok {
			return latin
		}
		return r
	}, text)

	// 4. Casefold.
	text = strings.ToLower(text)

	// 5. Leet-speak substitution.
	return strings.Map(func(r rune) rune {
		if letter, ok := leet[r]; ok {
			return letter
		}
		return r
	}, text)
}
