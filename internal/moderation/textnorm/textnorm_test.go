package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "zero width space stripped",
			input: "he​llo",
			want:  "hello",
		},
		{
			name:  "zero width joiner and non joiner stripped",
			input: "h‍e‌llo",
			want:  "hello",
		},
		{
			name:  "soft hyphen stripped",
			input: "hel­lo",
			want:  "hello",
		},
		{
			name:  "combining diaeresis removed",
			input: "hëllo",
			want:  "hello",
		},
		{
			name:  "precomposed accents folded to base letters",
			input: "héllö wörld",
			want:  "hello world",
		},
		{
			name:  "cyrillic homoglyphs folded",
			input: "hеllо", // Cyrillic е and о
			want:  "hello",
		},
		{
			name:  "uppercase cyrillic folded then lowercased",
			input: "НЕLLO", // Cyrillic Н Е
			want:  "hello",
		},
		{
			name:  "casefold",
			input: "HeLLo",
			want:  "hello",
		},
		{
			name:  "leet substitutions",
			input: "h3ll0 w0r1d",
			want:  "hello world",
		},
		{
			name:  "symbol leet substitutions",
			input: "b@d $tuff +ime",
			want:  "bad stuff time",
		},
		{
			name:  "stacked evasion layers",
			input: "H​ЁLL0", // ZWSP + Cyrillic Е + diaeresis + leet zero
			want:  "hello",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"hello world",
		"H​ЁLL0 wоrld",
		"b@d $0up 4ever",
		"ünïcödé ѕtrіng",
		"",
		"   whitespace only   ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
