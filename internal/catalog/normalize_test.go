package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  The Fool  ",
			expected: "fool",
		},
		{
			name:     "drops leading article only",
			input:    "Wheel of The Fortune",
			expected: "wheel of the fortune",
		},
		{
			name:     "number words become digits",
			input:    "Three of Cups",
			expected: "3 of cups",
		},
		{
			name:     "ten is translated whole",
			input:    "Ten of Swords",
			expected: "10 of swords",
		},
		{
			name:     "digits pass through",
			input:    "3 of cups",
			expected: "3 of cups",
		},
		{
			name:     "punctuation stripped",
			input:    "the high-priestess!",
			expected: "highpriestess",
		},
		{
			name:     "whitespace collapsed",
			input:    "the   high   priestess",
			expected: "high priestess",
		},
		{
			name:     "diacritics stripped",
			input:    "thé hérmit",
			expected: "hermit",
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}
