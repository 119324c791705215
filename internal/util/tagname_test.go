package util

import "testing"

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "DRAGONS", "dragons"},
		{"mixed case", "Slow Burn", "slow burn"},
		{"already normalized", "slow burn", "slow burn"},
		{"hyphens kept", "Sci-Fi", "sci-fi"},

		// Whitespace handling
		{"trim whitespace", "  dragons  ", "dragons"},
		{"multiple inner spaces", "slow   burn", "slow burn"},
		{"tabs collapse", "slow\t burn", "slow burn"},
		{"newline collapse", "slow\nburn", "slow burn"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"numbers allowed", "top10", "top10"},
		{"punctuation kept", "don't", "don't"},

		// Real-world examples
		{"found family", "Found Family", "found family"},
		{"comfort rewatch", "  Comfort  Rewatch ", "comfort rewatch"},
		{"film noir", "Film NOIR", "film noir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTagName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTagName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
