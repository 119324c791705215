// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

// Matches runs of whitespace for collapsing.
var innerSpaceRe = regexp.MustCompile(`\s+`)

// NormalizeTagName converts user input to the canonical form of a tag name.
// The normalized name is the source of truth for tag identity: two inputs
// that normalize to the same string refer to the same tag.
//
// Normalization rules:
//  1. Trim surrounding whitespace
//  2. Lowercase
//  3. Collapse inner whitespace runs to a single space
//
// Tags are display names rather than URL slugs, so punctuation and
// non-ASCII characters are kept as typed.
//
// Examples:
//
//	"Slow Burn"       → "slow burn"
//	"  SLOW   burn  " → "slow burn"
//	"Sci-Fi"          → "sci-fi"
func NormalizeTagName(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	return innerSpaceRe.ReplaceAllString(s, " ")
}
