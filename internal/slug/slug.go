// Package slug turns free-form text into URL-safe slugs and allocates
// globally unique ones with a deterministic fingerprint suffix on collision.
package slug

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest accepted slug input, in runes
const MaxLength = 50

var (
	// ErrEmpty means the input had no usable characters after normalization
	ErrEmpty = errors.New("slug is empty after normalization")
	// ErrTooLong means the trimmed input exceeded MaxLength before normalization
	ErrTooLong = errors.New("slug exceeds 50 characters")
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// foldMarks strips combining diacritical marks after NFD decomposition,
// so "Café" folds to "Cafe" before the ASCII pass.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts raw user input or a business name into a canonical
// slug: lowercase, alphabet [a-z0-9-], no leading/trailing/doubled hyphen.
// The length limit applies to the trimmed input, not the normalized result.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) > MaxLength {
		return "", ErrTooLong
	}

	folded, _, err := transform.String(foldMarks, trimmed)
	if err != nil {
		// malformed input keeps its original bytes; the ASCII pass below
		// drops anything unusable anyway
		folded = trimmed
	}

	s := strings.ToLower(folded)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}
