package utils

import (
	"html"
	"math/rand"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SanitizeText strips HTML tags and entities from free-text input (card
// content, report bodies) so only plain text is persisted.
func SanitizeText(s string) string {
	p := bluemonday.StripTagsPolicy()
	s = p.Sanitize(s)
	// bluemonday escapes entities; decode them back to plain text
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// FoldForSearch lowercases and removes diacritics so fuzzy matching is
// accent-insensitive ("café" matches "cafe").
func FoldForSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// joinCodeChars avoids characters that are easy to misread (0/O, 1/I).
const joinCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomJoinCode generates a team join code of the given length.
func RandomJoinCode(length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(joinCodeChars[rand.Intn(len(joinCodeChars))])
	}
	return sb.String()
}
