package ldblocks

import (
	"strings"
	"unicode"
)

// BreakToken replaces every run of line breaks in a sanitized answer.
const BreakToken = "<br>"

// AnswerTags lists the elements kept in a sanitized FAQ answer.
var AnswerTags = []string{"br", "ol", "ul", "li", "a", "p", "b", "strong", "i", "em"}

// TextSanitizer turns HTML fragments into schema-compliant text.
type TextSanitizer interface {
	// StripTags removes all markup, decodes entities and trims the result.
	StripTags(s string) string

	// IsText reports whether s still holds visible characters once markup,
	// whitespace and control characters are removed.
	IsText(s string) bool

	// SanitizeAnswer keeps only AnswerTags, collapses line breaks into
	// BreakToken and trims. Returns false when no text remains.
	SanitizeAnswer(s string) (string, bool)
}

// TrimText trims leading and trailing Unicode separators and control,
// format and private-use characters, which strings.TrimSpace leaves behind
// (e.g. zero-width spaces).
func TrimText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.In(r, unicode.Z, unicode.C)
	})
}
