// Package bluemonday implements ldblocks.TextSanitizer with allow-list
// policies from microcosm-cc/bluemonday.
package bluemonday

import (
	"regexp"
	"strings"

	"github.com/fwojciec/ldblocks"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements ldblocks.TextSanitizer at compile time.
var _ ldblocks.TextSanitizer = (*Sanitizer)(nil)

var (
	lineBreaksRe = regexp.MustCompile(`(?:\r\n|\n|\r)+`)
	breakTagRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	loneParaRe   = regexp.MustCompile(`(?is)\A<p>(.*)</p>\z`)
)

// Sanitizer strips markup from block content. It is safe for concurrent use.
type Sanitizer struct {
	strict *bluemonday.Policy
	answer *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	answer := bluemonday.NewPolicy()
	answer.AllowElements(ldblocks.AnswerTags...)
	answer.AllowAttrs("href").OnElements("a")
	answer.AllowURLSchemes("http", "https", "mailto")
	answer.AllowRelativeURLs(true)
	answer.RequireParseableURLs(true)

	return &Sanitizer{
		strict: bluemonday.StrictPolicy(),
		answer: answer,
	}
}

// StripTags removes all markup, decodes entities and trims surrounding whitespace.
func (s *Sanitizer) StripTags(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(in)))
}

// IsText reports whether visible text remains once markup is stripped.
func (s *Sanitizer) IsText(in string) bool {
	return ldblocks.TrimText(s.StripTags(in)) != ""
}

// SanitizeAnswer restricts in to ldblocks.AnswerTags, collapses each run of
// line breaks into a single ldblocks.BreakToken and trims the result. An
// answer made of a single paragraph is unwrapped. Returns false when no
// visible text remains.
func (s *Sanitizer) SanitizeAnswer(in string) (string, bool) {
	out := s.answer.Sanitize(in)
	out = breakTagRe.ReplaceAllString(out, ldblocks.BreakToken)
	out = ldblocks.TrimText(out)
	out = lineBreaksRe.ReplaceAllString(out, ldblocks.BreakToken)
	out = unwrapParagraph(out)

	if !s.IsText(out) {
		return "", false
	}
	return out, true
}

// unwrapParagraph drops the p element around an answer that holds exactly one.
func unwrapParagraph(s string) string {
	m := loneParaRe.FindStringSubmatch(s)
	if m == nil || strings.Contains(strings.ToLower(m[1]), "<p>") {
		return s
	}
	return ldblocks.TrimText(m[1])
}
