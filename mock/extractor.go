package mock

import "github.com/fwojciec/ldblocks"

// Compile-time interface verification.
var (
	_ ldblocks.FAQExtractor   = (*FAQExtractor)(nil)
	_ ldblocks.HowToExtractor = (*HowToExtractor)(nil)
	_ ldblocks.TextSanitizer  = (*TextSanitizer)(nil)
)

// FAQExtractor is a mock implementation of ldblocks.FAQExtractor.
type FAQExtractor struct {
	ExtractFAQFn func(text string) ([]ldblocks.Question, error)
}

func (x *FAQExtractor) ExtractFAQ(text string) ([]ldblocks.Question, error) {
	return x.ExtractFAQFn(text)
}

// HowToExtractor is a mock implementation of ldblocks.HowToExtractor.
type HowToExtractor struct {
	ExtractHowToFn func(text string) (*ldblocks.HowToResult, error)
}

func (x *HowToExtractor) ExtractHowTo(text string) (*ldblocks.HowToResult, error) {
	return x.ExtractHowToFn(text)
}

// TextSanitizer is a mock implementation of ldblocks.TextSanitizer.
type TextSanitizer struct {
	StripTagsFn      func(s string) string
	IsTextFn         func(s string) bool
	SanitizeAnswerFn func(s string) (string, bool)
}

func (t *TextSanitizer) StripTags(s string) string {
	return t.StripTagsFn(s)
}

func (t *TextSanitizer) IsText(s string) bool {
	return t.IsTextFn(s)
}

func (t *TextSanitizer) SanitizeAnswer(s string) (string, bool) {
	return t.SanitizeAnswerFn(s)
}
