// Package extract implements the FAQ and HowTo extraction pipelines and the
// save hook that caches their results.
package extract

import (
	"github.com/fwojciec/ldblocks"
)

// Ensure FAQExtractor implements ldblocks.FAQExtractor at compile time.
var _ ldblocks.FAQExtractor = (*FAQExtractor)(nil)

// FAQExtractor builds FAQ questions from FAQ item blocks.
type FAQExtractor struct {
	decoder ldblocks.AttributeDecoder
	text    ldblocks.TextSanitizer
	marker  string
	needle  string
}

// NewFAQExtractor creates a FAQExtractor scanning for the FAQ item marker
// and answer class configured in cfg.
func NewFAQExtractor(cfg ldblocks.Config, decoder ldblocks.AttributeDecoder, text ldblocks.TextSanitizer) *FAQExtractor {
	return &FAQExtractor{
		decoder: decoder,
		text:    text,
		marker:  cfg.Markers.FAQItem,
		needle:  cfg.AnswerClass,
	}
}

// ExtractFAQ returns one question per valid FAQ item. Items without a
// question or answer text are skipped without affecting their siblings.
func (x *FAQExtractor) ExtractFAQ(text string) ([]ldblocks.Question, error) {
	if !ldblocks.HasMarkerFamily(text, ldblocks.MarkerFamily(x.marker)) {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no FAQ block")
	}
	blocks := ldblocks.FindBlocks(text, x.marker)
	if len(blocks) == 0 {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no FAQ block")
	}

	questions := make([]ldblocks.Question, 0, len(blocks))
	for _, b := range blocks {
		q, ok := x.question(b)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (x *FAQExtractor) question(b ldblocks.BlockMatch) (ldblocks.Question, bool) {
	attrs := ldblocks.NewFAQItemAttrs(x.decoder.Decode(b.AttributesRaw))
	if !x.text.IsText(attrs.Question) {
		return ldblocks.Question{}, false
	}
	name := ldblocks.TrimText(x.text.StripTags(attrs.Question))

	frag := ldblocks.FragmentExtractor{Text: x.text}
	inner, ok := frag.ClassedDiv(b.InnerContent, x.needle)
	if !ok {
		return ldblocks.Question{}, false
	}
	answer, ok := x.text.SanitizeAnswer(inner)
	if !ok {
		return ldblocks.Question{}, false
	}
	return ldblocks.NewQuestion(name, answer), true
}
