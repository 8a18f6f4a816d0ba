package extract_test

import (
	"github.com/fwojciec/ldblocks"
	"github.com/fwojciec/ldblocks/bluemonday"
	"github.com/fwojciec/ldblocks/extract"
	"github.com/fwojciec/ldblocks/gjson"
)

func newFAQExtractor() *extract.FAQExtractor {
	return extract.NewFAQExtractor(ldblocks.DefaultConfig(), gjson.NewDecoder(), bluemonday.NewSanitizer())
}

func newHowToExtractor() *extract.HowToExtractor {
	return extract.NewHowToExtractor(ldblocks.DefaultConfig(), gjson.NewDecoder(), bluemonday.NewSanitizer())
}

// faqItem renders a FAQ item block the way the editor saves it.
func faqItem(attrs, answer string) string {
	return `<!-- faq/item ` + attrs + ` -->
<div class="wp-block-faq-item"><div class="faq-question">question</div><div class="faq-answer-text">` + answer + `</div></div>
<!-- /faq/item -->
`
}

// step renders a how-to step block.
func step(attrs, content string) string {
	return `<!-- how-to/step ` + attrs + ` -->
<div class="how-to-step"><span class="how-to-step-dot"></span>` + content + `</div>
<!-- /how-to/step -->
`
}

// section renders a how-to section block.
func section(heading string, steps ...string) string {
	s := "<!-- how-to/section -->\n<div class=\"how-to-section\">" + heading + "\n"
	for _, st := range steps {
		s += st
	}
	return s + "</div>\n<!-- /how-to/section -->\n"
}

// howTo renders a how-to block around body.
func howTo(attrs, body string) string {
	return "<p>Intro</p>\n<!-- how-to/main " + attrs + " -->\n<div class=\"how-to\">" + body + "</div>\n<!-- /how-to/main -->\n<p>Outro</p>"
}
