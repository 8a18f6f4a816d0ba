// Package goquery injects cached structured data and styles into rendered
// pages using PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ldblocks"
)

// StyleID is the id attribute of the injected style element.
const StyleID = "ldblocks-inline-css"

// Ensure Injector implements ldblocks.HeadInjector at compile time.
var _ ldblocks.HeadInjector = (*Injector)(nil)

// Injector appends JSON-LD scripts and an inline style to a page's head.
type Injector struct{}

// NewInjector creates a new Injector.
func NewInjector() *Injector {
	return &Injector{}
}

// Inject returns page with one JSON-LD script per structured data object
// followed by the style element. Pages without a head element get one.
// The page is returned unchanged when head is empty.
func (i *Injector) Inject(page string, head ldblocks.HeadContent) (string, error) {
	if head.IsEmpty() {
		return page, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", ldblocks.Errorf(ldblocks.EINVALID, "failed to parse HTML: %v", err)
	}
	target := doc.Find("head").First()

	for _, data := range head.StructuredData {
		var buf bytes.Buffer
		json.HTMLEscape(&buf, data)
		target.AppendHtml(`<script type="application/ld+json">` + buf.String() + `</script>`)
	}
	if head.CSS != "" {
		target.AppendHtml(`<style id="` + StyleID + `">` + escapeStyle(head.CSS) + `</style>`)
	}

	return doc.Html()
}

// escapeStyle keeps css from closing the style element early.
func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
