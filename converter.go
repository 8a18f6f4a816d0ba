package ldblocks

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a sanitized FAQ answer,
	// into Markdown.
	Convert(html string) (string, error)
}
