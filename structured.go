package ldblocks

// SchemaContext is the JSON-LD @context of every structured data object.
const SchemaContext = "https://schema.org"

// Answer is the accepted answer of a FAQ question.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Question is one question/answer pair of a FAQ page.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// NewQuestion returns a Question answered by text.
func NewQuestion(name, text string) Question {
	return Question{
		Type:           "Question",
		Name:           name,
		AcceptedAnswer: Answer{Type: "Answer", Text: text},
	}
}

// FAQPage is the structured data of a document with FAQ items.
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

// NewFAQPage returns a FAQPage listing questions.
func NewFAQPage(questions []Question) *FAQPage {
	return &FAQPage{
		Context:    SchemaContext,
		Type:       "FAQPage",
		MainEntity: questions,
	}
}

// HowToItem is an element of a HowTo step list: either every item is a
// HowToStep or every item is a HowToSection.
type HowToItem interface {
	howToItem()
}

// HowToStep is a single instruction.
type HowToStep struct {
	Type  string `json:"@type"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

func (HowToStep) howToItem() {}

// NewHowToStep returns a HowToStep with the given text.
func NewHowToStep(text string) HowToStep {
	return HowToStep{Type: "HowToStep", Text: text}
}

// HowToSection groups steps under a heading.
type HowToSection struct {
	Type            string      `json:"@type"`
	Name            string      `json:"name"`
	ItemListElement []HowToStep `json:"itemListElement"`
}

func (HowToSection) howToItem() {}

// NewHowToSection returns a HowToSection named name.
func NewHowToSection(name string, steps []HowToStep) HowToSection {
	return HowToSection{Type: "HowToSection", Name: name, ItemListElement: steps}
}

// HowTo is the structured data of a document with a how-to block.
type HowTo struct {
	Context     string      `json:"@context"`
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Step        []HowToItem `json:"step"`
	Description string      `json:"description,omitempty"`
}

// NewHowTo returns a HowTo. An empty description is omitted.
func NewHowTo(name string, steps []HowToItem, description string) *HowTo {
	return &HowTo{
		Context:     SchemaContext,
		Type:        "HowTo",
		Name:        name,
		Step:        steps,
		Description: description,
	}
}

// HowToResult is the outcome of a how-to extraction on a document that
// contains a how-to block.
type HowToResult struct {
	// HowTo is nil when the block did not yield valid structured data.
	HowTo *HowTo

	// CSS is the dot-color stylesheet fragment. It may be set even when
	// HowTo is nil.
	CSS string
}

// FAQExtractor extracts FAQ questions from document text.
type FAQExtractor interface {
	// ExtractFAQ returns the valid questions of every FAQ item block.
	// Returns ENOTFOUND if the document has no FAQ item block. A document
	// whose items are all invalid yields an empty slice.
	ExtractFAQ(text string) ([]Question, error)
}

// HowToExtractor extracts HowTo data from document text.
type HowToExtractor interface {
	// ExtractHowTo processes the first how-to block of the document.
	// Returns ENOTFOUND if the document has no how-to block.
	ExtractHowTo(text string) (*HowToResult, error)
}
