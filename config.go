package ldblocks

// Default configuration values.
const (
	DefaultPrimaryColor   = "#0073aa"
	DefaultSecondaryColor = "#00a0d2"
	DefaultDotClass       = ".how-to-step-dot"
	DefaultAnswerClass    = "faq-answer-text"
)

// Config holds the global settings shared by the extraction pipelines.
type Config struct {
	Color   ColorConfig  `json:"color" yaml:"color"`
	Markers MarkerConfig `json:"markers" yaml:"markers"`

	// AnswerClass is the class needle identifying the answer div of a FAQ item.
	AnswerClass string `json:"answerClass" yaml:"answerClass"`

	// DotClass is the CSS selector of the how-to step progress dot.
	DotClass string `json:"dotClass" yaml:"dotClass"`
}

// ColorConfig holds the fallback accent colors.
type ColorConfig struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

// MarkerConfig names the block markers each pipeline scans for.
// Names take the form NAMESPACE/TYPE, e.g. "how-to/step".
type MarkerConfig struct {
	FAQItem      string `json:"faqItem" yaml:"faqItem"`
	HowTo        string `json:"howTo" yaml:"howTo"`
	HowToSection string `json:"howToSection" yaml:"howToSection"`
	HowToStep    string `json:"howToStep" yaml:"howToStep"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Color: ColorConfig{
			Primary:   DefaultPrimaryColor,
			Secondary: DefaultSecondaryColor,
		},
		Markers: MarkerConfig{
			FAQItem:      "faq/item",
			HowTo:        "how-to/main",
			HowToSection: "how-to/section",
			HowToStep:    "how-to/step",
		},
		AnswerClass: DefaultAnswerClass,
		DotClass:    DefaultDotClass,
	}
}

// Merge returns c with every empty field filled from defaults.
func (c Config) Merge(defaults Config) Config {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Color.Primary, defaults.Color.Primary)
	fill(&c.Color.Secondary, defaults.Color.Secondary)
	fill(&c.Markers.FAQItem, defaults.Markers.FAQItem)
	fill(&c.Markers.HowTo, defaults.Markers.HowTo)
	fill(&c.Markers.HowToSection, defaults.Markers.HowToSection)
	fill(&c.Markers.HowToStep, defaults.Markers.HowToStep)
	fill(&c.AnswerClass, defaults.AnswerClass)
	fill(&c.DotClass, defaults.DotClass)
	return c
}

// Validate returns an error if the configuration contains invalid fields.
func (c Config) Validate() error {
	if c.Markers.FAQItem == "" || c.Markers.HowTo == "" ||
		c.Markers.HowToSection == "" || c.Markers.HowToStep == "" {
		return Errorf(EINVALID, "all marker names required")
	}
	if c.Color.Primary == "" || c.Color.Secondary == "" {
		return Errorf(EINVALID, "primary and secondary colors required")
	}
	if c.AnswerClass == "" {
		return Errorf(EINVALID, "answer class required")
	}
	if c.DotClass == "" {
		return Errorf(EINVALID, "dot class required")
	}
	return nil
}

// MarkerFamilies returns the distinct marker families of every configured marker.
func (c Config) MarkerFamilies() []string {
	var families []string
	seen := make(map[string]bool)
	for _, name := range []string{c.Markers.FAQItem, c.Markers.HowTo, c.Markers.HowToSection, c.Markers.HowToStep} {
		family := MarkerFamily(name)
		if seen[family] {
			continue
		}
		seen[family] = true
		families = append(families, family)
	}
	return families
}

// UsesBlocks reports whether text contains a marker of any configured family.
func (c Config) UsesBlocks(text string) bool {
	for _, family := range c.MarkerFamilies() {
		if HasMarkerFamily(text, family) {
			return true
		}
	}
	return false
}
