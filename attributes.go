package ldblocks

// Attributes exposes the decoded JSON attributes of a block marker.
type Attributes interface {
	// Has reports whether key is present with a non-null value.
	Has(key string) bool

	// String returns the value of key as a string, or def when the key is
	// absent or holds a non-scalar value. Numbers are returned verbatim.
	String(key, def string) string

	// Bool returns the truthiness of key. Absent keys are false.
	Bool(key string) bool
}

// AttributeDecoder decodes the raw attribute blob of a marker.
type AttributeDecoder interface {
	// Decode trims and decodes raw. Invalid or empty input yields empty
	// attributes, never an error.
	Decode(raw string) Attributes
}

// FAQItemAttrs are the attributes of a FAQ item block.
type FAQItemAttrs struct {
	Question string
}

// NewFAQItemAttrs reads FAQ item attributes.
func NewFAQItemAttrs(a Attributes) FAQItemAttrs {
	return FAQItemAttrs{Question: a.String("question", "")}
}

// HowToAttrs are the attributes of the top-level how-to block.
type HowToAttrs struct {
	UseSections bool
	Description string
}

// NewHowToAttrs reads how-to attributes.
func NewHowToAttrs(a Attributes) HowToAttrs {
	return HowToAttrs{
		UseSections: a.Bool("useSections"),
		Description: a.String("description", ""),
	}
}

// StepAttrs are the dot-color attributes of a how-to step block.
// Empty fields mean the attribute was not set.
type StepAttrs struct {
	PrimaryColor   string
	SecondaryColor string
	ColorType      string
	DotID          string
}

// NewStepAttrs reads step attributes.
func NewStepAttrs(a Attributes) StepAttrs {
	return StepAttrs{
		PrimaryColor:   a.String("primaryColor", ""),
		SecondaryColor: a.String("secondaryColor", ""),
		ColorType:      a.String("colorType", ""),
		DotID:          a.String("dotId", ""),
	}
}

// HasColorOverride reports whether the step sets any explicit color or color type.
func (s StepAttrs) HasColorOverride() bool {
	return s.PrimaryColor != "" || s.SecondaryColor != "" || s.ColorType != ""
}
