package extract

import (
	"github.com/fwojciec/ldblocks"
)

// Ensure HowToExtractor implements ldblocks.HowToExtractor at compile time.
var _ ldblocks.HowToExtractor = (*HowToExtractor)(nil)

// minSteps is the number of step blocks a step group needs to be valid.
const minSteps = 2

// HowToExtractor builds HowTo data from the first how-to block of a document.
type HowToExtractor struct {
	decoder ldblocks.AttributeDecoder
	text    ldblocks.TextSanitizer
	cfg     ldblocks.Config
}

// NewHowToExtractor creates a HowToExtractor using the markers, colors and
// dot class configured in cfg.
func NewHowToExtractor(cfg ldblocks.Config, decoder ldblocks.AttributeDecoder, text ldblocks.TextSanitizer) *HowToExtractor {
	return &HowToExtractor{decoder: decoder, text: text, cfg: cfg}
}

// ExtractHowTo returns the HowTo data and dot stylesheet of the document.
// The result carries a nil HowTo when the block is present but invalid;
// its CSS is still set when any step block was found.
func (x *HowToExtractor) ExtractHowTo(text string) (*ldblocks.HowToResult, error) {
	marker := x.cfg.Markers.HowTo
	if !ldblocks.HasMarkerFamily(text, ldblocks.MarkerFamily(marker)) {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no how-to block")
	}
	block, ok := ldblocks.FindBlock(text, marker)
	if !ok {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no how-to block")
	}
	attrs := ldblocks.NewHowToAttrs(x.decoder.Decode(block.AttributesRaw))

	var (
		name  string
		items []ldblocks.HowToItem
		css   string
	)
	if attrs.UseSections {
		name, _ = x.fragments().Heading(block.InnerContent)
		items, css = x.sections(block.InnerContent)
	} else {
		g := x.stepGroup(block.InnerContent)
		css = g.css
		if g.valid() {
			name = g.heading
			items = make([]ldblocks.HowToItem, len(g.steps))
			for i, s := range g.steps {
				items[i] = s
			}
		}
	}

	result := &ldblocks.HowToResult{CSS: css}
	if name != "" && len(items) > 0 {
		result.HowTo = ldblocks.NewHowTo(name, items, attrs.Description)
	}
	return result, nil
}

func (x *HowToExtractor) fragments() ldblocks.FragmentExtractor {
	return ldblocks.FragmentExtractor{Text: x.text}
}

// sections builds one HowToSection per section block. A single invalid
// section invalidates the whole list, but the css of every section is
// still collected.
func (x *HowToExtractor) sections(content string) ([]ldblocks.HowToItem, string) {
	blocks := ldblocks.FindBlocks(content, x.cfg.Markers.HowToSection)

	items := make([]ldblocks.HowToItem, 0, len(blocks))
	fragments := make([]string, 0, len(blocks))
	valid := len(blocks) > 0
	for _, b := range blocks {
		g := x.stepGroup(b.InnerContent)
		fragments = append(fragments, g.css)
		if !g.valid() {
			valid = false
			continue
		}
		items = append(items, ldblocks.NewHowToSection(g.heading, g.steps))
	}

	css := joinUnique(fragments)
	if !valid {
		return nil, css
	}
	return items, css
}

// stepGroup is the result of extracting a heading and its steps. An empty
// heading or nil steps marks the group invalid.
type stepGroup struct {
	heading string
	steps   []ldblocks.HowToStep
	css     string
}

func (g stepGroup) valid() bool {
	return g.heading != "" && len(g.steps) > 0
}

// stepGroup extracts a heading and at least minSteps steps from content.
// Every step needs paragraph text; one step without it invalidates the
// group. The css comes from the first step's attributes.
func (x *HowToExtractor) stepGroup(content string) stepGroup {
	var g stepGroup
	frag := x.fragments()

	blocks := ldblocks.FindBlocks(content, x.cfg.Markers.HowToStep)
	if len(blocks) > 0 {
		attrs := ldblocks.NewStepAttrs(x.decoder.Decode(blocks[0].AttributesRaw))
		g.css = DotColorCSS(x.cfg, attrs)
	}

	heading, ok := frag.Heading(content)
	if !ok {
		return g
	}
	g.heading = heading

	if len(blocks) < minSteps {
		return g
	}
	steps := make([]ldblocks.HowToStep, 0, len(blocks))
	for _, b := range blocks {
		s, ok := x.step(frag, b.InnerContent)
		if !ok {
			return g
		}
		steps = append(steps, s)
	}
	g.steps = steps
	return g
}

func (x *HowToExtractor) step(frag ldblocks.FragmentExtractor, content string) (ldblocks.HowToStep, bool) {
	text, ok := frag.Paragraph(content)
	if !ok || text == "" {
		return ldblocks.HowToStep{}, false
	}
	s := ldblocks.NewHowToStep(text)
	if src, ok := frag.Image(content); ok {
		s.Image = src
	}
	return s, true
}
