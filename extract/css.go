package extract

import (
	"strings"

	"github.com/fwojciec/ldblocks"
)

// Color types selecting a solid dot background.
const (
	ColorTypePrimary   = "primary"
	ColorTypeSecondary = "secondary"
)

// cssUnsafe strips characters that would let an attribute value escape its
// declaration or the surrounding style element.
var cssUnsafe = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "", `"`, "", `\`, "")

// DotColorCSS returns the stylesheet fragment coloring the step progress
// dot. Colors missing from attrs fall back to cfg.Color. The selector is
// narrowed to the step's dot id only when the step also overrides a color.
func DotColorCSS(cfg ldblocks.Config, attrs ldblocks.StepAttrs) string {
	primary := cfg.Color.Primary
	if v := cssUnsafe.Replace(attrs.PrimaryColor); v != "" {
		primary = v
	}
	secondary := cfg.Color.Secondary
	if v := cssUnsafe.Replace(attrs.SecondaryColor); v != "" {
		secondary = v
	}

	selector := cfg.DotClass
	if id := cssUnsafe.Replace(attrs.DotID); id != "" && attrs.HasColorOverride() {
		selector += `[data-dot-id="` + id + `"]`
	}

	var background string
	switch attrs.ColorType {
	case ColorTypePrimary:
		background = primary
	case ColorTypeSecondary:
		background = secondary
	default:
		background = "linear-gradient(to right, " + primary + ", " + secondary + ")"
	}
	return selector + "{background:" + background + "}"
}

// DefaultDotColorCSS returns the dot stylesheet built from cfg alone.
func DefaultDotColorCSS(cfg ldblocks.Config) string {
	return DotColorCSS(cfg, ldblocks.StepAttrs{})
}

// joinUnique concatenates fragments, dropping exact duplicates and keeping
// the first occurrence of each.
func joinUnique(fragments []string) string {
	seen := make(map[string]bool, len(fragments))
	var b strings.Builder
	for _, f := range fragments {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		b.WriteString(f)
	}
	return b.String()
}
