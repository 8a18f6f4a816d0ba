package ldblocks

import (
	"regexp"
	"strings"
)

var (
	headingRe    = regexp.MustCompile(`(?is)<h[2-5](?:\s[^>]*)?>(.*?)</h[2-5]\s*>`)
	paragraphRe  = regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>(.*?)</p\s*>`)
	imageRe      = regexp.MustCompile(`(?is)<img\s(?:[^>]*?\s)?src\s*=\s*"([^"]+)"`)
	classedDivRe = regexp.MustCompile(`(?is)<div\s(?:[^>]*?\s)?class\s*=\s*"([^"]*)"[^>]*>`)
	divTagRe     = regexp.MustCompile(`(?i)<(/?)div(?:\s[^>]*)?>`)
)

// FragmentExtractor pulls sub-fragments out of block content with pattern
// matching. It never builds a DOM.
type FragmentExtractor struct {
	Text TextSanitizer
}

// Heading returns the text of the first h2-h5 element with markup stripped.
// It only succeeds when visible text remains.
func (x FragmentExtractor) Heading(s string) (string, bool) {
	m := headingRe.FindStringSubmatch(s)
	if m == nil || !x.Text.IsText(m[1]) {
		return "", false
	}
	return TrimText(x.Text.StripTags(m[1])), true
}

// Paragraph returns the text of the first p element with markup stripped.
func (x FragmentExtractor) Paragraph(s string) (string, bool) {
	m := paragraphRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return TrimText(x.Text.StripTags(m[1])), true
}

// Image returns the src attribute of the first img element.
func (x FragmentExtractor) Image(s string) (string, bool) {
	m := imageRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ClassedDiv returns the inner markup of the first div whose class
// attribute contains needle.
//
// At least two classed divs must be present before the search runs. A
// fragment made of a single classed div is only accepted when needle is one
// of that div's class names, so unrelated single-div fragments never match
// on a substring.
func (x FragmentExtractor) ClassedDiv(s, needle string) (string, bool) {
	if needle == "" {
		return "", false
	}

	opens := classedDivRe.FindAllStringSubmatchIndex(s, -1)
	switch {
	case len(opens) == 0:
		return "", false
	case len(opens) == 1:
		class := s[opens[0][2]:opens[0][3]]
		if !hasClassName(class, needle) {
			return "", false
		}
		return divInner(s, opens[0][1])
	}

	for _, loc := range opens {
		if strings.Contains(s[loc[2]:loc[3]], needle) {
			return divInner(s, loc[1])
		}
	}
	return "", false
}

// hasClassName reports whether name is one of the space separated classes.
func hasClassName(class, name string) bool {
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}

// divInner returns the markup between from and the close tag balancing the
// div opened just before from.
func divInner(s string, from int) (string, bool) {
	depth := 1
	for _, loc := range divTagRe.FindAllStringSubmatchIndex(s[from:], -1) {
		if loc[3] > loc[2] {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			return s[from : from+loc[0]], true
		}
	}
	return "", false
}
