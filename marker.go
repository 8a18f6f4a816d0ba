package ldblocks

import (
	"strings"
	"unicode"
)

// BlockMatch is one occurrence of a marker pair:
//
//	<!-- NAME ATTRS-->CONTENT<!-- /NAME -->
type BlockMatch struct {
	// AttributesRaw is the untrimmed text between the marker name and "-->".
	AttributesRaw string

	// InnerContent is the raw markup between the opening and closing markers.
	InnerContent string
}

const (
	commentOpen  = "<!-- "
	commentClose = "-->"
)

// MarkerFamily returns the prefix shared by all markers of one namespace.
// For "how-to/step" it returns "how-to/"; names without a slash are their
// own family.
func MarkerFamily(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i+1]
	}
	return name
}

// HasMarkerFamily reports whether text contains an opening marker of family.
// Callers use it as a cheap check before scanning.
func HasMarkerFamily(text, family string) bool {
	if family == "" {
		return false
	}
	return strings.Contains(text, commentOpen+family)
}

// FindBlock returns the first occurrence of the named marker pair.
func FindBlock(text, name string) (BlockMatch, bool) {
	matches := scanBlocks(text, name, 1)
	if len(matches) == 0 {
		return BlockMatch{}, false
	}
	return matches[0], true
}

// FindBlocks returns every non-overlapping occurrence of the named marker
// pair in document order. Content ends at the nearest closing marker.
// Returns nil when there is no match.
func FindBlocks(text, name string) []BlockMatch {
	return scanBlocks(text, name, -1)
}

// scanBlocks collects up to limit matches; a negative limit means all.
func scanBlocks(text, name string, limit int) []BlockMatch {
	if name == "" {
		return nil
	}

	open := commentOpen + name
	var matches []BlockMatch

	for pos := 0; limit < 0 || len(matches) < limit; {
		i := strings.Index(text[pos:], open)
		if i < 0 {
			break
		}
		nameEnd := pos + i + len(open)

		// Reject longer names sharing the prefix (e.g. "how-to/step-list").
		if !isMarkerBoundary(text[nameEnd:]) {
			pos = nameEnd
			continue
		}

		end := strings.Index(text[nameEnd:], commentClose)
		if end < 0 {
			break
		}
		attrs := text[nameEnd : nameEnd+end]
		bodyStart := nameEnd + end + len(commentClose)

		// Self-closing markers ("<!-- name {...} /-->") carry no content.
		if strings.HasSuffix(strings.TrimSpace(attrs), "/") {
			pos = bodyStart
			continue
		}

		closeStart, closeEnd, ok := findClosingMarker(text, bodyStart, name)
		if !ok {
			break
		}

		matches = append(matches, BlockMatch{
			AttributesRaw: attrs,
			InnerContent:  text[bodyStart:closeStart],
		})
		pos = closeEnd
	}

	return matches
}

// isMarkerBoundary reports whether rest starts right after a complete marker name.
func isMarkerBoundary(rest string) bool {
	if strings.HasPrefix(rest, commentClose) {
		return true
	}
	for _, r := range rest {
		return unicode.IsSpace(r)
	}
	return false
}

// findClosingMarker finds "<!-- /NAME -->" at or after from and returns the
// offsets of its first byte and of the byte following it.
func findClosingMarker(text string, from int, name string) (start, end int, ok bool) {
	closing := commentOpen + "/" + name
	for pos := from; ; {
		i := strings.Index(text[pos:], closing)
		if i < 0 {
			return 0, 0, false
		}
		start = pos + i
		rest := strings.TrimLeftFunc(text[start+len(closing):], unicode.IsSpace)
		if strings.HasPrefix(rest, commentClose) {
			return start, len(text) - len(rest) + len(commentClose), true
		}
		pos = start + len(closing)
	}
}
