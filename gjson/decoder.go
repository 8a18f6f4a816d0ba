// Package gjson decodes block marker attributes with tidwall/gjson.
package gjson

import (
	"strings"

	"github.com/fwojciec/ldblocks"
	"github.com/tidwall/gjson"
)

// Ensure Decoder implements ldblocks.AttributeDecoder at compile time.
var _ ldblocks.AttributeDecoder = (*Decoder)(nil)

// Decoder decodes attribute blobs as JSON objects.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode trims raw and decodes it. Anything but a valid JSON object yields
// empty attributes.
func (d *Decoder) Decode(raw string) ldblocks.Attributes {
	raw = strings.TrimSpace(raw)
	if raw == "" || !gjson.Valid(raw) {
		return Attributes{}
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return Attributes{}
	}
	return Attributes(parsed.Map())
}

// Ensure Attributes implements ldblocks.Attributes at compile time.
var _ ldblocks.Attributes = Attributes(nil)

// Attributes holds the top-level keys of a decoded attribute object.
// Keys are matched exactly; no path syntax is applied.
type Attributes map[string]gjson.Result

// Has reports whether key is present with a non-null value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && v.Type != gjson.Null
}

// String returns strings and numbers as text, and def for anything else.
func (a Attributes) String(key, def string) string {
	v, ok := a[key]
	if !ok {
		return def
	}
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	}
	return def
}

// Bool reports the truthiness of key: false, null, 0, "", "0", [] and {}
// are false, every other value is true.
func (a Attributes) Bool(key string) bool {
	v, ok := a[key]
	if !ok {
		return false
	}
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != "" && v.Str != "0"
	case gjson.JSON:
		if v.IsArray() {
			return len(v.Array()) > 0
		}
		return len(v.Map()) > 0
	}
	return false
}
