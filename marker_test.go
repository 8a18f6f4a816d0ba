package ldblocks_test

import (
	"testing"

	"github.com/fwojciec/ldblocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "how-to/", ldblocks.MarkerFamily("how-to/step"))
	assert.Equal(t, "wp:shinobi/", ldblocks.MarkerFamily("wp:shinobi/faq-item"))
	assert.Equal(t, "plain", ldblocks.MarkerFamily("plain"))
}

func TestHasMarkerFamily(t *testing.T) {
	t.Parallel()

	assert.True(t, ldblocks.HasMarkerFamily(`<!-- faq/item {}-->`, "faq/"))
	assert.False(t, ldblocks.HasMarkerFamily(`<!-- faqs/item {}-->`, "faq/"))
	assert.False(t, ldblocks.HasMarkerFamily(`<!-- /faq/item -->`, "faq/"))
	assert.False(t, ldblocks.HasMarkerFamily(`<!-- faq/item -->`, ""))
}

func TestFindBlock(t *testing.T) {
	t.Parallel()

	t.Run("returns attributes and content of the first match", func(t *testing.T) {
		t.Parallel()

		text := "<p>x</p><!-- faq/item {\"question\":\"Q1\"}-->first<!-- /faq/item --><!-- faq/item {}-->second<!-- /faq/item -->"

		m, ok := ldblocks.FindBlock(text, "faq/item")

		require.True(t, ok)
		assert.Equal(t, ` {"question":"Q1"}`, m.AttributesRaw)
		assert.Equal(t, "first", m.InnerContent)
	})

	t.Run("reports absence", func(t *testing.T) {
		t.Parallel()

		_, ok := ldblocks.FindBlock("<p>nothing</p>", "faq/item")

		assert.False(t, ok)
	})
}

func TestFindBlocks(t *testing.T) {
	t.Parallel()

	t.Run("returns every match in document order", func(t *testing.T) {
		t.Parallel()

		text := "<!-- s/a -->one<!-- /s/a -->\n<!-- s/a {\"k\":1} -->\ntwo\nlines\n<!-- /s/a -->"

		matches := ldblocks.FindBlocks(text, "s/a")

		require.Len(t, matches, 2)
		assert.Equal(t, ldblocks.BlockMatch{AttributesRaw: " ", InnerContent: "one"}, matches[0])
		assert.Equal(t, ldblocks.BlockMatch{AttributesRaw: ` {"k":1} `, InnerContent: "\ntwo\nlines\n"}, matches[1])
	})

	t.Run("stops content at the nearest closing marker", func(t *testing.T) {
		t.Parallel()

		text := "<!-- s/a -->one<!-- /s/a -->middle<!-- /s/a -->"

		matches := ldblocks.FindBlocks(text, "s/a")

		require.Len(t, matches, 1)
		assert.Equal(t, "one", matches[0].InnerContent)
	})

	t.Run("allows empty attributes and content", func(t *testing.T) {
		t.Parallel()

		matches := ldblocks.FindBlocks("<!-- s/a--><!-- /s/a -->", "s/a")

		require.Len(t, matches, 1)
		assert.Equal(t, ldblocks.BlockMatch{}, matches[0])
	})

	t.Run("tolerates whitespace before the closing delimiter", func(t *testing.T) {
		t.Parallel()

		matches := ldblocks.FindBlocks("<!-- s/a -->x<!-- /s/a\n-->", "s/a")

		require.Len(t, matches, 1)
		assert.Equal(t, "x", matches[0].InnerContent)
	})

	t.Run("ignores markers sharing a name prefix", func(t *testing.T) {
		t.Parallel()

		text := "<!-- s/ab -->no<!-- /s/ab --><!-- s/a -->yes<!-- /s/a -->"

		matches := ldblocks.FindBlocks(text, "s/a")

		require.Len(t, matches, 1)
		assert.Equal(t, "yes", matches[0].InnerContent)
	})

	t.Run("skips self-closing markers", func(t *testing.T) {
		t.Parallel()

		text := `<!-- s/a {"k":1} /--><!-- s/a -->body<!-- /s/a -->`

		matches := ldblocks.FindBlocks(text, "s/a")

		require.Len(t, matches, 1)
		assert.Equal(t, "body", matches[0].InnerContent)
	})

	t.Run("finds nested markers of another name", func(t *testing.T) {
		t.Parallel()

		text := "<!-- s/outer --><!-- s/inner -->1<!-- /s/inner --><!-- s/inner -->2<!-- /s/inner --><!-- /s/outer -->"

		outer, ok := ldblocks.FindBlock(text, "s/outer")
		require.True(t, ok)
		inner := ldblocks.FindBlocks(outer.InnerContent, "s/inner")

		require.Len(t, inner, 2)
		assert.Equal(t, "1", inner[0].InnerContent)
		assert.Equal(t, "2", inner[1].InnerContent)
	})

	t.Run("returns nil without matches", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ldblocks.FindBlocks("", "s/a"))
		assert.Nil(t, ldblocks.FindBlocks("<!-- s/a -->unterminated", "s/a"))
		assert.Nil(t, ldblocks.FindBlocks("<!-- s/a -->x<!-- /s/a -->", ""))
	})
}
