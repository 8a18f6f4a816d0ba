package jsonschema_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/ldblocks"
	"github.com/fwojciec/ldblocks/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *jsonschema.Validator {
	t.Helper()
	v, err := jsonschema.NewValidator()
	require.NoError(t, err)
	return v
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestValidator_FAQ(t *testing.T) {
	t.Parallel()

	t.Run("accepts a FAQ page", func(t *testing.T) {
		t.Parallel()

		page := ldblocks.NewFAQPage([]ldblocks.Question{ldblocks.NewQuestion("Q1", "A1")})

		err := newValidator(t).Validate(ldblocks.PipelineFAQ, mustMarshal(t, page))
		assert.NoError(t, err)
	})

	t.Run("rejects a page without questions", func(t *testing.T) {
		t.Parallel()

		page := ldblocks.NewFAQPage([]ldblocks.Question{})

		err := newValidator(t).Validate(ldblocks.PipelineFAQ, mustMarshal(t, page))
		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})

	t.Run("rejects an empty answer", func(t *testing.T) {
		t.Parallel()

		page := ldblocks.NewFAQPage([]ldblocks.Question{ldblocks.NewQuestion("Q1", "")})

		err := newValidator(t).Validate(ldblocks.PipelineFAQ, mustMarshal(t, page))
		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		t.Parallel()

		err := newValidator(t).Validate(ldblocks.PipelineFAQ, json.RawMessage(`{`))
		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})
}

func TestValidator_HowTo(t *testing.T) {
	t.Parallel()

	steps := []ldblocks.HowToStep{ldblocks.NewHowToStep("one"), ldblocks.NewHowToStep("two")}

	t.Run("accepts plain steps", func(t *testing.T) {
		t.Parallel()

		howTo := ldblocks.NewHowTo("Make tea", []ldblocks.HowToItem{steps[0], steps[1]}, "")

		err := newValidator(t).Validate(ldblocks.PipelineHowTo, mustMarshal(t, howTo))
		assert.NoError(t, err)
	})

	t.Run("accepts sections", func(t *testing.T) {
		t.Parallel()

		howTo := ldblocks.NewHowTo("Make tea", []ldblocks.HowToItem{
			ldblocks.NewHowToSection("Boil", steps),
			ldblocks.NewHowToSection("Steep", steps),
		}, "A short guide")

		err := newValidator(t).Validate(ldblocks.PipelineHowTo, mustMarshal(t, howTo))
		assert.NoError(t, err)
	})

	t.Run("rejects mixed steps and sections", func(t *testing.T) {
		t.Parallel()

		howTo := ldblocks.NewHowTo("Make tea", []ldblocks.HowToItem{
			steps[0],
			ldblocks.NewHowToSection("Steep", steps),
		}, "")

		err := newValidator(t).Validate(ldblocks.PipelineHowTo, mustMarshal(t, howTo))
		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})

	t.Run("rejects a section without steps", func(t *testing.T) {
		t.Parallel()

		howTo := ldblocks.NewHowTo("Make tea", []ldblocks.HowToItem{
			ldblocks.NewHowToSection("Boil", []ldblocks.HowToStep{}),
		}, "")

		err := newValidator(t).Validate(ldblocks.PipelineHowTo, mustMarshal(t, howTo))
		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})

	t.Run("rejects unknown pipeline", func(t *testing.T) {
		t.Parallel()

		err := newValidator(t).Validate(ldblocks.Pipeline("other"), json.RawMessage(`{}`))
		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})
}
