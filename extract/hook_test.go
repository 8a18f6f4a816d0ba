package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/ldblocks"
	"github.com/fwojciec/ldblocks/extract"
	"github.com/fwojciec/ldblocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingService captures the patches passed to UpsertRecord.
func recordingService(patches map[ldblocks.Pipeline]ldblocks.RecordPatch, ids *[]string) *mock.RecordService {
	return &mock.RecordService{
		UpsertRecordFn: func(ctx context.Context, pipeline ldblocks.Pipeline, documentID string, patch ldblocks.RecordPatch) error {
			patches[pipeline] = patch
			*ids = append(*ids, documentID)
			return nil
		},
	}
}

func notFoundFAQ() *mock.FAQExtractor {
	return &mock.FAQExtractor{
		ExtractFAQFn: func(text string) ([]ldblocks.Question, error) {
			return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no FAQ block")
		},
	}
}

func notFoundHowTo() *mock.HowToExtractor {
	return &mock.HowToExtractor{
		ExtractHowToFn: func(text string) (*ldblocks.HowToResult, error) {
			return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no how-to block")
		},
	}
}

func TestHook_OnSave(t *testing.T) {
	t.Parallel()

	t.Run("deletes records of absent blocks", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		hook := &extract.Hook{
			FAQ:     notFoundFAQ(),
			HowTo:   notFoundHowTo(),
			Records: recordingService(patches, &ids),
			Config:  ldblocks.DefaultConfig(),
		}

		err := hook.OnSave(context.Background(), "42", "<p>plain</p>", false)

		require.NoError(t, err)
		assert.Equal(t, []string{"42", "42"}, ids)
		assert.True(t, patches[ldblocks.PipelineFAQ].Delete)
		assert.True(t, patches[ldblocks.PipelineHowTo].Delete)
	})

	t.Run("caches FAQ page of valid questions", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		hook := &extract.Hook{
			FAQ: &mock.FAQExtractor{
				ExtractFAQFn: func(text string) ([]ldblocks.Question, error) {
					return []ldblocks.Question{ldblocks.NewQuestion("Q1", "A1")}, nil
				},
			},
			HowTo:   notFoundHowTo(),
			Records: recordingService(patches, &ids),
			Config:  ldblocks.DefaultConfig(),
		}

		err := hook.OnSave(context.Background(), "42", "text", false)

		require.NoError(t, err)
		patch := patches[ldblocks.PipelineFAQ]
		assert.False(t, patch.Delete)
		assert.JSONEq(t, `{
			"@context": "https://schema.org",
			"@type": "FAQPage",
			"mainEntity": [{"@type": "Question", "name": "Q1", "acceptedAnswer": {"@type": "Answer", "text": "A1"}}]
		}`, string(patch.StructuredData))
	})

	t.Run("removes FAQ structured data when no question is valid", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		hook := &extract.Hook{
			FAQ: &mock.FAQExtractor{
				ExtractFAQFn: func(text string) ([]ldblocks.Question, error) {
					return []ldblocks.Question{}, nil
				},
			},
			HowTo:   notFoundHowTo(),
			Records: recordingService(patches, &ids),
			Config:  ldblocks.DefaultConfig(),
		}

		require.NoError(t, hook.OnSave(context.Background(), "42", "text", false))

		assert.Equal(t, ldblocks.RecordPatch{}, patches[ldblocks.PipelineFAQ])
	})

	t.Run("keeps how-to css when structured data is invalid", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		hook := &extract.Hook{
			FAQ: notFoundFAQ(),
			HowTo: &mock.HowToExtractor{
				ExtractHowToFn: func(text string) (*ldblocks.HowToResult, error) {
					return &ldblocks.HowToResult{CSS: ".how-to-step-dot{background:#111}"}, nil
				},
			},
			Records: recordingService(patches, &ids),
			Config:  ldblocks.DefaultConfig(),
		}

		require.NoError(t, hook.OnSave(context.Background(), "42", "text", false))

		patch := patches[ldblocks.PipelineHowTo]
		assert.Nil(t, patch.StructuredData)
		assert.Equal(t, ".how-to-step-dot{background:#111}", patch.CSS)
		assert.Equal(t, ".how-to-step-dot{background:linear-gradient(to right, #0073aa, #00a0d2)}", patch.DefaultCSS)
	})

	t.Run("drops structured data rejected by the validator", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		var validated []ldblocks.Pipeline
		hook := &extract.Hook{
			FAQ: notFoundFAQ(),
			HowTo: &mock.HowToExtractor{
				ExtractHowToFn: func(text string) (*ldblocks.HowToResult, error) {
					steps := []ldblocks.HowToItem{ldblocks.NewHowToStep("a"), ldblocks.NewHowToStep("b")}
					return &ldblocks.HowToResult{HowTo: ldblocks.NewHowTo("Tea", steps, ""), CSS: "x{}"}, nil
				},
			},
			Records: recordingService(patches, &ids),
			Validator: &mock.StructuredDataValidator{
				ValidateFn: func(pipeline ldblocks.Pipeline, data json.RawMessage) error {
					validated = append(validated, pipeline)
					return ldblocks.Errorf(ldblocks.EINVALID, "bad")
				},
			},
			Config: ldblocks.DefaultConfig(),
		}

		require.NoError(t, hook.OnSave(context.Background(), "42", "text", false))

		assert.Equal(t, []ldblocks.Pipeline{ldblocks.PipelineHowTo}, validated)
		assert.Nil(t, patches[ldblocks.PipelineHowTo].StructuredData)
		assert.Equal(t, "x{}", patches[ldblocks.PipelineHowTo].CSS)
	})

	t.Run("resolves revisions to their parent", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		hook := &extract.Hook{
			FAQ:     notFoundFAQ(),
			HowTo:   notFoundHowTo(),
			Records: recordingService(patches, &ids),
			Revisions: &mock.RevisionService{
				ParentIDFn: func(ctx context.Context, revisionID string) (string, error) {
					assert.Equal(t, "43", revisionID)
					return "42", nil
				},
			},
			Config: ldblocks.DefaultConfig(),
		}

		require.NoError(t, hook.OnSave(context.Background(), "43", "text", true))

		assert.Equal(t, []string{"42", "42"}, ids)
	})

	t.Run("fails for unknown revisions before touching records", func(t *testing.T) {
		t.Parallel()

		hook := &extract.Hook{
			FAQ:   notFoundFAQ(),
			HowTo: notFoundHowTo(),
			Records: &mock.RecordService{
				UpsertRecordFn: func(ctx context.Context, pipeline ldblocks.Pipeline, documentID string, patch ldblocks.RecordPatch) error {
					t.Fatal("unexpected upsert")
					return nil
				},
			},
			Revisions: &mock.RevisionService{
				ParentIDFn: func(ctx context.Context, revisionID string) (string, error) {
					return "", ldblocks.Errorf(ldblocks.ENOTFOUND, "revision not found")
				},
			},
			Config: ldblocks.DefaultConfig(),
		}

		err := hook.OnSave(context.Background(), "43", "text", true)

		assert.Equal(t, ldblocks.ENOTFOUND, ldblocks.ErrorCode(err))
	})

	t.Run("marks block usage in the index", func(t *testing.T) {
		t.Parallel()

		patches := make(map[ldblocks.Pipeline]ldblocks.RecordPatch)
		var ids []string
		marks := make(map[string]bool)
		hook := &extract.Hook{
			FAQ:     notFoundFAQ(),
			HowTo:   notFoundHowTo(),
			Records: recordingService(patches, &ids),
			Index: &mock.BlockIndex{
				MarkDocumentFn: func(ctx context.Context, documentID string, usesBlocks bool) error {
					marks[documentID] = usesBlocks
					return nil
				},
			},
			Config: ldblocks.DefaultConfig(),
		}

		require.NoError(t, hook.OnSave(context.Background(), "1", `<!-- how-to/step --><p>x</p><!-- /how-to/step -->`, false))
		require.NoError(t, hook.OnSave(context.Background(), "2", `<p>plain</p>`, false))

		assert.Equal(t, map[string]bool{"1": true, "2": false}, marks)
	})

	t.Run("returns extractor errors", func(t *testing.T) {
		t.Parallel()

		hook := &extract.Hook{
			FAQ: &mock.FAQExtractor{
				ExtractFAQFn: func(text string) ([]ldblocks.Question, error) {
					return nil, errors.New("boom")
				},
			},
			HowTo:   notFoundHowTo(),
			Records: &mock.RecordService{},
			Config:  ldblocks.DefaultConfig(),
		}

		err := hook.OnSave(context.Background(), "1", "text", false)

		assert.EqualError(t, err, "boom")
	})

	t.Run("requires a document id", func(t *testing.T) {
		t.Parallel()

		hook := &extract.Hook{Config: ldblocks.DefaultConfig()}

		err := hook.OnSave(context.Background(), "", "text", false)

		assert.Equal(t, ldblocks.EINVALID, ldblocks.ErrorCode(err))
	})
}
