package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ldblocks"
	"golang.org/x/sync/errgroup"
)

// Ensure Hook implements ldblocks.SaveHook at compile time.
var _ ldblocks.SaveHook = (*Hook)(nil)

// Hook runs both pipelines on every save and merges their results into
// the record cache. Revisions, Index and Validator are optional.
type Hook struct {
	FAQ       ldblocks.FAQExtractor
	HowTo     ldblocks.HowToExtractor
	Records   ldblocks.RecordService
	Revisions ldblocks.RevisionService
	Index     ldblocks.BlockIndex
	Validator ldblocks.StructuredDataValidator
	Config    ldblocks.Config
}

// OnSave resolves revisions to their parent document, updates the block
// index and caches the result of each pipeline.
func (h *Hook) OnSave(ctx context.Context, documentID, text string, isRevision bool) error {
	if documentID == "" {
		return ldblocks.Errorf(ldblocks.EINVALID, "document id required")
	}

	if isRevision {
		if h.Revisions == nil {
			return ldblocks.Errorf(ldblocks.EINVALID, "cannot resolve revision %q", documentID)
		}
		parentID, err := h.Revisions.ParentID(ctx, documentID)
		if err != nil {
			return err
		}
		documentID = parentID
	}

	if h.Index != nil {
		if err := h.Index.MarkDocument(ctx, documentID, h.Config.UsesBlocks(text)); err != nil {
			return fmt.Errorf("update block index: %w", err)
		}
	}

	// Pipelines extract concurrently. Records are written afterwards, FAQ first.
	var faq, howTo ldblocks.RecordPatch
	var g errgroup.Group
	g.Go(func() (err error) {
		faq, err = h.faqPatch(text)
		return err
	})
	g.Go(func() (err error) {
		howTo, err = h.howToPatch(text)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := h.Records.UpsertRecord(ctx, ldblocks.PipelineFAQ, documentID, faq); err != nil {
		return fmt.Errorf("upsert FAQ record: %w", err)
	}
	if err := h.Records.UpsertRecord(ctx, ldblocks.PipelineHowTo, documentID, howTo); err != nil {
		return fmt.Errorf("upsert how-to record: %w", err)
	}
	return nil
}

func (h *Hook) faqPatch(text string) (ldblocks.RecordPatch, error) {
	questions, err := h.FAQ.ExtractFAQ(text)
	if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
		return ldblocks.RecordPatch{Delete: true}, nil
	} else if err != nil {
		return ldblocks.RecordPatch{}, err
	}
	if len(questions) == 0 {
		return ldblocks.RecordPatch{}, nil
	}
	data, err := h.structuredData(ldblocks.PipelineFAQ, ldblocks.NewFAQPage(questions))
	if err != nil {
		return ldblocks.RecordPatch{}, err
	}
	return ldblocks.RecordPatch{StructuredData: data}, nil
}

func (h *Hook) howToPatch(text string) (ldblocks.RecordPatch, error) {
	result, err := h.HowTo.ExtractHowTo(text)
	if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
		return ldblocks.RecordPatch{Delete: true}, nil
	} else if err != nil {
		return ldblocks.RecordPatch{}, err
	}

	patch := ldblocks.RecordPatch{
		CSS:        result.CSS,
		DefaultCSS: DefaultDotColorCSS(h.Config),
	}
	if result.HowTo != nil {
		data, err := h.structuredData(ldblocks.PipelineHowTo, result.HowTo)
		if err != nil {
			return ldblocks.RecordPatch{}, err
		}
		patch.StructuredData = data
	}
	return patch, nil
}

// structuredData encodes v and runs it through the validator. Data
// rejected by the validator is dropped rather than reported.
func (h *Hook) structuredData(pipeline ldblocks.Pipeline, v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s structured data: %w", pipeline.ShortName(), err)
	}
	if h.Validator == nil {
		return data, nil
	}
	if err := h.Validator.Validate(pipeline, data); ldblocks.ErrorCode(err) == ldblocks.EINVALID {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return data, nil
}
