package ldblocks

import (
	"context"
	"encoding/json"
)

// HeadContent is what a rendered page receives in its head element.
type HeadContent struct {
	// StructuredData holds one JSON-LD object per pipeline, in Pipelines order.
	StructuredData []json.RawMessage

	// CSS is the inline stylesheet fragment.
	CSS string
}

// IsEmpty reports whether there is nothing to inject.
func (h HeadContent) IsEmpty() bool {
	return len(h.StructuredData) == 0 && h.CSS == ""
}

// HeadInjector inserts head content into a rendered page.
type HeadInjector interface {
	// Inject returns page with JSON-LD scripts and an inline style
	// appended to its head element.
	Inject(page string, head HeadContent) (string, error)
}

// LoadHeadContent collects the cached structured data of every pipeline
// and the how-to stylesheet for documentID.
func LoadHeadContent(ctx context.Context, records RecordService, documentID string) (HeadContent, error) {
	var head HeadContent
	for _, pipeline := range Pipelines {
		rec, err := records.FindRecord(ctx, pipeline, documentID)
		if ErrorCode(err) == ENOTFOUND {
			continue
		} else if err != nil {
			return HeadContent{}, err
		}
		if len(rec.StructuredData) > 0 {
			head.StructuredData = append(head.StructuredData, rec.StructuredData)
		}
		if pipeline == PipelineHowTo {
			head.CSS = rec.CSS
		}
	}
	return head, nil
}

// LoadRenderHead returns the head content injected into a rendered page.
// The stylesheet is dropped for documents missing from index. A nil index
// keeps it.
func LoadRenderHead(ctx context.Context, records RecordService, index BlockIndex, documentID string) (HeadContent, error) {
	head, err := LoadHeadContent(ctx, records, documentID)
	if err != nil {
		return HeadContent{}, err
	}
	if head.CSS == "" || index == nil {
		return head, nil
	}
	ok, err := index.HasBlocks(ctx, documentID)
	if err != nil {
		return HeadContent{}, err
	}
	if !ok {
		head.CSS = ""
	}
	return head, nil
}

// PageFetcher retrieves a rendered page by URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
