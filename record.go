package ldblocks

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Pipeline names an extraction pipeline. It doubles as the storage key of
// the pipeline's namespace.
type Pipeline string

// Pipeline constants.
const (
	PipelineFAQ   Pipeline = "faq_block"
	PipelineHowTo Pipeline = "how_to_block"
)

// Pipelines lists every pipeline in emission order.
var Pipelines = []Pipeline{PipelineHowTo, PipelineFAQ}

// ParsePipeline resolves a pipeline from its storage key or short name
// ("faq", "howto", "how-to").
func ParsePipeline(s string) (Pipeline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "faq", string(PipelineFAQ):
		return PipelineFAQ, nil
	case "howto", "how-to", string(PipelineHowTo):
		return PipelineHowTo, nil
	}
	return "", Errorf(EINVALID, "unknown pipeline %q", s)
}

// ShortName returns the name used in API responses.
func (p Pipeline) ShortName() string {
	switch p {
	case PipelineFAQ:
		return "faq"
	case PipelineHowTo:
		return "howto"
	}
	return string(p)
}

// Record is the cached extraction result of one document in one pipeline.
type Record struct {
	DocumentID     string          `json:"-"`
	StructuredData json.RawMessage `json:"structuredData,omitempty"`
	CSS            string          `json:"css,omitempty"`
	LastUpdate     time.Time       `json:"lastUpdate"`
}

// IsEmpty reports whether the record carries neither structured data nor css.
func (r *Record) IsEmpty() bool {
	return len(r.StructuredData) == 0 && r.CSS == ""
}

// RecordPatch describes how a save changes a document's record.
type RecordPatch struct {
	// Delete removes the whole record. Other fields are ignored.
	Delete bool

	// StructuredData replaces the cached object. Nil removes it while
	// leaving the other keys in place.
	StructuredData json.RawMessage

	// CSS replaces the cached stylesheet when not empty.
	CSS string

	// DefaultCSS is stored when CSS is empty and the record has no
	// stylesheet yet.
	DefaultCSS string
}

// Apply merges the patch into r. Delete is handled by the caller.
func (p RecordPatch) Apply(r *Record) {
	r.StructuredData = p.StructuredData
	switch {
	case p.CSS != "":
		r.CSS = p.CSS
	case r.CSS == "" && p.DefaultCSS != "":
		r.CSS = p.DefaultCSS
	}
}

// RecordService manages cached extraction results.
type RecordService interface {
	// UpsertRecord merges patch into the record of documentID. Records left
	// without structured data and css are removed, and an empty pipeline
	// namespace is deleted from the backing store.
	UpsertRecord(ctx context.Context, pipeline Pipeline, documentID string, patch RecordPatch) error

	// FindRecord retrieves the record of documentID.
	// Returns ENOTFOUND if no record exists.
	FindRecord(ctx context.Context, pipeline Pipeline, documentID string) (*Record, error)

	// FindRecords retrieves all records of a pipeline in ascending id order.
	FindRecords(ctx context.Context, pipeline Pipeline) ([]*Record, error)
}

// KVStore is a key-value store with whole-value reads and writes.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// BlockIndex tracks which documents contain any block marker.
type BlockIndex interface {
	// MarkDocument adds or removes documentID from the index.
	MarkDocument(ctx context.Context, documentID string, usesBlocks bool) error

	// HasBlocks reports whether documentID is in the index.
	HasBlocks(ctx context.Context, documentID string) (bool, error)

	// FindDocumentIDs returns the indexed ids in ascending order.
	FindDocumentIDs(ctx context.Context) ([]string, error)
}

// RevisionService resolves document revisions to their parent document.
type RevisionService interface {
	// ParentID returns the parent document of revisionID.
	// Returns ENOTFOUND if revisionID is not a known revision.
	ParentID(ctx context.Context, revisionID string) (string, error)

	// RegisterRevision records revisionID as a revision of parentID.
	RegisterRevision(ctx context.Context, revisionID, parentID string) error
}

// StructuredDataValidator checks structured data before it is cached.
type StructuredDataValidator interface {
	// Validate returns EINVALID if data does not satisfy the pipeline's schema.
	Validate(pipeline Pipeline, data json.RawMessage) error
}

// SaveHook processes a saved document.
type SaveHook interface {
	// OnSave runs every pipeline over text and updates the cached records
	// of documentID. Revision ids are resolved to their parent first.
	OnSave(ctx context.Context, documentID, text string, isRevision bool) error
}

// CompareDocumentIDs orders numeric ids numerically before other ids,
// which are ordered lexically.
func CompareDocumentIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// SortDocumentIDs sorts ids in place in ascending order.
func SortDocumentIDs(ids []string) {
	slices.SortFunc(ids, CompareDocumentIDs)
}
