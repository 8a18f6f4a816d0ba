package mock

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/ldblocks"
)

// Compile-time interface verification.
var (
	_ ldblocks.RecordService           = (*RecordService)(nil)
	_ ldblocks.KVStore                 = (*KVStore)(nil)
	_ ldblocks.BlockIndex              = (*BlockIndex)(nil)
	_ ldblocks.RevisionService         = (*RevisionService)(nil)
	_ ldblocks.StructuredDataValidator = (*StructuredDataValidator)(nil)
	_ ldblocks.SaveHook                = (*SaveHook)(nil)
)

// RecordService is a mock implementation of ldblocks.RecordService.
type RecordService struct {
	UpsertRecordFn func(ctx context.Context, pipeline ldblocks.Pipeline, documentID string, patch ldblocks.RecordPatch) error
	FindRecordFn   func(ctx context.Context, pipeline ldblocks.Pipeline, documentID string) (*ldblocks.Record, error)
	FindRecordsFn  func(ctx context.Context, pipeline ldblocks.Pipeline) ([]*ldblocks.Record, error)
}

func (s *RecordService) UpsertRecord(ctx context.Context, pipeline ldblocks.Pipeline, documentID string, patch ldblocks.RecordPatch) error {
	return s.UpsertRecordFn(ctx, pipeline, documentID, patch)
}

func (s *RecordService) FindRecord(ctx context.Context, pipeline ldblocks.Pipeline, documentID string) (*ldblocks.Record, error) {
	return s.FindRecordFn(ctx, pipeline, documentID)
}

func (s *RecordService) FindRecords(ctx context.Context, pipeline ldblocks.Pipeline) ([]*ldblocks.Record, error) {
	return s.FindRecordsFn(ctx, pipeline)
}

// KVStore is a mock implementation of ldblocks.KVStore.
type KVStore struct {
	GetFn    func(ctx context.Context, key string) ([]byte, error)
	SetFn    func(ctx context.Context, key string, value []byte) error
	DeleteFn func(ctx context.Context, key string) error
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetFn(ctx, key, value)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.DeleteFn(ctx, key)
}

// BlockIndex is a mock implementation of ldblocks.BlockIndex.
type BlockIndex struct {
	MarkDocumentFn    func(ctx context.Context, documentID string, usesBlocks bool) error
	HasBlocksFn       func(ctx context.Context, documentID string) (bool, error)
	FindDocumentIDsFn func(ctx context.Context) ([]string, error)
}

func (idx *BlockIndex) MarkDocument(ctx context.Context, documentID string, usesBlocks bool) error {
	return idx.MarkDocumentFn(ctx, documentID, usesBlocks)
}

func (idx *BlockIndex) HasBlocks(ctx context.Context, documentID string) (bool, error) {
	return idx.HasBlocksFn(ctx, documentID)
}

func (idx *BlockIndex) FindDocumentIDs(ctx context.Context) ([]string, error) {
	return idx.FindDocumentIDsFn(ctx)
}

// RevisionService is a mock implementation of ldblocks.RevisionService.
type RevisionService struct {
	ParentIDFn         func(ctx context.Context, revisionID string) (string, error)
	RegisterRevisionFn func(ctx context.Context, revisionID, parentID string) error
}

func (s *RevisionService) ParentID(ctx context.Context, revisionID string) (string, error) {
	return s.ParentIDFn(ctx, revisionID)
}

func (s *RevisionService) RegisterRevision(ctx context.Context, revisionID, parentID string) error {
	return s.RegisterRevisionFn(ctx, revisionID, parentID)
}

// StructuredDataValidator is a mock implementation of ldblocks.StructuredDataValidator.
type StructuredDataValidator struct {
	ValidateFn func(pipeline ldblocks.Pipeline, data json.RawMessage) error
}

func (v *StructuredDataValidator) Validate(pipeline ldblocks.Pipeline, data json.RawMessage) error {
	return v.ValidateFn(pipeline, data)
}

// SaveHook is a mock implementation of ldblocks.SaveHook.
type SaveHook struct {
	OnSaveFn func(ctx context.Context, documentID, text string, isRevision bool) error
}

func (h *SaveHook) OnSave(ctx context.Context, documentID, text string, isRevision bool) error {
	return h.OnSaveFn(ctx, documentID, text, isRevision)
}
