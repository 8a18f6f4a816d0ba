package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fwojciec/ldblocks"
	"github.com/tidwall/gjson"
)

// BlockIndexKey is the store key of the block index.
const BlockIndexKey = "is_blocks"

// Ensure BlockIndex implements ldblocks.BlockIndex at compile time.
var _ ldblocks.BlockIndex = (*BlockIndex)(nil)

// BlockIndex stores the ids of documents using blocks as a sorted JSON array.
type BlockIndex struct {
	store ldblocks.KVStore
}

// NewBlockIndex creates a new BlockIndex.
func NewBlockIndex(store ldblocks.KVStore) *BlockIndex {
	return &BlockIndex{store: store}
}

// MarkDocument adds or removes documentID. The key is deleted once the
// index is empty.
func (idx *BlockIndex) MarkDocument(ctx context.Context, documentID string, usesBlocks bool) error {
	ids, err := idx.load(ctx)
	if err != nil {
		return err
	}

	i, found := slices.BinarySearchFunc(ids, documentID, ldblocks.CompareDocumentIDs)
	switch {
	case usesBlocks && !found:
		ids = slices.Insert(ids, i, documentID)
	case !usesBlocks && found:
		ids = slices.Delete(ids, i, i+1)
	default:
		return nil
	}

	if len(ids) == 0 {
		if err := idx.store.Delete(ctx, BlockIndexKey); err != nil {
			return fmt.Errorf("delete block index: %w", err)
		}
		return nil
	}
	buf, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := idx.store.Set(ctx, BlockIndexKey, buf); err != nil {
		return fmt.Errorf("save block index: %w", err)
	}
	return nil
}

// HasBlocks reports whether documentID is indexed.
func (idx *BlockIndex) HasBlocks(ctx context.Context, documentID string) (bool, error) {
	ids, err := idx.load(ctx)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearchFunc(ids, documentID, ldblocks.CompareDocumentIDs)
	return found, nil
}

// FindDocumentIDs returns the indexed ids in ascending order.
func (idx *BlockIndex) FindDocumentIDs(ctx context.Context) ([]string, error) {
	return idx.load(ctx)
}

func (idx *BlockIndex) load(ctx context.Context) ([]string, error) {
	raw, err := idx.store.Get(ctx, BlockIndexKey)
	if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("load block index: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, ldblocks.Errorf(ldblocks.EINTERNAL, "corrupt block index")
	}

	results := gjson.ParseBytes(raw).Array()
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.String())
	}
	ldblocks.SortDocumentIDs(ids)
	return ids, nil
}
