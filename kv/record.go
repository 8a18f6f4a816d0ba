// Package kv implements the record cache and block index on top of a
// ldblocks.KVStore. Each pipeline namespace is stored as one JSON object
// keyed by document id in ascending order.
package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/ldblocks"
	"github.com/tidwall/gjson"
)

// Ensure RecordService implements ldblocks.RecordService at compile time.
var _ ldblocks.RecordService = (*RecordService)(nil)

// RecordService stores records in a KVStore, one key per pipeline.
// Upserts are read-modify-write cycles; callers serialize writes to the
// same pipeline.
type RecordService struct {
	store ldblocks.KVStore

	// Now returns the time stamped on written records.
	Now func() time.Time
}

// NewRecordService creates a new RecordService.
func NewRecordService(store ldblocks.KVStore) *RecordService {
	return &RecordService{store: store, Now: time.Now}
}

// UpsertRecord merges patch into the record of documentID and persists the
// namespace. Empty records are removed and an empty namespace is deleted.
func (s *RecordService) UpsertRecord(ctx context.Context, pipeline ldblocks.Pipeline, documentID string, patch ldblocks.RecordPatch) error {
	if documentID == "" {
		return ldblocks.Errorf(ldblocks.EINVALID, "document id required")
	}

	records, err := s.load(ctx, pipeline)
	if err != nil {
		return err
	}

	rec, ok := records[documentID]
	if !ok {
		rec = &ldblocks.Record{DocumentID: documentID}
	}

	switch {
	case patch.Delete:
		delete(records, documentID)
	default:
		patch.Apply(rec)
		if rec.IsEmpty() {
			delete(records, documentID)
			break
		}
		rec.LastUpdate = s.Now().UTC()
		records[documentID] = rec
	}

	return s.save(ctx, pipeline, records)
}

// FindRecord retrieves the record of documentID.
func (s *RecordService) FindRecord(ctx context.Context, pipeline ldblocks.Pipeline, documentID string) (*ldblocks.Record, error) {
	records, err := s.load(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	rec, ok := records[documentID]
	if !ok {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no %s record for document %q", pipeline.ShortName(), documentID)
	}
	return rec, nil
}

// FindRecords retrieves every record of pipeline in ascending id order.
func (s *RecordService) FindRecords(ctx context.Context, pipeline ldblocks.Pipeline) ([]*ldblocks.Record, error) {
	records, err := s.load(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	ldblocks.SortDocumentIDs(ids)

	out := make([]*ldblocks.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, records[id])
	}
	return out, nil
}

// load reads and decodes a namespace. A missing key is an empty namespace.
func (s *RecordService) load(ctx context.Context, pipeline ldblocks.Pipeline) (map[string]*ldblocks.Record, error) {
	records := make(map[string]*ldblocks.Record)

	raw, err := s.store.Get(ctx, string(pipeline))
	if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
		return records, nil
	} else if err != nil {
		return nil, fmt.Errorf("load %s records: %w", pipeline.ShortName(), err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, ldblocks.Errorf(ldblocks.EINTERNAL, "corrupt %s namespace", pipeline.ShortName())
	}

	var decodeErr error
	gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
		rec, err := decodeRecord(key.String(), value)
		if err != nil {
			decodeErr = fmt.Errorf("decode %s record %q: %w", pipeline.ShortName(), key.String(), err)
			return false
		}
		records[rec.DocumentID] = rec
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return records, nil
}

func decodeRecord(documentID string, value gjson.Result) (*ldblocks.Record, error) {
	rec := &ldblocks.Record{
		DocumentID: documentID,
		CSS:        value.Get("css").String(),
	}
	if sd := value.Get("structuredData"); sd.Exists() && sd.Type != gjson.Null {
		rec.StructuredData = json.RawMessage(sd.Raw)
	}
	if ts := value.Get("lastUpdate"); ts.Exists() {
		t, err := time.Parse(time.RFC3339Nano, ts.String())
		if err != nil {
			return nil, err
		}
		rec.LastUpdate = t
	}
	return rec, nil
}

// save writes the namespace with ids in ascending order, or deletes the
// key when no record is left.
func (s *RecordService) save(ctx context.Context, pipeline ldblocks.Pipeline, records map[string]*ldblocks.Record) error {
	if len(records) == 0 {
		if err := s.store.Delete(ctx, string(pipeline)); err != nil {
			return fmt.Errorf("delete %s records: %w", pipeline.ShortName(), err)
		}
		return nil
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	ldblocks.SortDocumentIDs(ids)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return err
		}
		value, err := json.Marshal(records[id])
		if err != nil {
			return fmt.Errorf("encode %s record %q: %w", pipeline.ShortName(), id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	if err := s.store.Set(ctx, string(pipeline), buf.Bytes()); err != nil {
		return fmt.Errorf("save %s records: %w", pipeline.ShortName(), err)
	}
	return nil
}
