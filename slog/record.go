package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ldblocks"
)

// Ensure LoggingRecordService implements ldblocks.RecordService.
var _ ldblocks.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService and logs every write with the
// save id found in ctx.
type LoggingRecordService struct {
	next   ldblocks.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next ldblocks.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// UpsertRecord delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) UpsertRecord(ctx context.Context, pipeline ldblocks.Pipeline, documentID string, patch ldblocks.RecordPatch) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert record",
			"save_id", SaveIDFromContext(ctx),
			"pipeline", pipeline.ShortName(),
			"document_id", documentID,
			"delete", patch.Delete,
			"structured_data", len(patch.StructuredData) > 0,
			"css_bytes", len(patch.CSS),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertRecord(ctx, pipeline, documentID, patch)
}

// FindRecord delegates to the wrapped service.
func (s *LoggingRecordService) FindRecord(ctx context.Context, pipeline ldblocks.Pipeline, documentID string) (*ldblocks.Record, error) {
	return s.next.FindRecord(ctx, pipeline, documentID)
}

// FindRecords delegates to the wrapped service and logs the count.
func (s *LoggingRecordService) FindRecords(ctx context.Context, pipeline ldblocks.Pipeline) (records []*ldblocks.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"pipeline", pipeline.ShortName(),
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, pipeline)
}
