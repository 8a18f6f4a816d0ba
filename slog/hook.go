package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ldblocks"
	"github.com/google/uuid"
)

// Ensure LoggingSaveHook implements ldblocks.SaveHook.
var _ ldblocks.SaveHook = (*LoggingSaveHook)(nil)

// LoggingSaveHook tags each save with a save id and logs its outcome.
type LoggingSaveHook struct {
	next   ldblocks.SaveHook
	logger *slog.Logger
}

// NewLoggingSaveHook creates a new LoggingSaveHook.
func NewLoggingSaveHook(next ldblocks.SaveHook, logger *slog.Logger) *LoggingSaveHook {
	return &LoggingSaveHook{next: next, logger: logger}
}

// OnSave delegates to the wrapped hook with a fresh save id in ctx.
func (h *LoggingSaveHook) OnSave(ctx context.Context, documentID, text string, isRevision bool) (err error) {
	saveID := uuid.New().String()
	ctx = WithSaveID(ctx, saveID)

	defer func(begin time.Time) {
		h.logger.Info("save",
			"save_id", saveID,
			"document_id", documentID,
			"revision", isRevision,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.OnSave(ctx, documentID, text, isRevision)
}
