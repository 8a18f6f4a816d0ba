// Package slog provides logging decorators for ldblocks services.
package slog

import "context"

type saveIDKey struct{}

// WithSaveID returns ctx tagged with the id of the save event it belongs to.
func WithSaveID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, saveIDKey{}, id)
}

// SaveIDFromContext returns the save id of ctx, or "" if there is none.
func SaveIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(saveIDKey{}).(string)
	return id
}
