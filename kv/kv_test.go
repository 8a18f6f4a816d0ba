package kv_test

import (
	"context"

	"github.com/fwojciec/ldblocks"
	"github.com/fwojciec/ldblocks/mock"
)

// newMemoryStore returns a KVStore backed by data.
func newMemoryStore(data map[string]string) *mock.KVStore {
	return &mock.KVStore{
		GetFn: func(ctx context.Context, key string) ([]byte, error) {
			v, ok := data[key]
			if !ok {
				return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "key %q not found", key)
			}
			return []byte(v), nil
		},
		SetFn: func(ctx context.Context, key string, value []byte) error {
			data[key] = string(value)
			return nil
		},
		DeleteFn: func(ctx context.Context, key string) error {
			delete(data, key)
			return nil
		},
	}
}
