// Package storage provides the key-value persistence capability the account
// and job stores are built on. Both stores depend on the KeyValue interface
// only, so tests can inject the in-memory implementation and production can
// use the SQLite-backed one.
package storage

import "context"

// KeyValue is a whole-value get/set store addressed by string keys.
//
// Contract:
//   - Get returns (nil, nil) for a missing key; a nil error with a non-nil
//     value means the key exists.
//   - Set replaces the whole value for the key.
//   - Delete of a missing key is a no-op, not an error.
//   - Writes are whole-value: a reader never observes a partial write.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
