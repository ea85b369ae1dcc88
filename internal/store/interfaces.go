package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import "context"

// KeyValueStore is a namespaced text key-value store. The vault treats both
// namespace and key as opaque strings and every value as opaque text (in
// practice a base64 ciphertext).
//
// Implementations must make Remove idempotent: removing an absent key is not
// an error. Get reports absence through its boolean result, never through an
// error.
type KeyValueStore interface {
	Put(ctx context.Context, namespace, key, value string) error
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Remove(ctx context.Context, namespace, key string) error
	Contains(ctx context.Context, namespace, key string) (bool, error)
}

// BatchWriter is an optional upgrade interface for stores that can commit a
// multi-key write atomically. The vault prefers PutAll over sequential Puts
// when the store implements it, turning the best-effort four-key write into
// a genuine single commit.
type BatchWriter interface {
	PutAll(ctx context.Context, namespace string, entries map[string]string) error
}
