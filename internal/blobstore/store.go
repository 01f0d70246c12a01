// Package blobstore provides the key-value snapshot store the collection
// layer persists into. Each key holds one serialized collection; a Put fully
// replaces the previous value for that key.
package blobstore

import "context"

// Store is a durable key → blob mapping.
type Store interface {
	// Get returns the blob last stored under key, or (nil, nil) when the
	// key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the blob stored under key. When the backing store is
	// out of space it returns an error wrapping domain.ErrQuotaExceeded
	// and leaves the previously stored value intact.
	Put(ctx context.Context, key string, blob []byte) error
	Close() error
}
