// Package syncstate is a small per-owner key/value store for sync bookkeeping
// such as the last successful sync time.
package syncstate

import "context"

type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, owner, key string) ([]byte, error)
	Set(ctx context.Context, owner, key string, value []byte) error
	Delete(ctx context.Context, owner, key string) error
}

// LastSyncTimeKey stores the RFC 3339 timestamp of the last full-cycle
// success.
const LastSyncTimeKey = "lastSyncTime"
