// Package storage is the durable local side of the client: a small sqlite
// key/value store holding the auth token and guest-mode personalization
// data. It is the Go counterpart of the browser localStorage the web front
// end uses for the same keys.
package storage

import "context"

// Keys owned by this client. No other component writes them.
const (
	KeyToken          = "token"          // raw token string
	KeyBookmarks      = "bookmarks"      // JSON array of post IDs
	KeyReadingHistory = "readingHistory" // JSON array of history entries
	KeyRecentSearches = "recentSearches" // JSON array of query strings
	KeyDraftIndex     = "draftIndex"    // JSON array of stashed draft IDs
)

// KV is durable local key/value storage.
//
// Get returns (nil, nil) when the key is absent; Delete and Clear are
// idempotent. Writes are synchronous: when a call returns, the data is in
// the store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
