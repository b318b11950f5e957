package repositories

import "context"

// AssetRepository stores base64 blobs (document files, question and mnemonic
// images) outside the snapshot
type AssetRepository interface {
	// Get returns the content stored under key, or a domain.NotFoundError
	Get(ctx context.Context, key string) (string, error)

	// Put creates or replaces the content under key
	Put(ctx context.Context, key, content string) error

	// Delete removes the given keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Keys lists every stored key in lexical order
	Keys(ctx context.Context) ([]string, error)
}
