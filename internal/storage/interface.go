package storage

import "context"

// Store is the object-storage surface the pipeline consumes. A single
// Download/Put pair is all the stages need; retry policy lives with the
// callers.
type Store interface {
	Download(ctx context.Context, bucket, key, dest string) error
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}
