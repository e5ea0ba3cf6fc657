package ports

import "context"

// ObjectStore abstracts the object-storage service. URLs returned are
// time-limited presigned URLs; the service never proxies file bytes.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// IdempotencyChecker provides replay detection for client-supplied
// idempotency keys.
type IdempotencyChecker interface {
	IsDuplicate(ctx context.Context, userID, key string) (bool, error)
	Mark(ctx context.Context, userID, key string) error
}
