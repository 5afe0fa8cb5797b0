package cache

import "context"

type Cache interface {
	Ping(ctx context.Context) error

	// PushUnique stores value under field in hashKey and pushes field to the
	// head of listKey, atomically and only if field is not present yet.
	// It reports whether the value was stored.
	PushUnique(ctx context.Context, hashKey, listKey, field, value string) (bool, error)

	// Ordered returns the hash values in list order, head first.
	Ordered(ctx context.Context, hashKey, listKey string) ([]string, error)
}
