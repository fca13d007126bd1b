package http

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Storer is the slice of the image store the handlers need.
type Storer interface {
	Insert(ctx context.Context, userID, data, contentType, fileName string) (string, error)
	Get(ctx context.Context, id string) (data, contentType string, err error)
}

// BlobPutter is the alternate backend that returns absolute URLs.
type BlobPutter interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
}

// Handler bundles the dependencies for image HTTP endpoints.
// blob is nil when IMAGE_BACKEND=postgres; cache is nil when Redis is off.
type Handler struct {
	store    Storer
	blob     BlobPutter
	cache    *redis.Client
	maxBytes int64
}

func New(store Storer, blob BlobPutter, cache *redis.Client, maxBytes int64) *Handler {
	return &Handler{store: store, blob: blob, cache: cache, maxBytes: maxBytes}
}
