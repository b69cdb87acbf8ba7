package ports

import (
	"context"
	"io"
)

// AssetStorage is the blob store holding listing images.
type AssetStorage interface {
	// Upload blocks until the object is stored.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// URL returns a long-lived retrieval URL for a stored object.
	URL(ctx context.Context, key string) (string, error)
}

// Notifier posts short text to the external social feed and returns the
// remote post id.
type Notifier interface {
	Post(ctx context.Context, text string) (string, error)
}

// MessageBroadcaster fans newly posted chat messages out to live subscribers.
type MessageBroadcaster interface {
	Publish(catID string, payload any)
}
