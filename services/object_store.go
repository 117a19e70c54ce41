package services

import (
	"context"
	"io"
)

// UploadResult carries what the remote store reports back after an upload.
// ThumbnailURL, Width and Height are provider-dependent and may be zero.
// Size is the measured number of bytes written, used as the fallback when a
// client declares no size.
type UploadResult struct {
	ObjectID     string
	URL          string
	ThumbnailURL string
	Width        int
	Height       int
	Size         int64
}

// ObjectStore is the port to the external blob storage/CDN. Upload failures
// are fatal to the triggering mutation. Delete of an already-deleted object
// must be absorbed as a no-op so racing deletes stay idempotent.
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, name, folderPath string) (*UploadResult, error)
	Delete(ctx context.Context, objectID string) error
}
