package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kurin/blazer/b2"
)

const downloadURLTTL = 24 * time.Hour

// B2Service implements ObjectStore on a Backblaze B2 bucket. Object ids are
// the full object names inside the bucket.
type B2Service struct {
	client     *b2.Client
	bucketName string
	bucket     *b2.Bucket
}

var _ ObjectStore = (*B2Service)(nil)

func NewB2Service(ctx context.Context, keyID, applicationKey, bucketName string) (*B2Service, error) {
	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &B2Service{
		client:     client,
		bucketName: bucketName,
		bucket:     bucket,
	}, nil
}

func (s *B2Service) Upload(ctx context.Context, r io.Reader, name, folderPath string) (*UploadResult, error) {
	objectName := name
	if cleanPath := strings.Trim(folderPath, "/"); cleanPath != "" {
		objectName = cleanPath + "/" + name
	}

	obj := s.bucket.Object(objectName)
	writer := obj.NewWriter(ctx)

	written, err := io.Copy(writer, r)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to upload %s to B2: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close B2 writer: %w", err)
	}

	// Signed URL so private buckets stay private.
	urlObj, err := obj.AuthURL(ctx, downloadURLTTL, "GET")
	if err != nil {
		return nil, fmt.Errorf("failed to generate signed URL for %s: %w", objectName, err)
	}

	return &UploadResult{
		ObjectID: objectName,
		URL:      urlObj.String(),
		Size:     written,
	}, nil
}

func (s *B2Service) Delete(ctx context.Context, objectID string) error {
	if err := s.bucket.Object(objectID).Delete(ctx); err != nil {
		// Deleting a blob that is already gone is a success for callers.
		if b2.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete %s from B2: %w", objectID, err)
	}
	return nil
}
