package myblob

import (
	"context"
	"os"
)

// BlobStore hides the binary object storage that keeps payment screenshots.
//
//go:generate mockgen -source=api.go -package myblob -destination blob_mock.go BlobStore
type BlobStore interface {
	Upload(c context.Context, path string, contentType string, data []byte) error
	PublicURL(path string) string
}

func New(c context.Context) (BlobStore, func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudBlobStore(c)
	}

	return NewInMemoryBlobStore(c)
}

func bucketName() string {
	bucket := os.Getenv("SCREENSHOT_BUCKET")
	if bucket == "" {
		bucket = "payment-screenshots"
	}
	return bucket
}
