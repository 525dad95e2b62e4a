package myblob

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

type gcloudBlobStore struct {
	client *storage.Client
	bucket string
}

func newGcloudBlobStore(c context.Context) (*gcloudBlobStore, func(), error) {
	client, err := storage.NewClient(c)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating storage-client: %s", err)
	}

	return &gcloudBlobStore{
			client: client,
			bucket: bucketName(),
		}, func() {
			client.Close()
		}, nil
}

func (s *gcloudBlobStore) Upload(c context.Context, path string, contentType string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(c)
	w.ContentType = contentType

	_, err := w.Write(data)
	if err != nil {
		w.Close()
		return fmt.Errorf("error writing object %s to bucket %s: %s", path, s.bucket, err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("error committing object %s to bucket %s: %s", path, s.bucket, err)
	}

	return nil
}

func (s *gcloudBlobStore) PublicURL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path)
}
