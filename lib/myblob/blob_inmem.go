package myblob

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryBlobStore struct {
	sync.Mutex
	bucket  string
	Objects map[string][]byte
}

func NewInMemoryBlobStore(c context.Context) (*InMemoryBlobStore, func(), error) {
	return &InMemoryBlobStore{
		bucket:  bucketName(),
		Objects: make(map[string][]byte),
	}, func() {}, nil
}

func (s *InMemoryBlobStore) Upload(c context.Context, path string, contentType string, data []byte) error {
	s.Lock()
	defer s.Unlock()

	s.Objects[path] = data

	return nil
}

func (s *InMemoryBlobStore) PublicURL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path)
}
