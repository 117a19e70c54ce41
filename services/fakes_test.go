package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// fakeObjectStore records every call and can be told to fail specific
// object ids.
type fakeObjectStore struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
	failing map[string]bool
	failAll bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{failing: make(map[string]bool)}
}

func (f *fakeObjectStore) failOn(objectID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[objectID] = true
}

func (f *fakeObjectStore) Upload(_ context.Context, r io.Reader, name, folderPath string) (*UploadResult, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	objectID := folderPath + "/" + name
	if f.failAll || f.failing[objectID] || f.failing[name] {
		return nil, fmt.Errorf("upload rejected")
	}
	f.uploads = append(f.uploads, objectID)
	return &UploadResult{
		ObjectID: objectID,
		URL:      "https://blobs.test" + objectID,
		Size:     n,
	}, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, objectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, objectID)
	if f.failing[objectID] {
		return fmt.Errorf("delete rejected")
	}
	return nil
}

func (f *fakeObjectStore) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deletes))
	copy(out, f.deletes)
	return out
}
