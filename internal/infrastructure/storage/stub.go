package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	appattachment "github.com/eujim/backend/internal/application/attachment"
)

// StubFileStorage is an in-memory FileStorage for development and tests.
// Uploaded files are held in a map and lost on restart.
type StubFileStorage struct {
	// BaseURL is the base URL for generated download links
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubFileStorage creates a new StubFileStorage
func NewStubFileStorage() *StubFileStorage {
	return &StubFileStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubFileStorage implements FileStorage
var _ appattachment.FileStorage = (*StubFileStorage)(nil)

// Upload stores data in memory
func (s *StubFileStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = append([]byte(nil), data...)
	return nil
}

// GenerateDownloadURL generates a stub download URL
func (s *StubFileStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// DeleteObject removes a stored file
func (s *StubFileStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists checks whether a file was uploaded
func (s *StubFileStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// Get returns a stored file's content. Test helper.
func (s *StubFileStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
