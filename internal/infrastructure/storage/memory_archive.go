package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryArchive keeps report files in process memory. It is used when
// object storage is disabled; its links use the memory:// scheme and are
// only meaningful to Get.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	ttl     time.Duration
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryArchive creates an empty archive whose links expire after ttl
func NewMemoryArchive(ttl time.Duration) *MemoryArchive {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MemoryArchive{objects: make(map[string]memoryObject), ttl: ttl}
}

// Upload stores a copy of data under key
func (a *MemoryArchive) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// GenerateDownloadURL returns a memory:// link for a stored key
func (a *MemoryArchive) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	a.mu.RLock()
	_, ok := a.objects[key]
	a.mu.RUnlock()
	if !ok {
		return "", time.Time{}, errors.New("object not found: " + key)
	}
	if expiresIn <= 0 {
		expiresIn = a.ttl
	}
	return "memory://" + key, time.Now().Add(expiresIn), nil
}

// Get returns the stored bytes and content type of key
func (a *MemoryArchive) Get(key string) ([]byte, string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	obj, ok := a.objects[key]
	return obj.data, obj.contentType, ok
}
