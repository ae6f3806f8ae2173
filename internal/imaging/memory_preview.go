package imaging

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryPreview struct {
	url      string
	deadline time.Time
}

type memoryPreviewStore struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[uuid.UUID]memoryPreview
}

// NewMemoryPreviewStore keeps previews in process memory as data URLs, the
// closest analogue of a browser object URL. Used when no object storage is
// configured, and throughout the test suites.
func NewMemoryPreviewStore(ttl time.Duration) PreviewStore {
	return &memoryPreviewStore{ttl: ttl, entries: make(map[uuid.UUID]memoryPreview)}
}

func (s *memoryPreviewStore) Acquire(_ context.Context, id uuid.UUID, data []byte) (string, error) {
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	s.mu.Lock()
	s.entries[id] = memoryPreview{url: url, deadline: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return url, nil
}

func (s *memoryPreviewStore) URL(_ context.Context, id uuid.UUID) (string, bool) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return "", false
	}
	return entry.url, true
}

func (s *memoryPreviewStore) Release(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *memoryPreviewStore) ReleaseAll(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[uuid.UUID]memoryPreview)
	s.mu.Unlock()
	return nil
}

func (s *memoryPreviewStore) ReapExpired(_ context.Context) (int, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	reaped := 0
	for id, entry := range s.entries {
		if now.After(entry.deadline) {
			delete(s.entries, id)
			reaped++
		}
	}
	return reaped, nil
}
