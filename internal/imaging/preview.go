package imaging

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PreviewStore holds revocable preview handles: once an upload succeeds the
// cropped image is kept client-side of the backend so the UI can render it
// without a round trip. Every Acquire must be paired with a Release on some
// exit path (replace, remove, close); the reaper job catches anything the
// unhappy paths missed.
type PreviewStore interface {
	Acquire(ctx context.Context, id uuid.UUID, data []byte) (string, error)
	URL(ctx context.Context, id uuid.UUID) (string, bool)
	Release(ctx context.Context, id uuid.UUID) error
	ReleaseAll(ctx context.Context) error
	// ReapExpired releases every handle past its TTL and returns how many.
	ReapExpired(ctx context.Context) (int, error)
}

type minioPreviewStore struct {
	client *minio.Client
	bucket string
	ttl    time.Duration

	mu        sync.Mutex
	deadlines map[uuid.UUID]time.Time
}

// NewMinioPreviewStore stores preview objects in a dedicated bucket and
// serves them via presigned URLs. ttl bounds both the presigned URL and the
// handle's lifetime before the reaper collects it.
func NewMinioPreviewStore(endpoint, accessKey, secretKey string, useSSL bool, bucket string, ttl time.Duration) (PreviewStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	store := &minioPreviewStore{
		client:    client,
		bucket:    bucket,
		ttl:       ttl,
		deadlines: make(map[uuid.UUID]time.Time),
	}
	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *minioPreviewStore) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *minioPreviewStore) objectName(id uuid.UUID) string {
	return fmt.Sprintf("previews/%s.png", id.String())
}

func (s *minioPreviewStore) Acquire(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	object := s.objectName(id)
	_, err := s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return "", fmt.Errorf("failed to store preview %s: %w", id, err)
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, object, s.ttl, nil)
	if err != nil {
		// Do not leave the object behind without a tracked handle.
		_ = s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{})
		return "", fmt.Errorf("failed to presign preview %s: %w", id, err)
	}

	s.mu.Lock()
	s.deadlines[id] = time.Now().Add(s.ttl)
	s.mu.Unlock()

	return url.String(), nil
}

func (s *minioPreviewStore) URL(ctx context.Context, id uuid.UUID) (string, bool) {
	s.mu.Lock()
	_, held := s.deadlines[id]
	s.mu.Unlock()
	if !held {
		return "", false
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, s.objectName(id), s.ttl, nil)
	if err != nil {
		return "", false
	}
	return url.String(), true
}

func (s *minioPreviewStore) Release(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, held := s.deadlines[id]
	delete(s.deadlines, id)
	s.mu.Unlock()
	if !held {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, s.objectName(id), minio.RemoveObjectOptions{})
}

func (s *minioPreviewStore) ReleaseAll(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.deadlines))
	for id := range s.deadlines {
		ids = append(ids, id)
	}
	s.deadlines = make(map[uuid.UUID]time.Time)
	s.mu.Unlock()

	var lastErr error
	for _, id := range ids {
		if err := s.client.RemoveObject(ctx, s.bucket, s.objectName(id), minio.RemoveObjectOptions{}); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (s *minioPreviewStore) ReapExpired(ctx context.Context) (int, error) {
	now := time.Now()
	s.mu.Lock()
	expired := make([]uuid.UUID, 0)
	for id, deadline := range s.deadlines {
		if now.After(deadline) {
			expired = append(expired, id)
			delete(s.deadlines, id)
		}
	}
	s.mu.Unlock()

	var lastErr error
	for _, id := range expired {
		if err := s.client.RemoveObject(ctx, s.bucket, s.objectName(id), minio.RemoveObjectOptions{}); err != nil {
			log.Printf("WARN: failed to reap preview %s: %v", id, err)
			lastErr = err
		}
	}
	return len(expired), lastErr
}
