package imaging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/models"
)

type fakeUploader struct {
	mu       sync.Mutex
	calls    int
	failWith error
	lastName string
	lastSize int
}

func (f *fakeUploader) Upload(_ context.Context, filename string, content io.Reader) (*models.ImageResource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastName = filename
	data, _ := io.ReadAll(content)
	f.lastSize = len(data)
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &models.ImageResource{ID: uuid.New(), URL: "https://cdn.example.com/" + filename}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	n.successes = append(n.successes, message)
	n.mu.Unlock()
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	n.failures = append(n.failures, message)
	n.mu.Unlock()
}

func newTestPipeline() (*Pipeline, *fakeUploader, *recordingNotifier) {
	uploader := &fakeUploader{}
	notifier := &recordingNotifier{}
	pipeline := NewPipeline(uploader, NewMemoryPreviewStore(time.Minute), notifier)
	return pipeline, uploader, notifier
}

func pngFile(t *testing.T) []byte {
	t.Helper()
	data, err := EncodePNG(testImage(60, 40))
	require.NoError(t, err)
	return data
}

func TestBeginRejectsNonImageWithoutUpload(t *testing.T) {
	pipeline, uploader, notifier := newTestPipeline()

	_, err := pipeline.Begin(context.Background(), "doc.pdf", strings.NewReader("%PDF-1.4 not an image"))

	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Zero(t, uploader.calls, "rejection must happen before any upload")
	assert.Contains(t, notifier.failures, "Please select a valid image file")
}

func TestBeginStartsCroppingSession(t *testing.T) {
	pipeline, _, _ := newTestPipeline()

	session, err := pipeline.Begin(context.Background(), "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)

	assert.Equal(t, StateCropping, session.State())
	assert.NotEmpty(t, session.SourceURL())
	assert.Equal(t, 60, session.Bounds().Dx())
}

func TestSetZoomClamps(t *testing.T) {
	pipeline, _, _ := newTestPipeline()
	session, err := pipeline.Begin(context.Background(), "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)

	session.SetZoom(0.2)
	assert.Equal(t, MinZoom, session.Zoom())

	session.SetZoom(7.5)
	assert.Equal(t, MaxZoom, session.Zoom())

	session.SetZoom(2.0)
	assert.Equal(t, 2.0, session.Zoom())
}

func TestCancelReleasesSourceHandle(t *testing.T) {
	pipeline, uploader, notifier := newTestPipeline()
	session, err := pipeline.Begin(context.Background(), "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)

	session.Cancel(context.Background())

	assert.Equal(t, StateIdle, session.State())
	assert.Zero(t, uploader.calls)
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.failures)
}

func TestConfirmWithoutCropIsNoOp(t *testing.T) {
	pipeline, uploader, _ := newTestPipeline()
	session, err := pipeline.Begin(context.Background(), "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)

	resource, err := session.Confirm(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, resource)
	assert.Zero(t, uploader.calls)
	assert.Equal(t, StateCropping, session.State())
}

func TestConfirmUploadsCroppedPNG(t *testing.T) {
	pipeline, uploader, notifier := newTestPipeline()
	ctx := context.Background()

	session, err := pipeline.Begin(ctx, "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)
	require.NoError(t, session.SetCrop(Rect{X: 5, Y: 5, Width: 20, Height: 20}))

	resource, err := session.Confirm(ctx)
	require.NoError(t, err)
	require.NotNil(t, resource)

	assert.Equal(t, StateAttached, session.State())
	assert.Equal(t, 1, uploader.calls)
	assert.True(t, strings.HasPrefix(uploader.lastName, "cropped-image-"))
	assert.True(t, strings.HasSuffix(uploader.lastName, ".png"))
	assert.Positive(t, uploader.lastSize)

	// The preview handle is registered before the success notice.
	_, held := pipeline.Previews().URL(ctx, resource.ID)
	assert.True(t, held)
	assert.Contains(t, notifier.successes, "Image uploaded successfully")
}

func TestConfirmUploadFailureEndsIdle(t *testing.T) {
	pipeline, uploader, notifier := newTestPipeline()
	uploader.failWith = errors.New("backend down")
	ctx := context.Background()

	session, err := pipeline.Begin(ctx, "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)
	require.NoError(t, session.SetCrop(Rect{X: 0, Y: 0, Width: 10, Height: 10}))

	_, err = session.Confirm(ctx)

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, StateIdle, session.State())
	assert.NotEmpty(t, notifier.failures)
}

func TestSetCropRejectsDegenerateRect(t *testing.T) {
	pipeline, _, _ := newTestPipeline()
	session, err := pipeline.Begin(context.Background(), "photo.png", bytes.NewReader(pngFile(t)))
	require.NoError(t, err)

	assert.ErrorIs(t, session.SetCrop(Rect{Width: 0, Height: 10}), ErrInvalidCrop)
	assert.ErrorIs(t, session.SetCrop(Rect{Width: 10, Height: -2}), ErrInvalidCrop)
}

func TestMemoryPreviewStoreLifecycle(t *testing.T) {
	store := NewMemoryPreviewStore(time.Minute)
	ctx := context.Background()
	id := uuid.New()

	url, err := store.Acquire(ctx, id, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	got, held := store.URL(ctx, id)
	assert.True(t, held)
	assert.Equal(t, url, got)

	require.NoError(t, store.Release(ctx, id))
	_, held = store.URL(ctx, id)
	assert.False(t, held)
}

func TestMemoryPreviewStoreReapsExpired(t *testing.T) {
	store := NewMemoryPreviewStore(-time.Second)
	ctx := context.Background()

	_, err := store.Acquire(ctx, uuid.New(), []byte{1})
	require.NoError(t, err)

	reaped, err := store.ReapExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reaped)
}
