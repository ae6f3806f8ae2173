// Package imaging implements the image acquisition pipeline: file select,
// interactive crop, rasterization, upload, and the preview bookkeeping that
// lets the UI render a fresh image without another round trip.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storeadmin/internal/gateway"
	"storeadmin/internal/models"
	"storeadmin/internal/notify"
)

// Zoom bounds of the crop viewport, continuous between the two.
const (
	MinZoom = 1.0
	MaxZoom = 3.0
)

type State string

// Selecting is the validation phase inside Begin: a non-image selection
// fails there and the observable state stays idle.
const (
	StateIdle      State = "idle"
	StateSelecting State = "selecting"
	StateCropping  State = "cropping"
	StateUploading State = "uploading"
	StateAttached  State = "attached"
)

// Uploader is the slice of the gateway the pipeline needs.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*models.ImageResource, error)
}

type Pipeline struct {
	uploader Uploader
	previews PreviewStore
	notifier notify.Notifier
}

func NewPipeline(uploader Uploader, previews PreviewStore, notifier notify.Notifier) *Pipeline {
	return &Pipeline{uploader: uploader, previews: previews, notifier: notifier}
}

// Previews exposes the preview store for handle lookups and releases by the
// surrounding layers (gallery replace, view unmount, reaper).
func (p *Pipeline) Previews() PreviewStore {
	return p.previews
}

// Begin starts a crop session for the selected file. A non-image file is
// rejected before anything else happens: no state is created, no network
// call is made, the user just gets a notice.
func (p *Pipeline) Begin(ctx context.Context, filename string, content io.Reader) (*CropSession, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		p.notifier.Error("Please select a valid image file")
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, filename)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.notifier.Error("Please select a valid image file")
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFileType, filename, err)
	}

	// The source handle backs the crop dialog; it is released on every
	// exit path of the session.
	sourceID := uuid.New()
	sourceURL, err := p.previews.Acquire(ctx, sourceID, data)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire source handle: %w", err)
	}

	return &CropSession{
		pipeline:  p,
		state:     StateCropping,
		src:       src,
		sourceID:  sourceID,
		sourceURL: sourceURL,
		zoom:      MinZoom,
	}, nil
}

// CropSession is the ephemeral state of one crop dialog. It lives from file
// selection until confirm or cancel and is never left dangling: both exits
// release the source handle.
type CropSession struct {
	mu        sync.Mutex
	pipeline  *Pipeline
	state     State
	src       image.Image
	sourceID  uuid.UUID
	sourceURL string
	zoom      float64
	rect      *Rect
}

func (cs *CropSession) State() State {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state
}

// SourceURL is the handle the crop dialog renders.
func (cs *CropSession) SourceURL() string {
	return cs.sourceURL
}

// Bounds is the pixel extent of the source image, used to default the crop
// rectangle to the whole image.
func (cs *CropSession) Bounds() image.Rectangle {
	return cs.src.Bounds()
}

func (cs *CropSession) Zoom() float64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.zoom
}

// SetZoom clamps to the [MinZoom, MaxZoom] range, like the dialog's slider.
func (cs *CropSession) SetZoom(zoom float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	cs.zoom = zoom
}

// SetCrop records the crop rectangle, in source-pixel coordinates. Called
// on every adjustment of the dialog.
func (cs *CropSession) SetCrop(rect Rect) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.state != StateCropping {
		return fmt.Errorf("cannot set crop in state %s", cs.state)
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCrop, rect.Width, rect.Height)
	}
	cs.rect = &rect
	return nil
}

// Cancel releases the source handle and returns to idle. No other side
// effects: nothing was uploaded, nothing is notified.
func (cs *CropSession) Cancel(ctx context.Context) {
	cs.mu.Lock()
	if cs.state != StateCropping {
		cs.mu.Unlock()
		return
	}
	cs.state = StateIdle
	cs.mu.Unlock()

	cs.releaseSource(ctx)
}

// Confirm rasterizes the crop, uploads the result, and registers a preview
// handle for the returned image id before reporting success. Confirm
// without a crop rectangle is a no-op. On upload failure every transient
// handle is released and the session ends idle.
func (cs *CropSession) Confirm(ctx context.Context) (*models.ImageResource, error) {
	cs.mu.Lock()
	if cs.state != StateCropping {
		cs.mu.Unlock()
		return nil, fmt.Errorf("cannot confirm in state %s", cs.state)
	}
	if cs.rect == nil {
		cs.mu.Unlock()
		return nil, nil
	}
	rect := *cs.rect
	cs.state = StateUploading
	cs.mu.Unlock()

	cropped, err := Rasterize(cs.src, rect)
	if err != nil {
		cs.fail(ctx, "Failed to crop image")
		return nil, err
	}

	encoded, err := EncodePNG(cropped)
	if err != nil {
		cs.fail(ctx, "Failed to crop image")
		return nil, err
	}

	filename := fmt.Sprintf("cropped-image-%d.png", time.Now().UnixNano())
	resource, err := cs.pipeline.uploader.Upload(ctx, filename, bytes.NewReader(encoded))
	if err != nil {
		cs.fail(ctx, gateway.ErrorMessage(err, "Failed to upload image"))
		return nil, errors.Join(ErrUploadFailed, err)
	}

	// Register the preview before announcing success so the UI can render
	// the new image immediately.
	if _, err := cs.pipeline.previews.Acquire(ctx, resource.ID, encoded); err != nil {
		cs.fail(ctx, "Failed to upload image")
		return nil, errors.Join(ErrUploadFailed, err)
	}

	cs.releaseSource(ctx)
	cs.mu.Lock()
	cs.state = StateAttached
	cs.mu.Unlock()

	cs.pipeline.notifier.Success("Image uploaded successfully")
	return resource, nil
}

func (cs *CropSession) fail(ctx context.Context, notice string) {
	cs.releaseSource(ctx)
	cs.mu.Lock()
	cs.state = StateIdle
	cs.mu.Unlock()
	cs.pipeline.notifier.Error(notice)
}

func (cs *CropSession) releaseSource(ctx context.Context) {
	if cs.sourceID == uuid.Nil {
		return
	}
	_ = cs.pipeline.previews.Release(ctx, cs.sourceID)
	cs.sourceID = uuid.Nil
}
