package imaging

import "errors"

var (
	// ErrInvalidFileType is returned before any network call when the
	// selected file is not an image.
	ErrInvalidFileType = errors.New("selected file is not an image")
	// ErrUploadFailed marks an upload that ended back in the idle state.
	ErrUploadFailed = errors.New("image upload failed")
	// ErrInvalidCrop is returned when a crop rectangle is degenerate or
	// falls outside the source bounds.
	ErrInvalidCrop = errors.New("crop rectangle outside source bounds")
	// ErrGalleryFull is returned when adding past the slot capacity.
	ErrGalleryFull = errors.New("image gallery is full")
	// ErrPrimaryImageRequired blocks removing the primary image of a
	// persisted product that still has images.
	ErrPrimaryImageRequired = errors.New("product must keep a primary image")
	// ErrSlotOutOfRange is returned for gallery operations on an index
	// with no slot.
	ErrSlotOutOfRange = errors.New("gallery slot out of range")
)
