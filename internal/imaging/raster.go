package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	// Register the decoders for the formats staff actually upload.
	_ "image/gif"
	_ "image/jpeg"
)

// Rect is a crop rectangle in source-pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rasterize cuts rect out of src into a new image of exactly
// rect.Width x rect.Height pixels, sampling the source at the rectangle's
// offset. The output carries an alpha channel so transparency survives.
func Rasterize(src image.Image, rect Rect) (*image.NRGBA, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCrop, rect.Width, rect.Height)
	}

	bounds := src.Bounds()
	if rect.X < 0 || rect.Y < 0 ||
		rect.X+rect.Width > bounds.Dx() || rect.Y+rect.Height > bounds.Dy() {
		return nil, fmt.Errorf("%w: rect (%d,%d %dx%d) vs source %dx%d",
			ErrInvalidCrop, rect.X, rect.Y, rect.Width, rect.Height, bounds.Dx(), bounds.Dy())
	}

	dst := image.NewNRGBA(image.Rect(0, 0, rect.Width, rect.Height))
	offset := image.Pt(bounds.Min.X+rect.X, bounds.Min.Y+rect.Y)
	draw.Draw(dst, dst.Bounds(), src, offset, draw.Src)
	return dst, nil
}

// EncodePNG serializes img as PNG. PNG is the only output format: it is
// lossless and keeps the alpha channel, so there is no quality knob here.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
