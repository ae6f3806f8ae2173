package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	return img
}

func TestRasterizeExtractsExactRegion(t *testing.T) {
	src := testImage(100, 80)

	out, err := Rasterize(src, Rect{X: 10, Y: 20, Width: 30, Height: 40})
	require.NoError(t, err)

	assert.Equal(t, 30, out.Bounds().Dx())
	assert.Equal(t, 40, out.Bounds().Dy())

	// Pixel (0,0) of the crop is pixel (10,20) of the source.
	assert.Equal(t, src.NRGBAAt(10, 20), out.NRGBAAt(0, 0))
	assert.Equal(t, src.NRGBAAt(39, 59), out.NRGBAAt(29, 39))
}

func TestRasterizeFullImage(t *testing.T) {
	src := testImage(16, 16)

	out, err := Rasterize(src, Rect{X: 0, Y: 0, Width: 16, Height: 16})
	require.NoError(t, err)

	assert.True(t, bytes.Equal(src.Pix, out.Pix))
}

func TestRasterizeRejectsBadRects(t *testing.T) {
	src := testImage(50, 50)

	cases := []Rect{
		{X: 0, Y: 0, Width: 0, Height: 10},
		{X: 0, Y: 0, Width: 10, Height: -1},
		{X: -1, Y: 0, Width: 10, Height: 10},
		{X: 45, Y: 0, Width: 10, Height: 10},
		{X: 0, Y: 45, Width: 10, Height: 10},
	}
	for _, rect := range cases {
		_, err := Rasterize(src, rect)
		assert.ErrorIs(t, err, ErrInvalidCrop)
	}
}

func TestRasterizePreservesTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.SetNRGBA(5, 5, color.NRGBA{R: 200, G: 0, B: 0, A: 128})

	out, err := Rasterize(src, Rect{X: 4, Y: 4, Width: 4, Height: 4})
	require.NoError(t, err)

	encoded, err := EncodePNG(out)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(encoded))
	require.NoError(t, err)

	_, _, _, a := decoded.At(1, 1).RGBA()
	assert.NotEqual(t, uint32(0xffff), a, "alpha channel must survive encode")
}

func TestEncodePNGRoundTrip(t *testing.T) {
	src := testImage(24, 24)

	encoded, err := EncodePNG(src)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())

	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			r1, g1, b1, a1 := src.At(x, y).RGBA()
			r2, g2, b2, a2 := decoded.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) changed across encode/decode", x, y)
			}
		}
	}
}
