package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/imaging"
	"storeadmin/internal/models"
	"storeadmin/internal/notify"
)

type stubUploader struct {
	calls    int
	lastName string
}

func (u *stubUploader) Upload(_ context.Context, filename string, content io.Reader) (*models.ImageResource, error) {
	u.calls++
	u.lastName = filename
	io.Copy(io.Discard, content)
	return &models.ImageResource{ID: uuid.New(), URL: "https://cdn.example.com/" + filename}, nil
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, file []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if file != nil {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func uploadPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 10, A: 255})
		}
	}
	data, err := imaging.EncodePNG(img)
	require.NoError(t, err)
	return data
}

func newUploadHandlers() (*UploadHandlers, *stubUploader) {
	uploader := &stubUploader{}
	pipeline := imaging.NewPipeline(uploader, imaging.NewMemoryPreviewStore(time.Minute), notify.NewLogNotifier())
	return NewUploadHandlers(pipeline), uploader
}

func TestUploadWithCrop(t *testing.T) {
	h, uploader := newUploadHandlers()
	c, rec := multipartUpload(t, map[string]string{
		"crop_x": "5", "crop_y": "5", "crop_width": "10", "crop_height": "10", "zoom": "2",
	}, "photo.png", uploadPNG(t))

	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.NotEmpty(t, resp["url"])
	assert.NotEmpty(t, resp["preview_url"])
	assert.Equal(t, 1, uploader.calls)
}

func TestUploadDefaultsToFullImage(t *testing.T) {
	h, uploader := newUploadHandlers()
	c, rec := multipartUpload(t, nil, "photo.png", uploadPNG(t))

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, uploader.calls)
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, uploader := newUploadHandlers()
	c, rec := multipartUpload(t, nil, "doc.pdf", []byte("%PDF-1.4 definitely not pixels"))

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uploader.calls, "no upload may happen for a rejected file")
}

func TestUploadMissingFile(t *testing.T) {
	h, _ := newUploadHandlers()
	c, rec := multipartUpload(t, map[string]string{"zoom": "2"}, "", nil)

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejectsOutOfBoundsCrop(t *testing.T) {
	h, uploader := newUploadHandlers()
	c, rec := multipartUpload(t, map[string]string{
		"crop_x": "0", "crop_y": "0", "crop_width": "0", "crop_height": "10",
	}, "photo.png", uploadPNG(t))

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uploader.calls)
}
