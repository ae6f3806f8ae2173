package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/imaging"
)

type UploadHandlers struct {
	pipeline *imaging.Pipeline
}

func NewUploadHandlers(pipeline *imaging.Pipeline) *UploadHandlers {
	return &UploadHandlers{pipeline: pipeline}
}

type uploadResponse struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// Upload handles POST /uploads: multipart file plus optional crop_x, crop_y,
// crop_width, crop_height and zoom form fields. Without crop fields the whole
// image is used. The response carries a preview handle so the UI can render
// the result without refetching it from the backend.
func (h *UploadHandlers) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "Failed to read file")
	}
	defer file.Close()

	session, err := h.pipeline.Begin(ctx, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidFileType) {
			return common.SendClientError(c, "Please select a valid image file")
		}
		return common.SendServerError(c, "Failed to process file")
	}

	rect, ok := cropRect(c)
	if !ok {
		bounds := session.Bounds()
		rect = imaging.Rect{
			X:      bounds.Min.X,
			Y:      bounds.Min.Y,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		}
	}
	if err := session.SetCrop(rect); err != nil {
		session.Cancel(ctx)
		return common.SendClientError(c, "Invalid crop area")
	}

	if zoom, err := strconv.ParseFloat(c.FormValue("zoom"), 64); err == nil {
		session.SetZoom(zoom)
	}

	resource, err := session.Confirm(ctx)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidCrop) {
			return common.SendClientError(c, "Invalid crop area")
		}
		return respondError(c, err, "Upload")
	}

	resp := uploadResponse{ID: resource.ID.String(), URL: resource.URL}
	if previewURL, ok := h.pipeline.Previews().URL(ctx, resource.ID); ok {
		resp.PreviewURL = previewURL
	}
	return c.JSON(http.StatusCreated, resp)
}

func cropRect(c echo.Context) (imaging.Rect, bool) {
	width, errW := strconv.Atoi(c.FormValue("crop_width"))
	height, errH := strconv.Atoi(c.FormValue("crop_height"))
	if errW != nil || errH != nil {
		return imaging.Rect{}, false
	}
	x, _ := strconv.Atoi(c.FormValue("crop_x"))
	y, _ := strconv.Atoi(c.FormValue("crop_y"))
	return imaging.Rect{X: x, Y: y, Width: width, Height: height}, true
}
