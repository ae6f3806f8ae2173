package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/notify"
)

type NoticeHandlers struct {
	buffer *notify.Buffer
}

func NewNoticeHandlers(buffer *notify.Buffer) *NoticeHandlers {
	return &NoticeHandlers{buffer: buffer}
}

// ListNotices handles GET /notices: drains the pending notice queue so the
// UI can render its toasts. Each notice is delivered exactly once.
func (h *NoticeHandlers) ListNotices(c echo.Context) error {
	notices := h.buffer.Drain()
	if notices == nil {
		notices = []notify.Notice{}
	}
	return c.JSON(http.StatusOK, map[string][]notify.Notice{"notices": notices})
}
