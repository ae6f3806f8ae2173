package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/models"
	"storeadmin/internal/services"
)

type InquiryHandlers struct {
	inquiryService services.InquiryService
}

func NewInquiryHandlers(inquiryService services.InquiryService) *InquiryHandlers {
	return &InquiryHandlers{inquiryService: inquiryService}
}

// ListInquiries handles GET /inquiries.
func (h *InquiryHandlers) ListInquiries(c echo.Context) error {
	filter := &models.InquiryFilter{
		Search: c.QueryParam("search"),
		Offset: intQueryParam(c, "offset"),
		Limit:  intQueryParam(c, "limit"),
	}
	if status := c.QueryParam("status"); status != "" {
		if !models.InquiryStatus(status).Valid() {
			return common.SendClientError(c, "Invalid inquiry status")
		}
		filter.Status = status
	}

	list, err := h.inquiryService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "Inquiry")
	}
	return c.JSON(http.StatusOK, list)
}

// GetInquiry handles GET /inquiries/:id.
func (h *InquiryHandlers) GetInquiry(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "inquiry id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	inquiry, err := h.inquiryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Inquiry")
	}
	return c.JSON(http.StatusOK, inquiry)
}

// UpdateInquiryStatus handles PUT /inquiries/:id/status.
func (h *InquiryHandlers) UpdateInquiryStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "inquiry id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status models.InquiryStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if !req.Status.Valid() {
		return common.SendValidationError(c, map[string]string{"status": "Invalid inquiry status"})
	}

	inquiry, err := h.inquiryService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err, "Inquiry")
	}
	return c.JSON(http.StatusOK, inquiry)
}

// DeleteInquiry handles DELETE /inquiries/:id.
func (h *InquiryHandlers) DeleteInquiry(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "inquiry id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.inquiryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Inquiry")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Inquiry deleted successfully"})
}
