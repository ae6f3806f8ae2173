// Package handlers exposes the console's HTTP surface. Handlers bind and
// validate input, delegate to services, and translate service failures into
// the standard error envelope. Backend error bodies for unclassified
// statuses pass through unchanged.
package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/forms"
	"storeadmin/internal/gateway"
)

// respondError maps a service failure onto the console's response contract.
func respondError(c echo.Context, err error, resource string) error {
	var fieldErrs forms.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return common.SendValidationError(c, fieldErrs)
	}

	var apiErr *gateway.ApiError
	if !errors.As(err, &apiErr) {
		return common.SendServerError(c, "Internal server error")
	}

	switch apiErr.Kind {
	case gateway.KindUnauthorized:
		return common.SendUnauthorizedError(c)
	case gateway.KindForbidden:
		return common.SendForbiddenError(c)
	case gateway.KindNotFound:
		return common.SendNotFoundError(c, resource)
	case gateway.KindServerFault, gateway.KindNetwork:
		return common.SendServerError(c, "Internal server error")
	default:
		if len(apiErr.Body) > 0 {
			return c.JSONBlob(apiErr.Status, apiErr.Body)
		}
		return common.SendClientError(c, apiErr.Message)
	}
}
