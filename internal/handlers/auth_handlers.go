package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/forms"
	"storeadmin/internal/services"
)

type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(c echo.Context) error {
	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := form.Validate(); err != nil {
		var fieldErrs forms.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return common.SendValidationError(c, fieldErrs)
		}
		return common.SendClientError(c, "Validation failed")
	}

	result, err := h.authService.Login(c.Request().Context(), form.EmailOrPhone, form.Password)
	if err != nil {
		return respondError(c, err, "User")
	}

	return c.JSON(http.StatusOK, result)
}

// Logout handles POST /auth/logout.
func (h *AuthHandlers) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return respondError(c, err, "Session")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
