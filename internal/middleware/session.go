package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storeadmin/internal/common"
	"storeadmin/internal/models"
	"storeadmin/internal/session"
)

// SessionMiddleware resolves the console token on every protected route and
// puts the session id and identity into the request context. The gateway
// reads the session id back when it needs the backend credential.
func SessionMiddleware(sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			sessionID, sess, err := sessions.Resolve(c.Request().Context(), tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
			}

			ctx := common.WithSessionID(c.Request().Context(), sessionID)
			ctx = context.WithValue(ctx, common.IdentityKey, sess.Identity)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// IdentityFromContext extracts the staff identity placed by SessionMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(common.IdentityKey).(models.Identity)
	return identity, ok
}
