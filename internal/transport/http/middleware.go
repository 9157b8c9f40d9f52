package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/task-manager-app/backend/internal/util"
)

const contextUserIDKey = "auth.user_id"

// RequireAuth verifies the bearer token and injects the authenticated user id
// into the request context. It runs once per protected request, before the
// handler, and never touches the store.
func RequireAuth(tokens *util.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
			}
			claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Message("Token inválido o expirado"))
			}
			c.Set(contextUserIDKey, claims.UserID)
			return next(c)
		}
	}
}

// CurrentUserID returns the user id attached by RequireAuth.
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextUserIDKey).(uuid.UUID)
	return id, ok
}
