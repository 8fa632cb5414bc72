package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/auth"
)

const sessionContextKey = "session"

// Authenticate resolves the Authorization bearer token to a session and stores it
// in the echo context. Requests without a live session are rejected with 401.
func Authenticate(authUseCase auth.UseCase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			session, err := authUseCase.Resolve(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose session role does not match with 403.
func RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFromContext(c)
			if session == nil || session.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient privileges"})
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the session stored by Authenticate, or nil.
func SessionFromContext(c echo.Context) *model.Session {
	session, _ := c.Get(sessionContextKey).(*model.Session)
	return session
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
