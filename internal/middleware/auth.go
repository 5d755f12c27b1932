package middleware

import (
	"net/http"
	"strings"

	"catalog-service/internal/store"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTAuth validates the Bearer token and threads the resolved identity
// through the request context. A profile row is ensured lazily so that the
// first authenticated action creates it.
func JWTAuth(profiles *store.ProfileStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwtutil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			if _, err := profiles.Ensure(claims.UserID, nil); err != nil {
				// Profile creation is best-effort; the request proceeds on the
				// token identity alone.
				log.Warn("Failed to ensure profile", zap.String("user_id", claims.UserID), zap.Error(err))
			}

			return next(c)
		}
	}
}

// UserID retrieves the authenticated owner identity from the context
func UserID(c echo.Context) (string, bool) {
	uid, ok := c.Get("user_id").(string)
	return uid, ok && uid != ""
}
