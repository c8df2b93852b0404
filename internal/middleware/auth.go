package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bryansgue/scanela-sub001/pkg/jwtutil"
	"github.com/bryansgue/scanela-sub001/pkg/logger"
)

// AuthMiddleware validates the JWT token and extracts the caller identity
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "invalid or expired token"})
		}

		userID, err := claims.UserUUID()
		if err != nil {
			log.Error("JWT token carries no usable user id", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", userID)
		c.Set("email", claims.Email)

		// Token is valid, proceed with the request
		return next(c)
	}
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
// Returns uuid.Nil, false if no user is authenticated.
func GetUserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok
}
