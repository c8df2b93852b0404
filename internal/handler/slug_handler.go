package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bryansgue/scanela-sub001/internal/middleware"
	"github.com/bryansgue/scanela-sub001/pkg/logger"
	"github.com/bryansgue/scanela-sub001/prometheus"
)

// CustomSlugRequest carries the raw slug for a personalization request
type CustomSlugRequest struct {
	CustomSlug string `json:"customSlug"`
}

// CustomSlug replaces the slug of a menu owned by the caller
func CustomSlug(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "authentication required"})
	}

	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Personalization request with malformed menu id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid_input", "message": "menu id is invalid"})
	}

	var req CustomSlugRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid personalization request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid_input", "message": "invalid request data"})
	}

	record, shareURL, err := svc.Personalize(c.Request().Context(), userID, menuID, req.CustomSlug)
	if err != nil {
		return writeEngineError(c, log, err)
	}

	prometheus.RecordPersonalization()
	log.Info("Slug personalized",
		zap.String("menu_id", menuID.String()),
		zap.Stringp("custom_slug", record.CustomSlug))

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"customSlug": record.CustomSlug,
		"shareUrl":   shareURL,
	})
}

// ResolveMenu looks up a published menu by its public slug
func ResolveMenu(c echo.Context) error {
	log := logger.FromContext(c)

	record, err := svc.Resolve(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeEngineError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "menu": record})
}
