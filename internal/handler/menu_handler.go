package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bryansgue/scanela-sub001/internal/menu"
	"github.com/bryansgue/scanela-sub001/internal/middleware"
	"github.com/bryansgue/scanela-sub001/pkg/logger"
	"github.com/bryansgue/scanela-sub001/prometheus"
)

var svc *menu.Service

// Init wires the handlers to the reconciliation service
func Init(s *menu.Service) {
	svc = s
}

// SaveMenuRequest defines the structure for menu save requests. The business
// identifier stays raw JSON because callers send integers, big integers as
// strings, or opaque strings.
type SaveMenuRequest struct {
	BusinessID   json.RawMessage `json:"businessId"`
	BusinessName string          `json:"businessName"`
	Theme        string          `json:"theme"`
	MenuData     json.RawMessage `json:"menuData"`
	CustomSlug   string          `json:"customSlug"`
}

// SaveMenu handles one save of a business's menu
func SaveMenu(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Error("Missing authenticated user in context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "authentication required"})
	}

	var req SaveMenuRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid save request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid_input", "message": "invalid request data"})
	}

	businessID, err := menu.NormalizeBusinessID(req.BusinessID)
	if err != nil {
		log.Warn("Save request without a usable business id")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid_input", "message": "businessId is required"})
	}

	log.Info("Saving menu",
		zap.String("user_id", userID.String()),
		zap.String("business_id", businessID.Display),
		zap.String("business_name", req.BusinessName),
		zap.String("theme", req.Theme))

	result, err := svc.Save(c.Request().Context(), menu.SaveRequest{
		UserID:       userID,
		BusinessID:   businessID,
		BusinessName: req.BusinessName,
		Theme:        req.Theme,
		MenuData:     req.MenuData,
		CustomSlug:   slugIntent(&req),
	})
	if err != nil {
		prometheus.RecordSaveOutcome("error")
		return writeEngineError(c, log, err)
	}

	outcome := result.Outcome()
	prometheus.RecordSaveOutcome(outcome)
	log.Info("Menu reconciled",
		zap.String("outcome", outcome),
		zap.String("menu_id", result.Menu.ID.String()))

	resp := echo.Map{
		"success": true,
		"menu":    result.Menu,
		outcome:   true,
	}
	return c.JSON(http.StatusOK, resp)
}

// LoadMenu returns the caller's menu for one business, or null when none
// exists yet
func LoadMenu(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "authentication required"})
	}

	businessID, err := menu.ParseBusinessID(c.QueryParam("businessId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid_input", "message": "businessId is required"})
	}

	record, err := svc.Load(c.Request().Context(), userID, businessID)
	if err != nil {
		log.Error("Failed to load menu",
			zap.String("business_id", businessID.Display),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "internal", "message": "failed to load menu"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "menu": record})
}

// LoadAllMenus lists every menu owned by the caller
func LoadAllMenus(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized", "message": "authentication required"})
	}

	menus, err := svc.LoadAll(c.Request().Context(), userID)
	if err != nil {
		log.Error("Failed to list menus", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "internal", "message": "failed to load menus"})
	}

	log.Info("Menus listed", zap.Int("count", len(menus)))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "menus": menus})
}

// slugIntent extracts the user's slug choice from the request. The dashboard
// historically sent it inside the menu payload, so that location still counts.
func slugIntent(req *SaveMenuRequest) string {
	if s := strings.TrimSpace(req.CustomSlug); s != "" {
		return s
	}
	var payload struct {
		CustomSlug string `json:"customSlug"`
	}
	if len(req.MenuData) > 0 && json.Unmarshal(req.MenuData, &payload) == nil {
		return strings.TrimSpace(payload.CustomSlug)
	}
	return ""
}
