package handler

import (
	"errors"
	"net/http"
	"strings"

	"catalog-service/internal/middleware"
	"catalog-service/internal/store"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileHandler serves the caller's profile record
type ProfileHandler struct {
	profiles *store.ProfileStore
}

// NewProfileHandler creates the profile handler
func NewProfileHandler(profiles *store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileUpdateRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Get returns the caller's profile
func (h *ProfileHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	profile, err := h.profiles.Ensure(uid, nil)
	if err != nil {
		log.Error("Failed to load profile", zap.String("user_id", uid), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// Update applies a partial update to the caller's profile
func (h *ProfileHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid profile data"})
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		if username := strings.TrimSpace(*req.Username); username != "" {
			updates["username"] = &username
		}
	}
	if req.FirstName != nil {
		updates["first_name"] = trimmedOrNil(req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = trimmedOrNil(req.LastName)
	}

	profile, err := h.profiles.Update(uid, updates)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Profile not found"})
		case store.IsConflict(err):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			log.Error("Failed to update profile", zap.String("user_id", uid), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update profile"})
		}
	}

	log.Info("Profile updated", zap.String("user_id", uid))
	return c.JSON(http.StatusOK, profile)
}

func trimmedOrNil(p *string) *string {
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
