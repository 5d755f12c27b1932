package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/config"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
)

func newProfileHandler(t *testing.T) (*ProfileHandler, *store.ProfileStore) {
	t.Helper()
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
	profiles := store.NewProfileStore(testDB(t))
	return NewProfileHandler(profiles), profiles
}

func TestProfileGetCreatesOnFirstUse(t *testing.T) {
	h, _ := newProfileHandler(t)

	c, rec := request(t, http.MethodGet, "", "", "user-1")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var profile model.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.ID != "user-1" {
		t.Errorf("expected profile for user-1, got %q", profile.ID)
	}
}

func TestProfileUpdate(t *testing.T) {
	h, profiles := newProfileHandler(t)

	if _, err := profiles.Ensure("user-1", nil); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	c, rec := request(t, http.MethodPut, `{"username":"winemaker","firstName":"Ada","lastName":" Lovelace "}`, echo.MIMEApplicationJSON, "user-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile model.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Username == nil || *profile.Username != "winemaker" {
		t.Errorf("expected username winemaker, got %v", profile.Username)
	}
	if profile.LastName == nil || *profile.LastName != "Lovelace" {
		t.Errorf("expected trimmed last name, got %v", profile.LastName)
	}
}

func TestProfileUpdateUsernameConflict(t *testing.T) {
	h, profiles := newProfileHandler(t)

	taken := "taken"
	if _, err := profiles.Ensure("user-1", &taken); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if _, err := profiles.Ensure("user-2", nil); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	c, rec := request(t, http.MethodPut, `{"username":"taken"}`, echo.MIMEApplicationJSON, "user-2")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on username conflict, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Username already taken") {
		t.Errorf("expected conflict message, got %s", rec.Body.String())
	}
}
