package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

type settingsRequest struct {
	Theme         string `json:"theme"         validate:"omitempty,oneof=light dark contrast"`
	Notifications string `json:"notifications" validate:"omitempty,oneof=on off"`
	DefaultPage   string `json:"default_page"  validate:"omitempty,max=100"`
	FontSize      string `json:"font_size"     validate:"omitempty,oneof=small medium large"`
	Accessibility string `json:"accessibility" validate:"omitempty,oneof=normal high-contrast"`
	APIBase       string `json:"api_base"      validate:"omitempty,max=200"`
}

type settingsResponse struct {
	Message  string          `json:"message,omitempty"`
	Settings domain.Settings `json:"settings"`
}

// SettingsHandler serves the caller's own settings.
type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the caller's saved settings, or the defaults.
func (h *SettingsHandler) Get(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	s, err := h.settings.Get(c.Request().Context(), ident.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Update validates and stores the caller's settings. Missing fields fall
// back to defaults rather than being merged.
func (h *SettingsHandler) Update(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s := domain.DefaultSettings(ident.Username)
	if req.Theme != "" {
		s.Theme = req.Theme
	}
	if req.Notifications != "" {
		s.Notifications = req.Notifications
	}
	if req.DefaultPage != "" {
		s.DefaultPage = req.DefaultPage
	}
	if req.FontSize != "" {
		s.FontSize = req.FontSize
	}
	if req.Accessibility != "" {
		s.Accessibility = req.Accessibility
	}
	if req.APIBase != "" {
		s.APIBase = req.APIBase
	}

	saved, err := h.settings.Update(c.Request().Context(), ident.Username, s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse{Message: "settings updated", Settings: saved})
}

// Reset deletes the caller's settings so defaults apply again.
func (h *SettingsHandler) Reset(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.settings.Reset(c.Request().Context(), ident.Username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "settings reset to defaults"})
}
