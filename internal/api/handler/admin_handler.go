package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// AdminHandler serves the /admin subtree. Every route here sits behind the
// auth + admin-role + CSRF + rate-limit guard chain.
type AdminHandler struct {
	admin    ports.AdminService
	registry ports.RegistryService
}

func NewAdminHandler(admin ports.AdminService, registry ports.RegistryService) *AdminHandler {
	return &AdminHandler{admin: admin, registry: registry}
}

// --- Users ---

// ExportUsers returns every user without password material.
//
// @Summary      Export users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.UserExport
// @Router       /admin/users/export [get]
func (h *AdminHandler) ExportUsers(c echo.Context) error {
	users, err := h.admin.ExportUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.UserExport{}
	}
	return c.JSON(http.StatusOK, users)
}

// ImportUsers bulk-upserts users. One invalid row rejects the whole import.
func (h *AdminHandler) ImportUsers(c echo.Context) error {
	var req importUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	rows := make([]domain.UserImport, 0, len(req.Users))
	for _, u := range req.Users {
		rows = append(rows, domain.UserImport{Username: u.Username, Role: u.Role, Active: u.Active})
	}
	if err := h.admin.ImportUsers(c.Request().Context(), rows); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "users imported"})
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.admin.UpdateRole(c.Request().Context(), ident.Username, c.Param("username"), req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}

func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.admin.SetActive(c.Request().Context(), ident.Username, c.Param("username"), *req.Active); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "status updated"})
}

func (h *AdminHandler) ResetUserPassword(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.admin.ResetPassword(c.Request().Context(), ident.Username, c.Param("username"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset"})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.Request().Context(), ident.Username, c.Param("username")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// --- Roles ---

func (h *AdminHandler) GetRoles(c echo.Context) error {
	roles, err := h.admin.Roles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *AdminHandler) PutRoles(c echo.Context) error {
	var roles map[string][]string
	if err := c.Bind(&roles); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.admin.PutRoles(c.Request().Context(), roles); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "roles updated"})
}

// --- Logs ---

// GetLogs returns the last 100 audit messages, newest first.
func (h *AdminHandler) GetLogs(c echo.Context) error {
	logs, err := h.admin.RecentLogs(c.Request().Context())
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []string{}
	}
	return c.JSON(http.StatusOK, logs)
}

// --- Announcements ---

func (h *AdminHandler) GetAnnouncements(c echo.Context) error {
	anns, err := h.admin.Announcements(c.Request().Context())
	if err != nil {
		return err
	}
	if anns == nil {
		anns = []domain.Announcement{}
	}
	return c.JSON(http.StatusOK, anns)
}

func (h *AdminHandler) PostAnnouncement(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ann, err := h.admin.PostAnnouncement(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ann)
}

func (h *AdminHandler) DeleteAnnouncement(c echo.Context) error {
	ts, err := strconv.ParseInt(c.Param("ts"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid timestamp")
	}
	if err := h.admin.DeleteAnnouncement(c.Request().Context(), ts); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "announcement removed"})
}

// --- Sessions ---

func (h *AdminHandler) GetSessions(c echo.Context) error {
	sessions, err := h.registry.Sessions(c.Request().Context())
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *AdminHandler) RevokeSession(c echo.Context) error {
	if err := h.registry.RevokeSession(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "session revoked"})
}

// --- API keys ---

func (h *AdminHandler) GetAPIKeys(c echo.Context) error {
	keys, err := h.registry.APIKeys(c.Request().Context())
	if err != nil {
		return err
	}
	if keys == nil {
		keys = []domain.APIKey{}
	}
	return c.JSON(http.StatusOK, keys)
}

func (h *AdminHandler) CreateAPIKey(c echo.Context) error {
	var req apiKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	key, err := h.registry.CreateAPIKey(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, apiKeyResponse{Message: "API key generated", Key: key.Key})
}

func (h *AdminHandler) RevokeAPIKey(c echo.Context) error {
	if err := h.registry.RevokeAPIKey(c.Request().Context(), c.Param("key")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "API key revoked"})
}

// --- Backup / restore ---

// Backup dumps every administrative collection.
//
// @Summary      Full backup
// @Tags         admin
// @Produce      json
// @Success      200  {object}  backupPayload
// @Router       /admin/backup [get]
func (h *AdminHandler) Backup(c echo.Context) error {
	b, err := h.admin.Backup(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, backupToWire(b))
}

// Restore replaces every administrative collection with the payload,
// transactionally.
func (h *AdminHandler) Restore(c echo.Context) error {
	var payload backupPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.admin.Restore(c.Request().Context(), backupFromWire(&payload)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "restore complete"})
}
