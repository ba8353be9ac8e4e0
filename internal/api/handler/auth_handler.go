package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/api/metrics"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// AuthHandler serves the self-service authentication routes.
type AuthHandler struct {
	auth  ports.AuthService
	admin ports.AdminService
}

func NewAuthHandler(auth ports.AuthService, admin ports.AdminService) *AuthHandler {
	return &AuthHandler{auth: auth, admin: admin}
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{User: user.Username, Role: user.Role, Token: token})
}

// Me returns the caller's decoded identity.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Username: ident.Username, Role: ident.Role})
}

// Logout deletes the caller's login session. The bearer token stays valid
// until its expiry; only the registry entry is removed.
func (h *AuthHandler) Logout(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), ident); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// ChangePassword swaps the caller's password after re-verifying the current one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Request().Context(), ident.Username, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}

// Register creates a new user account. Admin only.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account"
// @Success      201   {object}  registerResponse
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.admin.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerResponse{Username: user.Username, Role: user.Role})
}
