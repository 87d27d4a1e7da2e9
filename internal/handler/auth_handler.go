package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/actor"
	"hotelcluster/internal/auth"
	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/model"
	"hotelcluster/internal/resolver"
	"hotelcluster/internal/service"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	sessions  service.SessionService
	users     service.UserService
	registry  *actor.Registry
	resolver  *resolver.Resolver
	navigator *guard.Navigator
	routes    guard.Routes
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions service.SessionService, users service.UserService, registry *actor.Registry, res *resolver.Resolver, navigator *guard.Navigator, routes guard.Routes) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		users:     users,
		registry:  registry,
		resolver:  res,
		navigator: navigator,
		routes:    routes,
	}
}

// LoginRequest carries the principal asserted by the identity provider.
type LoginRequest struct {
	Principal string `json:"principal" validate:"required"`
}

// LoginResponse represents a login response. Redirect is the caller's
// landing page: the admin dashboard for admins, the hotel dashboard
// otherwise, or profile setup when no profile exists yet.
type LoginResponse struct {
	Token     string `json:"token"`
	Principal string `json:"principal"`
	Redirect  string `json:"redirect"`
}

// Login godoc
// @Summary Complete a federated login for a principal
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Identity assertion"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	principal := auth.Principal(req.Principal)
	token, err := h.sessions.LoginWithRecovery(c.Request().Context(), principal)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Principal: principal.String(),
		Redirect:  h.landingPage(c.Request().Context(), principal),
	})
}

// landingPage resolves where a fresh session should land. A failed role
// lookup falls back to the hotel dashboard; the guard re-routes from there.
func (h *AuthHandler) landingPage(ctx context.Context, principal auth.Principal) string {
	role, err := h.users.CallerRole(ctx, principal)
	if err != nil {
		return h.routes.UserHome
	}
	switch role {
	case model.CallerRoleAdmin:
		return h.routes.AdminHome
	case model.CallerRoleGuest:
		return h.routes.ProfileSetup
	default:
		return h.routes.UserHome
	}
}

// Logout godoc
// @Summary End the caller's session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, ok := principalFromToken(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidSession)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.sessions.Clear(c.Request().Context(), principal); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// The connection handle and any cached identity answers belong to the
	// session that just ended.
	h.registry.Drop(principal)
	h.navigator.Reset(principal)
	if err := h.resolver.Invalidate(c.Request().Context(), principal); err != nil {
		c.Logger().Warnf("failed to invalidate resolver cache: %v", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	Principal    string `json:"principal"`
	Initializing bool   `json:"initializing"`
}

// Session godoc
// @Summary Describe the caller's session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	principal, ok := principalFromToken(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidSession)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SessionResponse{
		Principal:    principal.String(),
		Initializing: h.sessions.Initializing(),
	})
}
