package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/resolver"
	"hotelcluster/internal/service"
)

// ProfileHandler handles the caller's own profile and role.
type ProfileHandler struct {
	resolver *resolver.Resolver
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(res *resolver.Resolver) *ProfileHandler {
	return &ProfileHandler{resolver: res}
}

// SaveProfileRequest represents a profile setup request.
type SaveProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// RoleResponse represents the caller's role.
type RoleResponse struct {
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserProfile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	a := guard.ActorFrom(c)

	profile, err := a.GetCallerUserProfile(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if profile == nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "profile not set up",
			Code:  "PROFILE_NOT_FOUND",
		})
	}

	return c.JSON(http.StatusOK, profile)
}

// SaveProfile godoc
// @Summary Create or update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adminToken query string false "Admin bootstrap token"
// @Param request body SaveProfileRequest true "Profile data"
// @Success 200 {object} model.UserProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	var req SaveProfileRequest
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

	a := guard.ActorFrom(c)
	profile, err := a.SaveCallerUserProfile(c.Request().Context(), service.ProfileInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	}, c.QueryParam("adminToken"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// The guard's cached identity answers are stale the moment the profile
	// is written.
	if err := h.resolver.Invalidate(c.Request().Context(), a.Caller()); err != nil {
		c.Logger().Warnf("failed to invalidate resolver cache: %v", err)
	}

	return c.JSON(http.StatusOK, profile)
}

// GetRole godoc
// @Summary Get the caller's role
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RoleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/role [get]
func (h *ProfileHandler) GetRole(c echo.Context) error {
	a := guard.ActorFrom(c)

	role, err := a.GetCallerUserRole(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	isAdmin, err := a.IsCallerAdmin(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, RoleResponse{
		Role:    string(role),
		IsAdmin: isAdmin,
	})
}
