package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/auth"
	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/model"
	"hotelcluster/internal/resolver"
	"hotelcluster/internal/service"
)

// UserHandler handles the admin user directory.
type UserHandler struct {
	resolver *resolver.Resolver
}

// NewUserHandler creates a new user handler.
func NewUserHandler(res *resolver.Resolver) *UserHandler {
	return &UserHandler{resolver: res}
}

// invalidateTarget drops the mutated principal's cached identity answers so
// a role change or deactivation reaches the guard immediately, not after
// the cache window lapses.
func (h *UserHandler) invalidateTarget(c echo.Context, principal string) {
	if err := h.resolver.Invalidate(c.Request().Context(), auth.Principal(principal)); err != nil {
		c.Logger().Warnf("failed to invalidate resolver cache: %v", err)
	}
}

// UserRequest represents a create or update user request.
type UserRequest struct {
	Principal       string  `json:"principal" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Username        string  `json:"username" validate:"required,min=3"`
	HotelID         *int64  `json:"hotel_id"`
	SecurityManager *string `json:"security_manager"`
	ContactNumber   *string `json:"contact_number"`
	Password        string  `json:"password" validate:"omitempty,min=8"`
	Role            string  `json:"role" validate:"required,oneof=admin user"`
	IsActive        bool    `json:"is_active"`
}

// ListUsers godoc
// @Summary List all user profiles
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PrincipalProfile
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	a := guard.ActorFrom(c)

	users, err := a.GetAllUsersProfiles(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user profile by principal
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param principal path string true "Principal"
// @Success 200 {object} model.UserProfile
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{principal} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	a := guard.ActorFrom(c)

	profile, err := a.GetUserProfile(c.Request().Context(), c.Param("principal"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, profile)
}

// CreateUser godoc
// @Summary Create a user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserRequest true "User data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	input, httpErr := bindUserRequest(c)
	if httpErr != nil {
		return httpErr
	}
	if input.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "password is required",
			Code:  "VALIDATION_ERROR",
		})
	}

	a := guard.ActorFrom(c)
	if err := a.CreateUser(c.Request().Context(), input); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	h.invalidateTarget(c, input.Principal)

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "user created successfully",
	})
}

// UpdateUser godoc
// @Summary Update a user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserRequest true "User data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	input, httpErr := bindUserRequest(c)
	if httpErr != nil {
		return httpErr
	}

	a := guard.ActorFrom(c)
	if err := a.UpdateUser(c.Request().Context(), input); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	h.invalidateTarget(c, input.Principal)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "user updated successfully",
	})
}

// DeleteUser godoc
// @Summary Delete a user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param principal path string true "Principal"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{principal} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	a := guard.ActorFrom(c)

	if err := a.DeleteUser(c.Request().Context(), c.Param("principal")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	h.invalidateTarget(c, c.Param("principal"))

	return c.JSON(http.StatusOK, map[string]string{
		"message": "user deleted successfully",
	})
}

func bindUserRequest(c echo.Context) (service.UserInput, *echo.HTTPError) {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return service.UserInput{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return service.UserInput{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	return service.UserInput{
		Principal:       req.Principal,
		Name:            req.Name,
		Username:        req.Username,
		HotelID:         req.HotelID,
		SecurityManager: req.SecurityManager,
		ContactNumber:   req.ContactNumber,
		Password:        req.Password,
		Role:            model.Role(req.Role),
		IsActive:        req.IsActive,
	}, nil
}
