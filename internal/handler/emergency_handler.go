package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/service"
)

// EmergencyHandler handles emergency alert endpoints.
type EmergencyHandler struct{}

// NewEmergencyHandler creates a new emergency handler.
func NewEmergencyHandler() *EmergencyHandler {
	return &EmergencyHandler{}
}

// EmergencyRequest represents an emergency alert submission.
type EmergencyRequest struct {
	HotelID  int64  `json:"hotel_id" validate:"required,gt=0"`
	Category string `json:"category" validate:"required"`
	Severity string `json:"severity" validate:"required,oneof=low medium high critical"`
	Details  string `json:"details" validate:"required"`
}

// RecipientRequest represents a notification recipient.
type RecipientRequest struct {
	Contact string `json:"contact" validate:"required"`
}

// SubmitEmergency godoc
// @Summary Submit an emergency alert
// @Tags emergencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EmergencyRequest true "Emergency data"
// @Success 201 {object} model.Emergency
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /emergencies [post]
func (h *EmergencyHandler) SubmitEmergency(c echo.Context) error {
	var req EmergencyRequest
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
	emergency, err := a.SubmitEmergency(c.Request().Context(), service.EmergencyInput{
		HotelID:  req.HotelID,
		Category: req.Category,
		Severity: req.Severity,
		Details:  req.Details,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, emergency)
}

// ListEmergencies godoc
// @Summary List all emergency alerts
// @Tags emergencies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Emergency
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/emergencies [get]
func (h *EmergencyHandler) ListEmergencies(c echo.Context) error {
	a := guard.ActorFrom(c)

	emergencies, err := a.GetAllEmergencies(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, emergencies)
}

// AddRecipient godoc
// @Summary Add an emergency notification recipient
// @Tags emergencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecipientRequest true "Recipient"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/emergencies/recipients [post]
func (h *EmergencyHandler) AddRecipient(c echo.Context) error {
	var req RecipientRequest
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
	if err := a.AddEmergencyRecipient(c.Request().Context(), req.Contact); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "recipient added successfully",
	})
}

// RemoveRecipient godoc
// @Summary Remove an emergency notification recipient
// @Tags emergencies
// @Produce json
// @Security BearerAuth
// @Param contact path string true "Recipient contact"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/emergencies/recipients/{contact} [delete]
func (h *EmergencyHandler) RemoveRecipient(c echo.Context) error {
	a := guard.ActorFrom(c)

	if err := a.RemoveEmergencyRecipient(c.Request().Context(), c.Param("contact")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "recipient removed successfully",
	})
}

// ListRecipients godoc
// @Summary List emergency notification recipients
// @Tags emergencies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.EmergencyRecipient
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/emergencies/recipients [get]
func (h *EmergencyHandler) ListRecipients(c echo.Context) error {
	a := guard.ActorFrom(c)

	recipients, err := a.ListEmergencyRecipients(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, recipients)
}
