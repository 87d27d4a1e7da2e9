package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
)

// HotelHandler handles hotel endpoints.
type HotelHandler struct{}

// NewHotelHandler creates a new hotel handler.
func NewHotelHandler() *HotelHandler {
	return &HotelHandler{}
}

// CreateHotelRequest represents a hotel creation request.
// The identifier is assigned server-side.
type CreateHotelRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// ManualHotelRequest represents a hotel creation request with an explicit id.
type ManualHotelRequest struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// UpdateHotelRequest represents a hotel update request.
type UpdateHotelRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// HotelResponse represents a created hotel.
type HotelResponse struct {
	ID int64 `json:"id"`
}

// ListHotels godoc
// @Summary List all hotels
// @Tags hotels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Hotel
// @Failure 401 {object} errors.ErrorResponse
// @Router /hotels [get]
func (h *HotelHandler) ListHotels(c echo.Context) error {
	a := guard.ActorFrom(c)

	hotels, err := a.GetAllHotels(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, hotels)
}

// CreateHotel godoc
// @Summary Create a hotel with a server-assigned id
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateHotelRequest true "Hotel data"
// @Success 201 {object} HotelResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/hotels [post]
func (h *HotelHandler) CreateHotel(c echo.Context) error {
	var req CreateHotelRequest
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
	id, err := a.CreateHotel(c.Request().Context(), req.Name, req.IsActive)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, HotelResponse{ID: id})
}

// CreateManualHotel godoc
// @Summary Create a hotel with an explicit id
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ManualHotelRequest true "Hotel data"
// @Success 201 {object} HotelResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/hotels/manual [post]
func (h *HotelHandler) CreateManualHotel(c echo.Context) error {
	var req ManualHotelRequest
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
	if err := a.CreateManualHotel(c.Request().Context(), req.ID, req.Name, req.IsActive); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, HotelResponse{ID: req.ID})
}

// UpdateHotel godoc
// @Summary Update a hotel
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hotel ID"
// @Param request body UpdateHotelRequest true "Hotel data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/hotels/{id} [put]
func (h *HotelHandler) UpdateHotel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid hotel id",
			Code:  "INVALID_HOTEL_ID",
		})
	}

	var req UpdateHotelRequest
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
	if err := a.UpdateHotel(c.Request().Context(), id, req.Name, req.IsActive); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "hotel updated successfully",
	})
}

// DeleteHotel godoc
// @Summary Delete a hotel without assigned users
// @Tags hotels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hotel ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/hotels/{id} [delete]
func (h *HotelHandler) DeleteHotel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid hotel id",
			Code:  "INVALID_HOTEL_ID",
		})
	}

	a := guard.ActorFrom(c)
	if err := a.DeleteHotel(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "hotel deleted successfully",
	})
}
