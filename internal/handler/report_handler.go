package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/service"
)

// ReportHandler handles daily report endpoints.
type ReportHandler struct{}

// NewReportHandler creates a new report handler.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// DailyReportRequest represents a daily report submission.
// All counters are non-negative; an all-zero report is a valid quiet day.
type DailyReportRequest struct {
	HotelID         int64 `json:"hotel_id" validate:"required,gt=0"`
	Occupancy       int64 `json:"occupancy" validate:"gte=0"`
	VIPArrivals     int64 `json:"vip_arrivals" validate:"gte=0"`
	GuestIncidents  int64 `json:"guest_incidents" validate:"gte=0"`
	StaffIncidents  int64 `json:"staff_incidents" validate:"gte=0"`
	GuestComplaints int64 `json:"guest_complaints" validate:"gte=0"`
	GuestInjuries   int64 `json:"guest_injuries" validate:"gte=0"`
	StaffInjuries   int64 `json:"staff_injuries" validate:"gte=0"`
}

// SubmitReport godoc
// @Summary Submit a daily report for a hotel
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DailyReportRequest true "Report data"
// @Success 201 {object} model.DailyReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reports [post]
func (h *ReportHandler) SubmitReport(c echo.Context) error {
	var req DailyReportRequest
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
	report, err := a.SaveDailyReport(c.Request().Context(), service.DailyReportInput{
		HotelID:         req.HotelID,
		Occupancy:       req.Occupancy,
		VIPArrivals:     req.VIPArrivals,
		GuestIncidents:  req.GuestIncidents,
		StaffIncidents:  req.StaffIncidents,
		GuestComplaints: req.GuestComplaints,
		GuestInjuries:   req.GuestInjuries,
		StaffInjuries:   req.StaffInjuries,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, report)
}

// ListMyReports godoc
// @Summary List the caller's daily reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DailyReport
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/mine [get]
func (h *ReportHandler) ListMyReports(c echo.Context) error {
	a := guard.ActorFrom(c)

	reports, err := a.GetMyDailyReports(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, reports)
}

// ListAllReports godoc
// @Summary List every hotel's daily reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DailyReport
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reports [get]
func (h *ReportHandler) ListAllReports(c echo.Context) error {
	a := guard.ActorFrom(c)

	reports, err := a.GetAllDailyReports(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, reports)
}
