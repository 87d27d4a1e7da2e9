package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
)

// AuditHandler handles audit log endpoints.
type AuditHandler struct{}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler() *AuditHandler {
	return &AuditHandler{}
}

// ListLogs godoc
// @Summary List audit log entries, newest first
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AuditLog
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/audit [get]
func (h *AuditHandler) ListLogs(c echo.Context) error {
	a := guard.ActorFrom(c)

	logs, err := a.GetAuditLogs(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, logs)
}

// ExportLogs godoc
// @Summary Export audit log entries as CSV
// @Tags audit
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV data"
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/audit/export [get]
func (h *AuditHandler) ExportLogs(c echo.Context) error {
	a := guard.ActorFrom(c)

	// Buffered so an authorization failure still maps to a clean error
	// response instead of a half-written stream.
	var buf bytes.Buffer
	if err := a.ExportAuditLogsCSV(c.Request().Context(), &buf); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="audit_logs.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
