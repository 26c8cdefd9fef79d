package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

// TelemetryHandler handles HTTP requests for report ingestion and log reads.
type TelemetryHandler struct {
	service ports.TelemetryService
}

func NewTelemetryHandler(service ports.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{service: service}
}

// Ingest stores one device report. This is the device-facing endpoint and is
// deliberately unauthenticated.
//
// @Summary      Ingest a device status report
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        body  body      ingestReportRequest  true  "Device report"
// @Success      200   {object}  ingestReportResponse
// @Failure      400   {object}  errorResponse
// @Router       /logs [post]
func (h *TelemetryHandler) Ingest(c echo.Context) error {
	var req ingestReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	entry, err := h.service.Append(c.Request().Context(), ports.ReportInput{
		DeviceID:    req.DeviceID,
		Timestamp:   float64(req.Timestamp),
		Temperature: req.Temperature,
		Sensors:     req.Sensors,
		Outputs:     req.Outputs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ingestReportResponse{Message: "log received", Entry: entry})
}

// List returns recent entries across devices, newest first.
//
// @Summary      List log entries
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        deviceId  query     string  false  "Restrict to one device"
// @Param        limit     query     int     false  "Max entries (1-10000, default 1000)"
// @Success      200       {array}   domain.LogEntry
// @Failure      401       {object}  errorResponse
// @Router       /logs [get]
func (h *TelemetryHandler) List(c echo.Context) error {
	// A missing or non-numeric limit falls through as zero and gets the
	// default clamp downstream.
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.service.List(c.Request().Context(), ports.ListFilter{
		DeviceID: c.QueryParam("deviceId"),
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListByDevice returns every entry for one device, newest first.
//
// @Summary      List log entries for a device
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        deviceId  path      string  true  "Device identifier"
// @Success      200       {array}   domain.LogEntry
// @Failure      401       {object}  errorResponse
// @Router       /logs/{deviceId} [get]
func (h *TelemetryHandler) ListByDevice(c echo.Context) error {
	entries, err := h.service.ListByDevice(c.Request().Context(), c.Param("deviceId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Status returns the latest entry for a device.
//
// @Summary      Latest report for a device
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        deviceId  path      string  true  "Device identifier"
// @Success      200       {object}  domain.LogEntry
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /status/{deviceId} [get]
func (h *TelemetryHandler) Status(c echo.Context) error {
	entry, err := h.service.Latest(c.Request().Context(), c.Param("deviceId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
