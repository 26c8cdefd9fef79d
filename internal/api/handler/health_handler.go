package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

const (
	serviceName    = "Device Telemetry & Command Relay API"
	serviceVersion = "1.1.0"
)

// HealthHandler serves the public health and service-info endpoints.
type HealthHandler struct {
	telemetry ports.TelemetryService
}

func NewHealthHandler(telemetry ports.TelemetryService) *HealthHandler {
	return &HealthHandler{telemetry: telemetry}
}

// Health reports liveness plus the current log count.
//
// @Summary      Service health
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		LogsCount: h.telemetry.Count(c.Request().Context()),
		Time:      time.Now().UTC().Format(time.RFC3339),
	})
}

// Info serves GET / with basic service metadata.
func (h *HealthHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, serviceInfoResponse{
		Name:    serviceName,
		Version: serviceVersion,
		Endpoints: []string{
			"/api/health",
			"/api/logs",
			"/api/logs/:deviceId",
			"/api/status/:deviceId",
			"/api/commands/:deviceId",
		},
	})
}
