package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

// CommandHandler handles HTTP requests for the per-device command queues.
type CommandHandler struct {
	service ports.CommandService
}

func NewCommandHandler(service ports.CommandService) *CommandHandler {
	return &CommandHandler{service: service}
}

// Control queues an output command for a device.
//
// @Summary      Queue an output-control command
// @Tags         commands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      controlRequest  true  "Command"
// @Success      200   {object}  controlResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /control [post]
func (h *CommandHandler) Control(c echo.Context) error {
	var req controlRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	state, ok := normalizeState(req.State)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "state is required"})
	}

	cmd, err := h.service.Enqueue(c.Request().Context(), req.DeviceID, *req.Pin, state)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, controlResponse{Message: "command queued", Command: cmd})
}

// Poll hands a device its pending commands and clears the queue. Public like
// ingestion: devices carry no credentials. The queue is cleared even if the
// device never applies the commands.
//
// @Summary      Drain pending commands for a device
// @Tags         commands
// @Produce      json
// @Param        deviceId  path      string  true  "Device identifier"
// @Success      200       {array}   domain.Command
// @Router       /commands/{deviceId} [get]
func (h *CommandHandler) Poll(c echo.Context) error {
	cmds, err := h.service.Drain(c.Request().Context(), c.Param("deviceId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cmds)
}
