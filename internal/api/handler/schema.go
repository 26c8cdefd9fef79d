package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// timestampValue accepts a JSON number or a numeric string — device firmware
// sends both. Range validation (finite, positive) happens in the service.
type timestampValue float64

func (t *timestampValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("timestamp is not numeric: %w", err)
		}
		*t = timestampValue(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = timestampValue(v)
	return nil
}

// --- Request / Response types ---

type ingestReportRequest struct {
	DeviceID    string         `json:"deviceId"  validate:"required"`
	Timestamp   timestampValue `json:"timestamp"`
	Temperature *float64       `json:"temperature"`
	Sensors     map[string]any `json:"sensors"`
	Outputs     map[string]any `json:"outputs"`
}

type ingestReportResponse struct {
	Message string          `json:"message"`
	Entry   domain.LogEntry `json:"entry"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

// controlRequest uses a pointer for pin so that pin 0 is distinguishable from
// a missing pin, and a loose type for state so 1/0, true/false, and "on"/"off"
// all work — the queue normalizes to 0/1.
type controlRequest struct {
	DeviceID string `json:"deviceId" validate:"required"`
	Pin      *int   `json:"pin"      validate:"required"`
	State    any    `json:"state"`
}

type controlResponse struct {
	Message string         `json:"message"`
	Command domain.Command `json:"command"`
}

type healthResponse struct {
	Status    string `json:"status"`
	LogsCount int    `json:"logsCount"`
	Time      string `json:"time"`
}

type serviceInfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// normalizeState interprets the loosely-typed state field. Devices and
// dashboards send bools, numbers, or a handful of string spellings.
func normalizeState(v any) (state, ok bool) {
	switch s := v.(type) {
	case bool:
		return s, true
	case float64:
		return s != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "on", "high":
			return true, true
		case "0", "false", "off", "low":
			return false, true
		}
	}
	return false, false
}
