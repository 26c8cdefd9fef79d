package ports

import (
	"context"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// ReportInput carries one device status report into the telemetry service.
// Timestamp is the raw device-reported value; the service validates it.
type ReportInput struct {
	DeviceID    string
	Timestamp   float64
	Temperature *float64
	Sensors     map[string]any
	Outputs     map[string]any
}

// ListFilter narrows a log listing. A zero DeviceID means all devices.
// Limit outside [1, 10000] (including zero) falls back to the default.
type ListFilter struct {
	DeviceID string
	Limit    int
}

// TelemetryService is the ingestion and read surface over the log store.
type TelemetryService interface {
	Append(ctx context.Context, in ReportInput) (domain.LogEntry, error)
	List(ctx context.Context, filter ListFilter) ([]domain.LogEntry, error)
	ListByDevice(ctx context.Context, deviceID string) ([]domain.LogEntry, error)
	Latest(ctx context.Context, deviceID string) (domain.LogEntry, error)
	Count(ctx context.Context) int
}

// LogStore is the bounded append-only collection of device reports.
// Implementations assume entries are validated; they never reject input.
type LogStore interface {
	// Append stores an entry and returns how many old entries were evicted
	// to stay under the retention ceiling.
	Append(ctx context.Context, entry domain.LogEntry) int

	// List returns entries matching the filter, newest first by device
	// timestamp, clamped to the filter limit.
	List(ctx context.Context, filter ListFilter) []domain.LogEntry

	// ListByDevice returns every entry for one device, newest first.
	ListByDevice(ctx context.Context, deviceID string) []domain.LogEntry

	// Latest returns the entry with the highest device timestamp for the
	// device, or false if the device has no entries.
	Latest(ctx context.Context, deviceID string) (domain.LogEntry, bool)

	// Len reports the current number of stored entries.
	Len(ctx context.Context) int
}
