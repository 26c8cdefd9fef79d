package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iotrelay/telemetry-api/internal/api/metrics"
	"github.com/iotrelay/telemetry-api/internal/core/domain"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

type telemetryService struct {
	store ports.LogStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewTelemetryService returns a TelemetryService over the given log store.
func NewTelemetryService(store ports.LogStore, log zerolog.Logger) ports.TelemetryService {
	return &telemetryService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Append validates a report, stamps it with the server-side ingestion time,
// and stores it. All validation happens here, before the store is touched.
func (s *telemetryService) Append(ctx context.Context, in ports.ReportInput) (domain.LogEntry, error) {
	if strings.TrimSpace(in.DeviceID) == "" {
		metrics.ReportsRejectedTotal.WithLabelValues("missing_device_id").Inc()
		return domain.LogEntry{}, fmt.Errorf("%w: deviceId is required", domain.ErrInvalidReport)
	}
	if math.IsNaN(in.Timestamp) || math.IsInf(in.Timestamp, 0) || in.Timestamp <= 0 {
		metrics.ReportsRejectedTotal.WithLabelValues("bad_timestamp").Inc()
		return domain.LogEntry{}, fmt.Errorf("%w: timestamp must be a positive number", domain.ErrInvalidReport)
	}

	entry := domain.LogEntry{
		DeviceID:    in.DeviceID,
		Timestamp:   in.Timestamp,
		ReceivedAt:  s.now().Unix(),
		Temperature: in.Temperature,
		Sensors:     in.Sensors,
		Outputs:     in.Outputs,
	}

	evicted := s.store.Append(ctx, entry)
	metrics.ReportsIngestedTotal.Inc()
	if evicted > 0 {
		metrics.LogEvictionsTotal.Add(float64(evicted))
	}

	s.log.Debug().
		Str("device_id", entry.DeviceID).
		Float64("timestamp", entry.Timestamp).
		Msg("report ingested")

	return entry, nil
}

func (s *telemetryService) List(ctx context.Context, filter ports.ListFilter) ([]domain.LogEntry, error) {
	return s.store.List(ctx, filter), nil
}

func (s *telemetryService) ListByDevice(ctx context.Context, deviceID string) ([]domain.LogEntry, error) {
	return s.store.ListByDevice(ctx, deviceID), nil
}

// Latest returns the newest entry for a device, or domain.ErrDeviceNotFound
// when the device has never reported.
func (s *telemetryService) Latest(ctx context.Context, deviceID string) (domain.LogEntry, error) {
	entry, ok := s.store.Latest(ctx, deviceID)
	if !ok {
		return domain.LogEntry{}, domain.ErrDeviceNotFound
	}
	return entry, nil
}

func (s *telemetryService) Count(ctx context.Context) int {
	return s.store.Len(ctx)
}
