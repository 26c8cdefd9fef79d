package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iotrelay/telemetry-api/internal/api/metrics"
	"github.com/iotrelay/telemetry-api/internal/core/domain"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

type commandService struct {
	queue ports.CommandQueue
	log   zerolog.Logger
	now   func() time.Time
}

// NewCommandService returns a CommandService over the given queue.
func NewCommandService(queue ports.CommandQueue, log zerolog.Logger) ports.CommandService {
	return &commandService{
		queue: queue,
		log:   log,
		now:   time.Now,
	}
}

// Enqueue normalizes state to 0/1 and appends the command to the device's
// queue. The device does not need to exist; its queue is created on demand.
func (s *commandService) Enqueue(ctx context.Context, deviceID string, pin int, state bool) (domain.Command, error) {
	if strings.TrimSpace(deviceID) == "" {
		return domain.Command{}, fmt.Errorf("%w: deviceId is required", domain.ErrInvalidCommand)
	}

	cmd := domain.Command{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		Pin:       pin,
		State:     0,
		CreatedAt: s.now().UTC(),
	}
	if state {
		cmd.State = 1
	}

	dropped := s.queue.Enqueue(ctx, cmd)
	metrics.CommandsEnqueuedTotal.Inc()
	if dropped > 0 {
		metrics.CommandsDroppedTotal.Add(float64(dropped))
		s.log.Warn().
			Str("device_id", deviceID).
			Int("dropped", dropped).
			Msg("command queue cap hit, oldest commands dropped")
	}

	s.log.Info().
		Str("device_id", deviceID).
		Str("command_id", cmd.ID).
		Int("pin", cmd.Pin).
		Int("state", cmd.State).
		Msg("command enqueued")

	return cmd, nil
}

// Drain hands the device its pending commands and clears the queue. Delivery
// is at-most-once: nothing is redelivered if the device fails to apply it.
func (s *commandService) Drain(ctx context.Context, deviceID string) ([]domain.Command, error) {
	cmds := s.queue.DrainAndClear(ctx, deviceID)
	if len(cmds) > 0 {
		metrics.CommandsDeliveredTotal.Add(float64(len(cmds)))
		s.log.Info().
			Str("device_id", deviceID).
			Int("count", len(cmds)).
			Msg("commands delivered")
	}
	if cmds == nil {
		cmds = []domain.Command{}
	}
	return cmds, nil
}
