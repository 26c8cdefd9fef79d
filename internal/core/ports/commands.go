package ports

import (
	"context"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// CommandService queues output-control commands for devices and hands them
// over when a device polls.
type CommandService interface {
	Enqueue(ctx context.Context, deviceID string, pin int, state bool) (domain.Command, error)
	Drain(ctx context.Context, deviceID string) ([]domain.Command, error)
}

// CommandQueue is the per-device mailbox of pending commands.
type CommandQueue interface {
	// Enqueue appends a command to its device's queue, creating the queue if
	// absent, and returns how many commands were dropped (oldest first) to
	// respect the per-device length cap.
	Enqueue(ctx context.Context, cmd domain.Command) int

	// DrainAndClear returns the device's pending commands and atomically
	// replaces the queue with an empty one. Read-destructive: a drained
	// command is never redelivered.
	DrainAndClear(ctx context.Context, deviceID string) []domain.Command
}
