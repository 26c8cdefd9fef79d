package memory

import (
	"context"
	"sync"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// DefaultQueueCap bounds each device's pending command queue. A device that
// never polls would otherwise accumulate commands without limit.
const DefaultQueueCap = 1000

// CommandQueue is the per-device mailbox of pending commands.
type CommandQueue struct {
	mu     sync.Mutex
	queues map[string][]domain.Command
	cap    int
}

// NewCommandQueue returns a CommandQueue with a per-device length cap.
// If cap <= 0, DefaultQueueCap is used.
func NewCommandQueue(cap int) *CommandQueue {
	if cap <= 0 {
		cap = DefaultQueueCap
	}
	return &CommandQueue{
		queues: make(map[string][]domain.Command),
		cap:    cap,
	}
}

// Enqueue appends a command to its device's queue, creating the queue if
// absent. When the cap is exceeded the oldest commands are dropped; the
// number dropped is returned so callers can log and count it.
func (q *CommandQueue) Enqueue(_ context.Context, cmd domain.Command) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	queue := append(q.queues[cmd.DeviceID], cmd)

	dropped := len(queue) - q.cap
	if dropped > 0 {
		queue = append([]domain.Command(nil), queue[dropped:]...)
	} else {
		dropped = 0
	}
	q.queues[cmd.DeviceID] = queue
	return dropped
}

// DrainAndClear returns the device's pending commands and empties its queue
// in one step. The queue is cleared whether or not the device applies the
// commands; reliability above at-most-once is the caller's problem.
func (q *CommandQueue) DrainAndClear(_ context.Context, deviceID string) []domain.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	queue := q.queues[deviceID]
	delete(q.queues, deviceID)
	return queue
}
