package domain

import "time"

// Command is a single pending output instruction for a device: drive Pin to
// State (normalized to 0/1). A command lives in its device's queue from the
// moment an operator enqueues it until the device drains the queue; delivery
// is at-most-once and there is no redelivery if the device fails to apply it.
type Command struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"deviceId"`
	Pin       int       `json:"pin"`
	State     int       `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}
