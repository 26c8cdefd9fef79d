package domain

// LogEntry is one timestamped status report pushed by a device.
//
// Timestamp is the device-reported clock in seconds since epoch; it is only
// checked for being finite and positive, never trusted beyond that.
// ReceivedAt is assigned by the server at ingestion and never client-supplied.
// Entries are immutable once appended: the store appends and evicts oldest,
// nothing else.
type LogEntry struct {
	DeviceID    string         `json:"deviceId"`
	Timestamp   float64        `json:"timestamp"`
	ReceivedAt  int64          `json:"receivedAt"`
	Temperature *float64       `json:"temperature,omitempty"`
	Sensors     map[string]any `json:"sensors,omitempty"`
	Outputs     map[string]any `json:"outputs,omitempty"`
}
