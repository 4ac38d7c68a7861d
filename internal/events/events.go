package events

import (
	"context"
	"encoding/json"
	"time"
)

// Tables observers can register interest in
const (
	TableSecretCodes  = "secret_codes"
	TableFoundRecords = "found_records"
)

// Actions carried by a ChangeEvent
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	// ActionRefresh is a periodic nudge so that an observer that missed a
	// notification does not stay stale forever.
	ActionRefresh = "REFRESH"
)

// ChangeEvent tells observers that something in a table changed. It is a
// hint, not a delta: delivery is at-least-once and unordered across
// streams, so observers must re-fetch the data they display rather than
// apply the event incrementally.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Encode serializes the event for the wire
func (e ChangeEvent) Encode() []byte {
	payload, _ := json.Marshal(e)
	return payload
}

// DecodeChangeEvent parses a wire payload back into a ChangeEvent
func DecodeChangeEvent(payload []byte) (ChangeEvent, error) {
	var e ChangeEvent
	err := json.Unmarshal(payload, &e)
	return e, err
}

// Publisher fans a change event out to every connected observer. Publishing
// is best-effort: a failed publish must never fail the write that caused it.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent)
}

// Recorder counts published events. Satisfied by *metrics.Metrics; brokers
// accept nil.
type Recorder interface {
	IncrementChangeEventPublished(table string)
}

// Subscription is an open observation stream for one observer. Close must be
// called when the observer goes away; handles are owned by the observer's
// lifecycle, never shared process-wide.
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

// Subscriber opens subscriptions on specific change streams
type Subscriber interface {
	Subscribe(ctx context.Context, tables ...string) (Subscription, error)
}
