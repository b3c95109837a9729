package coordinator

import (
	"time"

	"github.com/viant/reqflow/model"
)

// Standard lifecycle event topics.
const (
	TopicRequestCreated  = "request.created"
	TopicRequestUpdated  = "request.updated"
	TopicRequestApproved = "request.approved"
	TopicRequestRejected = "request.rejected"
	TopicRequestDeleted  = "request.deleted"
)

// Event is the envelope published on the lifecycle queue after every
// successful mutation.  Publication is best effort and never blocks or
// fails a save.  Delivery is at least once: a nacked event is redelivered
// with the same ID, so consumers that must count exactly once dedupe on it.
type Event struct {
	// ID uniquely identifies the publication; redeliveries keep it.
	ID      string            `json:"id"`
	Topic   string            `json:"topic"`
	Request *model.Request    `json:"request"`
	ActorID string            `json:"actorId,omitempty"`
	At      time.Time         `json:"at"`
	Headers map[string]string `json:"headers,omitempty"`
}
