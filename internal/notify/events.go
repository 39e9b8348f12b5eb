// Package notify provides the registry's change notification channels:
// synchronous, ordered, multi-subscriber broadcasts.
package notify

import "github.com/mesh-intelligence/atlas/pkg/uid"

// EventType says what kind of mutation fired the event.
type EventType string

const (
	CreatedEvent    EventType = "created"
	UpdatedEvent    EventType = "updated"
	DeletedEvent    EventType = "deleted"
	AssociatedEvent EventType = "associated"
	ReorderedEvent  EventType = "reordered"
	ActivatedEvent  EventType = "activated"
)

// Event identifies the record a mutation touched. Handlers re-query the
// registry for current state; the event only says where to look.
type Event struct {
	Type EventType
	UID  uid.UID
}
