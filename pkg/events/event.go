package events

import "time"

// Codes for the activity events this service emits. The notification
// recorder resolves recipients and templates from these.
const (
	TypeNotePublished  = "NOTE_PUBLISHED"
	TypeNoteLiked      = "NOTE_LIKED"
	TypeNoteFavorited  = "NOTE_FAVORITED"
	TypeCommentCreated = "COMMENT_CREATED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_LIKED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
