package domain

import (
	"context"
	"time"
)

// Event represents a planned event. JSON field names match the persisted
// document format.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // ISO-8601 instant
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ImageURI    string   `json:"imageUri,omitempty"`
	CreatedBy   string   `json:"createdBy"`
}

// Time parses the event date. It accepts a full RFC 3339 instant or a bare
// calendar date; unparseable dates yield the zero time, which sorts first.
func (e Event) Time() time.Time {
	if t, err := time.Parse(time.RFC3339, e.Date); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", e.Date); err == nil {
		return t
	}
	return time.Time{}
}

// EventWithStatus is an event joined with the signed-in user's relation
// state. This is the element type of the derived view.
type EventWithStatus struct {
	Event
	Participated bool `json:"participated"`
	Liked        bool `json:"liked"`
}

// EventService is CRUD over the events document. Reads degrade to empty
// results on storage failure; mutations report their errors.
type EventService interface {
	// GetEvents returns all events in storage order (callers sort).
	GetEvents(ctx context.Context) []Event
	// GetEventByID returns the event or nil if absent.
	GetEventByID(ctx context.Context, id string) *Event
	// SaveEvent inserts or overwrites by id and records the id under the
	// creator's created-events index.
	SaveEvent(ctx context.Context, event Event) error
	// UpdateEvent overwrites only if the id already exists; otherwise it
	// is a silent no-op.
	UpdateEvent(ctx context.Context, event Event) error
	// DeleteEvent removes the event and cascades: the id is stripped from
	// the requesting user's created-events index, from every user's
	// participations, and the event's like bucket is cleared. Ownership is
	// not verified here; callers gate deletion via ActivityService.IsOwner.
	DeleteEvent(ctx context.Context, eventID, requestingUserID string) error
}
