package domain

import "context"

// UserActivity is the denormalized per-user index: event ids the user
// participates in and event ids the user created. Created lazily on first
// activity.
type UserActivity struct {
	UserID         string   `json:"userId"`
	Participations []string `json:"participations"`
	CreatedEvents  []string `json:"createdEvents"`
}

// Relation is the persisted shape of a user-event membership:
// eventID -> userID -> true. Empty buckets are garbage collected on
// removal.
type Relation map[string]map[string]bool

// ActivityService maintains the participation relation and the per-user
// activity summary. The two representations are kept in sync: the nested
// map gives O(1) membership and cleanup, the summary array serves
// "my events" queries.
type ActivityService interface {
	GetUserActivity(ctx context.Context, userID string) UserActivity
	AddParticipation(ctx context.Context, userID, eventID string) error
	RemoveParticipation(ctx context.Context, userID, eventID string) error
	IsParticipating(ctx context.Context, userID, eventID string) bool
	// ToggleParticipation flips the membership and returns the new state.
	ToggleParticipation(ctx context.Context, userID, eventID string) (bool, error)
	AddCreatedEvent(ctx context.Context, userID, eventID string) error
	// RemoveCreatedEvent strips the event from the given user's created
	// list and from every user's participations, and drops the event's
	// participation bucket.
	RemoveCreatedEvent(ctx context.Context, userID, eventID string) error
	IsOwner(ctx context.Context, userID, eventID string) bool
	ParticipatedEvents(ctx context.Context, userID string) []string
	CreatedEvents(ctx context.Context, userID string) []string
}

// LikeService maintains the like relation. Unlike participation there is
// no per-user summary; the nested map is the only representation.
type LikeService interface {
	IsLiking(ctx context.Context, userID, eventID string) bool
	AddLike(ctx context.Context, userID, eventID string) error
	RemoveLike(ctx context.Context, userID, eventID string) error
	// ToggleLike flips the membership and returns the new state.
	ToggleLike(ctx context.Context, userID, eventID string) (bool, error)
	// DeleteEventLikes drops the event's whole like bucket.
	DeleteEventLikes(ctx context.Context, eventID string) error
}
