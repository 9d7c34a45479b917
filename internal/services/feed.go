package services

import (
	"context"
	"log/slog"
	"sort"

	"eventease/internal/domain"
)

// FeedService builds per-session derived views of the event list.
type FeedService struct {
	events     domain.EventService
	likes      domain.LikeService
	activities domain.ActivityService
	logger     *slog.Logger
}

// NewFeedService creates a FeedService over the three stores.
func NewFeedService(
	events domain.EventService,
	likes domain.LikeService,
	activities domain.ActivityService,
	logger *slog.Logger,
) *FeedService {
	return &FeedService{
		events:     events,
		likes:      likes,
		activities: activities,
		logger:     logger,
	}
}

// Load joins every event with the user's participation and like state,
// sorted ascending by event date. The sort is stable, so order among
// equal dates is whatever the underlying order was.
func (s *FeedService) Load(ctx context.Context, userID string) []domain.EventWithStatus {
	events := s.events.GetEvents(ctx)
	enriched := make([]domain.EventWithStatus, 0, len(events))
	for _, e := range events {
		enriched = append(enriched, domain.EventWithStatus{
			Event:        e,
			Participated: s.activities.IsParticipating(ctx, userID, e.ID),
			Liked:        s.likes.IsLiking(ctx, userID, e.ID),
		})
	}
	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Time().Before(enriched[j].Time())
	})
	return enriched
}

// Open loads the view and wraps it in a Feed session.
func (s *FeedService) Open(ctx context.Context, userID string) *Feed {
	return &Feed{
		svc:    s,
		userID: userID,
		events: s.Load(ctx, userID),
	}
}

// Feed is one user session's view of the events. Mutations apply to the
// in-memory list first (the optimistic step) and persist second; a
// persistence failure is logged, never rolled back, so the view can
// diverge from storage until the next Refresh.
type Feed struct {
	svc    *FeedService
	userID string
	events []domain.EventWithStatus
}

// UserID returns the session owner.
func (f *Feed) UserID() string { return f.userID }

// Events returns the current view.
func (f *Feed) Events() []domain.EventWithStatus { return f.events }

// Liked returns only the liked events, in view order.
func (f *Feed) Liked() []domain.EventWithStatus {
	var out []domain.EventWithStatus
	for _, e := range f.events {
		if e.Liked {
			out = append(out, e)
		}
	}
	return out
}

// Refresh reloads the view from storage, discarding optimistic state.
func (f *Feed) Refresh(ctx context.Context) {
	f.events = f.svc.Load(ctx, f.userID)
}

// ToggleParticipation flips the flag in the view, then persists.
func (f *Feed) ToggleParticipation(ctx context.Context, eventID string) {
	f.applyParticipationToggle(eventID)
	if _, err := f.svc.activities.ToggleParticipation(ctx, f.userID, eventID); err != nil {
		f.svc.logger.Error("failed to persist participation toggle", "event_id", eventID, "error", err)
	}
}

// ToggleLike flips the flag in the view, then persists.
func (f *Feed) ToggleLike(ctx context.Context, eventID string) {
	f.applyLikeToggle(eventID)
	if _, err := f.svc.likes.ToggleLike(ctx, f.userID, eventID); err != nil {
		f.svc.logger.Error("failed to persist like toggle", "event_id", eventID, "error", err)
	}
}

// Delete removes the event from the view, then persists the cascade.
func (f *Feed) Delete(ctx context.Context, eventID string) {
	f.applyDelete(eventID)
	if err := f.svc.events.DeleteEvent(ctx, eventID, f.userID); err != nil {
		f.svc.logger.Error("failed to persist event deletion", "event_id", eventID, "error", err)
	}
}

// CanDelete reports whether the session user owns the event.
func (f *Feed) CanDelete(ctx context.Context, eventID string) bool {
	return f.svc.activities.IsOwner(ctx, f.userID, eventID)
}

// EventsByDay groups the view by calendar day ("2006-01-02" keys) for the
// calendar screen.
func (f *Feed) EventsByDay() map[string][]domain.EventWithStatus {
	byDay := make(map[string][]domain.EventWithStatus)
	for _, e := range f.events {
		day := e.Time().Format("2006-01-02")
		byDay[day] = append(byDay[day], e)
	}
	return byDay
}

// The apply* methods are the pure in-memory half of each mutation, kept
// separate from persistence so a retry or rollback layer could be slotted
// in without touching callers.

func (f *Feed) applyParticipationToggle(eventID string) {
	for i := range f.events {
		if f.events[i].ID == eventID {
			f.events[i].Participated = !f.events[i].Participated
		}
	}
}

func (f *Feed) applyLikeToggle(eventID string) {
	for i := range f.events {
		if f.events[i].ID == eventID {
			f.events[i].Liked = !f.events[i].Liked
		}
	}
}

func (f *Feed) applyDelete(eventID string) {
	kept := f.events[:0]
	for _, e := range f.events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	f.events = kept
}
