package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"eventease/internal/domain"
)

type eventService struct {
	store      domain.KeyValueStore
	activities domain.ActivityService
	likes      domain.LikeService
	logger     *slog.Logger
}

// NewEventService creates an EventService. Activity and like services are
// needed for the ownership index side effect on save and the cascade on
// delete.
func NewEventService(
	store domain.KeyValueStore,
	activities domain.ActivityService,
	likes domain.LikeService,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		store:      store,
		activities: activities,
		likes:      likes,
		logger:     logger,
	}
}

// eventsData reads the events document, migrating the legacy array
// encoding to the id-keyed map on first sight. The migrated shape is
// persisted before returning so the next raw read sees a map.
func (s *eventService) eventsData(ctx context.Context) map[string]domain.Event {
	data, err := s.store.Get(ctx, domain.KeyEvents)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("failed to read events", "error", err)
		}
		return map[string]domain.Event{}
	}

	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("[")) {
		var legacy []domain.Event
		if err := json.Unmarshal(data, &legacy); err != nil {
			s.logger.Error("failed to decode legacy events", "error", err)
			return map[string]domain.Event{}
		}
		events := map[string]domain.Event{}
		for _, e := range legacy {
			if e.ID != "" {
				events[e.ID] = e
			}
		}
		if err := s.saveEventsData(ctx, events); err != nil {
			s.logger.Error("failed to persist migrated events", "error", err)
		}
		return events
	}

	var events map[string]domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.logger.Error("failed to decode events", "error", err)
		return map[string]domain.Event{}
	}
	if events == nil {
		events = map[string]domain.Event{}
	}
	return events
}

func (s *eventService) saveEventsData(ctx context.Context, events map[string]domain.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyEvents, data); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

func (s *eventService) GetEvents(ctx context.Context) []domain.Event {
	events := s.eventsData(ctx)
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, e)
	}
	return out
}

func (s *eventService) GetEventByID(ctx context.Context, id string) *domain.Event {
	if e, ok := s.eventsData(ctx)[id]; ok {
		return &e
	}
	return nil
}

func (s *eventService) SaveEvent(ctx context.Context, event domain.Event) error {
	events := s.eventsData(ctx)
	events[event.ID] = event
	if err := s.saveEventsData(ctx, events); err != nil {
		return err
	}
	if err := s.activities.AddCreatedEvent(ctx, event.CreatedBy, event.ID); err != nil {
		return fmt.Errorf("register created event: %w", err)
	}
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, event domain.Event) error {
	events := s.eventsData(ctx)
	if _, ok := events[event.ID]; !ok {
		return nil
	}
	events[event.ID] = event
	return s.saveEventsData(ctx, events)
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, requestingUserID string) error {
	events := s.eventsData(ctx)
	if _, ok := events[eventID]; !ok {
		return nil
	}
	delete(events, eventID)
	if err := s.saveEventsData(ctx, events); err != nil {
		return err
	}

	if err := s.activities.RemoveCreatedEvent(ctx, requestingUserID, eventID); err != nil {
		return fmt.Errorf("cascade activity cleanup: %w", err)
	}
	// Like cleanup is not part of the delete contract: a failure here
	// leaves an orphan bucket but the delete has already happened.
	if err := s.likes.DeleteEventLikes(ctx, eventID); err != nil {
		s.logger.Error("failed to clear likes for deleted event", "event_id", eventID, "error", err)
	}
	return nil
}
