package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"eventease/internal/domain"
)

type activityService struct {
	store  domain.KeyValueStore
	logger *slog.Logger
}

// NewActivityService creates an ActivityService over the given blob
// store. It owns two documents: the per-user activity summaries and the
// event-keyed participation relation.
func NewActivityService(store domain.KeyValueStore, logger *slog.Logger) domain.ActivityService {
	return &activityService{store: store, logger: logger}
}

func (s *activityService) activities(ctx context.Context) map[string]domain.UserActivity {
	data, err := s.store.Get(ctx, domain.KeyActivities)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("failed to read activities", "error", err)
		}
		return map[string]domain.UserActivity{}
	}
	var activities map[string]domain.UserActivity
	if err := json.Unmarshal(data, &activities); err != nil {
		s.logger.Error("failed to decode activities", "error", err)
		return map[string]domain.UserActivity{}
	}
	if activities == nil {
		activities = map[string]domain.UserActivity{}
	}
	return activities
}

func (s *activityService) saveActivities(ctx context.Context, activities map[string]domain.UserActivity) error {
	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyActivities, data); err != nil {
		return fmt.Errorf("save activities: %w", err)
	}
	return nil
}

func (s *activityService) participationsData(ctx context.Context) domain.Relation {
	data, err := s.store.Get(ctx, domain.KeyParticipations)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("failed to read participations", "error", err)
		}
		return domain.Relation{}
	}
	var participations domain.Relation
	if err := json.Unmarshal(data, &participations); err != nil {
		s.logger.Error("failed to decode participations", "error", err)
		return domain.Relation{}
	}
	if participations == nil {
		participations = domain.Relation{}
	}
	return participations
}

func (s *activityService) saveParticipationsData(ctx context.Context, participations domain.Relation) error {
	data, err := json.Marshal(participations)
	if err != nil {
		return fmt.Errorf("encode participations: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyParticipations, data); err != nil {
		return fmt.Errorf("save participations: %w", err)
	}
	return nil
}

// GetUserActivity returns the user's summary, or an empty one if the user
// has no recorded activity yet.
func (s *activityService) GetUserActivity(ctx context.Context, userID string) domain.UserActivity {
	if a, ok := s.activities(ctx)[userID]; ok {
		return a
	}
	return domain.UserActivity{
		UserID:         userID,
		Participations: []string{},
		CreatedEvents:  []string{},
	}
}

// AddParticipation records the membership in both representations. The
// summary array is guarded against duplicates and only written when it
// changed; the nested map is written unconditionally.
func (s *activityService) AddParticipation(ctx context.Context, userID, eventID string) error {
	activities := s.activities(ctx)
	participations := s.participationsData(ctx)

	activity, ok := activities[userID]
	if !ok {
		activity = domain.UserActivity{
			UserID:         userID,
			Participations: []string{},
			CreatedEvents:  []string{},
		}
	}
	if !contains(activity.Participations, eventID) {
		activity.Participations = append(activity.Participations, eventID)
		activities[userID] = activity
		if err := s.saveActivities(ctx, activities); err != nil {
			return err
		}
	}

	if participations[eventID] == nil {
		participations[eventID] = map[string]bool{}
	}
	participations[eventID][userID] = true
	return s.saveParticipationsData(ctx, participations)
}

// RemoveParticipation clears the membership from both representations and
// garbage-collects an emptied event bucket.
func (s *activityService) RemoveParticipation(ctx context.Context, userID, eventID string) error {
	activities := s.activities(ctx)
	participations := s.participationsData(ctx)

	if activity, ok := activities[userID]; ok {
		activity.Participations = remove(activity.Participations, eventID)
		activities[userID] = activity
		if err := s.saveActivities(ctx, activities); err != nil {
			return err
		}
	}

	if participations[eventID][userID] {
		delete(participations[eventID], userID)
		if len(participations[eventID]) == 0 {
			delete(participations, eventID)
		}
		return s.saveParticipationsData(ctx, participations)
	}
	return nil
}

// IsParticipating answers from the per-user summary.
func (s *activityService) IsParticipating(ctx context.Context, userID, eventID string) bool {
	return contains(s.GetUserActivity(ctx, userID).Participations, eventID)
}

func (s *activityService) ToggleParticipation(ctx context.Context, userID, eventID string) (bool, error) {
	if s.IsParticipating(ctx, userID, eventID) {
		return false, s.RemoveParticipation(ctx, userID, eventID)
	}
	return true, s.AddParticipation(ctx, userID, eventID)
}

// AddCreatedEvent records event ownership in the user's summary.
func (s *activityService) AddCreatedEvent(ctx context.Context, userID, eventID string) error {
	activities := s.activities(ctx)

	activity, ok := activities[userID]
	if !ok {
		activity = domain.UserActivity{
			UserID:         userID,
			Participations: []string{},
			CreatedEvents:  []string{},
		}
	}
	if contains(activity.CreatedEvents, eventID) {
		return nil
	}
	activity.CreatedEvents = append(activity.CreatedEvents, eventID)
	activities[userID] = activity
	return s.saveActivities(ctx, activities)
}

// RemoveCreatedEvent is the participation side of the event-delete
// cascade: the event leaves the given user's created list, every user's
// participations, and the relation bucket. The given user is trusted to
// be the owner; verification happens at the caller via IsOwner.
func (s *activityService) RemoveCreatedEvent(ctx context.Context, userID, eventID string) error {
	activities := s.activities(ctx)
	participations := s.participationsData(ctx)

	if activity, ok := activities[userID]; ok {
		activity.CreatedEvents = remove(activity.CreatedEvents, eventID)
		activities[userID] = activity
		if err := s.saveActivities(ctx, activities); err != nil {
			return err
		}
	}

	for id, activity := range activities {
		activity.Participations = remove(activity.Participations, eventID)
		activities[id] = activity
	}
	if err := s.saveActivities(ctx, activities); err != nil {
		return err
	}

	if _, ok := participations[eventID]; ok {
		delete(participations, eventID)
		return s.saveParticipationsData(ctx, participations)
	}
	return nil
}

func (s *activityService) IsOwner(ctx context.Context, userID, eventID string) bool {
	return contains(s.GetUserActivity(ctx, userID).CreatedEvents, eventID)
}

func (s *activityService) ParticipatedEvents(ctx context.Context, userID string) []string {
	return s.GetUserActivity(ctx, userID).Participations
}

func (s *activityService) CreatedEvents(ctx context.Context, userID string) []string {
	return s.GetUserActivity(ctx, userID).CreatedEvents
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
