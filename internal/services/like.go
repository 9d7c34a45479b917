package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"eventease/internal/domain"
)

type likeService struct {
	store  domain.KeyValueStore
	logger *slog.Logger
}

// NewLikeService creates a LikeService over the given blob store.
func NewLikeService(store domain.KeyValueStore, logger *slog.Logger) domain.LikeService {
	return &likeService{store: store, logger: logger}
}

func (s *likeService) likesData(ctx context.Context) domain.Relation {
	data, err := s.store.Get(ctx, domain.KeyLikes)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("failed to read likes", "error", err)
		}
		return domain.Relation{}
	}
	var likes domain.Relation
	if err := json.Unmarshal(data, &likes); err != nil {
		s.logger.Error("failed to decode likes", "error", err)
		return domain.Relation{}
	}
	if likes == nil {
		likes = domain.Relation{}
	}
	return likes
}

func (s *likeService) saveLikesData(ctx context.Context, likes domain.Relation) error {
	data, err := json.Marshal(likes)
	if err != nil {
		return fmt.Errorf("encode likes: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyLikes, data); err != nil {
		return fmt.Errorf("save likes: %w", err)
	}
	return nil
}

func (s *likeService) IsLiking(ctx context.Context, userID, eventID string) bool {
	return s.likesData(ctx)[eventID][userID]
}

// AddLike records the like. It writes unconditionally, even when the like
// is already present.
func (s *likeService) AddLike(ctx context.Context, userID, eventID string) error {
	likes := s.likesData(ctx)
	if likes[eventID] == nil {
		likes[eventID] = map[string]bool{}
	}
	likes[eventID][userID] = true
	return s.saveLikesData(ctx, likes)
}

// RemoveLike deletes the like if present; an event whose bucket becomes
// empty loses the bucket entirely. Nothing is written when the like was
// absent.
func (s *likeService) RemoveLike(ctx context.Context, userID, eventID string) error {
	likes := s.likesData(ctx)
	if !likes[eventID][userID] {
		return nil
	}
	delete(likes[eventID], userID)
	if len(likes[eventID]) == 0 {
		delete(likes, eventID)
	}
	return s.saveLikesData(ctx, likes)
}

func (s *likeService) ToggleLike(ctx context.Context, userID, eventID string) (bool, error) {
	if s.IsLiking(ctx, userID, eventID) {
		return false, s.RemoveLike(ctx, userID, eventID)
	}
	return true, s.AddLike(ctx, userID, eventID)
}

// DeleteEventLikes drops the event's whole like bucket (cascade from
// event deletion). Nothing is written when the bucket does not exist.
func (s *likeService) DeleteEventLikes(ctx context.Context, eventID string) error {
	likes := s.likesData(ctx)
	if _, ok := likes[eventID]; !ok {
		return nil
	}
	delete(likes, eventID)
	return s.saveLikesData(ctx, likes)
}
