package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventease/internal/domain"
)

func seedFeedEvents(t *testing.T, ctx context.Context, s *testServices) {
	t.Helper()
	require.NoError(t, s.events.SaveEvent(ctx, domain.Event{ID: "late", Title: "Late", Date: "2026-09-20", CreatedBy: "owner"}))
	require.NoError(t, s.events.SaveEvent(ctx, domain.Event{ID: "early", Title: "Early", Date: "2026-09-01", CreatedBy: "owner"}))
	require.NoError(t, s.events.SaveEvent(ctx, domain.Event{ID: "mid", Title: "Mid", Date: "2026-09-10T18:30:00Z", CreatedBy: "other"}))
}

func TestFeedService_load_sorts_ascending(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)

	view := s.feeds.Load(ctx, "u1")
	require.Len(t, view, 3)
	assert.Equal(t, "early", view[0].ID)
	assert.Equal(t, "mid", view[1].ID)
	assert.Equal(t, "late", view[2].ID)
}

func TestFeedService_load_joins_relation_state(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)

	require.NoError(t, s.activities.AddParticipation(ctx, "u1", "early"))
	require.NoError(t, s.likes.AddLike(ctx, "u1", "mid"))

	view := s.feeds.Load(ctx, "u1")
	assert.True(t, view[0].Participated)
	assert.False(t, view[0].Liked)
	assert.True(t, view[1].Liked)
	assert.False(t, view[1].Participated)
	assert.False(t, view[2].Participated)
	assert.False(t, view[2].Liked)
}

func TestFeed_toggle_participation_updates_view_and_storage(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)

	feed := s.feeds.Open(ctx, "u1")
	feed.ToggleParticipation(ctx, "early")

	assert.True(t, feed.Events()[0].Participated, "view updated optimistically")
	assert.True(t, s.activities.IsParticipating(ctx, "u1", "early"), "storage updated")

	feed.ToggleParticipation(ctx, "early")
	assert.False(t, feed.Events()[0].Participated)
	assert.False(t, s.activities.IsParticipating(ctx, "u1", "early"))
}

func TestFeed_toggle_like_and_liked_filter(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)

	feed := s.feeds.Open(ctx, "u1")
	feed.ToggleLike(ctx, "mid")
	feed.ToggleLike(ctx, "late")

	liked := feed.Liked()
	require.Len(t, liked, 2)
	assert.Equal(t, "mid", liked[0].ID, "liked view keeps feed order")
	assert.Equal(t, "late", liked[1].ID)
	assert.True(t, s.likes.IsLiking(ctx, "u1", "mid"))
	assert.True(t, s.likes.IsLiking(ctx, "u1", "late"))
}

func TestFeed_delete_removes_event(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)

	feed := s.feeds.Open(ctx, "owner")
	require.True(t, feed.CanDelete(ctx, "early"))
	require.False(t, feed.CanDelete(ctx, "mid"), "created by someone else")

	feed.Delete(ctx, "early")
	require.Len(t, feed.Events(), 2)
	assert.Nil(t, s.events.GetEventByID(ctx, "early"))
}

func TestFeed_refresh_discards_optimistic_state(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)

	feed := s.feeds.Open(ctx, "u1")
	require.NoError(t, s.events.SaveEvent(ctx, domain.Event{ID: "new", Title: "New", Date: "2026-08-30", CreatedBy: "owner"}))
	require.Len(t, feed.Events(), 3, "view is a snapshot")

	feed.Refresh(ctx)
	require.Len(t, feed.Events(), 4)
	assert.Equal(t, "new", feed.Events()[0].ID)
}

func TestFeed_events_by_day(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	seedFeedEvents(t, ctx, s)
	require.NoError(t, s.events.SaveEvent(ctx, domain.Event{ID: "mid2", Title: "Mid again", Date: "2026-09-10", CreatedBy: "owner"}))

	feed := s.feeds.Open(ctx, "u1")
	byDay := feed.EventsByDay()

	assert.Len(t, byDay["2026-09-10"], 2, "instant and bare date land on the same day")
	assert.Len(t, byDay["2026-09-01"], 1)
	assert.Len(t, byDay["2026-09-20"], 1)
}
