package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"eventease/internal/adapters/auth"
	"eventease/internal/domain"
	"eventease/internal/repository/kv"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T) domain.KeyValueStore {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// testServices wires the full service graph over one throwaway store.
type testServices struct {
	store      domain.KeyValueStore
	creds      domain.CredentialService
	likes      domain.LikeService
	activities domain.ActivityService
	events     domain.EventService
	feeds      *FeedService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := testStore(t)
	logger := testLogger()
	hasher := auth.NewFixedSaltHasher("test-salt")
	tokens := auth.NewSessionTokens("test-secret")
	likes := NewLikeService(store, logger)
	activities := NewActivityService(store, logger)
	events := NewEventService(store, activities, likes, logger)
	return &testServices{
		store:      store,
		creds:      NewCredentialService(store, hasher, tokens, tokens, logger),
		likes:      likes,
		activities: activities,
		events:     events,
		feeds:      NewFeedService(events, likes, activities, logger),
	}
}
