package domain

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key has never
// been written (or has been deleted).
var ErrKeyNotFound = errors.New("key not found")

// Storage keys for the persisted JSON documents. Every document is written
// whole: a mutation reads the full blob, modifies it in memory and writes
// it back. There is no transaction across keys.
const (
	KeySessionUser    = "eventease:user"
	KeyUsersDB        = "eventease:users_db"
	KeyEvents         = "eventease:events"
	KeyLikes          = "eventease:likes"
	KeyActivities     = "eventease:activities"
	KeyParticipations = "eventease:participations"
)

// KeyValueStore is the persistent blob store the application runs on:
// string keys mapped to JSON documents. Implementations live under
// internal/repository.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
