package fsm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// State names a position in a conversation flow. The empty state means the
// chat has no flow in progress.
type State string

// StateNone is the absence of conversation state.
const StateNone State = ""

const keyPrefix = "fsm:"

// Client is the slice of the redis client the storage needs. *redis.Client
// satisfies it; tests fake it with go-redis result constructors.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Storage keeps per-chat conversation state in Redis with a TTL, so abandoned
// flows expire on their own.
type Storage struct {
	client Client
	ttl    time.Duration
}

// NewStorage builds a state store over the given client.
func NewStorage(client Client, ttl time.Duration) *Storage {
	return &Storage{client: client, ttl: ttl}
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, chatID)
}

// Get returns the chat's current state; a missing key is StateNone, not an error.
func (s *Storage) Get(ctx context.Context, chatID int64) (State, error) {
	val, err := s.client.Get(ctx, stateKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return StateNone, nil
	}
	if err != nil {
		return StateNone, err
	}
	return State(val), nil
}

// Set records the chat's state.
func (s *Storage) Set(ctx context.Context, chatID int64, state State) error {
	return s.client.Set(ctx, stateKey(chatID), string(state), s.ttl).Err()
}

// Clear drops the chat's state. Clearing an absent state is a no-op.
func (s *Storage) Clear(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, stateKey(chatID)).Err()
}
