package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// State is the payload carried across the Google redirect: which client
// started the flow and where to send the browser afterwards.
type State struct {
	Client      string `json:"client"`
	CallbackURL string `json:"callbackUrl"`
}

var ErrStateNotFound = errors.New("oauth state not found or expired")

// StateStore persists pending OAuth states between the redirect and the
// callback. States are single-use.
type StateStore interface {
	Save(ctx context.Context, key string, state State, ttl time.Duration) error
	Take(ctx context.Context, key string) (*State, error)
}

// RedisStateStore implements StateStore backed by Redis.
type RedisStateStore struct {
	client redis.UniversalClient
}

var _ StateStore = (*RedisStateStore)(nil)

func NewRedisStateStore(client redis.UniversalClient) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// Save stores the encoded state payload with TTL.
func (s *RedisStateStore) Save(ctx context.Context, key string, state State, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// Take loads and deletes the state payload so each state redeems once.
func (s *RedisStateStore) Take(ctx context.Context, key string) (*State, error) {
	bytes, err := s.client.GetDel(ctx, stateKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	var state State
	if err := json.Unmarshal(bytes, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &state, nil
}

func stateKey(key string) string {
	return "oauth:state:" + key
}
