package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const resultKeyPrefix = "sheet:result:"

// ErrResultNotFound is returned by Load when no result is stored for a sheet
var ErrResultNotFound = errors.New("result not found")

// Store persists published results
type Store interface {
	Save(ctx context.Context, sheetID string, payload interface{}) error
	Load(ctx context.Context, sheetID string) (json.RawMessage, error)
}

// ResultStore keeps published sheet results in Redis as JSON
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultStore creates a new result store. A zero ttl keeps results forever.
func NewResultStore(client *redis.Client, ttl time.Duration) *ResultStore {
	return &ResultStore{
		client: client,
		ttl:    ttl,
	}
}

func resultKey(sheetID string) string {
	return resultKeyPrefix + sheetID
}

// Save stores a result payload for sheetID
func (s *ResultStore) Save(ctx context.Context, sheetID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := s.client.Set(ctx, resultKey(sheetID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// Load returns the raw JSON stored for sheetID
func (s *ResultStore) Load(ctx context.Context, sheetID string) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, resultKey(sheetID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("%w: sheet %s", ErrResultNotFound, sheetID)
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	return json.RawMessage(data), nil
}
