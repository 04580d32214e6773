package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher appends payloads to a stream
type Publisher interface {
	Publish(ctx context.Context, stream string, payload interface{}) error
}

// StreamPublisher publishes JSON payloads to Redis Streams
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new Redis stream publisher
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// Publish adds payload to stream as a single "data" field
func (p *StreamPublisher) Publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}
