package notify

import (
	"context"
	"encoding/json"
	"fmt"

	rediscommon "digiplot/common/redis"

	"github.com/go-redis/redis/v8"
)

// DefaultStream is the Redis stream notification events are appended to.
const DefaultStream = "digiplot:notifications"

// RedisStreamPublisher appends events to a Redis stream with XADD.
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStreamPublisher trims the stream to roughly maxLen entries when maxLen > 0.
func NewRedisStreamPublisher(client *redis.Client, stream string, maxLen int64) *RedisStreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, ev Event) error {
	if _, err := rediscommon.PublishJSONToStream(ctx, p.client, p.stream, p.maxLen, ev); err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", p.stream, err)
	}
	return nil
}

// Recent returns up to count published events, newest first.
func (p *RedisStreamPublisher) Recent(ctx context.Context, count int64) ([]Event, error) {
	msgs, err := rediscommon.ReadLatest(ctx, p.client, p.stream, count)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream %s: %w", p.stream, err)
	}
	out := make([]Event, 0, len(msgs))
	for _, msg := range msgs {
		data, _ := msg.Values["data"].(string)
		var ev Event
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return nil, fmt.Errorf("failed to decode stream entry %s: %w", msg.ID, err)
		}
		out = append(out, ev)
	}
	return out, nil
}
