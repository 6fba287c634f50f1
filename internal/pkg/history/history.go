package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store keeps the rolling conversation history per user in a redis list,
// trimmed to a fixed window. History is a convenience cache, not a system
// of record: losing it only shortens the companion's memory.
type Store struct {
	client *redis.Client
	window int
	ttl    time.Duration
}

// Message is one stored conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewStore(client *redis.Client, window int) *Store {
	return &Store{
		client: client,
		window: window,
		ttl:    30 * 24 * time.Hour,
	}
}

func (s *Store) key(userID int64) string {
	return fmt.Sprintf("chat:history:%d", userID)
}

// Append pushes turns onto the history and trims to the window.
func (s *Store) Append(ctx context.Context, userID int64, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	key := s.key(userID)
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		values = append(values, data)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-s.window), -1)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns the stored window, oldest first.
func (s *Store) Recent(ctx context.Context, userID int64) ([]Message, error) {
	items, err := s.client.LRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	msgs := make([]Message, 0, len(items))
	for _, item := range items {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Clear drops the stored history for the user.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
