package memory

import (
	"context"
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/va6996/mcpworkshop/log"
)

// redisStore keeps each thread in a list under
// `<prefix>/chatstore/messages/<threadID>`, trimmed to the newest maxMessages.
type redisStore struct {
	client      *redis.Client
	prefix      string
	maxMessages int
}

func NewRedisStore(client *redis.Client, prefix string, maxMessages int) Store {
	return &redisStore{
		client:      client,
		prefix:      prefix,
		maxMessages: maxMessages,
	}
}

func (m *redisStore) key(threadID string) string {
	return path.Join(m.prefix, "chatstore", "messages", threadID)
}

func (m *redisStore) Messages(ctx context.Context, threadID string) ([]Message, error) {
	data, err := m.client.LRange(ctx, m.key(threadID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read messages from Redis")
	}

	messages := make([]Message, 0, len(data))
	for _, item := range data {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			log.Warnf(ctx, "Skipping unreadable message in thread %s: %v", threadID, err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (m *redisStore) Append(ctx context.Context, threadID string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal message")
		}
		values = append(values, data)
	}

	key := m.key(threadID)
	pipe := m.client.Pipeline()
	pipe.RPush(ctx, key, values...)
	if m.maxMessages > 0 {
		pipe.LTrim(ctx, key, int64(-m.maxMessages), -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store messages in Redis")
	}
	return nil
}

func (m *redisStore) Reset(ctx context.Context, threadID string) error {
	if err := m.client.Del(ctx, m.key(threadID)).Err(); err != nil {
		return errors.Wrap(err, "failed to reset thread in Redis")
	}
	return nil
}
