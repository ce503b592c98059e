// Package memory keeps conversation threads for the agents
package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/va6996/mcpworkshop/config"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store holds the messages of each thread, oldest first
type Store interface {
	Messages(ctx context.Context, threadID string) ([]Message, error)
	Append(ctx context.Context, threadID string, msgs ...Message) error
	Reset(ctx context.Context, threadID string) error
}

// New builds the store selected by cfg.Backend
func New(ctx context.Context, cfg config.MemoryConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.MaxMessages), nil
	case "redis":
		options, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "invalid redis url")
		}
		client := redis.NewClient(options)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, errors.Wrap(err, "failed to connect to redis")
		}
		return NewRedisStore(client, cfg.Prefix, cfg.MaxMessages), nil
	default:
		return nil, errors.Errorf("unsupported memory backend: %s", cfg.Backend)
	}
}

func capped(msgs []Message, max int) []Message {
	if max > 0 && len(msgs) > max {
		return msgs[len(msgs)-max:]
	}
	return msgs
}
