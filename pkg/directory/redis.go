package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/medforge/ruleflow/pkg/protocol"
)

const usersKey = "ruleflow:users"

// Redis reads the membership a host system maintains in a Redis hash, one
// JSON-encoded user per field keyed by user ID.
type Redis struct {
	client *redis.Client
}

func NewRedis(redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &Redis{client: redis.NewClient(opts)}, nil
}

func (r *Redis) Users(ctx context.Context) ([]protocol.User, error) {
	entries, err := r.client.HGetAll(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read user directory: %w", err)
	}

	users := make([]protocol.User, 0, len(entries))

	for id, raw := range entries {
		var user protocol.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("corrupt directory entry %s: %w", id, err)
		}

		users = append(users, user)
	}

	return users, nil
}

func (r *Redis) UsersByRole(ctx context.Context, role string) ([]protocol.User, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return nil, err
	}

	var matched []protocol.User

	for _, user := range users {
		if strings.EqualFold(user.Role, role) {
			matched = append(matched, user)
		}
	}

	return matched, nil
}

func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
