package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/sukalov/lyricbot/internal/users"
	"github.com/sukalov/lyricbot/internal/utils"
)

// sectionsPrefix must match the keys built by lyrics.SectionsKey
const (
	sectionsPrefix = "sections:"
	preferencesKey = "preferences"
)

type DBManager struct {
	client *redisClient.Client
}

// NewDBManager connects using REDIS_URL and REDIS_PASSWORD from the environment
func NewDBManager() (*DBManager, error) {
	env, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"})
	if err != nil {
		return nil, fmt.Errorf("failed to load redis env: %w", err)
	}
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", env["REDIS_PASSWORD"], env["REDIS_URL"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return NewWithClient(redisClient.NewClient(opt)), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redisClient.Client) *DBManager {
	return &DBManager{client: client}
}

func (redis *DBManager) Ping(ctx context.Context) error {
	return redis.client.Ping(ctx).Err()
}

func (redis *DBManager) Close() error {
	return redis.client.Close()
}

// Get reads a raw cache value
func (redis *DBManager) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := redis.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redisClient.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes a raw cache value
func (redis *DBManager) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return redis.client.Set(ctx, key, value, ttl).Err()
}

// Clear removes every cached sections entry, leaving preferences alone
func (redis *DBManager) Clear(ctx context.Context) error {
	iter := redis.client.Scan(ctx, 0, sectionsPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := redis.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete %d cache keys: %w", len(keys), err)
	}
	return nil
}

// SetPreferences stores one chat's preferences in the preferences hash
func (redis *DBManager) SetPreferences(ctx context.Context, prefs users.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	field := strconv.FormatInt(prefs.ChatID, 10)
	if err := redis.client.HSet(ctx, preferencesKey, field, data).Err(); err != nil {
		return fmt.Errorf("failed to save preferences for chat %d: %v", prefs.ChatID, err)
	}
	return nil
}

// LoadPreferences returns every stored chat's preferences
func (redis *DBManager) LoadPreferences(ctx context.Context) (map[int64]users.Preferences, error) {
	result := make(map[int64]users.Preferences)
	raw, err := redis.client.HGetAll(ctx, preferencesKey).Result()
	if err != nil {
		if err == redisClient.Nil {
			return result, nil
		}
		return nil, err
	}
	for field, value := range raw {
		chatID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue // skip foreign fields
		}
		var prefs users.Preferences
		if err := json.Unmarshal([]byte(value), &prefs); err != nil {
			continue
		}
		result[chatID] = prefs
	}
	return result, nil
}
