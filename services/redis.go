package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/playgrove-labs/grove_api/dto"
	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

const leaderboardKey = "grove:leaderboard:points"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		ctx := context.Background()
		_, err := svc.redis.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return nil
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
}

// Set stores a value with a TTL, JSON-encoding anything that is not
// already a string or byte slice.
func (svc *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	var data []byte
	var err error

	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		data, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
	}

	return svc.redis.Set(ctx, key, data, expiration).Err()
}

// Get returns the value at key, or the empty string on a cache miss.
func (svc *RedisService) Get(ctx context.Context, key string) (string, error) {
	if svc.redis == nil {
		return "", fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return result, err
}

// ==================== LEADERBOARD ====================

// SetLeaderboardScore publishes a player's current point total to the
// sorted set backing the leaderboard.
func (svc *RedisService) SetLeaderboardScore(userID string, totalPoints int) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	ctx := context.Background()
	return svc.redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(totalPoints),
		Member: userID,
	}).Err()
}

// GetLeaderboard returns the top N players by points, ranks starting at 1.
func (svc *RedisService) GetLeaderboard(limit int) ([]dto.LeaderboardEntry, error) {
	if svc.redis == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	ctx := context.Background()
	results, err := svc.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, len(results))
	for i, z := range results {
		userID, _ := z.Member.(string)
		entries[i] = dto.LeaderboardEntry{
			UserID: userID,
			Points: int(z.Score),
			Rank:   i + 1,
		}
	}
	return entries, nil
}

// IncrWindow increments a fixed-window rate limit counter, setting the
// expiry on first hit. Returns the current count within the window.
func (svc *RedisService) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	count, err := svc.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := svc.redis.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
