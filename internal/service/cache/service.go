package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	gameKeyPrefix = "price:game:"
	dealKeyPrefix = "price:deals:"
)

type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisConfig.ReadyTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		logger: logger,
	}, nil
}

func (c *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key doesn't exist - not an error
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("get failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
			return false, errors.NewCacheError("unmarshal failed", "get", key, err)
		}
	}

	return true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}

	return nil
}

func (c *CacheService) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

// GetGameRecord returns a cached game resolution for a normalized title.
// Cache failures read as misses; the resolver falls through to the provider.
func (c *CacheService) GetGameRecord(ctx context.Context, normalizedTitle string) (*domain.GameRecord, bool) {
	if normalizedTitle == "" {
		return nil, false
	}

	var record domain.GameRecord
	found, err := c.Get(ctx, gameKeyPrefix+normalizedTitle, &record)
	if err != nil || !found {
		return nil, false
	}
	return &record, true
}

func (c *CacheService) SetGameRecord(ctx context.Context, normalizedTitle string, record *domain.GameRecord) {
	if normalizedTitle == "" || record == nil {
		return
	}
	if err := c.Set(ctx, gameKeyPrefix+normalizedTitle, record, constants.CacheTTL.GameRecord); err != nil {
		c.logger.Warn("Failed to cache game record", zap.String("title", normalizedTitle), zap.Error(err))
	}
}

// GetDeals returns a cached deal list for a game/country pair.
func (c *CacheService) GetDeals(ctx context.Context, gameID, country string) ([]domain.Deal, bool) {
	var deals []domain.Deal
	found, err := c.Get(ctx, dealKey(gameID, country), &deals)
	if err != nil || !found || deals == nil {
		return nil, false
	}
	return deals, true
}

func (c *CacheService) SetDeals(ctx context.Context, gameID, country string, deals []domain.Deal) {
	if err := c.Set(ctx, dealKey(gameID, country), deals, constants.CacheTTL.DealList); err != nil {
		c.logger.Warn("Failed to cache deals", zap.String("game_id", gameID), zap.Error(err))
	}
}

func dealKey(gameID, country string) string {
	return dealKeyPrefix + country + ":" + gameID
}

func (c *CacheService) IsConnected(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

func (c *CacheService) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}
