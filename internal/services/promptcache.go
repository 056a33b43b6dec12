package services

import (
  "context"
  "time"

  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"

  "github.com/0CyberGhost0/BotIo/internal/logger"
)

// PromptCache caches assembled system prompts per bot. The assembled
// prompt is a pure function of the bot's persisted sources, so a cache
// invalidated on every source write cannot change observable output.
type PromptCache interface {
  Get(ctx context.Context, botID uuid.UUID) (string, bool)
  Set(ctx context.Context, botID uuid.UUID, prompt string)
  Invalidate(ctx context.Context, botID uuid.UUID)
}

type redisPromptCache struct {
  log    *logger.Logger
  client *redis.Client
  ttl    time.Duration
}

// NewRedisPromptCache connects to redis and returns the cache, or an
// error when the server is unreachable so the caller can run without
// caching.
func NewRedisPromptCache(ctx context.Context, baseLog *logger.Logger, address, password string, ttl time.Duration) (PromptCache, error) {
  cacheLog := baseLog.With("service", "RedisPromptCache")
  client := redis.NewClient(&redis.Options{
    Addr:     address,
    Password: password,
  })
  if err := client.Ping(ctx).Err(); err != nil {
    return nil, err
  }
  return &redisPromptCache{log: cacheLog, client: client, ttl: ttl}, nil
}

func promptKey(botID uuid.UUID) string {
  return "botio:prompt:" + botID.String()
}

func (rpc *redisPromptCache) Get(ctx context.Context, botID uuid.UUID) (string, bool) {
  val, err := rpc.client.Get(ctx, promptKey(botID)).Result()
  if err != nil {
    if err != redis.Nil {
      rpc.log.Warn("prompt cache get failed", "botID", botID, "error", err)
    }
    return "", false
  }
  return val, true
}

func (rpc *redisPromptCache) Set(ctx context.Context, botID uuid.UUID, prompt string) {
  if err := rpc.client.Set(ctx, promptKey(botID), prompt, rpc.ttl).Err(); err != nil {
    rpc.log.Warn("prompt cache set failed", "botID", botID, "error", err)
  }
}

func (rpc *redisPromptCache) Invalidate(ctx context.Context, botID uuid.UUID) {
  if err := rpc.client.Del(ctx, promptKey(botID)).Err(); err != nil {
    rpc.log.Warn("prompt cache invalidate failed", "botID", botID, "error", err)
  }
}
