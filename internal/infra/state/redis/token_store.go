package redisstate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// RedisTokenStore 是 TokenStore 接口的 Redis 实现。
// 每个已注销的 token ID 对应一个带 TTL 的 key，token 自然过期后记录随之消失。
type RedisTokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenStore 创建 RedisTokenStore 实例
func NewRedisTokenStore(client *redis.Client, keyPrefix string) *RedisTokenStore {
	if client == nil {
		panic("redis client cannot be nil for RedisTokenStore")
	}
	if keyPrefix == "" {
		keyPrefix = "cl:" // 默认前缀 "cl:" (CorrenteLar)
	}
	return &RedisTokenStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisTokenStore) revokedKey(tokenID string) string {
	return fmt.Sprintf("%sauth:revoked:%s", s.keyPrefix, tokenID)
}

// Revoke 使用 SETNX 写入注销记录
func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return fmt.Errorf("redis: revoke token: empty token id")
	}
	// 已过期的 token 不需要再记录，但仍保留最短 TTL 防止 key 永不过期
	if ttl <= 0 {
		ttl = time.Second
	}
	ok, err := s.client.SetNX(ctx, s.revokedKey(tokenID), 1, ttl).Result()
	if err != nil {
		logrus.WithError(err).WithField("jti", tokenID).Error("RedisTokenStore: SETNX failed")
		return fmt.Errorf("redis: revoke token %s: %w", tokenID, err)
	}
	if !ok {
		return repository.ErrAlreadyRevoked
	}
	return nil
}

// IsRevoked 判断注销记录是否存在
func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: check revoked token %s: %w", tokenID, err)
	}
	return n > 0, nil
}
