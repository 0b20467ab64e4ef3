package repository

import (
	"context"
	"time"
)

// TokenStore 记录已注销的访问令牌 (按 token ID)，通常由 Redis 实现。
type TokenStore interface {
	// Revoke 将 token 标记为已注销，记录在 ttl 后自动过期 (即 token 本身的剩余有效期)。
	// 重复注销返回 ErrAlreadyRevoked。
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked 判断 token 是否已被注销。
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
