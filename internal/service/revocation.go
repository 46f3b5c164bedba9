package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenRevoker 登出用的令牌吊销名单
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "revoked:"

// RedisTokenRevoker 用 Redis 存吊销条目，TTL 对齐令牌剩余有效期
type RedisTokenRevoker struct {
	RDB *redis.Client
}

func NewRedisTokenRevoker(rdb *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{RDB: rdb}
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return r.RDB.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.RDB.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
