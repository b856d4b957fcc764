package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/constants"

	"github.com/redis/go-redis/v9"
)

// store 进程内唯一的 Redis 缓存；为 nil 时所有读写直接穿透
type store struct {
	rdb    *redis.Client
	prefix string
}

var (
	current     *store
	redisPrefix = constants.RedisPrefixDefault
)

// InitRedis 按配置连接 Redis，未启用时保持穿透
func InitRedis(cfg *config.RedisConfig) error {
	current = nil
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	if prefix := strings.TrimSpace(cfg.Prefix); prefix != "" {
		redisPrefix = prefix
	} else {
		redisPrefix = constants.RedisPrefixDefault
	}

	current = &store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: redisPrefix,
	}
	return nil
}

// Close 释放连接，之后缓存退化为穿透
func Close() error {
	if current == nil {
		return nil
	}
	err := current.rdb.Close()
	current = nil
	return err
}

// Enabled 缓存是否可用
func Enabled() bool {
	return current != nil
}

// Client 暴露底层客户端（限流脚本使用），未启用返回 nil
func Client() *redis.Client {
	if current == nil {
		return nil
	}
	return current.rdb
}

// loadJSON 读取并反序列化；未命中返回 (nil, nil)
func loadJSON[T any](ctx context.Context, key string) (*T, error) {
	if current == nil {
		return nil, nil
	}
	raw, err := current.rdb.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func storeJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if current == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return current.rdb.Set(ctx, buildKey(key), raw, ttl).Err()
}

func drop(ctx context.Context, keys ...string) error {
	if current == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = buildKey(key)
	}
	return current.rdb.Del(ctx, full...).Err()
}

func buildKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return redisPrefix
	}
	return redisPrefix + ":" + key
}
