package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/http/handlers/shared"
	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

// LoginRateLimitRule 登录限流规则（按邮箱 + IP 计数）
func LoginRateLimitRule(redisPrefix string, cfg config.LoginRateLimitConfig) RateLimitRule {
	return RateLimitRule{
		Prefix:        redisPrefix + ":rate:login",
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(raw string) string {
	if r.Prefix == "" {
		return raw
	}
	return fmt.Sprintf("%s:%s", r.Prefix, raw)
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

// INCR 与 EXPIRE 在脚本内原子执行，返回 {当前计数, 剩余 TTL}
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

var errRateLimitReply = errors.New("unexpected rate limit reply")

// windowDecision 单次计数后的判定结果
type windowDecision struct {
	Allowed     bool
	WaitSeconds int
}

func hitFixedWindow(ctx context.Context, client *redis.Client, rule RateLimitRule, key string) (windowDecision, error) {
	reply, err := fixedWindowScript.Run(ctx, client, []string{rule.key(key)}, rule.WindowSeconds).Result()
	if err != nil {
		return windowDecision{}, err
	}
	return decideWindow(reply, rule)
}

// decideWindow 解析脚本返回值；超限时等待时间取 TTL，TTL 异常时退化为整个窗口
func decideWindow(reply interface{}, rule RateLimitRule) (windowDecision, error) {
	values, ok := reply.([]interface{})
	if !ok || len(values) < 2 {
		return windowDecision{}, errRateLimitReply
	}
	count, err := cast.ToInt64E(values[0])
	if err != nil {
		return windowDecision{}, fmt.Errorf("%w: %v", errRateLimitReply, err)
	}
	if count <= int64(rule.MaxRequests) {
		return windowDecision{Allowed: true}, nil
	}
	wait := cast.ToInt(values[1])
	if wait < 1 {
		wait = rule.WindowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return windowDecision{WaitSeconds: wait}, nil
}

// RateLimitMiddleware Redis 固定窗口限流；未启用 Redis 或规则无效时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		decision, err := hitFixedWindow(c.Request.Context(), client, rule, key)
		locale := i18n.ResolveLocale(c)
		if err != nil {
			shared.RequestLog(c).Errorw("rate_limit_check_failed", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if !decision.Allowed {
			shared.RequestLog(c).Warnw("rate_limit_exceeded", "prefix", rule.Prefix, "wait_seconds", decision.WaitSeconds)
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(locale, rule.messageKey(), decision.WaitSeconds))
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 JSON 字段（小写）+ IP 作为限流 key，字段缺失时退化为 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONStringField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONStringField 读取请求体中的字符串字段，并把请求体还原给后续 handler 绑定
func peekJSONStringField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
