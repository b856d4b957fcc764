package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 订单任务投递的队列
const DefaultQueue = constants.QueueDefault

const (
	statusNotifyMaxRetry  = 5
	statusNotifyRetention = 24 * time.Hour
	timeoutCancelMaxRetry = 3
	defaultConcurrency    = 10
	defaultRedisHost      = "127.0.0.1"
	defaultRedisPort      = 6379
)

// Client asynq 投递端；未启用队列时所有投递均为空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderStatusNotify 投递订单状态通知；同一订单同一状态只保留一条
func (c *Client) EnqueueOrderStatusNotify(payload OrderStatusNotifyPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusNotifyTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task,
		asynq.TaskID(OrderStatusNotifyTaskID(payload.OrderID, payload.Status)),
		asynq.MaxRetry(statusNotifyMaxRetry),
		asynq.Retention(statusNotifyRetention),
	)
}

// EnqueueOrderTimeoutCancel 投递延迟取消任务，delay 为支付窗口剩余时长
func (c *Client) EnqueueOrderTimeoutCancel(payload OrderTimeoutCancelPayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderTimeoutCancelTask(payload)
	if err != nil {
		return err
	}
	if delay < 0 {
		delay = 0
	}
	return c.enqueue(task,
		asynq.TaskID(OrderTimeoutCancelTaskID(payload.OrderID)),
		asynq.ProcessIn(delay),
		asynq.MaxRetry(timeoutCancelMaxRetry),
	)
}

// enqueue 任务 ID 冲突说明同一任务已在队列中，视为成功
func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	opts = append([]asynq.Option{asynq.Queue(DefaultQueue)}, opts...)
	if _, err := c.client.Enqueue(task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}

// BuildServerConfig 生成 worker 端 asynq 配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: net.JoinHostPort(defaultRedisHost, strconv.Itoa(defaultRedisPort))}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := cfg.Port
	if port <= 0 {
		port = defaultRedisPort
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
