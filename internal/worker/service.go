package worker

import (
	"context"
	"errors"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 后台任务服务：asynq 消费者 + 过期订单巡检
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	sweeper  *ExpiredOrderSweeper
}

// NewService 创建后台任务服务；队列关闭时只运行巡检
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if consumer == nil || consumer.Container == nil {
		return nil, errors.New("consumer is nil")
	}
	s := &Service{
		name:     "worker",
		consumer: consumer,
	}
	if consumer.OrderService != nil {
		s.sweeper = NewExpiredOrderSweeper(consumer.OrderService, cfg.Order)
	}
	if cfg.Queue.Enabled {
		opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
		s.server = asynq.NewServer(opt, serverCfg)
		s.mux = asynq.NewServeMux()
		consumer.Register(s.mux)
	}
	if s.server == nil && !s.sweeper.Enabled() {
		return nil, errors.New("worker has nothing to run: queue disabled and order.sweep_spec empty")
	}
	return s, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务，阻塞至 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return errors.New("worker not initialized")
	}
	if err := s.sweeper.Start(); err != nil {
		return err
	}
	if s.server != nil {
		if err := s.server.Start(s.mux); err != nil {
			return err
		}
	} else {
		logger.Warnw("worker_queue_disabled", "sweeper", s.sweeper.Enabled())
	}
	<-ctx.Done()
	return nil
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.sweeper.Stop(ctx)
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}
