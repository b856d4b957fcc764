package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/constants"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
)

const (
	defaultSweepBatchSize = 100
	defaultSweepWorkers   = 4
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ExpiredOrderCanceller 过期订单巡检依赖的订单能力
type ExpiredOrderCanceller interface {
	ListExpiredPendingOrderIDs(limit int) ([]uint, error)
	CancelExpiredOrder(orderID uint) (*models.Order, error)
}

// ExpiredOrderSweeper 定时取消超过支付期限的待支付订单，兜底丢失的延迟任务
type ExpiredOrderSweeper struct {
	orders    ExpiredOrderCanceller
	spec      string
	batchSize int
	workers   int
	sched     *cron.Cron
	running   atomic.Bool
}

// NewExpiredOrderSweeper 创建过期订单巡检；spec 为空时 Start 不做任何事
func NewExpiredOrderSweeper(orders ExpiredOrderCanceller, cfg config.OrderConfig) *ExpiredOrderSweeper {
	batchSize := cfg.SweepBatchSize
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	workers := cfg.SweepWorkers
	if workers <= 0 {
		workers = defaultSweepWorkers
	}
	return &ExpiredOrderSweeper{
		orders:    orders,
		spec:      strings.TrimSpace(cfg.SweepSpec),
		batchSize: batchSize,
		workers:   workers,
	}
}

// Enabled 是否配置了巡检周期
func (s *ExpiredOrderSweeper) Enabled() bool {
	return s != nil && s.orders != nil && s.spec != ""
}

// Start 注册 cron 任务并启动调度
func (s *ExpiredOrderSweeper) Start() error {
	if !s.Enabled() {
		return nil
	}
	if s.sched != nil {
		return errors.New("sweeper already started")
	}
	sched := cron.New(cron.WithParser(cronParser))
	if _, err := sched.AddFunc(s.spec, s.tick); err != nil {
		return err
	}
	s.sched = sched
	s.sched.Start()
	logger.Infow("order_sweeper_started", "spec", s.spec, "batch_size", s.batchSize, "workers", s.workers)
	return nil
}

// Stop 停止调度并等待进行中的巡检结束
func (s *ExpiredOrderSweeper) Stop(ctx context.Context) {
	if s == nil || s.sched == nil {
		return
	}
	done := s.sched.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warnw("order_sweeper_stop_timeout")
	}
}

func (s *ExpiredOrderSweeper) tick() {
	// 上一轮未结束时跳过
	if !s.running.CompareAndSwap(false, true) {
		logger.Debugw("order_sweeper_skip_overlap")
		return
	}
	defer s.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("order_sweeper_panic", "panic", r)
		}
	}()
	if _, err := s.RunOnce(); err != nil {
		logger.Warnw("order_sweeper_run_failed", "error", err)
	}
}

// RunOnce 执行一轮巡检，返回成功取消的订单数
func (s *ExpiredOrderSweeper) RunOnce() (int, error) {
	if s == nil || s.orders == nil {
		return 0, nil
	}
	pool, err := ants.NewPool(s.workers, ants.WithPanicHandler(func(p interface{}) {
		logger.Errorw("order_sweeper_task_panic", "panic", p)
	}))
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	total := 0
	for {
		ids, err := s.orders.ListExpiredPendingOrderIDs(s.batchSize)
		if err != nil {
			return total, err
		}
		if len(ids) == 0 {
			break
		}
		cancelled := s.cancelBatch(pool, ids)
		total += cancelled
		// 本批存在失败或已取尽时结束，避免对同一批失败订单反复重试
		if cancelled < len(ids) || len(ids) < s.batchSize {
			break
		}
	}
	if total > 0 {
		logger.Infow("order_sweeper_cancelled", "count", total)
	}
	return total, nil
}

func (s *ExpiredOrderSweeper) cancelBatch(pool *ants.Pool, ids []uint) int {
	var (
		wg        sync.WaitGroup
		cancelled atomic.Int64
	)
	for _, id := range ids {
		orderID := id
		wg.Add(1)
		task := func() {
			defer wg.Done()
			order, err := s.orders.CancelExpiredOrder(orderID)
			if err != nil {
				logger.Warnw("order_sweeper_cancel_failed", "order_id", orderID, "error", err)
				return
			}
			if order != nil && order.Status == constants.OrderStatusCancelled {
				cancelled.Add(1)
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			logger.Warnw("order_sweeper_submit_failed", "order_id", orderID, "error", err)
		}
	}
	wg.Wait()
	return int(cancelled.Load())
}
