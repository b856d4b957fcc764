package app

import (
	"errors"
	"fmt"
	"net"

	"github.com/kasuwa-shop/internal/cache"
	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/provider"
	"github.com/kasuwa-shop/internal/router"
	"github.com/kasuwa-shop/internal/worker"
)

// BuildRunner 按运行模式组装 HTTP 与 Worker 服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	runMode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)
	services := make([]Service, 0, 2)

	if runMode.ServesAPI() {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg.Server), engine))
	}

	// 队列关闭时 worker 仍负责过期订单巡检
	if runMode.RunsWorker() {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(cfg, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services initialized for mode %q", runMode)
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, string(opts.Mode))
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config.Server),
		"mode", opts.Mode,
		"services", runner.Names(),
	)
	runErr := RunWithOptions(runner, opts)
	if err := cache.Close(); err != nil {
		opts.Logger.Warnw("app_cache_close_failed", "error", err)
	}
	return runErr
}

func listenAddr(server config.ServerConfig) string {
	return net.JoinHostPort(server.Host, server.Port)
}
