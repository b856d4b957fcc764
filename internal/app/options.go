package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/logger"

	"go.uber.org/zap"
)

// Mode 进程运行模式
type Mode string

const (
	ModeAll    Mode = "all"
	ModeAPI    Mode = "api"
	ModeWorker Mode = "worker"
)

// ParseMode 解析运行模式，空值视为 all
func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown run mode %q (expected all, api or worker)", raw)
	}
}

// ServesAPI 是否启动 HTTP 服务
func (m Mode) ServesAPI() bool {
	return m == ModeAll || m == ModeAPI
}

// RunsWorker 是否启动后台任务
func (m Mode) RunsWorker() bool {
	return m == ModeAll || m == ModeWorker
}

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            Mode
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
