package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/kasuwa-shop/internal/app"
	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/logger"
	"github.com/kasuwa-shop/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", string(app.ModeAll), "启动模式: all (默认), api, worker")
	flag.Parse()

	runMode, err := app.ParseMode(mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printStartupBanner(runMode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.UserJWT.SecretKey) {
		if !cfg.Server.IsDebug() {
			stdLog.Fatalf("user_jwt.secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		logger.Warnw("user_jwt_secret_weak", "hint", "set user_jwt.secret before going to production")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.IsDebug()); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认超级管理员
	staffEmail := os.Getenv("KASUWA_DEFAULT_STAFF_EMAIL")
	staffPass := os.Getenv("KASUWA_DEFAULT_STAFF_PASSWORD")
	if !cfg.Server.IsDebug() && staffPass == "" {
		logger.Warnw("default_staff_skipped", "reason", "KASUWA_DEFAULT_STAFF_PASSWORD not set")
	} else if _, err := models.InitDefaultStaff(staffEmail, staffPass); err != nil {
		logger.Warnw("default_staff_init_failed", "error", err)
	}

	if !cfg.Server.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    runMode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(mode app.Mode) {
	fmt.Println(ansiCyan + "██╗  ██╗ █████╗ ███████╗██╗   ██╗██╗    ██╗ █████╗ " + ansiReset)
	fmt.Println(ansiCyan + "██║ ██╔╝██╔══██╗██╔════╝██║   ██║██║    ██║██╔══██╗" + ansiReset)
	fmt.Println(ansiCyan + "█████╔╝ ███████║███████╗██║   ██║██║ █╗ ██║███████║" + ansiReset)
	fmt.Println(ansiCyan + "██╔═██╗ ██╔══██║╚════██║██║   ██║██║███╗██║██╔══██║" + ansiReset)
	fmt.Println(ansiCyan + "██║  ██╗██║  ██║███████║╚██████╔╝╚███╔███╔╝██║  ██║" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝ ╚═════╝  ╚══╝╚══╝ ╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Kasuwa Shop API" + ansiReset + ansiDim + "  mode=" + string(mode) + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
