package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gauravatalea/ShiftGenius-AI-New/config"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/api/handler"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/api/router"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/database"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/jwt"
	applogger "github.com/gauravatalea/ShiftGenius-AI-New/pkg/logger"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 初始化表结构
	if err := database.Migrate(db, cfg.Database.Driver, logger, model.All()...); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：未配置或连接失败时降级运行）
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，看板缓存、限流与分布式锁将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, rdb, jwtMgr, logger)

	// 6.1 写入示例数据（仅空库）
	if cfg.Seed.Enabled {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := service.SeedSampleData(seedCtx, repo, logger); err != nil {
			logger.Error("写入示例数据失败", zap.Error(err))
		}
		cancel()
	}

	// 6.2 启动告警巡检
	var monitor *service.AlertMonitor
	if cfg.Alert.MonitorEnabled {
		monitor, err = service.NewAlertMonitor(svc.Alert, cfg.Alert.MonitorSchedule, logger)
		if err != nil {
			logger.Fatal("初始化告警巡检失败", zap.Error(err))
		}
		monitor.Start()
	}

	checks := handler.HealthChecks{Database: sqlDB.PingContext}
	if rdb != nil {
		checks.Redis = rdb.Ping
	}
	h := handler.NewHandler(svc, checks)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if monitor != nil {
		monitor.Stop(ctx)
	}

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
