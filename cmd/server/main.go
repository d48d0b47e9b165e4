package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blues/bts/internal/config"
	"github.com/blues/bts/internal/database"
	"github.com/blues/bts/internal/fetcher"
	"github.com/blues/bts/internal/logger"
	"github.com/blues/bts/internal/revenue"
	"github.com/blues/bts/internal/router"
	"github.com/blues/bts/internal/scheduler"
	"github.com/blues/bts/internal/syncer"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化默认数据
	if err := database.Seed(db, cfg); err != nil {
		logger.Fatal("Failed to seed database: %v", err)
	}

	// 初始化 redis（平台配置缓存，可关闭）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis not reachable, platform config cache disabled: %v", err)
			rdb = nil
		}
	}

	// 组装同步引擎
	resolver := revenue.NewResolver(db, rdb)
	metricsFetcher := fetcher.NewSimulated(cfg.Sync.FetchFailRate)
	engine := syncer.NewEngine(db, metricsFetcher, resolver)

	// 前台同步协程池
	syncPool, err := syncer.NewPool(cfg.Sync.PoolSize, engine)
	if err != nil {
		logger.Fatal("Failed to create sync pool: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, resolver, syncPool, cfg)

	// 启动后台对账任务
	manager, err := scheduler.NewManager(db, engine, cfg)
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}
	manager.Start()

	// 启动服务器
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// 等待退出信号，先停后台任务再关服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	manager.Stop()
	syncPool.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}

func initLogger(cfg *config.Config) {
	level := logger.ParseLogLevel(cfg.Log.Level)

	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
