package scheduler

import (
	"github.com/blues/bts/internal/config"
	"github.com/blues/bts/internal/logger"
	"github.com/blues/bts/internal/syncer"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 后台任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	engine    *syncer.Engine
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, engine *syncer.Engine, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: s,
		db:        db,
		engine:    engine,
		config:    cfg,
	}, nil
}

// Start 注册并启动所有后台任务
func (m *Manager) Start() {
	m.registerMetricsSyncJob()
	m.scheduler.Start()
	logger.Info("Task manager started successfully")
}

// registerMetricsSyncJob 注册互动数据对账任务。
// 同步周期配置为 0 或负数时整体关闭，不注册任务。
func (m *Manager) registerMetricsSyncJob() {
	job := NewMetricsSyncJob(m.db, m.engine)

	interval := m.config.Sync.Interval
	if interval <= 0 {
		logger.Info("Metrics sync job disabled (interval=%d)", interval)
		return
	}

	_, err := m.scheduler.NewJob(
		job.GetSchedule(interval),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器，等待进行中的任务结束
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
