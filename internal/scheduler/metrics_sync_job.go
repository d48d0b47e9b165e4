package scheduler

import (
	"context"
	"time"

	"github.com/blues/bts/internal/logger"
	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/syncer"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// MetricsSyncJob 互动数据对账任务。每个周期把还在等待自动确认的
// 分配（submitted / in_review）逐条重新同步一次。
type MetricsSyncJob struct {
	db     *gorm.DB
	engine *syncer.Engine
}

// NewMetricsSyncJob 创建互动数据对账任务
func NewMetricsSyncJob(db *gorm.DB, engine *syncer.Engine) *MetricsSyncJob {
	return &MetricsSyncJob{db: db, engine: engine}
}

// GetName 获取任务名称
func (j *MetricsSyncJob) GetName() string {
	return "metrics_sync"
}

// GetSchedule 获取调度配置
func (j *MetricsSyncJob) GetSchedule(intervalSeconds int) gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(intervalSeconds) * time.Second)
}

// Execute 执行一个对账周期。单条分配的失败不会中断整个周期，
// 失败原因已经由同步引擎落在分配状态里。
func (j *MetricsSyncJob) Execute() {
	assignments, err := j.ListOutstanding()
	if err != nil {
		logger.Error("Failed to fetch assignments for metrics sync: %v", err)
		return
	}
	if len(assignments) == 0 {
		return
	}

	logger.Info("Starting metrics sync cycle for %d assignments", len(assignments))

	synced := 0
	for _, assignment := range assignments {
		if err := j.engine.SyncOnce(context.Background(), assignment.ID); err != nil {
			logger.Info("Metrics sync for assignment %d degraded: %v", assignment.ID, err)
			continue
		}
		synced++
	}

	logger.Info("Metrics sync cycle completed: %d/%d synced", synced, len(assignments))
}

// ListOutstanding 查询仍在等待自动确认的分配
func (j *MetricsSyncJob) ListOutstanding() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := j.db.Where("status IN ?", []model.AssignmentStatus{
		model.AssignmentStatusSubmitted,
		model.AssignmentStatusInReview,
	}).Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
