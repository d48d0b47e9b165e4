package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blues/bts/internal/fetcher"
	"github.com/blues/bts/internal/logger"
	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/revenue"
	"gorm.io/gorm"
)

// 同步失败时写入 last_sync_error 的固定文案
const (
	errPostLinkMissing = "post link missing"
	errContextMissing  = "task or user context missing"
)

// Engine 互动数据同步引擎。一次 SyncOnce 完成一次完整的同步尝试：
// 抓取 → 落 Metric → 重算收益 → 更新同步状态。任何失败都降级为
// manual_required 并记录原因，不向上层抛致命错误。
type Engine struct {
	db       *gorm.DB
	fetcher  fetcher.Fetcher
	resolver *revenue.Resolver

	// 按分配 ID 的互斥，避免前台提交触发的同步和后台对账同时写同一条记录。
	// 只保证单进程内互斥，多实例部署仍可能并发，以最后提交者为准。
	locks sync.Map
}

// NewEngine 创建同步引擎
func NewEngine(db *gorm.DB, f fetcher.Fetcher, resolver *revenue.Resolver) *Engine {
	return &Engine{db: db, fetcher: f, resolver: resolver}
}

// SyncOnce 对单条任务分配执行一次同步。返回的 error 描述失败原因，
// 调用方记录日志即可，失败已经落在分配的同步状态里。
func (e *Engine) SyncOnce(ctx context.Context, assignmentID uint) error {
	mu := e.lockFor(assignmentID)
	mu.Lock()
	defer mu.Unlock()

	var assignment model.Assignment
	err := e.db.Preload("Task").Preload("User").First(&assignment, assignmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("任务分配不存在: %d", assignmentID)
		}
		return fmt.Errorf("获取任务分配失败: %w", err)
	}

	if assignment.PostLink == "" {
		return e.markFailed(&assignment, errPostLinkMissing)
	}

	snapshot, err := e.fetcher.Fetch(ctx, assignment.PostLink)
	if err != nil {
		// 抓取失败是常态，降级到手工填报
		return e.markFailed(&assignment, err.Error())
	}

	if assignment.Task == nil || assignment.User == nil {
		// 数据完整性问题，比普通抓取失败更值得关注
		logger.Error("Assignment %d has no task or user context, degrading to manual", assignment.ID)
		return e.markFailed(&assignment, errContextMissing)
	}

	metric := &model.Metric{
		AssignmentID: assignment.ID,
		Likes:        snapshot.Likes,
		Favorites:    snapshot.Favorites,
		Shares:       snapshot.Shares,
		Views:        snapshot.Views,
		Source:       model.MetricSourceAuto,
	}

	cfg := e.resolver.Resolve(ctx, assignment.Task.Platform)
	score := revenue.EngagementScore(metric, cfg)
	amount := revenue.Calculate(assignment.Task.BaseReward, assignment.User.Weight, score, cfg.PlatformCoef)

	// Metric、收益和同步状态必须一起落库，不允许出现半提交状态
	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(metric).Error; err != nil {
			return err
		}
		return tx.Model(&assignment).Updates(map[string]interface{}{
			"revenue":            amount,
			"metric_sync_status": model.MetricSyncStatusNormal,
			"last_sync_error":    "",
			"last_synced_at":     time.Now(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("提交同步结果失败: %w", err)
	}

	logger.Debug("Synced assignment %d: score=%.2f revenue=%.2f", assignment.ID, score, amount)
	return nil
}

// markFailed 同步失败，转入手工填报并记录原因
func (e *Engine) markFailed(assignment *model.Assignment, reason string) error {
	err := e.db.Model(assignment).Updates(map[string]interface{}{
		"metric_sync_status": model.MetricSyncStatusManualRequired,
		"last_sync_error":    reason,
	}).Error
	if err != nil {
		return fmt.Errorf("记录同步失败状态失败: %w", err)
	}
	return fmt.Errorf("同步失败: %s", reason)
}

func (e *Engine) lockFor(assignmentID uint) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(assignmentID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
