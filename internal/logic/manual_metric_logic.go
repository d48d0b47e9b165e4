package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/revenue"
	"gorm.io/gorm"
)

// defaultRejectReason 驳回手工数据但未填写原因时的兜底文案
const defaultRejectReason = "手工数据审核未通过"

// ManualMetricLogic 手工数据填报与审核门控。
// 自动同步失败后博主手工填报，管理员审核通过才产生可结算收益。
type ManualMetricLogic struct {
	db       *gorm.DB
	resolver *revenue.Resolver
}

// NewManualMetricLogic 创建手工数据业务逻辑
func NewManualMetricLogic(db *gorm.DB, resolver *revenue.Resolver) *ManualMetricLogic {
	return &ManualMetricLogic{db: db, resolver: resolver}
}

// ManualCounts 手工填报的互动数据
type ManualCounts struct {
	Likes     int
	Favorites int
	Shares    int
	Views     int
	Note      string
}

// Submit 博主提交手工数据。只有同步状态是 manual_required 或
// manual_rejected 时允许填报；提交后进入 manual_pending_review，
// submitted 的分配同时转入 in_review。不触碰收益。
func (l *ManualMetricLogic) Submit(assignmentID, userID uint, counts ManualCounts) (*model.ManualMetricSubmission, error) {
	var assignment model.Assignment
	if err := l.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("获取任务分配失败: %w", err)
	}
	if assignment.UserID != userID {
		return nil, ErrNotAssignmentOwner
	}

	if assignment.MetricSyncStatus != model.MetricSyncStatusManualRequired &&
		assignment.MetricSyncStatus != model.MetricSyncStatusManualRejected {
		return nil, ErrManualNotRequired
	}

	submission := &model.ManualMetricSubmission{
		AssignmentID: assignmentID,
		Likes:        counts.Likes,
		Favorites:    counts.Favorites,
		Shares:       counts.Shares,
		Views:        counts.Views,
		Note:         counts.Note,
		ReviewStatus: model.ManualMetricReviewStatusPending,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"metric_sync_status": model.MetricSyncStatusManualPendingReview,
		}
		// 提交手工数据即视为进入人工审核环节
		if assignment.Status == model.AssignmentStatusSubmitted {
			updates["status"] = model.AssignmentStatusInReview
		}
		return tx.Model(&assignment).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("提交手工数据失败: %w", err)
	}
	return submission, nil
}

// ListPending 管理端获取待审核的手工数据
func (l *ManualMetricLogic) ListPending() ([]model.ManualMetricSubmission, error) {
	var submissions []model.ManualMetricSubmission
	err := l.db.Where("review_status = ?", model.ManualMetricReviewStatusPending).
		Order("submitted_at ASC").Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("获取待审核手工数据失败: %w", err)
	}
	return submissions, nil
}

// Review 管理员审核手工数据。通过则以手工数据落一条 Metric 并重算收益，
// 分配进入 manual_approved；驳回则进入 manual_rejected，博主可重新填报。
// 已审核过的提交直接报错，不做任何修改。
func (l *ManualMetricLogic) Review(ctx context.Context, submissionID uint, approved bool, reason string) (*model.ManualMetricSubmission, error) {
	var submission model.ManualMetricSubmission
	if err := l.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("手工数据不存在: %w", err)
		}
		return nil, fmt.Errorf("获取手工数据失败: %w", err)
	}

	if submission.ReviewStatus != model.ManualMetricReviewStatusPending {
		return nil, ErrAlreadyReviewed
	}

	var assignment model.Assignment
	if err := l.db.Preload("Task").Preload("User").
		First(&assignment, submission.AssignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("获取任务分配失败: %w", err)
	}

	now := time.Now()
	submission.ReviewedAt = &now
	submission.ReviewReason = reason

	var err error
	if approved {
		err = l.approve(ctx, &submission, &assignment, now)
	} else {
		err = l.reject(&submission, &assignment, reason)
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (l *ManualMetricLogic) approve(ctx context.Context, submission *model.ManualMetricSubmission, assignment *model.Assignment, now time.Time) error {
	metric := &model.Metric{
		AssignmentID: assignment.ID,
		Likes:        submission.Likes,
		Favorites:    submission.Favorites,
		Shares:       submission.Shares,
		Views:        submission.Views,
		Source:       model.MetricSourceManual,
	}

	platform := model.DefaultPlatformKey
	baseReward := 0.0
	userWeight := 1.0
	if assignment.Task != nil {
		platform = assignment.Task.Platform
		baseReward = assignment.Task.BaseReward
	}
	if assignment.User != nil {
		userWeight = assignment.User.Weight
	}

	cfg := l.resolver.Resolve(ctx, platform)
	score := revenue.EngagementScore(metric, cfg)
	amount := revenue.Calculate(baseReward, userWeight, score, cfg.PlatformCoef)

	submission.ReviewStatus = model.ManualMetricReviewStatusApproved

	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(submission).Error; err != nil {
			return err
		}
		if err := tx.Create(metric).Error; err != nil {
			return err
		}

		return tx.Model(assignment).Updates(map[string]interface{}{
			"revenue":            amount,
			"metric_sync_status": model.MetricSyncStatusManualApproved,
			"last_sync_error":    "",
			"last_synced_at":     now,
		}).Error
	})
}

func (l *ManualMetricLogic) reject(submission *model.ManualMetricSubmission, assignment *model.Assignment, reason string) error {
	if strings.TrimSpace(reason) == "" {
		reason = defaultRejectReason
	}
	submission.ReviewStatus = model.ManualMetricReviewStatusRejected

	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(submission).Error; err != nil {
			return err
		}
		return tx.Model(assignment).Updates(map[string]interface{}{
			"metric_sync_status": model.MetricSyncStatusManualRejected,
			"last_sync_error":    reason,
		}).Error
	})
}
