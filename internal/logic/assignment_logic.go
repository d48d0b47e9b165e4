package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blues/bts/internal/model"
	"gorm.io/gorm"
)

// AssignmentLogic 任务分配业务逻辑，持有状态机的合法流转表
type AssignmentLogic struct {
	db *gorm.DB
}

// NewAssignmentLogic 创建任务分配业务逻辑
func NewAssignmentLogic(db *gorm.DB) *AssignmentLogic {
	return &AssignmentLogic{db: db}
}

// AcceptTask 博主接单。同一任务同一博主只允许一条未取消的分配，
// 重复接单幂等返回已有记录。
func (l *AssignmentLogic) AcceptTask(taskID, userID uint) (*model.Assignment, error) {
	var task model.Task
	if err := l.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("获取任务失败: %w", err)
	}
	if task.Status != model.TaskStatusPublished {
		return nil, ErrTaskNotFound
	}

	var existing model.Assignment
	err := l.db.Where("task_id = ? AND user_id = ? AND status <> ?",
		taskID, userID, model.AssignmentStatusCancelled).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询已有分配失败: %w", err)
	}

	if task.AcceptLimit != nil {
		active, err := l.CountActiveAssignments(taskID)
		if err != nil {
			return nil, err
		}
		if active >= int64(*task.AcceptLimit) {
			return nil, ErrTaskFull
		}
	}

	assignment := &model.Assignment{
		TaskID:           taskID,
		UserID:           userID,
		Status:           model.AssignmentStatusAccepted,
		MetricSyncStatus: model.MetricSyncStatusNormal,
	}
	if err := l.db.Create(assignment).Error; err != nil {
		return nil, fmt.Errorf("创建任务分配失败: %w", err)
	}
	return assignment, nil
}

// CountActiveAssignments 统计任务的有效接单数（未取消）
func (l *AssignmentLogic) CountActiveAssignments(taskID uint) (int64, error) {
	var count int64
	err := l.db.Model(&model.Assignment{}).
		Where("task_id = ? AND status <> ?", taskID, model.AssignmentStatusCancelled).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计接单数失败: %w", err)
	}
	return count, nil
}

// GetAssignment 获取任务分配详情
func (l *AssignmentLogic) GetAssignment(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := l.db.Preload("Task").Preload("Metrics").
		Preload("ManualMetricSubmissions").First(&assignment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("获取任务分配失败: %w", err)
	}
	return &assignment, nil
}

// ListUserAssignments 获取博主自己的任务分配列表
func (l *AssignmentLogic) ListUserAssignments(userID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := l.db.Preload("Task").Preload("Metrics").
		Preload("ManualMetricSubmissions").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("获取任务分配列表失败: %w", err)
	}
	return assignments, nil
}

// ListAllAssignments 管理端获取全部任务分配
func (l *AssignmentLogic) ListAllAssignments() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := l.db.Preload("Task").Preload("Metrics").
		Preload("ManualMetricSubmissions").
		Order("created_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("获取任务分配列表失败: %w", err)
	}
	return assignments, nil
}

// Submit 博主提交作品链接。accepted/rejected 状态可以提交，
// 提交后进入 submitted 并清空上次的驳回原因。
func (l *AssignmentLogic) Submit(id, userID uint, postLink string) (*model.Assignment, error) {
	assignment, err := l.GetAssignment(id)
	if err != nil {
		return nil, err
	}
	if assignment.UserID != userID {
		return nil, ErrNotAssignmentOwner
	}
	if strings.TrimSpace(postLink) == "" {
		return nil, ErrPostLinkRequired
	}
	if err := checkTransition(assignment.Status, model.AssignmentStatusSubmitted); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"post_link":     postLink,
		"status":        model.AssignmentStatusSubmitted,
		"reject_reason": "",
	}
	if err := l.db.Model(assignment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("提交任务分配失败: %w", err)
	}
	return assignment, nil
}

// StartReview 管理员将已提交的分配转入审核
func (l *AssignmentLogic) StartReview(id uint) (*model.Assignment, error) {
	assignment, err := l.GetAssignment(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(assignment.Status, model.AssignmentStatusInReview); err != nil {
		return nil, err
	}

	if err := l.db.Model(assignment).
		Update("status", model.AssignmentStatusInReview).Error; err != nil {
		return nil, fmt.Errorf("转入审核失败: %w", err)
	}
	return assignment, nil
}

// Approve 管理员通过审核，分配进入 completed 终态。
// 只有手工数据审核通过（收益已确认）的分配才能结算完成，
// 防止用未经核实的自动数据结账。
func (l *AssignmentLogic) Approve(id uint) (*model.Assignment, error) {
	assignment, err := l.GetAssignment(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(assignment.Status, model.AssignmentStatusCompleted); err != nil {
		return nil, err
	}
	if assignment.MetricSyncStatus != model.MetricSyncStatusManualApproved {
		return nil, ErrRevenueNotVerified
	}

	updates := map[string]interface{}{
		"status":        model.AssignmentStatusCompleted,
		"reject_reason": "",
	}
	if err := l.db.Model(assignment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("完成任务分配失败: %w", err)
	}
	return assignment, nil
}

// Reject 管理员驳回，必须填写原因。驳回后博主可以重新提交。
func (l *AssignmentLogic) Reject(id uint, reason string) (*model.Assignment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	assignment, err := l.GetAssignment(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(assignment.Status, model.AssignmentStatusRejected); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":        model.AssignmentStatusRejected,
		"reject_reason": reason,
	}
	if err := l.db.Model(assignment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("驳回任务分配失败: %w", err)
	}
	return assignment, nil
}

// CancelForTask 任务被取消时，批量取消其下所有未结束的分配
func (l *AssignmentLogic) CancelForTask(taskID uint) error {
	err := l.db.Model(&model.Assignment{}).
		Where("task_id = ? AND status IN ?", taskID, []model.AssignmentStatus{
			model.AssignmentStatusAccepted,
			model.AssignmentStatusSubmitted,
			model.AssignmentStatusInReview,
			model.AssignmentStatusRejected,
		}).
		Update("status", model.AssignmentStatusCancelled).Error
	if err != nil {
		return fmt.Errorf("取消任务分配失败: %w", err)
	}
	return nil
}
