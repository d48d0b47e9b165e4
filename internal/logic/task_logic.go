package logic

import (
	"errors"
	"fmt"

	"github.com/blues/bts/internal/model"
	"gorm.io/gorm"
)

// TaskLogic 推广任务业务逻辑
type TaskLogic struct {
	db *gorm.DB
}

// NewTaskLogic 创建任务业务逻辑
func NewTaskLogic(db *gorm.DB) *TaskLogic {
	return &TaskLogic{db: db}
}

// CreateTask 创建任务
func (l *TaskLogic) CreateTask(task *model.Task) error {
	if task.Status == "" {
		task.Status = model.TaskStatusDraft
	}
	if err := l.db.Create(task).Error; err != nil {
		return fmt.Errorf("创建任务失败: %w", err)
	}
	return nil
}

// GetTask 获取任务详情
func (l *TaskLogic) GetTask(id uint) (*model.Task, error) {
	var task model.Task
	if err := l.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("获取任务失败: %w", err)
	}
	return &task, nil
}

// ListTasks 管理端获取任务列表，可按状态过滤
func (l *TaskLogic) ListTasks(status model.TaskStatus) ([]model.Task, error) {
	query := l.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("获取任务列表失败: %w", err)
	}
	return tasks, nil
}

// ListPublishedTasks 博主端获取已发布任务列表
func (l *TaskLogic) ListPublishedTasks() ([]model.Task, error) {
	return l.ListTasks(model.TaskStatusPublished)
}

// UpdateTask 管理员编辑任务字段
func (l *TaskLogic) UpdateTask(id uint, updates map[string]interface{}) (*model.Task, error) {
	task, err := l.GetTask(id)
	if err != nil {
		return nil, err
	}
	if err := l.db.Model(task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新任务失败: %w", err)
	}
	return task, nil
}

// Publish 发布任务
func (l *TaskLogic) Publish(id uint) (*model.Task, error) {
	task, err := l.GetTask(id)
	if err != nil {
		return nil, err
	}
	if err := l.db.Model(task).Update("status", model.TaskStatusPublished).Error; err != nil {
		return nil, fmt.Errorf("发布任务失败: %w", err)
	}
	return task, nil
}

// Cancel 取消任务（终态），同时取消其下所有未结束的分配
func (l *TaskLogic) Cancel(id uint) (*model.Task, error) {
	task, err := l.GetTask(id)
	if err != nil {
		return nil, err
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Update("status", model.TaskStatusCancelled).Error; err != nil {
			return err
		}
		return NewAssignmentLogic(tx).CancelForTask(id)
	})
	if err != nil {
		return nil, fmt.Errorf("取消任务失败: %w", err)
	}
	return task, nil
}

// CountActiveAssignmentsMap 批量统计各任务的有效接单数
func (l *TaskLogic) CountActiveAssignmentsMap(taskIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64)
	if len(taskIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		TaskID uint
		Count  int64
	}
	err := l.db.Model(&model.Assignment{}).
		Select("task_id, COUNT(id) AS count").
		Where("task_id IN ? AND status <> ?", taskIDs, model.AssignmentStatusCancelled).
		Group("task_id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("统计接单数失败: %w", err)
	}

	for _, row := range rows {
		result[row.TaskID] = row.Count
	}
	return result, nil
}
