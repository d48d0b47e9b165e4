package model

import (
	"time"
)

// Task 推广任务模型
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Platform    string `json:"platform" gorm:"not null;index"`

	// 报酬信息
	BaseReward  float64 `json:"base_reward" gorm:"not null;default:0"` // 基础报酬
	AcceptLimit *int    `json:"accept_limit"`                          // 接单上限，空表示不限

	// 投放说明
	Instructions string   `json:"instructions" gorm:"type:text"`
	Attachments  []string `json:"attachments" gorm:"serializer:json"`

	// 状态
	Status TaskStatus `json:"status" gorm:"default:'draft';index"`

	// 关联
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:TaskID"`
}

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusDraft     TaskStatus = "draft"     // 草稿
	TaskStatusPublished TaskStatus = "published" // 已发布
	TaskStatusCancelled TaskStatus = "cancelled" // 已取消
)
