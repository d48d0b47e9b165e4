package model

import (
	"time"
)

// Assignment 任务分配模型，一个博主对一个任务的认领
type Assignment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID uint `json:"task_id" gorm:"not null;index"`
	UserID uint `json:"user_id" gorm:"not null;index"`

	// 主流程状态
	Status       AssignmentStatus `json:"status" gorm:"default:'accepted';index"`
	PostLink     string           `json:"post_link"`
	RejectReason string           `json:"reject_reason"`

	// 数据同步子流程状态
	MetricSyncStatus MetricSyncStatus `json:"metric_sync_status" gorm:"default:'normal';index"`
	LastSyncError    string           `json:"last_sync_error"`
	LastSyncedAt     *time.Time       `json:"last_synced_at"`

	// 收益，总是被最近一次成功的收益计算覆盖，不做累加
	Revenue float64 `json:"revenue" gorm:"default:0"`

	// 关联
	Task                    *Task                    `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	User                    *User                    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Metrics                 []Metric                 `json:"metrics,omitempty" gorm:"foreignKey:AssignmentID"`
	ManualMetricSubmissions []ManualMetricSubmission `json:"manual_metric_submissions,omitempty" gorm:"foreignKey:AssignmentID"`
}

// AssignmentStatus 任务分配主流程状态
type AssignmentStatus string

const (
	AssignmentStatusAccepted  AssignmentStatus = "accepted"  // 已接单
	AssignmentStatusSubmitted AssignmentStatus = "submitted" // 已提交链接
	AssignmentStatusInReview  AssignmentStatus = "in_review" // 审核中
	AssignmentStatusCompleted AssignmentStatus = "completed" // 已完成（终态）
	AssignmentStatusRejected  AssignmentStatus = "rejected"  // 已驳回，允许重新提交
	AssignmentStatusCancelled AssignmentStatus = "cancelled" // 已取消（终态）
)

// MetricSyncStatus 数据同步子流程状态
type MetricSyncStatus string

const (
	MetricSyncStatusNormal              MetricSyncStatus = "normal"                // 自动同步正常
	MetricSyncStatusManualRequired      MetricSyncStatus = "manual_required"       // 自动同步失败，需要手工填报
	MetricSyncStatusManualPendingReview MetricSyncStatus = "manual_pending_review" // 手工数据待审核
	MetricSyncStatusManualApproved      MetricSyncStatus = "manual_approved"       // 手工数据审核通过，收益计入结算
	MetricSyncStatusManualRejected      MetricSyncStatus = "manual_rejected"       // 手工数据被驳回，可重新填报
)

// IsRevenueSettled 收益是否计入结算。只有手工审核通过的收益才是可结算收益，
// 自动同步的收益仅作预采集展示。
func (a *Assignment) IsRevenueSettled() bool {
	return a.MetricSyncStatus == MetricSyncStatusManualApproved
}
