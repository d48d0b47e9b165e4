package model

import (
	"time"
)

// ManualMetricSubmission 手工填报的互动数据快照，待管理员审核
type ManualMetricSubmission struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"autoCreateTime"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	AssignmentID uint `json:"assignment_id" gorm:"not null;index"`

	Likes     int `json:"likes" gorm:"not null;default:0"`
	Favorites int `json:"favorites" gorm:"not null;default:0"`
	Shares    int `json:"shares" gorm:"not null;default:0"`
	Views     int `json:"views" gorm:"not null;default:0"`

	Note string `json:"note"`

	ReviewStatus ManualMetricReviewStatus `json:"review_status" gorm:"default:'pending';index"`
	ReviewReason string                   `json:"review_reason"`
}

// ManualMetricReviewStatus 手工数据审核状态
type ManualMetricReviewStatus string

const (
	ManualMetricReviewStatusPending  ManualMetricReviewStatus = "pending"  // 待审核
	ManualMetricReviewStatusApproved ManualMetricReviewStatus = "approved" // 审核通过（终态）
	ManualMetricReviewStatusRejected ManualMetricReviewStatus = "rejected" // 审核驳回（终态）
)
