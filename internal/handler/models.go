package handler

import (
	"github.com/blues/bts/internal/model"
)

// SubmitAssignmentRequest 博主提交作品链接
type SubmitAssignmentRequest struct {
	PostLink string `json:"post_link" binding:"required"`
}

// ManualMetricSubmitRequest 博主手工填报互动数据
type ManualMetricSubmitRequest struct {
	Likes     int    `json:"likes" binding:"min=0"`
	Favorites int    `json:"favorites" binding:"min=0"`
	Shares    int    `json:"shares" binding:"min=0"`
	Views     int    `json:"views" binding:"min=0"`
	Note      string `json:"note"`
}

// ManualMetricReviewRequest 管理员审核手工数据
type ManualMetricReviewRequest struct {
	Approved     bool   `json:"approved"`
	ReviewReason string `json:"review_reason"`
}

// AssignmentRejectRequest 管理员驳回任务分配
type AssignmentRejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UserReviewRequest 管理员推进博主审核状态
type UserReviewRequest struct {
	ReviewStatus model.ReviewStatus `json:"review_status" binding:"required"`
	ReviewReason string             `json:"review_reason"`
}

// UserWeightRequest 管理员调整博主收益权重
type UserWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

// TaskDistributeRequest 管理员派发任务
type TaskDistributeRequest struct {
	UserIDs []uint `json:"user_ids"`
	Limit   int    `json:"limit"`
}

// PlatformConfigUpsertRequest 管理员更新平台权重配置
type PlatformConfigUpsertRequest struct {
	PlatformCoef   float64 `json:"platform_coef" binding:"required,gt=0"`
	LikeWeight     float64 `json:"like_weight" binding:"min=0"`
	FavoriteWeight float64 `json:"favorite_weight" binding:"min=0"`
	ShareWeight    float64 `json:"share_weight" binding:"min=0"`
	ViewWeight     float64 `json:"view_weight" binding:"min=0"`
}

// TaskView 博主端任务视图，带接单余量
type TaskView struct {
	model.Task
	AcceptedCount  int64 `json:"accepted_count"`
	RemainingSlots *int  `json:"remaining_slots"`
	IsFull         bool  `json:"is_full"`
}

// NewTaskView 组装任务视图
func NewTaskView(task model.Task, acceptedCount int64) TaskView {
	view := TaskView{Task: task, AcceptedCount: acceptedCount}
	if task.AcceptLimit != nil {
		remaining := *task.AcceptLimit - int(acceptedCount)
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingSlots = &remaining
		view.IsFull = remaining == 0
	}
	return view
}
