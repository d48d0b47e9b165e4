package logic

import (
	"fmt"
	"math"
	"time"

	"github.com/blues/bts/internal/model"
	"gorm.io/gorm"
)

// DashboardLogic 博主工作台统计
type DashboardLogic struct {
	db *gorm.DB
}

// NewDashboardLogic 创建工作台业务逻辑
func NewDashboardLogic(db *gorm.DB) *DashboardLogic {
	return &DashboardLogic{db: db}
}

// BloggerStats 博主工作台统计数据
type BloggerStats struct {
	AvailableTasks        int64   `json:"available_tasks"`
	InProgressAssignments int64   `json:"in_progress_assignments"`
	CompletedAssignments  int64   `json:"completed_assignments"`
	AcceptedAssignments   int64   `json:"accepted_assignments"`
	SubmittedAssignments  int64   `json:"submitted_assignments"`
	InReviewAssignments   int64   `json:"in_review_assignments"`
	RejectedAssignments   int64   `json:"rejected_assignments"`
	CancelledAssignments  int64   `json:"cancelled_assignments"`
	TotalRevenue          float64 `json:"total_revenue"`
}

// BloggerDashboard 博主工作台
type BloggerDashboard struct {
	GeneratedAt      time.Time          `json:"generated_at"`
	Stats            BloggerStats       `json:"stats"`
	RecentActivities []model.Assignment `json:"recent_activities"`
}

// GetBloggerDashboard 汇总博主的任务与收益统计。
// 累计收益只统计 metric_sync_status=manual_approved 的分配；
// 自动同步的收益是预采集数据，不计入结算口径。
func (l *DashboardLogic) GetBloggerDashboard(userID uint) (*BloggerDashboard, error) {
	var assignments []model.Assignment
	err := l.db.Preload("Task").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("获取任务分配失败: %w", err)
	}

	var availableTasks int64
	err = l.db.Model(&model.Task{}).
		Where("status = ?", model.TaskStatusPublished).Count(&availableTasks).Error
	if err != nil {
		return nil, fmt.Errorf("统计可用任务失败: %w", err)
	}

	stats := BloggerStats{AvailableTasks: availableTasks}
	for _, assignment := range assignments {
		if assignment.IsRevenueSettled() {
			stats.TotalRevenue += assignment.Revenue
		}
		switch assignment.Status {
		case model.AssignmentStatusAccepted:
			stats.AcceptedAssignments++
		case model.AssignmentStatusSubmitted:
			stats.SubmittedAssignments++
		case model.AssignmentStatusInReview:
			stats.InReviewAssignments++
		case model.AssignmentStatusCompleted:
			stats.CompletedAssignments++
		case model.AssignmentStatusRejected:
			stats.RejectedAssignments++
		case model.AssignmentStatusCancelled:
			stats.CancelledAssignments++
		}
	}
	stats.InProgressAssignments = stats.AcceptedAssignments +
		stats.SubmittedAssignments + stats.InReviewAssignments
	stats.TotalRevenue = math.Round(stats.TotalRevenue*100) / 100

	recent := assignments
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return &BloggerDashboard{
		GeneratedAt:      time.Now(),
		Stats:            stats,
		RecentActivities: recent,
	}, nil
}
