package logic

import (
	"context"
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/revenue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newManualMetricLogic(db *gorm.DB) *ManualMetricLogic {
	return NewManualMetricLogic(db, revenue.NewResolver(db, nil))
}

func TestManualSubmitGatedOnSyncStatus(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusNormal)

	_, err := l.Submit(assignment.ID, user.ID, ManualCounts{Likes: 1})
	assert.ErrorIs(t, err, ErrManualNotRequired)
}

func TestManualSubmit(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	submission, err := l.Submit(assignment.ID, user.ID, ManualCounts{
		Likes: 100, Favorites: 10, Shares: 5, Views: 1000, Note: "平台后台截图数据",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ManualMetricReviewStatusPending, submission.ReviewStatus)

	got := reloadAssignment(t, db, assignment.ID)
	assert.Equal(t, model.MetricSyncStatusManualPendingReview, got.MetricSyncStatus)
	// 提交手工数据后进入人工审核环节
	assert.Equal(t, model.AssignmentStatusInReview, got.Status)
	// 未审核之前不产生收益
	assert.Zero(t, got.Revenue)
}

func TestManualSubmitOwnership(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	owner := createBlogger(t, db, "owner@example.com", 1.0)
	other := createBlogger(t, db, "other@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, owner.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	_, err := l.Submit(assignment.ID, other.ID, ManualCounts{Likes: 1})
	assert.ErrorIs(t, err, ErrNotAssignmentOwner)
}

func TestManualReviewApprove(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 2.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	submission, err := l.Submit(assignment.ID, user.ID, ManualCounts{
		Likes: 100, Favorites: 10, Shares: 5, Views: 1000,
	})
	require.NoError(t, err)

	reviewed, err := l.Review(context.Background(), submission.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, model.ManualMetricReviewStatusApproved, reviewed.ReviewStatus)
	assert.NotNil(t, reviewed.ReviewedAt)

	got := reloadAssignment(t, db, assignment.ID)
	assert.Equal(t, model.MetricSyncStatusManualApproved, got.MetricSyncStatus)
	// 100 + 145 * 1.0 * 2.0
	assert.InDelta(t, 390.00, got.Revenue, 1e-9)
	assert.Empty(t, got.LastSyncError)
	assert.NotNil(t, got.LastSyncedAt)
	assert.True(t, got.IsRevenueSettled())
	assert.Equal(t, model.AssignmentStatusInReview, got.Status)

	var metric model.Metric
	require.NoError(t, db.Where("assignment_id = ?", assignment.ID).First(&metric).Error)
	assert.Equal(t, model.MetricSourceManual, metric.Source)
	assert.Equal(t, 100, metric.Likes)
}

func TestManualReviewRejectDefaultReason(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	submission, err := l.Submit(assignment.ID, user.ID, ManualCounts{Likes: 50})
	require.NoError(t, err)

	reviewed, err := l.Review(context.Background(), submission.ID, false, "")
	require.NoError(t, err)
	assert.Equal(t, model.ManualMetricReviewStatusRejected, reviewed.ReviewStatus)

	got := reloadAssignment(t, db, assignment.ID)
	assert.Equal(t, model.MetricSyncStatusManualRejected, got.MetricSyncStatus)
	assert.Equal(t, "手工数据审核未通过", got.LastSyncError)
	assert.Zero(t, got.Revenue)
	assert.False(t, got.IsRevenueSettled())

	// 驳回不落 Metric
	var count int64
	require.NoError(t, db.Model(&model.Metric{}).
		Where("assignment_id = ?", assignment.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestManualReviewRejectThenResubmit(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	first, err := l.Submit(assignment.ID, user.ID, ManualCounts{Likes: 50})
	require.NoError(t, err)
	_, err = l.Review(context.Background(), first.ID, false, "数据与截图不符")
	require.NoError(t, err)

	second, err := l.Submit(assignment.ID, user.ID, ManualCounts{Likes: 60})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.MetricSyncStatusManualPendingReview,
		reloadAssignment(t, db, assignment.ID).MetricSyncStatus)
}

func TestManualReviewTwice(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	submission, err := l.Submit(assignment.ID, user.ID, ManualCounts{Likes: 50})
	require.NoError(t, err)
	_, err = l.Review(context.Background(), submission.ID, true, "")
	require.NoError(t, err)

	_, err = l.Review(context.Background(), submission.ID, false, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	// 第二次审核不改变既有结果
	got := reloadAssignment(t, db, assignment.ID)
	assert.Equal(t, model.MetricSyncStatusManualApproved, got.MetricSyncStatus)
}

func TestManualReviewApproveUsesPlatformConfig(t *testing.T) {
	db := newLogicDB(t)
	require.NoError(t, db.Create(&model.PlatformMetricConfig{
		Platform:       string(model.PlatformDouyin),
		PlatformCoef:   2.0,
		LikeWeight:     1,
		FavoriteWeight: 2,
		ShareWeight:    3,
		ViewWeight:     0.01,
	}).Error)

	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	assignment := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	submission, err := l.Submit(assignment.ID, user.ID, ManualCounts{
		Likes: 100, Favorites: 10, Shares: 5, Views: 1000,
	})
	require.NoError(t, err)
	_, err = l.Review(context.Background(), submission.ID, true, "")
	require.NoError(t, err)

	// 100 + 145 * 2.0 * 1.0
	assert.InDelta(t, 390.00, reloadAssignment(t, db, assignment.ID).Revenue, 1e-9)
}

func TestManualReviewListPending(t *testing.T) {
	db := newLogicDB(t)
	l := newManualMetricLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)
	first := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusManualRequired)

	submission, err := l.Submit(first.ID, user.ID, ManualCounts{Likes: 1})
	require.NoError(t, err)

	pending, err := l.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, submission.ID, pending[0].ID)

	_, err = l.Review(context.Background(), submission.ID, true, "")
	require.NoError(t, err)

	pending, err = l.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}
