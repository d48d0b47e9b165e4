package logic

import (
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLogicDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewTestDB(t,
		&model.User{},
		&model.SocialAccount{},
		&model.Task{},
		&model.Assignment{},
		&model.Metric{},
		&model.ManualMetricSubmission{},
		&model.PlatformMetricConfig{},
	)
}

func createBlogger(t *testing.T, db *gorm.DB, email string, weight float64) *model.User {
	t.Helper()
	user := &model.User{
		Email:          email,
		Username:       email,
		HashedPassword: "x",
		Role:           model.RoleBlogger,
		IsActive:       true,
		ReviewStatus:   model.ReviewStatusApproved,
		Weight:         weight,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPublishedTask(t *testing.T, db *gorm.DB, baseReward float64, acceptLimit *int) *model.Task {
	t.Helper()
	task := &model.Task{
		Title:       "新品推广",
		Platform:    string(model.PlatformDouyin),
		BaseReward:  baseReward,
		AcceptLimit: acceptLimit,
		Status:      model.TaskStatusPublished,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func createAssignment(t *testing.T, db *gorm.DB, taskID, userID uint, status model.AssignmentStatus, syncStatus model.MetricSyncStatus) *model.Assignment {
	t.Helper()
	assignment := &model.Assignment{
		TaskID:           taskID,
		UserID:           userID,
		Status:           status,
		MetricSyncStatus: syncStatus,
	}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

func reloadAssignment(t *testing.T, db *gorm.DB, id uint) *model.Assignment {
	t.Helper()
	var assignment model.Assignment
	require.NoError(t, db.First(&assignment, id).Error)
	return &assignment
}
