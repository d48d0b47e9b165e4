package logic

import (
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createBloggerWithAccount(t *testing.T, db *gorm.DB, email string, weight float64, avgViews int, platform model.SocialPlatform) *model.User {
	t.Helper()
	user := createBlogger(t, db, email, weight)
	require.NoError(t, db.Model(user).Update("avg_views", avgViews).Error)
	user.AvgViews = avgViews
	require.NoError(t, db.Create(&model.SocialAccount{
		UserID:   user.ID,
		Platform: platform,
	}).Error)
	return user
}

func TestListEligibleBloggers(t *testing.T) {
	db := newLogicDB(t)
	l := NewDistributionLogic(db)
	task := createPublishedTask(t, db, 100, nil)

	low := createBloggerWithAccount(t, db, "low@example.com", 1.0, 100, model.PlatformDouyin)
	high := createBloggerWithAccount(t, db, "high@example.com", 2.0, 100, model.PlatformDouyin)
	busy := createBloggerWithAccount(t, db, "busy@example.com", 1.0, 500, model.PlatformDouyin)

	// 平台不匹配的博主被过滤
	createBloggerWithAccount(t, db, "weibo@example.com", 3.0, 900, model.PlatformWeibo)

	// 未通过审核的博主被过滤
	pending := createBloggerWithAccount(t, db, "pending@example.com", 3.0, 900, model.PlatformDouyin)
	require.NoError(t, db.Model(pending).Update("review_status", model.ReviewStatusPending).Error)

	users, err := l.ListEligibleBloggers(task)
	require.NoError(t, err)
	require.Len(t, users, 3)
	// 权重降序，同权重按平均浏览降序
	assert.Equal(t, high.ID, users[0].ID)
	assert.Equal(t, busy.ID, users[1].ID)
	assert.Equal(t, low.ID, users[2].ID)
}

func TestListEligibleBloggersUnknownPlatformSkipsFilter(t *testing.T) {
	db := newLogicDB(t)
	l := NewDistributionLogic(db)
	task := &model.Task{Title: "线下活动", Platform: "offline", Status: model.TaskStatusPublished}
	require.NoError(t, db.Create(task).Error)

	createBloggerWithAccount(t, db, "a@example.com", 1.0, 100, model.PlatformDouyin)
	createBlogger(t, db, "b@example.com", 1.0)

	users, err := l.ListEligibleBloggers(task)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListEligibleBloggersPlatformAlias(t *testing.T) {
	db := newLogicDB(t)
	l := NewDistributionLogic(db)
	task := &model.Task{Title: "种草", Platform: "小红书", Status: model.TaskStatusPublished}
	require.NoError(t, db.Create(task).Error)

	matched := createBloggerWithAccount(t, db, "xhs@example.com", 1.0, 100, model.PlatformXiaohongshu)
	createBloggerWithAccount(t, db, "dy@example.com", 1.0, 100, model.PlatformDouyin)

	users, err := l.ListEligibleBloggers(task)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, matched.ID, users[0].ID)
}

func TestDistribute(t *testing.T) {
	db := newLogicDB(t)
	l := NewDistributionLogic(db)
	task := createPublishedTask(t, db, 100, nil)
	first := createBlogger(t, db, "a@example.com", 1.0)
	second := createBlogger(t, db, "b@example.com", 1.0)

	// first 已经主动接单，派发时跳过
	createAssignment(t, db, task.ID, first.ID,
		model.AssignmentStatusAccepted, model.MetricSyncStatusNormal)

	result, err := l.Distribute(task, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedCount)

	var count int64
	require.NoError(t, db.Model(&model.Assignment{}).
		Where("task_id = ?", task.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var created model.Assignment
	require.NoError(t, db.Where("task_id = ? AND user_id = ?", task.ID, second.ID).
		First(&created).Error)
	assert.Equal(t, model.AssignmentStatusAccepted, created.Status)
}
