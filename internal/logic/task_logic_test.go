package logic

import (
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskDefaultsToDraft(t *testing.T) {
	db := newLogicDB(t)
	l := NewTaskLogic(db)

	task := &model.Task{Title: "新品推广", Platform: "douyin", BaseReward: 100}
	require.NoError(t, l.CreateTask(task))
	assert.Equal(t, model.TaskStatusDraft, task.Status)
}

func TestPublishTask(t *testing.T) {
	db := newLogicDB(t)
	l := NewTaskLogic(db)

	task := &model.Task{Title: "新品推广", Platform: "douyin"}
	require.NoError(t, l.CreateTask(task))

	_, err := l.Publish(task.ID)
	require.NoError(t, err)

	got, err := l.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPublished, got.Status)
}

func TestListTasksByStatus(t *testing.T) {
	db := newLogicDB(t)
	l := NewTaskLogic(db)

	createPublishedTask(t, db, 100, nil)
	draft := &model.Task{Title: "草稿", Platform: "weibo", Status: model.TaskStatusDraft}
	require.NoError(t, db.Create(draft).Error)

	published, err := l.ListPublishedTasks()
	require.NoError(t, err)
	assert.Len(t, published, 1)

	all, err := l.ListTasks("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCancelTaskCascadesToAssignments(t *testing.T) {
	db := newLogicDB(t)
	l := NewTaskLogic(db)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	task := createPublishedTask(t, db, 100, nil)

	active := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusNormal)
	done := createAssignment(t, db, task.ID, user.ID,
		model.AssignmentStatusCompleted, model.MetricSyncStatusManualApproved)

	_, err := l.Cancel(task.ID)
	require.NoError(t, err)

	got, err := l.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCancelled, got.Status)

	assert.Equal(t, model.AssignmentStatusCancelled, reloadAssignment(t, db, active.ID).Status)
	assert.Equal(t, model.AssignmentStatusCompleted, reloadAssignment(t, db, done.ID).Status)
}

func TestTaskNotFound(t *testing.T) {
	db := newLogicDB(t)
	l := NewTaskLogic(db)

	_, err := l.GetTask(9999)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCountActiveAssignmentsMap(t *testing.T) {
	db := newLogicDB(t)
	l := NewTaskLogic(db)
	first := createPublishedTask(t, db, 100, nil)
	second := createPublishedTask(t, db, 200, nil)
	user := createBlogger(t, db, "blogger@example.com", 1.0)
	other := createBlogger(t, db, "other@example.com", 1.0)

	createAssignment(t, db, first.ID, user.ID,
		model.AssignmentStatusAccepted, model.MetricSyncStatusNormal)
	createAssignment(t, db, first.ID, other.ID,
		model.AssignmentStatusSubmitted, model.MetricSyncStatusNormal)
	// 已取消的不计入
	createAssignment(t, db, second.ID, user.ID,
		model.AssignmentStatusCancelled, model.MetricSyncStatusNormal)

	counts, err := l.CountActiveAssignmentsMap([]uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[first.ID])
	assert.EqualValues(t, 0, counts[second.ID])
}
