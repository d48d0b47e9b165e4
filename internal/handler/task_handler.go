package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/bts/internal/logic"
	"github.com/blues/bts/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaskHandler 博主端任务接口
type TaskHandler struct {
	taskLogic       *logic.TaskLogic
	assignmentLogic *logic.AssignmentLogic
}

// NewTaskHandler 创建任务接口
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskLogic:       logic.NewTaskLogic(db),
		assignmentLogic: logic.NewAssignmentLogic(db),
	}
}

// ListTasks 获取已发布任务列表，带接单余量
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskLogic.ListPublishedTasks()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	taskIDs := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}
	countMap, err := h.taskLogic.CountActiveAssignmentsMap(taskIDs)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, NewTaskView(task, countMap[task.ID]))
	}
	SuccessResponse(c, http.StatusOK, "ok", views)
}

// GetTask 获取单个已发布任务
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	task, err := h.taskLogic.GetTask(uint(id))
	if err != nil || task.Status != model.TaskStatusPublished {
		ErrorResponse(c, http.StatusNotFound, "任务不存在")
		return
	}

	count, err := h.assignmentLogic.CountActiveAssignments(task.ID)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", NewTaskView(*task, count))
}

// AcceptTask 博主接单
func (h *TaskHandler) AcceptTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	user := GetCurrentUser(c)
	assignment, err := h.assignmentLogic.AcceptTask(uint(id), user.ID)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "接单成功", assignment)
}
