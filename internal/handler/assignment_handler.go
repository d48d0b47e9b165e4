package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/bts/internal/logic"
	"github.com/blues/bts/internal/revenue"
	"github.com/blues/bts/internal/syncer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AssignmentHandler 博主端任务分配接口
type AssignmentHandler struct {
	assignmentLogic *logic.AssignmentLogic
	manualLogic     *logic.ManualMetricLogic
	syncPool        *syncer.Pool
}

// NewAssignmentHandler 创建任务分配接口
func NewAssignmentHandler(db *gorm.DB, resolver *revenue.Resolver, syncPool *syncer.Pool) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentLogic: logic.NewAssignmentLogic(db),
		manualLogic:     logic.NewManualMetricLogic(db, resolver),
		syncPool:        syncPool,
	}
}

// ListMine 获取当前博主的任务分配列表
func (h *AssignmentHandler) ListMine(c *gin.Context) {
	user := GetCurrentUser(c)
	assignments, err := h.assignmentLogic.ListUserAssignments(user.ID)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", assignments)
}

// Submit 提交作品链接。提交成功后异步触发一次自动同步，
// 请求不等待外部抓取结果。
func (h *AssignmentHandler) Submit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务分配ID")
		return
	}

	var req SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user := GetCurrentUser(c)
	assignment, err := h.assignmentLogic.Submit(uint(id), user.ID, req.PostLink)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	h.syncPool.Dispatch(assignment.ID)

	SuccessResponse(c, http.StatusOK, "提交成功", assignment)
}

// SubmitManualMetrics 手工填报互动数据
func (h *AssignmentHandler) SubmitManualMetrics(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务分配ID")
		return
	}

	var req ManualMetricSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user := GetCurrentUser(c)
	submission, err := h.manualLogic.Submit(uint(id), user.ID, logic.ManualCounts{
		Likes:     req.Likes,
		Favorites: req.Favorites,
		Shares:    req.Shares,
		Views:     req.Views,
		Note:      req.Note,
	})
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "手工数据已提交，等待审核", submission)
}
