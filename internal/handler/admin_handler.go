package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blues/bts/internal/logic"
	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/revenue"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler 管理端接口
type AdminHandler struct {
	db                *gorm.DB
	taskLogic         *logic.TaskLogic
	userLogic         *logic.UserLogic
	assignmentLogic   *logic.AssignmentLogic
	manualLogic       *logic.ManualMetricLogic
	distributionLogic *logic.DistributionLogic
	resolver          *revenue.Resolver
}

// NewAdminHandler 创建管理端接口
func NewAdminHandler(db *gorm.DB, resolver *revenue.Resolver) *AdminHandler {
	return &AdminHandler{
		db:                db,
		taskLogic:         logic.NewTaskLogic(db),
		userLogic:         logic.NewUserLogic(db),
		assignmentLogic:   logic.NewAssignmentLogic(db),
		manualLogic:       logic.NewManualMetricLogic(db, resolver),
		distributionLogic: logic.NewDistributionLogic(db),
		resolver:          resolver,
	}
}

// ---- 用户管理 ----

// ListUsers 获取全部用户
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userLogic.ListUsers()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", users)
}

// ReviewUser 推进博主审核状态
func (h *AdminHandler) ReviewUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	var req UserReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.ReviewUser(uint(id), req.ReviewStatus, req.ReviewReason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "审核状态已更新", user)
}

// UpdateUserWeight 调整博主收益权重
func (h *AdminHandler) UpdateUserWeight(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	var req UserWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.UpdateWeight(uint(id), req.Weight)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "收益权重已更新", user)
}

// ---- 任务管理 ----

// ListTasks 获取任务列表，可按状态过滤
func (h *AdminHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskLogic.ListTasks(model.TaskStatus(c.Query("status")))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", tasks)
}

// CreateTask 创建任务
func (h *AdminHandler) CreateTask(c *gin.Context) {
	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskLogic.CreateTask(&task); err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "任务创建成功", task)
}

// UpdateTask 编辑任务
func (h *AdminHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskLogic.UpdateTask(uint(id), updates)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "任务已更新", task)
}

// PublishTask 发布任务
func (h *AdminHandler) PublishTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	task, err := h.taskLogic.Publish(uint(id))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "任务已发布", task)
}

// CancelTask 取消任务并取消其下的分配
func (h *AdminHandler) CancelTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	task, err := h.taskLogic.Cancel(uint(id))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "任务已取消", task)
}

// ---- 任务派发 ----

// ListEligibleBloggers 获取任务的可派发博主
func (h *AdminHandler) ListEligibleBloggers(c *gin.Context) {
	task, ok := h.loadPublishedTask(c)
	if !ok {
		return
	}

	bloggers, err := h.distributionLogic.ListEligibleBloggers(task)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit > 0 && len(bloggers) > limit {
		bloggers = bloggers[:limit]
	}
	SuccessResponse(c, http.StatusOK, "ok", bloggers)
}

// DistributeTask 把任务派发给指定博主或按排序取前 N 个
func (h *AdminHandler) DistributeTask(c *gin.Context) {
	task, ok := h.loadPublishedTask(c)
	if !ok {
		return
	}

	var req TaskDistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	eligible, err := h.distributionLogic.ListEligibleBloggers(task)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	eligibleIDs := make(map[uint]struct{}, len(eligible))
	for _, user := range eligible {
		eligibleIDs[user.ID] = struct{}{}
	}

	var targetUserIDs []uint
	if len(req.UserIDs) > 0 {
		seen := make(map[uint]struct{})
		for _, userID := range req.UserIDs {
			if _, dup := seen[userID]; dup {
				continue
			}
			seen[userID] = struct{}{}
			if _, ok := eligibleIDs[userID]; !ok {
				ErrorResponse(c, http.StatusBadRequest, "存在不符合任务平台条件的博主")
				return
			}
			targetUserIDs = append(targetUserIDs, userID)
		}
	} else {
		limit := req.Limit
		if limit <= 0 || limit > len(eligible) {
			limit = len(eligible)
		}
		for _, user := range eligible[:limit] {
			targetUserIDs = append(targetUserIDs, user.ID)
		}
	}

	if len(targetUserIDs) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有可派发的博主")
		return
	}

	result, err := h.distributionLogic.Distribute(task, targetUserIDs)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "派发完成", result)
}

func (h *AdminHandler) loadPublishedTask(c *gin.Context) (*model.Task, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的任务ID")
		return nil, false
	}

	task, err := h.taskLogic.GetTask(uint(id))
	if err != nil {
		LogicErrorResponse(c, err)
		return nil, false
	}
	if task.Status != model.TaskStatusPublished {
		ErrorResponse(c, http.StatusBadRequest, "只有已发布的任务可以派发")
		return nil, false
	}
	return task, true
}

// ---- 任务分配管理 ----

// ListAssignments 获取全部任务分配
func (h *AdminHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignmentLogic.ListAllAssignments()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", assignments)
}

// StartAssignmentReview 把已提交的分配转入审核
func (h *AdminHandler) StartAssignmentReview(c *gin.Context) {
	id, ok := parseIDParam(c, "无效的任务分配ID")
	if !ok {
		return
	}

	assignment, err := h.assignmentLogic.StartReview(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已转入审核", assignment)
}

// ApproveAssignment 审核通过，分配完成结算
func (h *AdminHandler) ApproveAssignment(c *gin.Context) {
	id, ok := parseIDParam(c, "无效的任务分配ID")
	if !ok {
		return
	}

	assignment, err := h.assignmentLogic.Approve(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "任务分配已完成", assignment)
}

// RejectAssignment 驳回任务分配，必须填写原因
func (h *AdminHandler) RejectAssignment(c *gin.Context) {
	id, ok := parseIDParam(c, "无效的任务分配ID")
	if !ok {
		return
	}

	var req AssignmentRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	assignment, err := h.assignmentLogic.Reject(id, req.Reason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "任务分配已驳回", assignment)
}

// ---- 手工数据审核 ----

// ListPendingManualMetrics 获取待审核的手工数据
func (h *AdminHandler) ListPendingManualMetrics(c *gin.Context) {
	submissions, err := h.manualLogic.ListPending()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", submissions)
}

// ReviewManualMetric 审核手工数据
func (h *AdminHandler) ReviewManualMetric(c *gin.Context) {
	id, ok := parseIDParam(c, "无效的手工数据ID")
	if !ok {
		return
	}

	var req ManualMetricReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	submission, err := h.manualLogic.Review(c.Request.Context(), id, req.Approved, req.ReviewReason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "审核完成", submission)
}

// ---- 平台权重配置 ----

// ListPlatformConfigs 获取全部平台权重配置
func (h *AdminHandler) ListPlatformConfigs(c *gin.Context) {
	var configs []model.PlatformMetricConfig
	if err := h.db.Find(&configs).Error; err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", configs)
}

// UpsertPlatformConfig 新建或更新平台权重配置，并失效对应缓存
func (h *AdminHandler) UpsertPlatformConfig(c *gin.Context) {
	platform := c.Param("platform")

	var req PlatformConfigUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var cfg model.PlatformMetricConfig
	err := h.db.Where("platform = ?", platform).First(&cfg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		LogicErrorResponse(c, err)
		return
	}

	cfg.Platform = platform
	cfg.PlatformCoef = req.PlatformCoef
	cfg.LikeWeight = req.LikeWeight
	cfg.FavoriteWeight = req.FavoriteWeight
	cfg.ShareWeight = req.ShareWeight
	cfg.ViewWeight = req.ViewWeight

	if err := h.db.Save(&cfg).Error; err != nil {
		LogicErrorResponse(c, err)
		return
	}

	// default 行影响所有平台的回退结果，整体失效
	if platform == model.DefaultPlatformKey {
		h.resolver.InvalidateAll(c.Request.Context())
	} else {
		h.resolver.Invalidate(c.Request.Context(), platform)
	}

	SuccessResponse(c, http.StatusOK, "平台配置已更新", cfg)
}

func parseIDParam(c *gin.Context, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}
