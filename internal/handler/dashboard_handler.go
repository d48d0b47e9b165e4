package handler

import (
	"net/http"

	"github.com/blues/bts/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler 博主工作台接口
type DashboardHandler struct {
	dashboardLogic *logic.DashboardLogic
}

// NewDashboardHandler 创建工作台接口
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardLogic: logic.NewDashboardLogic(db),
	}
}

// GetBloggerDashboard 获取博主工作台统计
func (h *DashboardHandler) GetBloggerDashboard(c *gin.Context) {
	user := GetCurrentUser(c)
	dashboard, err := h.dashboardLogic.GetBloggerDashboard(user.ID)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", dashboard)
}
