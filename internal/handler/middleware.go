package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/bts/internal/logic"
	"github.com/blues/bts/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// CurrentUser 从 X-User-ID 请求头解析当前用户并加载账户。
// 登录鉴权由上游网关完成，这里只做账户存在性和状态检查。
func CurrentUser(db *gorm.DB) gin.HandlerFunc {
	userLogic := logic.NewUserLogic(db)

	return func(c *gin.Context) {
		rawID := c.GetHeader("X-User-ID")
		userID, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			ErrorResponse(c, http.StatusUnauthorized, "缺少有效的用户标识")
			c.Abort()
			return
		}

		user, err := userLogic.GetUser(uint(userID))
		if err != nil {
			ErrorResponse(c, http.StatusUnauthorized, "用户不存在")
			c.Abort()
			return
		}
		if !user.IsActive {
			ErrorResponse(c, http.StatusForbidden, "账户已停用")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireApprovedBlogger 只允许审核通过的博主访问
func RequireApprovedBlogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil || user.Role != model.RoleBlogger || !user.IsApproved() {
			ErrorResponse(c, http.StatusForbidden, "需要审核通过的博主账户")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 只允许管理员访问
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil || user.Role != model.RoleAdmin {
			ErrorResponse(c, http.StatusForbidden, "需要管理员账户")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCurrentUser 获取中间件放入上下文的当前用户
func GetCurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}
