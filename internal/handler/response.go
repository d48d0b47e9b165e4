package handler

import (
	"errors"
	"net/http"

	"github.com/blues/bts/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LogicErrorResponse 把业务错误映射到 HTTP 状态码
func LogicErrorResponse(c *gin.Context, err error) {
	var invalidTransition *logic.InvalidTransitionError

	switch {
	case errors.Is(err, logic.ErrTaskNotFound),
		errors.Is(err, logic.ErrAssignmentNotFound),
		errors.Is(err, logic.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrNotAssignmentOwner):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, logic.ErrTaskFull):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.As(err, &invalidTransition),
		errors.Is(err, logic.ErrPostLinkRequired),
		errors.Is(err, logic.ErrReasonRequired),
		errors.Is(err, logic.ErrRevenueNotVerified),
		errors.Is(err, logic.ErrManualNotRequired),
		errors.Is(err, logic.ErrAlreadyReviewed),
		errors.Is(err, logic.ErrNotBlogger):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
