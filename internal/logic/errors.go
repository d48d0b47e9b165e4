package logic

import (
	"errors"
	"fmt"

	"github.com/blues/bts/internal/model"
)

var (
	// ErrTaskNotFound 任务不存在或不可见
	ErrTaskNotFound = errors.New("任务不存在")
	// ErrTaskFull 任务接单名额已满
	ErrTaskFull = errors.New("任务接单名额已满")
	// ErrAssignmentNotFound 任务分配不存在
	ErrAssignmentNotFound = errors.New("任务分配不存在")
	// ErrNotAssignmentOwner 当前用户不是该任务分配的认领人
	ErrNotAssignmentOwner = errors.New("无权操作他人的任务分配")
	// ErrPostLinkRequired 提交时必须带作品链接
	ErrPostLinkRequired = errors.New("作品链接不能为空")
	// ErrReasonRequired 否定性的管理决定必须填写原因
	ErrReasonRequired = errors.New("驳回原因不能为空")
	// ErrRevenueNotVerified 收益未经手工审核确认，不能完成结算
	ErrRevenueNotVerified = errors.New("收益数据未经手工审核确认")
	// ErrManualNotRequired 当前不需要手工填报互动数据
	ErrManualNotRequired = errors.New("当前不需要手工填报互动数据")
	// ErrAlreadyReviewed 手工数据已经审核过，不允许重复审核
	ErrAlreadyReviewed = errors.New("该手工数据已审核过")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrNotBlogger 只有博主账户才能执行该操作
	ErrNotBlogger = errors.New("只有博主账户可以执行该操作")
)

// InvalidTransitionError 非法的任务分配状态流转
type InvalidTransitionError struct {
	From model.AssignmentStatus
	To   model.AssignmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("非法的状态流转: %s -> %s", e.From, e.To)
}
