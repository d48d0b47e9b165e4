package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/bts/internal/model"
	"gorm.io/gorm"
)

// UserLogic 用户账户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// GetUser 获取用户
func (l *UserLogic) GetUser(id uint) (*model.User, error) {
	var user model.User
	if err := l.db.Preload("SocialAccounts").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("获取用户失败: %w", err)
	}
	return &user, nil
}

// ListUsers 管理端获取全部用户
func (l *UserLogic) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := l.db.Preload("SocialAccounts").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("获取用户列表失败: %w", err)
	}
	return users, nil
}

// ReviewUser 管理员推进博主账户的审核状态。
// 审核流程：pending → under_review → approved/rejected，
// rejected 需要回到 under_review 才能重新裁定；approved 不可回退。
// 任何否定性的裁定都必须填写原因。
func (l *UserLogic) ReviewUser(id uint, next model.ReviewStatus, reason string) (*model.User, error) {
	user, err := l.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleBlogger {
		return nil, ErrNotBlogger
	}

	if err := checkUserReviewTransition(user.ReviewStatus, next); err != nil {
		return nil, err
	}
	if next == model.ReviewStatusRejected && strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	now := time.Now()
	updates := map[string]interface{}{
		"review_status": next,
		"review_reason": reason,
		"reviewed_at":   now,
	}
	if err := l.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新审核状态失败: %w", err)
	}
	return user, nil
}

func checkUserReviewTransition(current, next model.ReviewStatus) error {
	switch current {
	case model.ReviewStatusPending:
		if next != model.ReviewStatusUnderReview {
			return errors.New("待审核用户必须先进入审核中")
		}
	case model.ReviewStatusUnderReview:
		if next != model.ReviewStatusApproved && next != model.ReviewStatusRejected {
			return errors.New("审核中用户只能被通过或驳回")
		}
	case model.ReviewStatusApproved:
		if next != model.ReviewStatusApproved {
			return errors.New("已通过的用户不能回退审核状态")
		}
	case model.ReviewStatusRejected:
		if next != model.ReviewStatusUnderReview {
			return errors.New("被驳回的用户需要重新进入审核中")
		}
	}
	return nil
}

// UpdateWeight 管理员调整博主收益权重。权重只影响之后的收益计算，
// 历史分配的收益不回溯重算。
func (l *UserLogic) UpdateWeight(id uint, weight float64) (*model.User, error) {
	if weight <= 0 {
		return nil, errors.New("收益权重必须大于 0")
	}

	user, err := l.GetUser(id)
	if err != nil {
		return nil, err
	}
	if err := l.db.Model(user).Update("weight", weight).Error; err != nil {
		return nil, fmt.Errorf("更新收益权重失败: %w", err)
	}
	return user, nil
}
