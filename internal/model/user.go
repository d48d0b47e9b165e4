package model

import (
	"time"
)

// User 博主/管理员账户模型
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Phone       string `json:"phone" gorm:"index"`
	Username    string `json:"username" gorm:"not null;index"`
	DisplayName string `json:"display_name"`
	RealName    string `json:"real_name"`
	City        string `json:"city"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`

	// 认证信息（登录鉴权由上游服务处理，这里只保存散列）
	HashedPassword string `json:"-" gorm:"not null"`

	// 账户状态
	Role         Role         `json:"role" gorm:"default:'blogger';index"`
	IsActive     bool         `json:"is_active" gorm:"default:true;index"`
	ReviewStatus ReviewStatus `json:"review_status" gorm:"default:'pending';index"`
	ReviewReason string       `json:"review_reason"`
	ReviewedAt   *time.Time   `json:"reviewed_at"`

	// 收益权重，影响之后的收益计算，不回溯历史收益
	Weight float64 `json:"weight" gorm:"default:1"`

	// 影响力数据
	FollowerTotal int `json:"follower_total" gorm:"default:0"`
	AvgViews      int `json:"avg_views" gorm:"default:0"`

	// 关联
	SocialAccounts []SocialAccount `json:"social_accounts,omitempty" gorm:"foreignKey:UserID"`
	Assignments    []Assignment    `json:"assignments,omitempty" gorm:"foreignKey:UserID"`
}

// Role 账户角色
type Role string

const (
	RoleAdmin   Role = "admin"   // 管理员
	RoleBlogger Role = "blogger" // 博主
)

// ReviewStatus 账户审核状态
type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "pending"      // 待审核
	ReviewStatusUnderReview ReviewStatus = "under_review" // 审核中
	ReviewStatusApproved    ReviewStatus = "approved"     // 审核通过
	ReviewStatusRejected    ReviewStatus = "rejected"     // 审核未通过
)

// IsApproved 账户是否已通过审核
func (u *User) IsApproved() bool {
	return u.ReviewStatus == ReviewStatusApproved
}
