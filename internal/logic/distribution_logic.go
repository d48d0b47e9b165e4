package logic

import (
	"errors"
	"fmt"
	"sort"

	"github.com/blues/bts/internal/model"
	"gorm.io/gorm"
)

// DistributionLogic 任务派发业务逻辑：圈选符合条件的博主并批量建立分配
type DistributionLogic struct {
	db *gorm.DB
}

// NewDistributionLogic 创建任务派发业务逻辑
func NewDistributionLogic(db *gorm.DB) *DistributionLogic {
	return &DistributionLogic{db: db}
}

// ListEligibleBloggers 列出可以承接该任务的博主：
// 审核通过且启用的博主账户，并且在任务平台上有子账号。
// 平台无法识别时不做平台过滤。
// 排序：权重降序、平均浏览降序、粉丝总量降序、ID 升序。
func (l *DistributionLogic) ListEligibleBloggers(task *model.Task) ([]model.User, error) {
	var users []model.User
	err := l.db.Where("role = ? AND is_active = ? AND review_status = ?",
		model.RoleBlogger, true, model.ReviewStatusApproved).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("获取博主列表失败: %w", err)
	}

	if platform, ok := model.NormalizePlatform(task.Platform); ok {
		var accountUserIDs []uint
		err := l.db.Model(&model.SocialAccount{}).
			Where("platform = ?", platform).
			Distinct("user_id").Pluck("user_id", &accountUserIDs).Error
		if err != nil {
			return nil, fmt.Errorf("获取平台账号失败: %w", err)
		}

		supported := make(map[uint]struct{}, len(accountUserIDs))
		for _, id := range accountUserIDs {
			supported[id] = struct{}{}
		}

		filtered := users[:0]
		for _, user := range users {
			if _, ok := supported[user.ID]; ok {
				filtered = append(filtered, user)
			}
		}
		users = filtered
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Weight != users[j].Weight {
			return users[i].Weight > users[j].Weight
		}
		if users[i].AvgViews != users[j].AvgViews {
			return users[i].AvgViews > users[j].AvgViews
		}
		if users[i].FollowerTotal != users[j].FollowerTotal {
			return users[i].FollowerTotal > users[j].FollowerTotal
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// DistributeResult 派发结果
type DistributeResult struct {
	CreatedCount  int    `json:"created_count"`
	SkippedCount  int    `json:"skipped_existing_count"`
	TargetUserIDs []uint `json:"target_user_ids"`
}

// Distribute 把任务派发给指定博主。已有未取消分配的博主跳过，
// 保持与博主主动接单一致的幂等语义。
func (l *DistributionLogic) Distribute(task *model.Task, targetUserIDs []uint) (*DistributeResult, error) {
	result := &DistributeResult{TargetUserIDs: targetUserIDs}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		for _, userID := range targetUserIDs {
			var existing model.Assignment
			err := tx.Where("task_id = ? AND user_id = ? AND status <> ?",
				task.ID, userID, model.AssignmentStatusCancelled).First(&existing).Error
			if err == nil {
				result.SkippedCount++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := tx.Create(&model.Assignment{
				TaskID:           task.ID,
				UserID:           userID,
				Status:           model.AssignmentStatusAccepted,
				MetricSyncStatus: model.MetricSyncStatusNormal,
			}).Error; err != nil {
				return err
			}
			result.CreatedCount++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("派发任务失败: %w", err)
	}
	return result, nil
}
