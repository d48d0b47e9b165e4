package model

import (
	"strings"
	"time"
)

// SocialPlatform 支持的社交平台（封闭枚举，新平台需要代码变更）
type SocialPlatform string

const (
	PlatformDouyin      SocialPlatform = "douyin"      // 抖音
	PlatformXiaohongshu SocialPlatform = "xiaohongshu" // 小红书
	PlatformWeibo       SocialPlatform = "weibo"       // 微博
)

// platformAliases 平台别名表，任务上的平台字段允许别名和中文名
var platformAliases = map[string]SocialPlatform{
	"douyin":      PlatformDouyin,
	"抖音":          PlatformDouyin,
	"dy":          PlatformDouyin,
	"xiaohongshu": PlatformXiaohongshu,
	"小红书":         PlatformXiaohongshu,
	"xhs":         PlatformXiaohongshu,
	"weibo":       PlatformWeibo,
	"微博":          PlatformWeibo,
	"wb":          PlatformWeibo,
}

// NormalizePlatform 归一化平台标识，无法识别时返回 false
func NormalizePlatform(platform string) (SocialPlatform, bool) {
	key := strings.TrimSpace(platform)
	if p, ok := platformAliases[strings.ToLower(key)]; ok {
		return p, true
	}
	p, ok := platformAliases[key]
	return p, ok
}

// SocialAccount 博主的平台子账号
type SocialAccount struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID        uint           `json:"user_id" gorm:"not null;index:idx_user_platform"`
	Platform      SocialPlatform `json:"platform" gorm:"not null;index:idx_user_platform"`
	AccountName   string         `json:"account_name"`
	HomepageURL   string         `json:"homepage_url"`
	FollowerCount int            `json:"follower_count" gorm:"default:0"`
}
