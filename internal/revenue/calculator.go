package revenue

import (
	"math"

	"github.com/blues/bts/internal/model"
)

// Config 收益计算使用的权重配置
type Config struct {
	PlatformCoef   float64 `json:"platform_coef"`
	LikeWeight     float64 `json:"like_weight"`
	FavoriteWeight float64 `json:"favorite_weight"`
	ShareWeight    float64 `json:"share_weight"`
	ViewWeight     float64 `json:"view_weight"`
}

// DefaultConfig 无任何配置时的兜底权重
func DefaultConfig() Config {
	return Config{
		PlatformCoef:   1.0,
		LikeWeight:     1.0,
		FavoriteWeight: 2.0,
		ShareWeight:    3.0,
		ViewWeight:     0.01,
	}
}

// EngagementScore 计算互动得分：各项互动数的加权和
func EngagementScore(metric *model.Metric, cfg Config) float64 {
	return float64(metric.Likes)*cfg.LikeWeight +
		float64(metric.Favorites)*cfg.FavoriteWeight +
		float64(metric.Shares)*cfg.ShareWeight +
		float64(metric.Views)*cfg.ViewWeight
}

// Calculate 计算收益：基础报酬 + 互动得分 × 平台系数 × 博主权重，保留两位小数。
// 自动同步和手工审核共用同一计算，保证相同数据得到相同收益。
func Calculate(baseReward, userWeight, engagementScore, platformCoef float64) float64 {
	return round2(baseReward + engagementScore*platformCoef*userWeight)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
