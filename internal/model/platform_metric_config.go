package model

import (
	"time"
)

// DefaultPlatformKey 平台权重配置的兜底行
const DefaultPlatformKey = "default"

// PlatformMetricConfig 各平台的互动数据权重配置
type PlatformMetricConfig struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Platform string `json:"platform" gorm:"uniqueIndex;not null"`

	PlatformCoef   float64 `json:"platform_coef" gorm:"default:1"`
	LikeWeight     float64 `json:"like_weight" gorm:"default:1"`
	FavoriteWeight float64 `json:"favorite_weight" gorm:"default:2"`
	ShareWeight    float64 `json:"share_weight" gorm:"default:3"`
	ViewWeight     float64 `json:"view_weight" gorm:"default:0.01"`
}
