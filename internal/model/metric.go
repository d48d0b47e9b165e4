package model

import (
	"time"
)

// Metric 互动数据观测记录，只追加不修改
type Metric struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`

	AssignmentID uint `json:"assignment_id" gorm:"not null;index"`

	Likes     int `json:"likes" gorm:"not null;default:0"`
	Favorites int `json:"favorites" gorm:"not null;default:0"`
	Shares    int `json:"shares" gorm:"not null;default:0"`
	Views     int `json:"views" gorm:"not null;default:0"`

	Source MetricSource `json:"source" gorm:"default:'auto';index"`
}

// MetricSource 数据来源
type MetricSource string

const (
	MetricSourceAuto   MetricSource = "auto"   // 自动抓取
	MetricSourceManual MetricSource = "manual" // 手工填报（审核通过后落库）
)
