package revenue

import (
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementScore(t *testing.T) {
	cfg := DefaultConfig()

	metric := &model.Metric{Likes: 100, Favorites: 10, Shares: 5, Views: 1000}
	// 100*1 + 10*2 + 5*3 + 1000*0.01 = 145
	assert.InDelta(t, 145.0, EngagementScore(metric, cfg), 1e-9)

	assert.Zero(t, EngagementScore(&model.Metric{}, cfg))
}

func TestCalculate(t *testing.T) {
	score := EngagementScore(&model.Metric{Likes: 100, Favorites: 10, Shares: 5, Views: 1000}, DefaultConfig())
	got := Calculate(100, 2.0, score, 1.0)
	require.InDelta(t, 390.00, got, 1e-9)
}

func TestCalculateRounding(t *testing.T) {
	// 10 + 1*0.333*1 = 10.333 -> 10.33
	assert.InDelta(t, 10.33, Calculate(10, 0.333, 1, 1), 1e-9)
	assert.InDelta(t, 10.34, Calculate(10, 0.335, 1, 1), 1e-9)
}

func TestCalculateNeverBelowBaseReward(t *testing.T) {
	cfg := DefaultConfig()
	metrics := []*model.Metric{
		{},
		{Likes: 1},
		{Likes: 5000, Favorites: 700, Shares: 300, Views: 50000},
	}
	for _, metric := range metrics {
		score := EngagementScore(metric, cfg)
		assert.GreaterOrEqual(t, Calculate(88.5, 1.5, score, cfg.PlatformCoef), 88.5)
	}
}

func TestCalculateMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	base := &model.Metric{Likes: 10, Favorites: 10, Shares: 10, Views: 100}
	baseRevenue := Calculate(50, 1.0, EngagementScore(base, cfg), cfg.PlatformCoef)

	bumps := []*model.Metric{
		{Likes: 11, Favorites: 10, Shares: 10, Views: 100},
		{Likes: 10, Favorites: 11, Shares: 10, Views: 100},
		{Likes: 10, Favorites: 10, Shares: 11, Views: 100},
		{Likes: 10, Favorites: 10, Shares: 10, Views: 200},
	}
	for _, metric := range bumps {
		got := Calculate(50, 1.0, EngagementScore(metric, cfg), cfg.PlatformCoef)
		assert.GreaterOrEqual(t, got, baseRevenue)
	}
}

func TestManualAndAutoIdenticalCountsYieldIdenticalRevenue(t *testing.T) {
	cfg := Config{PlatformCoef: 1.2, LikeWeight: 1, FavoriteWeight: 2, ShareWeight: 3, ViewWeight: 0.01}
	auto := &model.Metric{Likes: 321, Favorites: 44, Shares: 7, Views: 9000, Source: model.MetricSourceAuto}
	manual := &model.Metric{Likes: 321, Favorites: 44, Shares: 7, Views: 9000, Source: model.MetricSourceManual}

	autoRevenue := Calculate(60, 1.7, EngagementScore(auto, cfg), cfg.PlatformCoef)
	manualRevenue := Calculate(60, 1.7, EngagementScore(manual, cfg), cfg.PlatformCoef)
	assert.Equal(t, autoRevenue, manualRevenue)
}
