package revenue

import (
	"context"
	"testing"

	"github.com/blues/bts/internal/model"
	"github.com/blues/bts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlatformRow(t *testing.T) {
	db := testutil.NewTestDB(t, &model.PlatformMetricConfig{})
	require.NoError(t, db.Create(&model.PlatformMetricConfig{
		Platform:       string(model.PlatformDouyin),
		PlatformCoef:   1.5,
		LikeWeight:     2,
		FavoriteWeight: 4,
		ShareWeight:    6,
		ViewWeight:     0.02,
	}).Error)

	resolver := NewResolver(db, nil)
	cfg := resolver.Resolve(context.Background(), string(model.PlatformDouyin))
	assert.Equal(t, 1.5, cfg.PlatformCoef)
	assert.Equal(t, 2.0, cfg.LikeWeight)
	assert.Equal(t, 0.02, cfg.ViewWeight)
}

func TestResolveFallsBackToDefaultRow(t *testing.T) {
	db := testutil.NewTestDB(t, &model.PlatformMetricConfig{})
	require.NoError(t, db.Create(&model.PlatformMetricConfig{
		Platform:       model.DefaultPlatformKey,
		PlatformCoef:   0.8,
		LikeWeight:     1,
		FavoriteWeight: 2,
		ShareWeight:    3,
		ViewWeight:     0.01,
	}).Error)

	resolver := NewResolver(db, nil)
	cfg := resolver.Resolve(context.Background(), string(model.PlatformWeibo))
	assert.Equal(t, 0.8, cfg.PlatformCoef)
}

func TestResolveFallsBackToHardDefaults(t *testing.T) {
	db := testutil.NewTestDB(t, &model.PlatformMetricConfig{})

	resolver := NewResolver(db, nil)
	cfg := resolver.Resolve(context.Background(), "unknown")
	assert.Equal(t, DefaultConfig(), cfg)
}
