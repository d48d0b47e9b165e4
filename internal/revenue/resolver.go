package revenue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/blues/bts/internal/logger"
	"github.com/blues/bts/internal/model"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	cacheKeyPrefix = "bts:platform_config:"
	cacheTTL       = 10 * time.Minute
)

// Resolver 按平台解析收益权重配置。
// 查找顺序：平台行 → default 行 → 硬编码兜底。
// 前面挂一层 redis 读穿缓存，管理员更新配置时显式失效。
type Resolver struct {
	db  *gorm.DB
	rdb *redis.Client // 可为 nil，表示不启用缓存
}

// NewResolver 创建配置解析器
func NewResolver(db *gorm.DB, rdb *redis.Client) *Resolver {
	return &Resolver{db: db, rdb: rdb}
}

// Resolve 解析平台的权重配置，任何一层失败都降级到下一层，从不返回错误
func (r *Resolver) Resolve(ctx context.Context, platform string) Config {
	if cfg, ok := r.cacheGet(ctx, platform); ok {
		return cfg
	}

	cfg := r.resolveFromDB(platform)
	r.cacheSet(ctx, platform, cfg)
	return cfg
}

// Invalidate 失效单个平台的缓存条目
func (r *Resolver) Invalidate(ctx context.Context, platform string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, cacheKeyPrefix+platform).Err(); err != nil {
		logger.Warn("Failed to invalidate platform config cache for %s: %v", platform, err)
	}
}

// InvalidateAll 失效所有已知平台的缓存条目。default 行影响所有平台的
// 回退结果，更新它时必须整体失效。
func (r *Resolver) InvalidateAll(ctx context.Context) {
	platforms := []string{
		model.DefaultPlatformKey,
		string(model.PlatformDouyin),
		string(model.PlatformXiaohongshu),
		string(model.PlatformWeibo),
	}
	for _, platform := range platforms {
		r.Invalidate(ctx, platform)
	}
}

func (r *Resolver) resolveFromDB(platform string) Config {
	if cfg, ok := r.lookupRow(platform); ok {
		return cfg
	}
	if cfg, ok := r.lookupRow(model.DefaultPlatformKey); ok {
		return cfg
	}
	return DefaultConfig()
}

func (r *Resolver) lookupRow(platform string) (Config, bool) {
	var row model.PlatformMetricConfig
	err := r.db.Where("platform = ?", platform).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to load platform config for %s: %v", platform, err)
		}
		return Config{}, false
	}

	return Config{
		PlatformCoef:   row.PlatformCoef,
		LikeWeight:     row.LikeWeight,
		FavoriteWeight: row.FavoriteWeight,
		ShareWeight:    row.ShareWeight,
		ViewWeight:     row.ViewWeight,
	}, true
}

func (r *Resolver) cacheGet(ctx context.Context, platform string) (Config, bool) {
	if r.rdb == nil {
		return Config{}, false
	}

	data, err := r.rdb.Get(ctx, cacheKeyPrefix+platform).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Platform config cache read failed for %s: %v", platform, err)
		}
		return Config{}, false
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

func (r *Resolver) cacheSet(ctx context.Context, platform string, cfg Config) {
	if r.rdb == nil {
		return
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, cacheKeyPrefix+platform, data, cacheTTL).Err(); err != nil {
		logger.Warn("Platform config cache write failed for %s: %v", platform, err)
	}
}
