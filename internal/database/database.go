package database

import (
	"errors"
	"fmt"

	"github.com/blues/bts/internal/config"
	"github.com/blues/bts/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.Task{},
		&model.User{},
		&model.SocialAccount{},
		&model.Assignment{},
		&model.Metric{},
		&model.ManualMetricSubmission{},
		&model.PlatformMetricConfig{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Seed 初始化默认数据：默认管理员和各平台权重配置
func Seed(db *gorm.DB, cfg *config.Config) error {
	if err := seedDefaultAdmin(db, cfg); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	if err := seedPlatformConfigs(db); err != nil {
		return fmt.Errorf("failed to seed platform configs: %w", err)
	}
	return nil
}

func seedDefaultAdmin(db *gorm.DB, cfg *config.Config) error {
	var admin model.User
	err := db.Where("role = ?", model.RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&model.User{
		Email:          "admin@example.com",
		Phone:          "13000000000",
		Username:       "admin",
		DisplayName:    "Admin",
		RealName:       "Platform Admin",
		City:           "N/A",
		Category:       "operations",
		Tags:           "admin",
		HashedPassword: string(hashed),
		Role:           model.RoleAdmin,
		ReviewStatus:   model.ReviewStatusApproved,
		IsActive:       true,
		Weight:         cfg.Defaults.UserWeight,
	}).Error
}

func seedPlatformConfigs(db *gorm.DB) error {
	platforms := []string{
		model.DefaultPlatformKey,
		string(model.PlatformDouyin),
		string(model.PlatformXiaohongshu),
		string(model.PlatformWeibo),
	}

	for _, platform := range platforms {
		var existing model.PlatformMetricConfig
		err := db.Where("platform = ?", platform).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := db.Create(&model.PlatformMetricConfig{
			Platform:       platform,
			PlatformCoef:   1.0,
			LikeWeight:     1.0,
			FavoriteWeight: 2.0,
			ShareWeight:    3.0,
			ViewWeight:     0.01,
		}).Error; err != nil {
			return err
		}
	}

	return nil
}
