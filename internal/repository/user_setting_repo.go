package repository

import (
	"context"
	"errors"

	"trading-journal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserSettingRepository interface {
	// Get returns the stored settings, or an empty record when the user has none yet.
	Get(ctx context.Context, userID uint) (*model.UserSetting, error)
	Save(ctx context.Context, setting *model.UserSetting) error
}

type userSettingRepository struct {
	db *gorm.DB
}

func NewUserSettingRepository(db *gorm.DB) UserSettingRepository {
	return &userSettingRepository{db: db}
}

func (r *userSettingRepository) Get(ctx context.Context, userID uint) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.UserSetting{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *userSettingRepository) Save(ctx context.Context, setting *model.UserSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tags", "strategies", "updated_at"}),
	}).Create(setting).Error
}
