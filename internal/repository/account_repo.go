package repository

import (
	"context"
	"errors"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"gorm.io/gorm"
)

type AccountRepository interface {
	List(ctx context.Context, userID uint) ([]model.Account, error)
	Get(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Account, error)
	AdjustBalance(ctx context.Context, id uint, delta float64, opts ...utils.DBOption) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) List(ctx context.Context, userID uint) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Get(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Account, error) {
	var account model.Account
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dto.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) AdjustBalance(ctx context.Context, id uint, delta float64, opts ...utils.DBOption) error {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dto.ErrAccountNotFound
	}
	return nil
}
