package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"gorm.io/gorm"
)

type TradeRepository interface {
	// List returns every trade of the user, deleted ones included, oldest first.
	List(ctx context.Context, param dto.TradeQueryParam) ([]model.Trade, error)
	Get(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Trade, error)
	Create(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	// UpdateEdits writes only the user-editable columns and only while the stored row is
	// undeleted with the same outcome as trade. Otherwise it returns dto.ErrTradeChanged.
	UpdateEdits(ctx context.Context, trade *model.Trade) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	Restore(ctx context.Context, id uint) error
	PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error)
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) List(ctx context.Context, param dto.TradeQueryParam) ([]model.Trade, error) {
	var trades []model.Trade
	db := r.db.WithContext(ctx).Where("user_id = ?", param.UserID)
	if param.AccountID != nil {
		db = db.Where("account_id = ?", *param.AccountID)
	}
	if err := db.Order("created_at ASC, id ASC").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) Get(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Trade, error) {
	var trade model.Trade
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).First(&trade, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dto.ErrTradeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) Create(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(trade).Error
}

// Update writes every column so cleared optional fields are persisted as NULL.
func (r *tradeRepository) Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Save(trade)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

var editableColumns = []string{
	"stop_loss", "take_profit", "quantity", "fees", "setup", "tags", "notes", "entry_date", "updated_at",
}

func (r *tradeRepository) UpdateEdits(ctx context.Context, trade *model.Trade) error {
	res := r.db.WithContext(ctx).Model(trade).
		Where("outcome = ? AND is_deleted = ?", trade.Outcome, false).
		Select(editableColumns).
		Updates(trade)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dto.ErrTradeChanged
	}
	return nil
}

func (r *tradeRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Trade{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dto.ErrTradeNotFound
	}
	return nil
}

func (r *tradeRepository) Restore(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Trade{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dto.ErrTradeNotFound
	}
	return nil
}

func (r *tradeRepository) PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("is_deleted = ? AND deleted_at < ?", true, before).
		Delete(&model.Trade{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge deleted trades: %w", res.Error)
	}
	return res.RowsAffected, nil
}
