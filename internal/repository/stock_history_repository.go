package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"gorm.io/gorm"
)

var stockOrder = pagination.Order{Column: "created_at", Descending: true, Kind: pagination.KindTime}

type StockHistoryRepository interface {
	Create(ctx context.Context, h *model.StockHistory) error
	FindByID(ctx context.Context, id uint64) (*model.StockHistory, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.StockHistory, error)
	ListPageByItem(ctx context.Context, itemID uint64, p pagination.Params) (pagination.Page[model.StockHistory], error)
	// SumByItem derives the current quantity; stock is never stored
	// denormalized.
	SumByItem(ctx context.Context, itemID uint64) (int64, error)
	Delete(ctx context.Context, id uint64) error
}

type stockHistoryRepository struct {
	db *gorm.DB
}

func NewStockHistoryRepository(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepository{db: db}
}

func (r *stockHistoryRepository) Create(ctx context.Context, h *model.StockHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *stockHistoryRepository) FindByID(ctx context.Context, id uint64) (*model.StockHistory, error) {
	var h model.StockHistory
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *stockHistoryRepository) ListByItem(ctx context.Context, itemID uint64) ([]model.StockHistory, error) {
	var hs []model.StockHistory
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at desc").Order("id desc").
		Limit(DefaultListLimit).
		Find(&hs).Error
	return hs, err
}

func (r *stockHistoryRepository) ListPageByItem(ctx context.Context, itemID uint64, p pagination.Params) (pagination.Page[model.StockHistory], error) {
	q := r.db.WithContext(ctx).Model(&model.StockHistory{}).Where("item_id = ?", itemID)
	return pagination.List(q, stockOrder, p, func(row model.StockHistory) (string, uint64) {
		return pagination.FormatTime(row.CreatedAt), row.ID
	})
}

func (r *stockHistoryRepository) SumByItem(ctx context.Context, itemID uint64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.StockHistory{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *stockHistoryRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.StockHistory{}, id).Error
}
