package repository

import (
	"context"
	"errors"

	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

type WhitelistRepository interface {
	Create(ctx context.Context, w *model.ItemWhitelist) error
	FindByID(ctx context.Context, id uint64) (*model.ItemWhitelist, error)
	// FindByItemAndEmail returns (nil, nil) when no entry exists. The email
	// must already be normalized to lowercase.
	FindByItemAndEmail(ctx context.Context, itemID uint64, email string) (*model.ItemWhitelist, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.ItemWhitelist, error)
	Delete(ctx context.Context, id uint64) error
}

type whitelistRepository struct {
	db *gorm.DB
}

func NewWhitelistRepository(db *gorm.DB) WhitelistRepository {
	return &whitelistRepository{db: db}
}

func (r *whitelistRepository) Create(ctx context.Context, w *model.ItemWhitelist) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *whitelistRepository) FindByID(ctx context.Context, id uint64) (*model.ItemWhitelist, error) {
	var w model.ItemWhitelist
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *whitelistRepository) FindByItemAndEmail(ctx context.Context, itemID uint64, email string) (*model.ItemWhitelist, error) {
	var w model.ItemWhitelist
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND email = ?", itemID, email).
		First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *whitelistRepository) ListByItem(ctx context.Context, itemID uint64) ([]model.ItemWhitelist, error) {
	var ws []model.ItemWhitelist
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at asc").Order("id asc").
		Find(&ws).Error
	return ws, err
}

func (r *whitelistRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.ItemWhitelist{}, id).Error
}
