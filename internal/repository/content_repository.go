package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

type ContentRepository interface {
	Create(ctx context.Context, c *model.Content) error
	FindByID(ctx context.Context, id uint64) (*model.Content, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.Content, error)
	Save(ctx context.Context, c *model.Content) error
	Delete(ctx context.Context, id uint64) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, c *model.Content) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contentRepository) FindByID(ctx context.Context, id uint64) (*model.Content, error) {
	var c model.Content
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) ListByItem(ctx context.Context, itemID uint64) ([]model.Content, error) {
	var cs []model.Content
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at asc").Order("id asc").
		Find(&cs).Error
	return cs, err
}

func (r *contentRepository) Save(ctx context.Context, c *model.Content) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *contentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Content{}, id).Error
}
