package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

type PositionRepository interface {
	Create(ctx context.Context, p *model.Position) error
	FindByID(ctx context.Context, id uint64) (*model.Position, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.Position, error)
	Save(ctx context.Context, p *model.Position) error
	Delete(ctx context.Context, id uint64) error
}

type positionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Create(ctx context.Context, p *model.Position) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *positionRepository) FindByID(ctx context.Context, id uint64) (*model.Position, error) {
	var p model.Position
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *positionRepository) ListByItem(ctx context.Context, itemID uint64) ([]model.Position, error) {
	var ps []model.Position
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at asc").Order("id asc").
		Find(&ps).Error
	return ps, err
}

func (r *positionRepository) Save(ctx context.Context, p *model.Position) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *positionRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Position{}, id).Error
}
