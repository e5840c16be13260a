package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"gorm.io/gorm"
)

type PositionSchemaRepository interface {
	Create(ctx context.Context, s *model.PositionSchema) error
	FindByID(ctx context.Context, id uint64) (*model.PositionSchema, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.PositionSchema, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.PositionSchema], error)
	Save(ctx context.Context, s *model.PositionSchema) error
	Delete(ctx context.Context, id uint64) error
	DeleteByOwner(ctx context.Context, ownerUserID string) error
}

type positionSchemaRepository struct {
	db *gorm.DB
}

func NewPositionSchemaRepository(db *gorm.DB) PositionSchemaRepository {
	return &positionSchemaRepository{db: db}
}

func (r *positionSchemaRepository) Create(ctx context.Context, s *model.PositionSchema) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *positionSchemaRepository) FindByID(ctx context.Context, id uint64) (*model.PositionSchema, error) {
	var s model.PositionSchema
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *positionSchemaRepository) baseQuery(ctx context.Context, ident *identity.Identity, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.PositionSchema{}).Scopes(access.OwnedScope(ident))
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	return q
}

func (r *positionSchemaRepository) List(ctx context.Context, ident *identity.Identity, search string) ([]model.PositionSchema, error) {
	var ss []model.PositionSchema
	err := r.baseQuery(ctx, ident, search).
		Order("name asc").Order("id asc").
		Limit(DefaultListLimit).
		Find(&ss).Error
	return ss, err
}

func (r *positionSchemaRepository) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.PositionSchema], error) {
	return pagination.List(r.baseQuery(ctx, ident, search), nameOrder, p, func(row model.PositionSchema) (string, uint64) {
		return row.Name, row.ID
	})
}

func (r *positionSchemaRepository) Save(ctx context.Context, s *model.PositionSchema) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *positionSchemaRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.PositionSchema{}, id).Error
}

func (r *positionSchemaRepository) DeleteByOwner(ctx context.Context, ownerUserID string) error {
	return r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Delete(&model.PositionSchema{}).Error
}
