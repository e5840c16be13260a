package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"gorm.io/gorm"
)

var nameOrder = pagination.Order{Column: "name", Descending: false, Kind: pagination.KindString}

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.Category, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Category], error)
	Save(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint64) error
	DeleteByOwner(ctx context.Context, ownerUserID string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) baseQuery(ctx context.Context, ident *identity.Identity, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Category{}).Scopes(access.OwnedScope(ident))
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	return q
}

func (r *categoryRepository) List(ctx context.Context, ident *identity.Identity, search string) ([]model.Category, error) {
	var cs []model.Category
	err := r.baseQuery(ctx, ident, search).
		Order("name asc").Order("id asc").
		Limit(DefaultListLimit).
		Find(&cs).Error
	return cs, err
}

func (r *categoryRepository) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Category], error) {
	return pagination.List(r.baseQuery(ctx, ident, search), nameOrder, p, func(row model.Category) (string, uint64) {
		return row.Name, row.ID
	})
}

func (r *categoryRepository) Save(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *categoryRepository) DeleteByOwner(ctx context.Context, ownerUserID string) error {
	return r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Delete(&model.Category{}).Error
}
