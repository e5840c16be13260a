package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id uint64) (*model.Location, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.Location, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Location], error)
	Save(ctx context.Context, l *model.Location) error
	Delete(ctx context.Context, id uint64) error
	DeleteByOwner(ctx context.Context, ownerUserID string) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepository) FindByID(ctx context.Context, id uint64) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepository) baseQuery(ctx context.Context, ident *identity.Identity, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Location{}).Scopes(access.OwnedScope(ident))
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	return q
}

func (r *locationRepository) List(ctx context.Context, ident *identity.Identity, search string) ([]model.Location, error) {
	var ls []model.Location
	err := r.baseQuery(ctx, ident, search).
		Order("name asc").Order("id asc").
		Limit(DefaultListLimit).
		Find(&ls).Error
	return ls, err
}

func (r *locationRepository) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Location], error) {
	return pagination.List(r.baseQuery(ctx, ident, search), nameOrder, p, func(row model.Location) (string, uint64) {
		return row.Name, row.ID
	})
}

func (r *locationRepository) Save(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *locationRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Location{}, id).Error
}

func (r *locationRepository) DeleteByOwner(ctx context.Context, ownerUserID string) error {
	return r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Delete(&model.Location{}).Error
}
