package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, a *model.Author) error
	FindByID(ctx context.Context, id uint64) (*model.Author, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.Author, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Author], error)
	Save(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id uint64) error
	DeleteByOwner(ctx context.Context, ownerUserID string) error
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *model.Author) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *authorRepository) FindByID(ctx context.Context, id uint64) (*model.Author, error) {
	var a model.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *authorRepository) baseQuery(ctx context.Context, ident *identity.Identity, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Author{}).Scopes(access.OwnedScope(ident))
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	return q
}

func (r *authorRepository) List(ctx context.Context, ident *identity.Identity, search string) ([]model.Author, error) {
	var as []model.Author
	err := r.baseQuery(ctx, ident, search).
		Order("name asc").Order("id asc").
		Limit(DefaultListLimit).
		Find(&as).Error
	return as, err
}

func (r *authorRepository) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Author], error) {
	return pagination.List(r.baseQuery(ctx, ident, search), nameOrder, p, func(row model.Author) (string, uint64) {
		return row.Name, row.ID
	})
}

func (r *authorRepository) Save(ctx context.Context, a *model.Author) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *authorRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Author{}, id).Error
}

func (r *authorRepository) DeleteByOwner(ctx context.Context, ownerUserID string) error {
	return r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Delete(&model.Author{}).Error
}
