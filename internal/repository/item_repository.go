package repository

import (
	"context"
	"errors"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"gorm.io/gorm"
)

// DefaultListLimit bounds unpaginated list queries.
const DefaultListLimit = 100

var itemOrder = pagination.Order{Column: "updated_at", Descending: true, Kind: pagination.KindTime}

func itemSortValue(row model.Item) (string, uint64) {
	return pagination.FormatTime(row.UpdatedAt), row.ID
}

type ItemFilter struct {
	Search     string
	CategoryID *uint64
	LocationID *uint64
	AuthorID   *uint64
	ParentID   *uint64
	Visibility *model.Visibility
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint64) (*model.Item, error)
	List(ctx context.Context, ident *identity.Identity, f ItemFilter) ([]model.Item, error)
	ListPage(ctx context.Context, ident *identity.Identity, f ItemFilter, p pagination.Params) (pagination.Page[model.Item], error)
	ListChildren(ctx context.Context, parentID uint64) ([]model.Item, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]model.Item, error)
	Save(ctx context.Context, item *model.Item) error
	ClearCategory(ctx context.Context, categoryID uint64) error
	ClearLocation(ctx context.Context, locationID uint64) error
	ClearAuthor(ctx context.Context, authorID uint64) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// baseQuery is the single place an item list query gets assembled; the
// access scope is applied here so no list path can skip it.
func (r *itemRepository) baseQuery(ctx context.Context, ident *identity.Identity, f ItemFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Item{}).Scopes(access.ItemListScope(ident))
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.LocationID != nil {
		q = q.Where("location_id = ?", *f.LocationID)
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.ParentID != nil {
		q = q.Where("parent_id = ?", *f.ParentID)
	}
	if f.Visibility != nil {
		q = q.Where("visibility = ?", *f.Visibility)
	}
	return q
}

func (r *itemRepository) List(ctx context.Context, ident *identity.Identity, f ItemFilter) ([]model.Item, error) {
	var items []model.Item
	err := r.baseQuery(ctx, ident, f).
		Order("updated_at desc").Order("id desc").
		Limit(DefaultListLimit).
		Find(&items).Error
	return items, err
}

func (r *itemRepository) ListPage(ctx context.Context, ident *identity.Identity, f ItemFilter, p pagination.Params) (pagination.Page[model.Item], error) {
	return pagination.List(r.baseQuery(ctx, ident, f), itemOrder, p, itemSortValue)
}

func (r *itemRepository) ListChildren(ctx context.Context, parentID uint64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("updated_at desc").Order("id desc").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) ClearCategory(ctx context.Context, categoryID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}

func (r *itemRepository) ClearLocation(ctx context.Context, locationID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("location_id = ?", locationID).
		Update("location_id", nil).Error
}

func (r *itemRepository) ClearAuthor(ctx context.Context, authorID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("author_id = ?", authorID).
		Update("author_id", nil).Error
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}