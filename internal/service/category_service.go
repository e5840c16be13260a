package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, ident *identity.Identity, name string, description *string) (*model.Category, error)
	Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.Category, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.Category, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Category], error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, name string, description *string) (*model.Category, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type categoryService struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
}

func NewCategoryService(categories repository.CategoryRepository, items repository.ItemRepository) CategoryService {
	return &categoryService{categories: categories, items: items}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 120 {
		return "", fmt.Errorf("%w: name must be 1-120 characters", ErrValidation)
	}
	return name, nil
}

func (s *categoryService) Create(ctx context.Context, ident *identity.Identity, name string, description *string) (*model.Category, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	c := &model.Category{OwnerUserID: ident.UserID, Name: name, Description: description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, c.OwnerUserID) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context, ident *identity.Identity, search string) ([]model.Category, error) {
	return s.categories.List(ctx, ident, search)
}

func (s *categoryService) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Category], error) {
	return s.categories.ListPage(ctx, ident, search, p)
}

func (s *categoryService) Update(ctx context.Context, ident *identity.Identity, id uint64, name string, description *string) (*model.Category, error) {
	c, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	name, err = validateName(name)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the category and breaks item references to it; items
// survive with a null category.
func (s *categoryService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}
	if err := s.items.ClearCategory(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
