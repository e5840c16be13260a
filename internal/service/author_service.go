package service

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/repository"
)

type AuthorService interface {
	Create(ctx context.Context, ident *identity.Identity, name string, memo *string) (*model.Author, error)
	Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.Author, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.Author, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Author], error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, name string, memo *string) (*model.Author, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type authorService struct {
	authors repository.AuthorRepository
	items   repository.ItemRepository
}

func NewAuthorService(authors repository.AuthorRepository, items repository.ItemRepository) AuthorService {
	return &authorService{authors: authors, items: items}
}

func (s *authorService) Create(ctx context.Context, ident *identity.Identity, name string, memo *string) (*model.Author, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	a := &model.Author{OwnerUserID: ident.UserID, Name: name, Memo: memo}
	if err := s.authors.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.Author, error) {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, a.OwnerUserID) {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *authorService) List(ctx context.Context, ident *identity.Identity, search string) ([]model.Author, error) {
	return s.authors.List(ctx, ident, search)
}

func (s *authorService) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Author], error) {
	return s.authors.ListPage(ctx, ident, search, p)
}

func (s *authorService) Update(ctx context.Context, ident *identity.Identity, id uint64, name string, memo *string) (*model.Author, error) {
	a, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	name, err = validateName(name)
	if err != nil {
		return nil, err
	}
	a.Name = name
	a.Memo = memo
	if err := s.authors.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}
	if err := s.items.ClearAuthor(ctx, id); err != nil {
		return err
	}
	return s.authors.Delete(ctx, id)
}
