package service

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/repository"
)

type LocationService interface {
	Create(ctx context.Context, ident *identity.Identity, name string, description *string) (*model.Location, error)
	Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.Location, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.Location, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Location], error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, name string, description *string) (*model.Location, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type locationService struct {
	locations repository.LocationRepository
	items     repository.ItemRepository
}

func NewLocationService(locations repository.LocationRepository, items repository.ItemRepository) LocationService {
	return &locationService{locations: locations, items: items}
}

func (s *locationService) Create(ctx context.Context, ident *identity.Identity, name string, description *string) (*model.Location, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	l := &model.Location{OwnerUserID: ident.UserID, Name: name, Description: description}
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *locationService) Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.Location, error) {
	l, err := s.locations.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, l.OwnerUserID) {
		return nil, ErrForbidden
	}
	return l, nil
}

func (s *locationService) List(ctx context.Context, ident *identity.Identity, search string) ([]model.Location, error) {
	return s.locations.List(ctx, ident, search)
}

func (s *locationService) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.Location], error) {
	return s.locations.ListPage(ctx, ident, search, p)
}

func (s *locationService) Update(ctx context.Context, ident *identity.Identity, id uint64, name string, description *string) (*model.Location, error) {
	l, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	name, err = validateName(name)
	if err != nil {
		return nil, err
	}
	l.Name = name
	l.Description = description
	if err := s.locations.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *locationService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}
	if err := s.items.ClearLocation(ctx, id); err != nil {
		return err
	}
	return s.locations.Delete(ctx, id)
}
