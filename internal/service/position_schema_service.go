package service

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"gorm.io/datatypes"
)

type PositionSchemaService interface {
	Create(ctx context.Context, ident *identity.Identity, name string, schema datatypes.JSONMap) (*model.PositionSchema, error)
	Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.PositionSchema, error)
	List(ctx context.Context, ident *identity.Identity, search string) ([]model.PositionSchema, error)
	ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.PositionSchema], error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, name string, schema datatypes.JSONMap) (*model.PositionSchema, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type positionSchemaService struct {
	schemas repository.PositionSchemaRepository
}

func NewPositionSchemaService(schemas repository.PositionSchemaRepository) PositionSchemaService {
	return &positionSchemaService{schemas: schemas}
}

func (s *positionSchemaService) Create(ctx context.Context, ident *identity.Identity, name string, schema datatypes.JSONMap) (*model.PositionSchema, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	ps := &model.PositionSchema{OwnerUserID: ident.UserID, Name: name, Schema: schema}
	if err := s.schemas.Create(ctx, ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *positionSchemaService) Get(ctx context.Context, ident *identity.Identity, id uint64) (*model.PositionSchema, error) {
	ps, err := s.schemas.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, ps.OwnerUserID) {
		return nil, ErrForbidden
	}
	return ps, nil
}

func (s *positionSchemaService) List(ctx context.Context, ident *identity.Identity, search string) ([]model.PositionSchema, error) {
	return s.schemas.List(ctx, ident, search)
}

func (s *positionSchemaService) ListPage(ctx context.Context, ident *identity.Identity, search string, p pagination.Params) (pagination.Page[model.PositionSchema], error) {
	return s.schemas.ListPage(ctx, ident, search, p)
}

func (s *positionSchemaService) Update(ctx context.Context, ident *identity.Identity, id uint64, name string, schema datatypes.JSONMap) (*model.PositionSchema, error) {
	ps, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	name, err = validateName(name)
	if err != nil {
		return nil, err
	}
	ps.Name = name
	ps.Schema = schema
	if err := s.schemas.Save(ctx, ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *positionSchemaService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}
	return s.schemas.Delete(ctx, id)
}
