package service

import (
	"context"
	"fmt"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"gorm.io/datatypes"
)

// PositionService manages schema-tagged key/value records on items. The
// data mapping is stored as-is; conformance to the referenced schema is the
// client's concern.
type PositionService interface {
	ListByItem(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.Position, error)
	Create(ctx context.Context, ident *identity.Identity, itemID, schemaID uint64, data datatypes.JSONMap) (*model.Position, error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, data datatypes.JSONMap) (*model.Position, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type positionService struct {
	positions repository.PositionRepository
	schemas   repository.PositionSchemaRepository
	items     repository.ItemRepository
}

func NewPositionService(positions repository.PositionRepository, schemas repository.PositionSchemaRepository, items repository.ItemRepository) PositionService {
	return &positionService{positions: positions, schemas: schemas, items: items}
}

func (s *positionService) ownedItem(ctx context.Context, ident *identity.Identity, itemID uint64) error {
	if !ident.Authenticated() {
		return ErrUnauthorized
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanMutate(ident, item.OwnerUserID) {
		return ErrForbidden
	}
	return nil
}

func (s *positionService) ListByItem(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.Position, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	return s.positions.ListByItem(ctx, itemID)
}

func (s *positionService) Create(ctx context.Context, ident *identity.Identity, itemID, schemaID uint64, data datatypes.JSONMap) (*model.Position, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	schema, err := s.schemas.FindByID(ctx, schemaID)
	if err != nil || schema.OwnerUserID != ident.UserID {
		return nil, fmt.Errorf("%w: invalid position schema reference", ErrValidation)
	}
	p := &model.Position{
		OwnerUserID:      ident.UserID,
		ItemID:           itemID,
		PositionSchemaID: schemaID,
		Data:             data,
	}
	if err := s.positions.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *positionService) Update(ctx context.Context, ident *identity.Identity, id uint64, data datatypes.JSONMap) (*model.Position, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	p, err := s.positions.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, p.OwnerUserID) {
		return nil, ErrForbidden
	}
	p.Data = data
	if err := s.positions.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *positionService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if !ident.Authenticated() {
		return ErrUnauthorized
	}
	p, err := s.positions.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanMutate(ident, p.OwnerUserID) {
		return ErrForbidden
	}
	return s.positions.Delete(ctx, id)
}
