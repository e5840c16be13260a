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

type ContentService interface {
	ListByItem(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.Content, error)
	Create(ctx context.Context, ident *identity.Identity, itemID uint64, typ model.ContentType, data datatypes.JSONMap) (*model.Content, error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, typ model.ContentType, data datatypes.JSONMap) (*model.Content, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type contentService struct {
	contents repository.ContentRepository
	items    repository.ItemRepository
}

func NewContentService(contents repository.ContentRepository, items repository.ItemRepository) ContentService {
	return &contentService{contents: contents, items: items}
}

func validContentType(typ model.ContentType) bool {
	switch typ {
	case model.ContentTypeFile, model.ContentTypeImage, model.ContentTypeVideo:
		return true
	}
	return false
}

func (s *contentService) ownedItem(ctx context.Context, ident *identity.Identity, itemID uint64) error {
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

func (s *contentService) ListByItem(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.Content, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	return s.contents.ListByItem(ctx, itemID)
}

func (s *contentService) Create(ctx context.Context, ident *identity.Identity, itemID uint64, typ model.ContentType, data datatypes.JSONMap) (*model.Content, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	if !validContentType(typ) {
		return nil, fmt.Errorf("%w: type must be file, image or video", ErrValidation)
	}
	c := &model.Content{ItemID: itemID, Type: typ, Data: data}
	if err := s.contents.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contentService) Update(ctx context.Context, ident *identity.Identity, id uint64, typ model.ContentType, data datatypes.JSONMap) (*model.Content, error) {
	c, err := s.contents.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.ownedItem(ctx, ident, c.ItemID); err != nil {
		return nil, err
	}
	if !validContentType(typ) {
		return nil, fmt.Errorf("%w: type must be file, image or video", ErrValidation)
	}
	c.Type = typ
	c.Data = data
	if err := s.contents.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contentService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	c, err := s.contents.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if err := s.ownedItem(ctx, ident, c.ItemID); err != nil {
		return err
	}
	return s.contents.Delete(ctx, id)
}
