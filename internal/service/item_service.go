package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/monooki-app/monooki-backend/internal/storage"
)

type ItemInput struct {
	Title          string
	Description    *string
	OriginalQRCode *string
	CategoryID     *uint64
	LocationID     *uint64
	AuthorID       *uint64
	ParentID       *uint64
	Price          *uint
	Currency       string
	Visibility     model.Visibility
	ImageFileIDs   []uint64
}

// ItemDetail is the populated read model for GET by id. Broken lookup
// references render as nil; the item itself survives them.
type ItemDetail struct {
	Item       model.Item
	Category   *model.Category
	Location   *model.Location
	Author     *model.Author
	Children   []model.Item
	Contents   []model.Content
	Images     []model.UploadFile
	Quantity   int64
	PreviewURL *string
}

type ItemService interface {
	Create(ctx context.Context, ident *identity.Identity, in ItemInput) (*model.Item, error)
	Get(ctx context.Context, ident *identity.Identity, id uint64) (*ItemDetail, error)
	List(ctx context.Context, ident *identity.Identity, f repository.ItemFilter) ([]model.Item, error)
	ListPage(ctx context.Context, ident *identity.Identity, f repository.ItemFilter, p pagination.Params) (pagination.Page[model.Item], error)
	Update(ctx context.Context, ident *identity.Identity, id uint64, in ItemInput) (*model.Item, error)
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type itemService struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	locations  repository.LocationRepository
	authors    repository.AuthorRepository
	contents   repository.ContentRepository
	whitelists repository.WhitelistRepository
	stocks     repository.StockHistoryRepository
	uploads    repository.UploadFileRepository
	store      storage.ObjectStore
	cascade    *DeletionService
}

func NewItemService(
	items repository.ItemRepository,
	categories repository.CategoryRepository,
	locations repository.LocationRepository,
	authors repository.AuthorRepository,
	contents repository.ContentRepository,
	whitelists repository.WhitelistRepository,
	stocks repository.StockHistoryRepository,
	uploads repository.UploadFileRepository,
	store storage.ObjectStore,
	cascade *DeletionService,
) ItemService {
	return &itemService{
		items:      items,
		categories: categories,
		locations:  locations,
		authors:    authors,
		contents:   contents,
		whitelists: whitelists,
		stocks:     stocks,
		uploads:    uploads,
		store:      store,
		cascade:    cascade,
	}
}

func (s *itemService) Create(ctx context.Context, ident *identity.Identity, in ItemInput) (*model.Item, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	if err := s.validateInput(ctx, ident, &in, 0); err != nil {
		return nil, err
	}

	item := &model.Item{
		OwnerUserID:    ident.UserID,
		Title:          in.Title,
		Description:    in.Description,
		OriginalQRCode: in.OriginalQRCode,
		CategoryID:     in.CategoryID,
		LocationID:     in.LocationID,
		AuthorID:       in.AuthorID,
		ParentID:       in.ParentID,
		Price:          in.Price,
		Currency:       in.Currency,
		Visibility:     in.Visibility,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	if err := s.associateImages(ctx, item.ID, in.ImageFileIDs); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, ident *identity.Identity, id uint64) (*ItemDetail, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	whitelisted := false
	if item.Visibility == model.VisibilityPrivate {
		if email := ident.NormalizedEmail(); email != "" {
			entry, err := s.whitelists.FindByItemAndEmail(ctx, item.ID, email)
			if err != nil {
				return nil, err
			}
			whitelisted = entry != nil
		}
	}
	if !access.CanViewItem(ident, item, whitelisted) {
		// A row that exists but is not visible is forbidden, never 404.
		return nil, ErrForbidden
	}

	return s.buildDetail(ctx, item)
}

func (s *itemService) buildDetail(ctx context.Context, item *model.Item) (*ItemDetail, error) {
	detail := &ItemDetail{Item: *item}

	if item.CategoryID != nil {
		if c, err := s.categories.FindByID(ctx, *item.CategoryID); err == nil {
			detail.Category = c
		}
	}
	if item.LocationID != nil {
		if l, err := s.locations.FindByID(ctx, *item.LocationID); err == nil {
			detail.Location = l
		}
	}
	if item.AuthorID != nil {
		if a, err := s.authors.FindByID(ctx, *item.AuthorID); err == nil {
			detail.Author = a
		}
	}

	children, err := s.items.ListChildren(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	detail.Children = children

	contents, err := s.contents.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	detail.Contents = contents

	images, err := s.uploads.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	detail.Images = images

	qty, err := s.stocks.SumByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	detail.Quantity = qty

	if len(images) > 0 && s.store != nil {
		url, err := s.store.SignedDownloadURL(ctx, images[0].Key)
		if err != nil {
			slog.Warn("sign preview url failed", "item_id", item.ID, "key", images[0].Key, "error", err)
		} else {
			detail.PreviewURL = &url
		}
	}
	return detail, nil
}

func (s *itemService) List(ctx context.Context, ident *identity.Identity, f repository.ItemFilter) ([]model.Item, error) {
	return s.items.List(ctx, ident, f)
}

func (s *itemService) ListPage(ctx context.Context, ident *identity.Identity, f repository.ItemFilter, p pagination.Params) (pagination.Page[model.Item], error) {
	return s.items.ListPage(ctx, ident, f, p)
}

func (s *itemService) Update(ctx context.Context, ident *identity.Identity, id uint64, in ItemInput) (*model.Item, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanMutate(ident, item.OwnerUserID) {
		return nil, ErrForbidden
	}
	if err := s.validateInput(ctx, ident, &in, id); err != nil {
		return nil, err
	}

	item.Title = in.Title
	item.Description = in.Description
	item.OriginalQRCode = in.OriginalQRCode
	item.CategoryID = in.CategoryID
	item.LocationID = in.LocationID
	item.AuthorID = in.AuthorID
	item.ParentID = in.ParentID
	item.Price = in.Price
	item.Currency = in.Currency
	item.Visibility = in.Visibility
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	if err := s.uploads.DisassociateOthers(ctx, item.ID, in.ImageFileIDs); err != nil {
		return nil, err
	}
	if err := s.associateImages(ctx, item.ID, in.ImageFileIDs); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if !ident.Authenticated() {
		return ErrUnauthorized
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanMutate(ident, item.OwnerUserID) {
		return ErrForbidden
	}
	return s.cascade.DeleteItem(ctx, id)
}

func (s *itemService) validateInput(ctx context.Context, ident *identity.Identity, in *ItemInput, selfID uint64) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Title) > 120 {
		return fmt.Errorf("%w: title must be 1-120 characters", ErrValidation)
	}
	if in.Currency == "" {
		in.Currency = "JPY"
	}
	switch in.Visibility {
	case "":
		in.Visibility = model.VisibilityPrivate
	case model.VisibilityPublic, model.VisibilityPrivate:
	default:
		return fmt.Errorf("%w: visibility must be public or private", ErrValidation)
	}

	if in.CategoryID != nil {
		c, err := s.categories.FindByID(ctx, *in.CategoryID)
		if err != nil || c.OwnerUserID != ident.UserID {
			return fmt.Errorf("%w: invalid category reference", ErrValidation)
		}
	}
	if in.LocationID != nil {
		l, err := s.locations.FindByID(ctx, *in.LocationID)
		if err != nil || l.OwnerUserID != ident.UserID {
			return fmt.Errorf("%w: invalid location reference", ErrValidation)
		}
	}
	if in.AuthorID != nil {
		a, err := s.authors.FindByID(ctx, *in.AuthorID)
		if err != nil || a.OwnerUserID != ident.UserID {
			return fmt.Errorf("%w: invalid author reference", ErrValidation)
		}
	}
	if in.ParentID != nil {
		if err := s.validateParent(ctx, ident, *in.ParentID, selfID); err != nil {
			return err
		}
	}
	if len(in.ImageFileIDs) > 0 {
		if err := s.validateImages(ctx, ident, in.ImageFileIDs, selfID); err != nil {
			return err
		}
	}
	return nil
}

// validateParent requires the parent to exist, to share the owner, and to
// not create a cycle through selfID (0 when creating).
func (s *itemService) validateParent(ctx context.Context, ident *identity.Identity, parentID, selfID uint64) error {
	if selfID != 0 && parentID == selfID {
		return fmt.Errorf("%w: item cannot be its own parent", ErrValidation)
	}
	parent, err := s.items.FindByID(ctx, parentID)
	if err != nil || parent.OwnerUserID != ident.UserID {
		return fmt.Errorf("%w: invalid parent reference", ErrValidation)
	}
	if selfID == 0 {
		return nil
	}
	// Walk the ancestor chain; the depth guard protects against data that
	// already contains a loop.
	cur := parent
	for depth := 0; cur.ParentID != nil && depth < 100; depth++ {
		if *cur.ParentID == selfID {
			return fmt.Errorf("%w: parent chain would form a cycle", ErrValidation)
		}
		next, err := s.items.FindByID(ctx, *cur.ParentID)
		if err != nil {
			break
		}
		cur = next
	}
	return nil
}

// validateImages checks every referenced file belongs to the caller and is
// not attached to some other item.
func (s *itemService) validateImages(ctx context.Context, ident *identity.Identity, ids []uint64, selfID uint64) error {
	files, err := s.uploads.FindOwnedByIDs(ctx, ident.UserID, ids)
	if err != nil {
		return err
	}
	if len(files) != len(ids) {
		return fmt.Errorf("%w: invalid file references", ErrValidation)
	}
	for _, f := range files {
		if f.ItemID != nil && *f.ItemID != selfID {
			return fmt.Errorf("%w: file already attached to another item", ErrValidation)
		}
	}
	return nil
}

func (s *itemService) associateImages(ctx context.Context, itemID uint64, ids []uint64) error {
	for i, fileID := range ids {
		if err := s.uploads.Associate(ctx, fileID, itemID, i); err != nil {
			return err
		}
	}
	return nil
}
