package service

import (
	"context"
	"strings"

	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
)

// WhitelistService manages the per-item email allowlist. Emails are
// normalized to lowercase at this boundary; everything below assumes
// normalized input.
type WhitelistService interface {
	List(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.ItemWhitelist, error)
	// Add is idempotent: adding an already-present normalized email
	// returns the existing entry.
	Add(ctx context.Context, ident *identity.Identity, itemID uint64, email string) (*model.ItemWhitelist, error)
	// BulkAdd returns how many entries were newly inserted; blanks and
	// duplicates are silently skipped.
	BulkAdd(ctx context.Context, ident *identity.Identity, itemID uint64, emails []string) (int, error)
	Remove(ctx context.Context, ident *identity.Identity, itemID, entryID uint64) error
	// IsWhitelisted answers the direct-access path for private items.
	IsWhitelisted(ctx context.Context, itemID uint64, email string) (bool, error)
}

type whitelistService struct {
	whitelists repository.WhitelistRepository
	items      repository.ItemRepository
}

func NewWhitelistService(whitelists repository.WhitelistRepository, items repository.ItemRepository) WhitelistService {
	return &whitelistService{whitelists: whitelists, items: items}
}

// NormalizeEmail is the single write-boundary normalization for whitelist
// emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *whitelistService) ownedItem(ctx context.Context, ident *identity.Identity, itemID uint64) error {
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

func (s *whitelistService) List(ctx context.Context, ident *identity.Identity, itemID uint64) ([]model.ItemWhitelist, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	return s.whitelists.ListByItem(ctx, itemID)
}

func (s *whitelistService) Add(ctx context.Context, ident *identity.Identity, itemID uint64, email string) (*model.ItemWhitelist, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return nil, err
	}
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, ErrValidation
	}
	existing, err := s.whitelists.FindByItemAndEmail(ctx, itemID, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	entry := &model.ItemWhitelist{ItemID: itemID, Email: normalized}
	if err := s.whitelists.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *whitelistService) BulkAdd(ctx context.Context, ident *identity.Identity, itemID uint64, emails []string) (int, error) {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return 0, err
	}
	inserted := 0
	seen := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		normalized := NormalizeEmail(email)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}

		existing, err := s.whitelists.FindByItemAndEmail(ctx, itemID, normalized)
		if err != nil {
			return inserted, err
		}
		if existing != nil {
			continue
		}
		if err := s.whitelists.Create(ctx, &model.ItemWhitelist{ItemID: itemID, Email: normalized}); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (s *whitelistService) Remove(ctx context.Context, ident *identity.Identity, itemID, entryID uint64) error {
	if err := s.ownedItem(ctx, ident, itemID); err != nil {
		return err
	}
	entry, err := s.whitelists.FindByID(ctx, entryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if entry.ItemID != itemID {
		return ErrNotFound
	}
	return s.whitelists.Delete(ctx, entryID)
}

func (s *whitelistService) IsWhitelisted(ctx context.Context, itemID uint64, email string) (bool, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false, nil
	}
	entry, err := s.whitelists.FindByItemAndEmail(ctx, itemID, normalized)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}
