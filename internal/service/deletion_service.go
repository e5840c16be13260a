package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/monooki-app/monooki-backend/internal/storage"
)

// DeletionService owns the cascade orchestration for item and account
// removal plus the account-deletion request state machine
// (none → pending → completed | cancelled).
type DeletionService struct {
	items     repository.ItemRepository
	uploads   repository.UploadFileRepository
	cascade   repository.CascadeRepository
	deletions repository.AccountDeletionRepository
	store     storage.ObjectStore
	delay     time.Duration
}

func NewDeletionService(
	items repository.ItemRepository,
	uploads repository.UploadFileRepository,
	cascade repository.CascadeRepository,
	deletions repository.AccountDeletionRepository,
	store storage.ObjectStore,
	delay time.Duration,
) *DeletionService {
	return &DeletionService{
		items:     items,
		uploads:   uploads,
		cascade:   cascade,
		deletions: deletions,
		store:     store,
		delay:     delay,
	}
}

// DeleteItem removes an item and every row referencing it. Object-store
// deletes run first and are best-effort: a failed object delete is logged
// and never fails the cascade. The database cascade is transactional and
// idempotent, so a caller may retry after a DB failure.
func (s *DeletionService) DeleteItem(ctx context.Context, itemID uint64) error {
	files, err := s.uploads.ListByItem(ctx, itemID)
	if err != nil {
		return err
	}
	s.deleteObjects(ctx, files)
	return s.cascade.DeleteItemRows(ctx, itemID)
}

// DeleteAccount wipes everything the user owns: the per-item cascade for
// every owned item, then the owned lookup tables.
func (s *DeletionService) DeleteAccount(ctx context.Context, userID string) error {
	files, err := s.uploads.ListByOwner(ctx, userID)
	if err != nil {
		return err
	}
	s.deleteObjects(ctx, files)
	return s.cascade.DeleteOwnerRows(ctx, userID)
}

func (s *DeletionService) deleteObjects(ctx context.Context, files []model.UploadFile) {
	if s.store == nil {
		return
	}
	for _, f := range files {
		if err := s.store.Delete(ctx, f.Key); err != nil {
			slog.Warn("object delete failed", "key", f.Key, "file_id", f.ID, "error", err)
		}
	}
}

// RequestAccountDeletion schedules a wipe after the configured delay. Only
// one pending request may exist per user.
func (s *DeletionService) RequestAccountDeletion(ctx context.Context, ident *identity.Identity) (*model.AccountDeletion, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	pending, err := s.deletions.FindPendingByUser(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, fmt.Errorf("%w: account deletion already requested", ErrConflict)
	}

	jobRef := uuid.NewString()
	d := &model.AccountDeletion{
		UserID:         ident.UserID,
		Status:         model.AccountDeletionStatusPending,
		ScheduledAt:    time.Now().Add(s.delay),
		ExternalJobRef: &jobRef,
	}
	if email := ident.NormalizedEmail(); email != "" {
		d.UserEmail = &email
	}
	if err := s.deletions.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AccountDeletionStatus returns the pending request, or ErrNotFound when
// none is pending.
func (s *DeletionService) AccountDeletionStatus(ctx context.Context, ident *identity.Identity) (*model.AccountDeletion, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	pending, err := s.deletions.FindPendingByUser(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, ErrNotFound
	}
	return pending, nil
}

// CancelAccountDeletion cancels the pending request. Cancelling with
// nothing pending is an explicit error, never a silent success.
func (s *DeletionService) CancelAccountDeletion(ctx context.Context, ident *identity.Identity) (*model.AccountDeletion, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	pending, err := s.deletions.FindPendingByUser(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: no pending account deletion", ErrConflict)
	}
	pending.Status = model.AccountDeletionStatusCancelled
	if err := s.deletions.Save(ctx, pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// CompleteAccountDeletion is invoked by the external scheduler callback.
// It runs the full account cascade, then marks the request completed. The
// transition is irreversible.
func (s *DeletionService) CompleteAccountDeletion(ctx context.Context, userID, jobRef string) error {
	pending, err := s.deletions.FindPendingByUser(ctx, userID)
	if err != nil {
		return err
	}
	if pending == nil {
		return fmt.Errorf("%w: no pending account deletion", ErrConflict)
	}
	if jobRef != "" && pending.ExternalJobRef != nil && *pending.ExternalJobRef != jobRef {
		return fmt.Errorf("%w: job reference mismatch", ErrConflict)
	}
	if err := s.DeleteAccount(ctx, userID); err != nil {
		return err
	}
	pending.Status = model.AccountDeletionStatusCompleted
	return s.deletions.Save(ctx, pending)
}
