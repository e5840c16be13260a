package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"github.com/monooki-app/monooki-backend/internal/access"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/monooki-app/monooki-backend/internal/storage"
)

const maxUploadSize = 32 << 20 // 32 MiB

// PresignedUpload is handed to the client: PUT the bytes to UploadURL, then
// reference File.ID on item save.
type PresignedUpload struct {
	File      model.UploadFile
	UploadURL string
}

type UploadService interface {
	Presign(ctx context.Context, ident *identity.Identity, filename, contentType string, size int64) (*PresignedUpload, error)
	// Delete removes an upload record and its backing object. Only the
	// owner may delete, and only while the file is unattached (attached
	// files go away with their item's cascade).
	Delete(ctx context.Context, ident *identity.Identity, id uint64) error
}

type uploadService struct {
	uploads repository.UploadFileRepository
	store   storage.ObjectStore
}

func NewUploadService(uploads repository.UploadFileRepository, store storage.ObjectStore) UploadService {
	return &uploadService{uploads: uploads, store: store}
}

func (s *uploadService) Presign(ctx context.Context, ident *identity.Identity, filename, contentType string, size int64) (*PresignedUpload, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	if filename == "" || contentType == "" {
		return nil, fmt.Errorf("%w: filename and contentType are required", ErrValidation)
	}
	if size <= 0 || size > maxUploadSize {
		return nil, fmt.Errorf("%w: size must be between 1 and %d bytes", ErrValidation, maxUploadSize)
	}

	key := fmt.Sprintf("uploads/%s/%s%s", ident.UserID, uuid.NewString(), path.Ext(filename))
	url, err := s.store.SignedUploadURL(ctx, key, contentType)
	if err != nil {
		return nil, err
	}

	file := model.UploadFile{
		OwnerUserID: ident.UserID,
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.uploads.Create(ctx, &file); err != nil {
		return nil, err
	}
	return &PresignedUpload{File: file, UploadURL: url}, nil
}

func (s *uploadService) Delete(ctx context.Context, ident *identity.Identity, id uint64) error {
	if !ident.Authenticated() {
		return ErrUnauthorized
	}
	file, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanMutate(ident, file.OwnerUserID) {
		return ErrForbidden
	}
	if file.ItemID != nil {
		return fmt.Errorf("%w: file is attached to an item", ErrConflict)
	}
	// Best-effort like the cascade path: the row removal is what callers
	// observe.
	if err := s.store.Delete(ctx, file.Key); err != nil {
		slog.Warn("object delete failed", "key", file.Key, "file_id", file.ID, "error", err)
	}
	return s.uploads.Delete(ctx, id)
}
