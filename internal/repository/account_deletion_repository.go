package repository

import (
	"context"
	"errors"

	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

type AccountDeletionRepository interface {
	Create(ctx context.Context, d *model.AccountDeletion) error
	// FindPendingByUser returns (nil, nil) when no pending request exists.
	FindPendingByUser(ctx context.Context, userID string) (*model.AccountDeletion, error)
	FindLatestByUser(ctx context.Context, userID string) (*model.AccountDeletion, error)
	Save(ctx context.Context, d *model.AccountDeletion) error
}

type accountDeletionRepository struct {
	db *gorm.DB
}

func NewAccountDeletionRepository(db *gorm.DB) AccountDeletionRepository {
	return &accountDeletionRepository{db: db}
}

func (r *accountDeletionRepository) Create(ctx context.Context, d *model.AccountDeletion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *accountDeletionRepository) FindPendingByUser(ctx context.Context, userID string) (*model.AccountDeletion, error) {
	var d model.AccountDeletion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.AccountDeletionStatusPending).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *accountDeletionRepository) FindLatestByUser(ctx context.Context, userID string) (*model.AccountDeletion, error) {
	var d model.AccountDeletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *accountDeletionRepository) Save(ctx context.Context, d *model.AccountDeletion) error {
	return r.db.WithContext(ctx).Save(d).Error
}
