package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

type UploadFileRepository interface {
	Create(ctx context.Context, f *model.UploadFile) error
	FindByID(ctx context.Context, id uint64) (*model.UploadFile, error)
	// FindOwnedByIDs returns only the rows among ids that belong to the
	// owner; callers compare lengths to detect foreign file references.
	FindOwnedByIDs(ctx context.Context, ownerUserID string, ids []uint64) ([]model.UploadFile, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.UploadFile, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]model.UploadFile, error)
	Associate(ctx context.Context, fileID, itemID uint64, sortOrder int) error
	// DisassociateOthers detaches files currently on the item that are not
	// in keepIDs (removed from the image list; rows survive unattached).
	DisassociateOthers(ctx context.Context, itemID uint64, keepIDs []uint64) error
	Delete(ctx context.Context, id uint64) error
}

type uploadFileRepository struct {
	db *gorm.DB
}

func NewUploadFileRepository(db *gorm.DB) UploadFileRepository {
	return &uploadFileRepository{db: db}
}

func (r *uploadFileRepository) Create(ctx context.Context, f *model.UploadFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *uploadFileRepository) FindByID(ctx context.Context, id uint64) (*model.UploadFile, error) {
	var f model.UploadFile
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *uploadFileRepository) FindOwnedByIDs(ctx context.Context, ownerUserID string, ids []uint64) ([]model.UploadFile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var fs []model.UploadFile
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ? AND id IN ?", ownerUserID, ids).
		Find(&fs).Error
	return fs, err
}

func (r *uploadFileRepository) ListByItem(ctx context.Context, itemID uint64) ([]model.UploadFile, error) {
	var fs []model.UploadFile
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("sort_order asc").Order("id asc").
		Find(&fs).Error
	return fs, err
}

func (r *uploadFileRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]model.UploadFile, error) {
	var fs []model.UploadFile
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Find(&fs).Error
	return fs, err
}

func (r *uploadFileRepository) Associate(ctx context.Context, fileID, itemID uint64, sortOrder int) error {
	return r.db.WithContext(ctx).Model(&model.UploadFile{}).
		Where("id = ?", fileID).
		Updates(map[string]any{"item_id": itemID, "sort_order": sortOrder}).Error
}

func (r *uploadFileRepository) DisassociateOthers(ctx context.Context, itemID uint64, keepIDs []uint64) error {
	q := r.db.WithContext(ctx).Model(&model.UploadFile{}).Where("item_id = ?", itemID)
	if len(keepIDs) > 0 {
		q = q.Where("id NOT IN ?", keepIDs)
	}
	return q.Updates(map[string]any{"item_id": nil, "sort_order": 0}).Error
}

func (r *uploadFileRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.UploadFile{}, id).Error
}
