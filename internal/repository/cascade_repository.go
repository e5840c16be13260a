package repository

import (
	"context"

	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

// CascadeRepository performs the ordered multi-table deletes behind item and
// account removal. Each call runs in one transaction, children before
// parents; deleting already-absent rows is a no-op, so reruns after a
// partial failure are safe.
type CascadeRepository interface {
	DeleteItemRows(ctx context.Context, itemID uint64) error
	DeleteOwnerRows(ctx context.Context, ownerUserID string) error
}

type cascadeRepository struct {
	db *gorm.DB
}

func NewCascadeRepository(db *gorm.DB) CascadeRepository {
	return &cascadeRepository{db: db}
}

func (r *cascadeRepository) DeleteItemRows(ctx context.Context, itemID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&model.UploadFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&model.Position{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&model.Content{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&model.StockHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&model.ItemWhitelist{}).Error; err != nil {
			return err
		}
		// Children survive with a broken parent reference.
		if err := tx.Model(&model.Item{}).Where("parent_id = ?", itemID).Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Item{}, itemID).Error
	})
}

func (r *cascadeRepository) DeleteOwnerRows(ctx context.Context, ownerUserID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedItems := tx.Model(&model.Item{}).Select("id").Where("owner_user_id = ?", ownerUserID)

		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.UploadFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.Position{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", ownedItems).Delete(&model.Content{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.StockHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", ownedItems).Delete(&model.ItemWhitelist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.Author{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_user_id = ?", ownerUserID).Delete(&model.PositionSchema{}).Error
	})
}
