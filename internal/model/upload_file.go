package model

import "time"

// UploadFile is created at presign time and stays unattached (ItemID nil)
// until an item save associates it. SortOrder orders an item's image list.
type UploadFile struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	OwnerUserID string    `gorm:"column:owner_user_id;size:128;not null;index:idx_upload_files_owner"`
	ItemID      *uint64   `gorm:"column:item_id;index:idx_upload_files_item"`
	Key         string    `gorm:"size:512;not null"`
	Filename    string    `gorm:"size:255;not null"`
	ContentType string    `gorm:"column:content_type;size:128;not null"`
	Size        int64     `gorm:"not null"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (UploadFile) TableName() string {
	return "upload_files"
}
