package model

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Item struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement"`
	OwnerUserID    string     `gorm:"column:owner_user_id;size:128;not null;index:idx_items_owner"`
	Title          string     `gorm:"size:120;not null"`
	Description    *string    `gorm:"type:text"`
	OriginalQRCode *string    `gorm:"column:original_qr_code;size:255"`
	CategoryID     *uint64    `gorm:"column:category_id;index:idx_items_category"`
	LocationID     *uint64    `gorm:"column:location_id"`
	AuthorID       *uint64    `gorm:"column:author_id"`
	ParentID       *uint64    `gorm:"column:parent_id;index:idx_items_parent"`
	Price          *uint
	Currency       string     `gorm:"size:8;not null;default:JPY"`
	Visibility     Visibility `gorm:"size:16;not null;default:private;index:idx_items_visibility"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime;index:idx_items_updated_at"`
}

func (Item) TableName() string {
	return "items"
}
