package model

import "time"

type Location struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	OwnerUserID string    `gorm:"column:owner_user_id;size:128;not null;index:idx_locations_owner"`
	Name        string    `gorm:"size:120;not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Location) TableName() string {
	return "locations"
}
