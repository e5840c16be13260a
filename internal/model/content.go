package model

import (
	"time"

	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentTypeFile  ContentType = "file"
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
)

type Content struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement"`
	ItemID    uint64            `gorm:"column:item_id;not null;index:idx_contents_item"`
	Type      ContentType       `gorm:"size:16;not null"`
	Data      datatypes.JSONMap `gorm:"column:data"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (Content) TableName() string {
	return "contents"
}
