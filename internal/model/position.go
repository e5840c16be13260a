package model

import (
	"time"

	"gorm.io/datatypes"
)

type Position struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement"`
	OwnerUserID      string            `gorm:"column:owner_user_id;size:128;not null;index:idx_positions_owner"`
	ItemID           uint64            `gorm:"column:item_id;not null;index:idx_positions_item"`
	PositionSchemaID uint64            `gorm:"column:position_schema_id;not null"`
	Data             datatypes.JSONMap `gorm:"column:data"`
	CreatedAt        time.Time         `gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime"`
}

func (Position) TableName() string {
	return "positions"
}
