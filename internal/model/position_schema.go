package model

import (
	"time"

	"gorm.io/datatypes"
)

// PositionSchema holds a user-defined JSON-Schema-shaped document describing
// the key/value structure of positions created from it. The document is
// stored as-is; this service does not validate position data against it.
type PositionSchema struct {
	ID          uint64            `gorm:"primaryKey;autoIncrement"`
	OwnerUserID string            `gorm:"column:owner_user_id;size:128;not null;index:idx_position_schemas_owner"`
	Name        string            `gorm:"size:120;not null"`
	Schema      datatypes.JSONMap `gorm:"column:json_schema"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

func (PositionSchema) TableName() string {
	return "position_schemas"
}
