package model

import "time"

// ItemWhitelist grants read access to one private item for one email
// address. Emails are lowercased before storage; comparisons rely on that.
type ItemWhitelist struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ItemID    uint64    `gorm:"column:item_id;not null;uniqueIndex:uk_item_whitelists_item_email"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uk_item_whitelists_item_email"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ItemWhitelist) TableName() string {
	return "item_whitelists"
}
