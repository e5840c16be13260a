package model

import "time"

// StockHistory is an append-only ledger of signed quantity deltas. The
// current stock of an item is always SUM(quantity) over its rows, never
// stored denormalized.
type StockHistory struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	OwnerUserID string    `gorm:"column:owner_user_id;size:128;not null;index:idx_stock_histories_owner"`
	ItemID      uint64    `gorm:"column:item_id;not null;index:idx_stock_histories_item"`
	Quantity    int       `gorm:"not null"`
	Note        *string   `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (StockHistory) TableName() string {
	return "stock_histories"
}
