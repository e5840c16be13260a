package model

import "time"

type AccountDeletionStatus string

const (
	AccountDeletionStatusPending   AccountDeletionStatus = "pending"
	AccountDeletionStatusCancelled AccountDeletionStatus = "cancelled"
	AccountDeletionStatusCompleted AccountDeletionStatus = "completed"
)

// AccountDeletion tracks scheduled account wipes. At most one pending row
// may exist per user; the external scheduler calls back after ScheduledAt
// to complete it.
type AccountDeletion struct {
	ID             uint64                `gorm:"primaryKey;autoIncrement"`
	UserID         string                `gorm:"column:user_id;size:128;not null;index:idx_account_deletions_user"`
	UserEmail      *string               `gorm:"size:255"`
	Status         AccountDeletionStatus `gorm:"size:16;not null;default:pending"`
	ScheduledAt    time.Time             `gorm:"not null"`
	ExternalJobRef *string               `gorm:"column:external_job_ref;size:128"`
	CreatedAt      time.Time             `gorm:"autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime"`
}

func (AccountDeletion) TableName() string {
	return "account_deletions"
}
