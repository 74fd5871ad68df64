package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's stored value in VND. Balance never goes below zero.
type Wallet struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Balance   int64     `gorm:"column:balance;type:bigint;not null;check:balance >= 0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
