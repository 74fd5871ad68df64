package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots a purchased product at checkout time.
type OrderItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Product     *Product  `gorm:"foreignKey:ProductID"`
	ProductName string    `gorm:"column:product_name;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Price       int64     `gorm:"column:price;type:bigint;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// LineTotal is the unit price multiplied by quantity.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
