package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog listing. Stock never goes below zero.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CategoryID  uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	Price       int64     `gorm:"column:price;type:bigint;not null"`
	SalePrice   *int64    `gorm:"column:sale_price;type:bigint"`
	Stock       int       `gorm:"column:stock;not null;check:stock >= 0"`
	Images      []string  `gorm:"column:images;type:jsonb;serializer:json"`
	Featured    bool      `gorm:"column:featured;not null"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice is the sale price when one is set below the list price, otherwise the list price.
func (p Product) EffectivePrice() int64 {
	if p.SalePrice != nil && *p.SalePrice > 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}
