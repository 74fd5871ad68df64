package product

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID        `json:"id"`
	CategoryID     uuid.UUID        `json:"categoryId"`
	Category       *CategorySummary `json:"category,omitempty"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    *string          `json:"description,omitempty"`
	Price          int64            `json:"price"`
	SalePrice      *int64           `json:"salePrice,omitempty"`
	EffectivePrice int64            `json:"effectivePrice"`
	OnSale         bool             `json:"onSale"`
	Stock          int              `json:"stock"`
	Images         []string         `json:"images"`
	Featured       bool             `json:"featured"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// CategorySummary is the category slice embedded in product payloads.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// FromModel maps a product row to its DTO. Category is included when preloaded.
func FromModel(p models.Product) ProductDTO {
	effective := p.EffectivePrice()
	dto := ProductDTO{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		SalePrice:      p.SalePrice,
		EffectivePrice: effective,
		OnSale:         effective < p.Price,
		Stock:          p.Stock,
		Images:         append([]string{}, p.Images...),
		Featured:       p.Featured,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Category != nil {
		dto.Category = &CategorySummary{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	return dto
}
