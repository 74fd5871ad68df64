package cart

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// CartDTO is the cart view with totals computed from effective prices.
type CartDTO struct {
	ID        uuid.UUID     `json:"id"`
	Items     []CartItemDTO `json:"items"`
	Subtotal  int64         `json:"subtotal"`
	ItemCount int           `json:"itemCount"`
}

// CartItemDTO is one cart line.
type CartItemDTO struct {
	ID        uuid.UUID      `json:"id"`
	ProductID uuid.UUID      `json:"productId"`
	Product   ProductSummary `json:"product"`
	Quantity  int            `json:"quantity"`
	UnitPrice int64          `json:"unitPrice"`
	LineTotal int64          `json:"lineTotal"`
}

// ProductSummary is the product slice shown next to a cart line.
type ProductSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     int64     `json:"price"`
	SalePrice *int64    `json:"salePrice,omitempty"`
	Stock     int       `json:"stock"`
	Images    []string  `json:"images"`
	Active    bool      `json:"active"`
}

// FromModel builds the cart view. Items must have Product preloaded.
func FromModel(c *models.Cart) CartDTO {
	dto := CartDTO{ID: c.ID, Items: make([]CartItemDTO, 0, len(c.Items))}
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		unit := item.Product.EffectivePrice()
		line := money.LineTotal(unit, item.Quantity)
		dto.Items = append(dto.Items, CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product: ProductSummary{
				ID:        item.Product.ID,
				Name:      item.Product.Name,
				Slug:      item.Product.Slug,
				Price:     item.Product.Price,
				SalePrice: item.Product.SalePrice,
				Stock:     item.Product.Stock,
				Images:    append([]string{}, item.Product.Images...),
				Active:    item.Product.Active,
			},
			Quantity:  item.Quantity,
			UnitPrice: unit,
			LineTotal: line,
		})
		dto.Subtotal += line
		dto.ItemCount += item.Quantity
	}
	return dto
}
