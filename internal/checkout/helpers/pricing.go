package helpers

import (
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/google/uuid"
)

// PricedLine is one cart item priced at its current effective price.
type PricedLine struct {
	CartItemID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	LineTotal   int64
}

// PriceCartItems prices every item with a loaded product and returns the
// lines plus their sum. Items without a product are skipped; call
// ValidateCartItems first.
func PriceCartItems(items []models.CartItem) ([]PricedLine, int64) {
	lines := make([]PricedLine, 0, len(items))
	var total int64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		unit := item.Product.EffectivePrice()
		line := PricedLine{
			CartItemID:  item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			LineTotal:   money.LineTotal(unit, item.Quantity),
		}
		total += line.LineTotal
		lines = append(lines, line)
	}
	return lines, total
}

// OrderItems snapshots priced lines into order items.
func OrderItems(lines []PricedLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}
	return items
}
