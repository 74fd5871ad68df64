package product

import (
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/google/uuid"
)

// DefaultPageSize is the browse page size when the client sends none.
const DefaultPageSize = 12

// SortField whitelists the columns the browse endpoint can order by.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortPrice     SortField = "price"
	SortName      SortField = "name"
)

var sortColumns = map[SortField]string{
	SortCreatedAt: "created_at",
	SortPrice:     "price",
	SortName:      "name",
}

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	CategoryID      *uuid.UUID
	Search          string
	Featured        bool
	IncludeInactive bool
}

// ListProductsInput captures the inputs needed to paginate and filter products.
type ListProductsInput struct {
	Filters    ProductListFilters
	SortBy     SortField
	Descending bool
	Pagination pagination.Params
}

func (in ListProductsInput) orderClause() string {
	column, ok := sortColumns[in.SortBy]
	if !ok {
		column = sortColumns[SortCreatedAt]
	}
	if in.Descending {
		return column + " DESC"
	}
	return column + " ASC"
}
