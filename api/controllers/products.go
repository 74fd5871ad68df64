package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// ProductList serves the public catalog. Query: page, pageSize, categoryId,
// search, featured, sortBy (createdAt|price|name), sortOrder (asc|desc).
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseProductListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func parseProductListQuery(r *http.Request) (productsvc.ListProductsInput, error) {
	var input productsvc.ListProductsInput

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<20)
	if err != nil {
		return input, err
	}
	size, err := validators.ParseQueryInt(r, "pageSize", productsvc.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return input, err
	}
	categoryID, err := validators.ParseQueryUUID(r, "categoryId")
	if err != nil {
		return input, err
	}
	featured, err := validators.ParseQueryBool(r, "featured")
	if err != nil {
		return input, err
	}

	sortBy := productsvc.SortField(strings.TrimSpace(r.URL.Query().Get("sortBy")))
	switch sortBy {
	case "":
		sortBy = productsvc.SortCreatedAt
	case productsvc.SortCreatedAt, productsvc.SortPrice, productsvc.SortName:
	default:
		return input, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort field").
			WithDetails(map[string]any{"sortBy": "must be one of: createdAt, price, name"})
	}

	descending := true
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sortOrder"))) {
	case "", "desc":
	case "asc":
		descending = false
	default:
		return input, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort order").
			WithDetails(map[string]any{"sortOrder": "must be one of: asc, desc"})
	}

	input.Filters = productsvc.ProductListFilters{
		CategoryID: categoryID,
		Search:     validators.SanitizeQuery(r.URL.Query().Get("search"), 100),
		Featured:   featured,
	}
	input.SortBy = sortBy
	input.Descending = descending
	input.Pagination = pagination.Params{Page: page, PageSize: size}
	return input, nil
}

func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
	Name        string    `json:"name" validate:"required,max=200"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price" validate:"gte=0"`
	SalePrice   *int64    `json:"salePrice,omitempty" validate:"omitempty,gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Images      []string  `json:"images" validate:"required,min=1,dive,required"`
	Featured    bool      `json:"featured"`
}

// AdminCreateProduct validates the payload and creates an active product.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			CategoryID:  payload.CategoryID,
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			SalePrice:   payload.SalePrice,
			Stock:       payload.Stock,
			Images:      payload.Images,
			Featured:    payload.Featured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusCreated, product, "Tạo sản phẩm thành công")
	}
}

// nullableInt64 tells an absent field apart from an explicit null.
type nullableInt64 struct {
	Set   bool
	Value *int64
}

func (n *nullableInt64) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type updateProductRequest struct {
	CategoryID  *uuid.UUID    `json:"categoryId,omitempty"`
	Name        *string       `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description,omitempty"`
	Price       *int64        `json:"price,omitempty" validate:"omitempty,gte=0"`
	SalePrice   nullableInt64 `json:"salePrice"`
	Stock       *int          `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Images      *[]string     `json:"images,omitempty" validate:"omitempty,min=1,dive,required"`
	Featured    *bool         `json:"featured,omitempty"`
	Active      *bool         `json:"active,omitempty"`
}

func (p updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      p.Images,
		Featured:    p.Featured,
		Active:      p.Active,
	}
	if p.SalePrice.Set {
		if p.SalePrice.Value == nil {
			input.ClearSalePrice = true
		} else if *p.SalePrice.Value < 0 {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"salePrice": "must be greater than or equal to 0"})
		} else {
			input.SalePrice = p.SalePrice.Value
		}
	}
	return input, nil
}

// AdminUpdateProduct applies a partial update. Sending "salePrice": null ends
// the sale.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, product, "Cập nhật sản phẩm thành công")
	}
}

// AdminDeleteProduct hides the product from the catalog.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, nil, "Xóa sản phẩm thành công")
	}
}
