package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes catalog browsing and admin product management.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*types.Page[ProductDTO], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Price       int64
	SalePrice   *int64
	Stock       int
	Images      []string
	Featured    bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Price       *int64
	SalePrice   *int64
	// ClearSalePrice drops the sale price; SalePrice is ignored when set.
	ClearSalePrice bool
	Stock          *int
	Images         *[]string
	Featured       *bool
	Active         *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a product service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*types.Page[ProductDTO], error) {
	input.Pagination = input.Pagination.Normalize(DefaultPageSize)
	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	items := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromModel(row))
	}
	return &types.Page[ProductDTO]{
		Items:      items,
		Total:      total,
		Page:       input.Pagination.Page,
		PageSize:   input.Pagination.PageSize,
		TotalPages: pagination.TotalPages(total, input.Pagination.PageSize),
	}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	dto := FromModel(*product)
	return &dto, nil
}

// CreateProduct validates and inserts a product; the slug is derived from the name.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: trimOptional(input.Description),
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		Stock:       input.Stock,
		Images:      cleanImages(input.Images),
		Featured:    input.Featured,
		Active:      true,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	if err := s.insertWithSlug(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}

	renamed := applyUpdateToProduct(product, input)
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, product.CategoryID); err != nil {
			return nil, err
		}
	}
	if renamed {
		product.Slug = slug.Make(product.Name)
	}
	if err := s.repo.Save(ctx, product); err != nil {
		if db.IsUniqueViolation(err, db.ConstraintProductsSlug) {
			product.Slug = slug.WithSuffix(product.Slug, shortSuffix())
			err = s.repo.Save(ctx, product)
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
		}
	}
	return s.GetProduct(ctx, product.ID)
}

// DeleteProduct deactivates the product. Order items keep referencing it.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) insertWithSlug(ctx context.Context, product *models.Product) error {
	base := slug.Make(product.Name)
	product.Slug = base
	err := s.repo.Create(ctx, product)
	if err != nil && db.IsUniqueViolation(err, db.ConstraintProductsSlug) {
		product.ID = uuid.Nil
		product.Slug = slug.WithSuffix(base, shortSuffix())
		err = s.repo.Create(ctx, product)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return nil
}

func (s *service) ensureCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.CategoryExists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist").
			WithDetails(map[string]any{"categoryId": "unknown category"})
	}
	return nil
}

func validateProduct(p *models.Product) error {
	fields := map[string]any{}
	if p.Name == "" {
		fields["name"] = "required"
	}
	if p.CategoryID == uuid.Nil {
		fields["categoryId"] = "required"
	}
	if p.Price < 0 {
		fields["price"] = "must be greater than or equal to 0"
	}
	if p.SalePrice != nil && *p.SalePrice < 0 {
		fields["salePrice"] = "must be greater than or equal to 0"
	}
	if p.Stock < 0 {
		fields["stock"] = "must be greater than or equal to 0"
	}
	if len(p.Images) == 0 {
		fields["images"] = "at least one image is required"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(fields)
	}
	return nil
}

// applyUpdateToProduct copies the set fields and reports whether the name changed.
func applyUpdateToProduct(p *models.Product, input UpdateProductInput) bool {
	renamed := false
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		renamed = name != p.Name
		p.Name = name
	}
	if input.CategoryID != nil {
		p.CategoryID = *input.CategoryID
	}
	if input.Description != nil {
		p.Description = trimOptional(input.Description)
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.ClearSalePrice {
		p.SalePrice = nil
	} else if input.SalePrice != nil {
		sale := *input.SalePrice
		p.SalePrice = &sale
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Images != nil {
		p.Images = cleanImages(*input.Images)
	}
	if input.Featured != nil {
		p.Featured = *input.Featured
	}
	if input.Active != nil {
		p.Active = *input.Active
	}
	return renamed
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func shortSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func productLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
}
