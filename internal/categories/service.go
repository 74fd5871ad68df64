package categories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
)

// Service exposes category browsing and admin creation.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
}

// CategoryDTO is the public category shape.
type CategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	ProductCount int64     `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateCategoryInput holds the validated admin payload.
type CreateCategoryInput struct {
	Name        string
	Description *string
}

type service struct {
	repo Repository
}

// NewService builds the category service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		dto := fromModel(row.Category)
		dto.ProductCount = row.ProductCount
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required").
			WithDetails(map[string]any{"name": "required"})
	}
	categorySlug := slug.Make(name)
	if categorySlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name must contain letters or digits").
			WithDetails(map[string]any{"name": "invalid"})
	}

	category := &models.Category{Name: name, Slug: categorySlug, Description: input.Description}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, db.ConstraintCategoriesSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "a category with this name already exists").
				WithDetails(map[string]any{"name": "already exists"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	dto := fromModel(*category)
	return &dto, nil
}

func fromModel(c models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
