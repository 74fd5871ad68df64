package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the shopper's cart operations. Every item mutation checks
// that the item belongs to the caller's cart.
type Service interface {
	GetCart(ctx context.Context, identity auth.Identity) (*CartDTO, error)
	AddItem(ctx context.Context, identity auth.Identity, input AddItemInput) (*CartDTO, error)
	SetQuantity(ctx context.Context, identity auth.Identity, itemID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, identity auth.Identity, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, identity auth.Identity) error
	// Open creates the empty cart for a new account inside tx.
	Open(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Cart, error)
}

// AddItemInput is the validated add-to-cart payload.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type service struct {
	tx   txRunner
	repo CartRepository
}

// NewService builds the cart service.
func NewService(tx txRunner, repo CartRepository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{tx: tx, repo: repo}, nil
}

func (s *service) GetCart(ctx context.Context, identity auth.Identity) (*CartDTO, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}
	var out *CartDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cart, err := s.loadOrCreate(ctx, s.repo.WithTx(tx), identity.UserID)
		if err != nil {
			return err
		}
		dto := FromModel(cart)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Open(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID}
	if err := s.repo.WithTx(tx).Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges into an existing line for the product or creates one. The
// merged quantity must fit the current stock.
func (s *service) AddItem(ctx context.Context, identity auth.Identity, input AddItemInput) (*CartDTO, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required").
			WithDetails(map[string]any{"productId": "required"})
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": "must be at least 1"})
	}

	return s.mutate(ctx, identity, func(repo CartRepository, cart *models.Cart) error {
		product, err := repo.FindProduct(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}
		if !product.Active {
			return pkgerrors.ProductUnavailable(product.Name)
		}

		existing, err := repo.FindItemByProduct(ctx, cart.ID, product.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
		}
		wanted := input.Quantity
		if existing != nil {
			wanted += existing.Quantity
		}
		if product.Stock < wanted {
			return pkgerrors.InsufficientStock(product.Name, product.Stock)
		}

		if existing != nil {
			return wrapWrite(repo.UpdateItemQuantity(ctx, existing.ID, wanted), "update cart item")
		}
		err = repo.CreateItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: wanted})
		if db.IsUniqueViolation(err, db.ConstraintCartItemsProduct) {
			return pkgerrors.Conflict("cart item")
		}
		return wrapWrite(err, "create cart item")
	})
}

// SetQuantity replaces the quantity of a line; zero removes it.
func (s *service) SetQuantity(ctx context.Context, identity auth.Identity, itemID uuid.UUID, quantity int) (*CartDTO, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than or equal to 0").
			WithDetails(map[string]any{"quantity": "must be greater than or equal to 0"})
	}

	return s.mutate(ctx, identity, func(repo CartRepository, cart *models.Cart) error {
		item, err := ownedItem(ctx, repo, cart, itemID)
		if err != nil {
			return err
		}
		if quantity == 0 {
			return wrapWrite(repo.DeleteItem(ctx, item.ID), "delete cart item")
		}
		if item.Product == nil {
			return pkgerrors.New(pkgerrors.CodeInternal, "cart item has no product")
		}
		if item.Product.Stock < quantity {
			return pkgerrors.InsufficientStock(item.Product.Name, item.Product.Stock)
		}
		return wrapWrite(repo.UpdateItemQuantity(ctx, item.ID, quantity), "update cart item")
	})
}

func (s *service) RemoveItem(ctx context.Context, identity auth.Identity, itemID uuid.UUID) (*CartDTO, error) {
	if err := requireUser(identity); err != nil {
		return nil, err
	}
	return s.mutate(ctx, identity, func(repo CartRepository, cart *models.Cart) error {
		item, err := ownedItem(ctx, repo, cart, itemID)
		if err != nil {
			return err
		}
		return wrapWrite(repo.DeleteItem(ctx, item.ID), "delete cart item")
	})
}

// Clear empties the caller's cart. A missing or empty cart is left as is.
func (s *service) Clear(ctx context.Context, identity auth.Identity) error {
	if err := requireUser(identity); err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := repo.FindByUserID(ctx, identity.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		_, err = repo.ClearItems(ctx, cart.ID)
		return wrapWrite(err, "clear cart")
	})
}

// mutate runs fn against the caller's cart inside one transaction and returns
// the cart as it stands after fn.
func (s *service) mutate(ctx context.Context, identity auth.Identity, fn func(repo CartRepository, cart *models.Cart) error) (*CartDTO, error) {
	var out *CartDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := s.loadOrCreate(ctx, repo, identity.UserID)
		if err != nil {
			return err
		}
		if err := fn(repo, cart); err != nil {
			return err
		}
		reloaded, err := repo.FindByID(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
		}
		dto := FromModel(reloaded)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) loadOrCreate(ctx context.Context, repo CartRepository, userID uuid.UUID) (*models.Cart, error) {
	cart, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	cart = &models.Cart{UserID: userID}
	if err := repo.Create(ctx, cart); err != nil {
		if db.IsUniqueViolation(err, db.ConstraintCartsUser) {
			return nil, pkgerrors.Conflict("cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	return cart, nil
}

// ownedItem returns 404 for unknown items and 403 for items in another user's cart.
func ownedItem(ctx context.Context, repo CartRepository, cart *models.Cart, itemID uuid.UUID) (*models.CartItem, error) {
	item, err := repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	if item.CartID != cart.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cart item belongs to another user")
	}
	return item, nil
}

func requireUser(identity auth.Identity) error {
	if identity.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return nil
}

func wrapWrite(err error, action string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
