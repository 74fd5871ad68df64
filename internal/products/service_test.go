package product

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func stringPtr(v string) *string { return &v }

func newTestService(t *testing.T) (Service, *Repository, func() uuid.UUID) {
	t.Helper()
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	require.NoError(t, err)
	newCategory := func() uuid.UUID {
		c := &models.Category{Name: "Giày", Slug: "giay-" + uuid.NewString()}
		require.NoError(t, conn.Create(c).Error)
		return c.ID
	}
	return svc, repo, newCategory
}

func TestCreateProductDerivesSlugAndEffectivePrice(t *testing.T) {
	svc, _, newCategory := newTestService(t)
	sale := int64(80000)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		CategoryID: newCategory(),
		Name:       "  Áo thun Đen ",
		Price:      100000,
		SalePrice:  &sale,
		Stock:      5,
		Images:     []string{" https://img.example.com/a.jpg ", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Áo thun Đen", dto.Name)
	assert.Equal(t, "ao-thun-den", dto.Slug)
	assert.Equal(t, int64(80000), dto.EffectivePrice)
	assert.True(t, dto.OnSale)
	assert.True(t, dto.Active)
	assert.Equal(t, []string{"https://img.example.com/a.jpg"}, dto.Images)
	require.NotNil(t, dto.Category)
}

func TestCreateProductSlugCollisionGetsSuffix(t *testing.T) {
	svc, _, newCategory := newTestService(t)
	ctx := context.Background()
	input := CreateProductInput{CategoryID: newCategory(), Name: "Mũ lưỡi trai", Price: 50000, Images: []string{"x.jpg"}}

	first, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "mu-luoi-trai-")
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, newCategory := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		CategoryID: newCategory(),
		Name:       "",
		Price:      -1,
		Stock:      -2,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]any)
	for _, field := range []string{"name", "price", "stock", "images"} {
		assert.Contains(t, details, field)
	}

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		CategoryID: uuid.New(),
		Name:       "Orphan",
		Images:     []string{"x.jpg"},
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "unknown category should fail validation, got %v", err)
}

func TestUpdateProductRenamesAndClearsSale(t *testing.T) {
	svc, _, newCategory := newTestService(t)
	ctx := context.Background()
	sale := int64(10)
	created, err := svc.CreateProduct(ctx, CreateProductInput{CategoryID: newCategory(), Name: "Old", Price: 100, SalePrice: &sale, Images: []string{"x.jpg"}})
	require.NoError(t, err)

	stock := 9
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:           stringPtr("Túi xách"),
		ClearSalePrice: true,
		Stock:          &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "tui-xach", updated.Slug)
	assert.Nil(t, updated.SalePrice)
	assert.Equal(t, int64(100), updated.EffectivePrice)
	assert.Equal(t, 9, updated.Stock)

	_, err = svc.UpdateProduct(ctx, uuid.New(), UpdateProductInput{Stock: &stock})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteProductIsSoft(t *testing.T) {
	svc, repo, newCategory := newTestService(t)
	ctx := context.Background()
	created, err := svc.CreateProduct(ctx, CreateProductInput{CategoryID: newCategory(), Name: "Khăn", Price: 100, Images: []string{"x.jpg"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	page, err := svc.ListProducts(ctx, ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	assert.True(t, pkgerrors.IsCode(svc.DeleteProduct(ctx, uuid.New()), pkgerrors.CodeNotFound))
}

func TestListProductsFiltersAndPaginates(t *testing.T) {
	svc, _, newCategory := newTestService(t)
	ctx := context.Background()
	shoes := newCategory()
	bags := newCategory()

	for i, name := range []string{"Giày chạy bộ", "Giày da", "Giày lười"} {
		_, err := svc.CreateProduct(ctx, CreateProductInput{
			CategoryID: shoes,
			Name:       name,
			Price:      int64(100000 * (i + 1)),
			Images:     []string{"x.jpg"},
			Featured:   i == 0,
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, CreateProductInput{
		CategoryID:  bags,
		Name:        "Balo",
		Description: stringPtr("đựng giày tiện lợi"),
		Price:       50000,
		Images:      []string{"x.jpg"},
	})
	require.NoError(t, err)

	page, err := svc.ListProducts(ctx, ListProductsInput{
		Filters:    ProductListFilters{CategoryID: &shoes},
		SortBy:     SortPrice,
		Pagination: pagination.Params{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(100000), page.Items[0].Price)

	featured, err := svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{Featured: true}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), featured.Total)
	assert.Equal(t, DefaultPageSize, featured.PageSize)

	search, err := svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{Search: "GIÀY"}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), search.Total, "search matches names and descriptions")
}

func TestDecrementStockNeverOversells(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 3})

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied, err := repo.DecrementStock(context.Background(), product.ID, 1)
			if err != nil {
				t.Errorf("decrement: %v", err)
				return
			}
			if applied {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, ok)
	assert.Equal(t, 0, stored.Stock)
}
