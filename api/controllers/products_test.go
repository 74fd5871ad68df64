package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type stubProductService struct {
	listInput productsvc.ListProductsInput
	created   *productsvc.CreateProductInput
	updated   *productsvc.UpdateProductInput
	deleteErr error
	deletedID uuid.UUID
}

func (s *stubProductService) ListProducts(_ context.Context, input productsvc.ListProductsInput) (*types.Page[productsvc.ProductDTO], error) {
	s.listInput = input
	return &types.Page[productsvc.ProductDTO]{Items: []productsvc.ProductDTO{}, Page: input.Pagination.Page, PageSize: input.Pagination.PageSize}, nil
}

func (s *stubProductService) GetProduct(_ context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id}, nil
}

func (s *stubProductService) CreateProduct(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.created = &input
	return &productsvc.ProductDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (s *stubProductService) UpdateProduct(_ context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	s.updated = &input
	return &productsvc.ProductDTO{ID: id}, nil
}

func (s *stubProductService) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.deleteErr
}

func TestProductListParsesQuery(t *testing.T) {
	svc := &stubProductService{}
	category := uuid.New()
	rec := httptest.NewRecorder()
	target := "/api/products?page=2&categoryId=" + category.String() + "&search=gi%C3%A0y&featured=true&sortBy=price&sortOrder=asc"
	ProductList(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, target, "", pkgAuth.Identity{}, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	in := svc.listInput
	if in.Pagination.Page != 2 || in.Pagination.PageSize != productsvc.DefaultPageSize {
		t.Fatalf("unexpected pagination %+v", in.Pagination)
	}
	if in.Filters.CategoryID == nil || *in.Filters.CategoryID != category {
		t.Fatalf("unexpected category filter %v", in.Filters.CategoryID)
	}
	if in.Filters.Search != "giày" || !in.Filters.Featured {
		t.Fatalf("unexpected filters %+v", in.Filters)
	}
	if in.SortBy != productsvc.SortPrice || in.Descending {
		t.Fatalf("unexpected sort %s desc=%v", in.SortBy, in.Descending)
	}
}

func TestProductListRejectsBadQuery(t *testing.T) {
	for _, target := range []string{
		"/api/products?pageSize=500",
		"/api/products?categoryId=abc",
		"/api/products?sortBy=stock",
		"/api/products?sortOrder=sideways",
	} {
		rec := httptest.NewRecorder()
		ProductList(&stubProductService{}, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, target, "", pkgAuth.Identity{}, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, rec.Code)
		}
	}
}

func TestAdminCreateProductRequiresImages(t *testing.T) {
	svc := &stubProductService{}
	body := `{"categoryId":"` + uuid.NewString() + `","name":"Áo","price":100000,"stock":3,"images":[]}`
	rec := httptest.NewRecorder()
	AdminCreateProduct(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/admin/products", body, shopper(), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if _, ok := decodeEnvelope(t, rec).Error.Details["images"]; !ok {
		t.Fatal("expected images in details")
	}
	if svc.created != nil {
		t.Fatal("service must not run")
	}
}

func TestAdminUpdateProductSalePriceNull(t *testing.T) {
	svc := &stubProductService{}
	id := uuid.New()
	rec := httptest.NewRecorder()
	AdminUpdateProduct(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPut, "/api/admin/products/"+id.String(), `{"salePrice":null,"stock":4}`, shopper(), map[string]string{"id": id.String()}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updated == nil || !svc.updated.ClearSalePrice || svc.updated.SalePrice != nil {
		t.Fatalf("expected sale price cleared, got %+v", svc.updated)
	}
	if svc.updated.Stock == nil || *svc.updated.Stock != 4 {
		t.Fatalf("expected stock 4, got %v", svc.updated.Stock)
	}

	svc = &stubProductService{}
	rec = httptest.NewRecorder()
	AdminUpdateProduct(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPut, "/", `{"salePrice":90000}`, shopper(), map[string]string{"id": id.String()}))
	if svc.updated == nil || svc.updated.ClearSalePrice || svc.updated.SalePrice == nil || *svc.updated.SalePrice != 90000 {
		t.Fatalf("expected sale price set, got %+v", svc.updated)
	}
}

func TestAdminDeleteProduct(t *testing.T) {
	id := uuid.New()

	svc := &stubProductService{}
	rec := httptest.NewRecorder()
	AdminDeleteProduct(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/", "", shopper(), map[string]string{"id": id.String()}))
	if rec.Code != http.StatusOK || svc.deletedID != id {
		t.Fatalf("expected delete of %s, got %d %s", id, rec.Code, svc.deletedID)
	}
	if msg := decodeEnvelope(t, rec).Message; msg != "Xóa sản phẩm thành công" {
		t.Fatalf("unexpected message %q", msg)
	}

	missing := &stubProductService{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	rec = httptest.NewRecorder()
	AdminDeleteProduct(missing, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/", "", shopper(), map[string]string{"id": id.String()}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	AdminDeleteProduct(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/", "", shopper(), map[string]string{"id": "x"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestTopupMessage(t *testing.T) {
	got := TopupMessage(100000, 80000, decimal.RequireFromString("0.2"))
	want := "Nạp thẻ thành công. Mệnh giá: 100.000 VND. Nhận được: 80.000 VND (phí 20%)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
