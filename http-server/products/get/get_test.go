package get

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"furniture-production/internal/storage"
)

// MockProductsProvider реализует интерфейс ProductsProvider для тестов
type MockProductsProvider struct {
	mock.Mock
}

func (m *MockProductsProvider) ListProducts(ctx context.Context) ([]storage.ProductWithTime, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ProductWithTime), args.Error(1)
}

func (m *MockProductsProvider) ListWorkshopsForProduct(ctx context.Context, id int64) ([]storage.ProductWorkshopDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ProductWorkshopDetail), args.Error(1)
}

func (m *MockProductsProvider) ProductionTime(ctx context.Context, id int64) (*storage.ProductionTime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ProductionTime), args.Error(1)
}

func newRouter(provider ProductsProvider) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/products", GetProducts(slog.Default(), provider))
	r.Get("/products/{id}/workshops", GetProductWorkshops(slog.Default(), provider))
	r.Get("/products/{id}/production_time", GetProductionTime(slog.Default(), provider))
	return r
}

// Тест: список продукции с рассчитанным временем
func TestGetProducts_Success(t *testing.T) {
	mockProvider := new(MockProductsProvider)

	typeName := "Гостиные"
	mockProvider.On("ListProducts", mock.Anything).Return([]storage.ProductWithTime{
		{
			Product: storage.Product{
				ID:              1,
				Name:            "Комплект мебели для гостиной Ольха горная",
				Article:         1549922,
				MinPartnerCost:  160507,
				ProductTypeName: &typeName,
			},
			TotalProductionTime: 4,
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rr := httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []map[string]any
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, float64(1), resp[0]["product_id"])
	assert.Equal(t, float64(1549922), resp[0]["article"])
	assert.Equal(t, "Гостиные", resp[0]["product_type_name"])
	assert.Nil(t, resp[0]["main_material_name"])
	assert.Equal(t, float64(4), resp[0]["total_production_time"])

	mockProvider.AssertExpectations(t)
}

// Тест: пустой каталог отдаётся как [], а не null
func TestGetProducts_Empty(t *testing.T) {
	mockProvider := new(MockProductsProvider)
	mockProvider.On("ListProducts", mock.Anything).Return(nil, nil)

	rr := httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetProducts_StorageError(t *testing.T) {
	mockProvider := new(MockProductsProvider)
	mockProvider.On("ListProducts", mock.Anything).Return(nil, errors.New("database is locked"))

	rr := httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal error")
}

func TestGetProductWorkshops(t *testing.T) {
	mockProvider := new(MockProductsProvider)
	mockProvider.On("ListWorkshopsForProduct", mock.Anything, int64(3)).Return([]storage.ProductWorkshopDetail{
		{WorkshopName: "Проектный", WorkshopType: "Проектирование", NumEmployees: 4, TimeInWorkshop: 0.5},
	}, nil)
	mockProvider.On("ListWorkshopsForProduct", mock.Anything, int64(404)).
		Return(nil, fmt.Errorf("storage.sqlstore.ListWorkshopsForProduct: %w", storage.ErrNotFound))

	rr := httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/3/workshops", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"workshop_name":"Проектный","workshop_type":"Проектирование","num_employees":4,"time_in_workshop":0.5}]`, rr.Body.String())

	rr = httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/404/workshops", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/abc/workshops", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	mockProvider.AssertExpectations(t)
}

func TestGetProductionTime(t *testing.T) {
	mockProvider := new(MockProductsProvider)
	mockProvider.On("ProductionTime", mock.Anything, int64(7)).
		Return(&storage.ProductionTime{ProductID: 7, TotalProductionTime: 0}, nil)
	mockProvider.On("ProductionTime", mock.Anything, int64(8)).
		Return(nil, storage.ErrNotFound)

	rr := httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/7/production_time", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"product_id":7,"total_production_time":0}`, rr.Body.String())

	rr = httptest.NewRecorder()
	newRouter(mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/8/production_time", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
