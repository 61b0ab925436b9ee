package update

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"furniture-production/internal/storage"
)

// MockProductUpdater реализует интерфейс ProductUpdater для тестов
type MockProductUpdater struct {
	mock.Mock
}

func (m *MockProductUpdater) UpdateProduct(ctx context.Context, id int64, in storage.ProductInput) (*storage.ProductWithTime, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ProductWithTime), args.Error(1)
}

func serve(updater ProductUpdater, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Put("/products/{id}", UpdateProduct(slog.Default(), updater))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rr
}

// Тест: обновление без поля workshops не трогает привязки к цехам
func TestUpdateProduct_KeepsWorkshopsWhenOmitted(t *testing.T) {
	mockUpdater := new(MockProductUpdater)
	mockUpdater.On("UpdateProduct", mock.Anything, int64(5), mock.MatchedBy(func(in storage.ProductInput) bool {
		return in.Name == "Шкаф" && in.Workshops == nil
	})).Return(&storage.ProductWithTime{
		Product:             storage.Product{ID: 5, Name: "Шкаф", Article: 42},
		TotalProductionTime: 3,
	}, nil)

	rr := serve(mockUpdater, "/products/5", `{"product_name":"Шкаф","article":42,"min_partner_cost":0}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total_production_time":3`)
	mockUpdater.AssertExpectations(t)
}

// Тест: пустой массив workshops означает "убрать все цеха"
func TestUpdateProduct_EmptyWorkshopsClears(t *testing.T) {
	mockUpdater := new(MockProductUpdater)
	mockUpdater.On("UpdateProduct", mock.Anything, int64(5), mock.MatchedBy(func(in storage.ProductInput) bool {
		return in.Workshops != nil && len(in.Workshops) == 0
	})).Return(&storage.ProductWithTime{Product: storage.Product{ID: 5}}, nil)

	rr := serve(mockUpdater, "/products/5", `{"product_name":"Шкаф","article":42,"workshops":[]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockUpdater.AssertExpectations(t)
}

func TestUpdateProduct_Errors(t *testing.T) {
	mockUpdater := new(MockProductUpdater)
	mockUpdater.On("UpdateProduct", mock.Anything, int64(404), mock.Anything).
		Return(nil, fmt.Errorf("storage.sqlstore.UpdateProduct: %w", storage.ErrNotFound))
	mockUpdater.On("UpdateProduct", mock.Anything, int64(6), mock.Anything).
		Return(nil, fmt.Errorf("storage.sqlstore.UpdateProduct: %w", storage.ErrDuplicateKey))

	rr := serve(mockUpdater, "/products/404", `{"product_name":"Шкаф","article":42}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Product not found")

	rr = serve(mockUpdater, "/products/6", `{"product_name":"Шкаф","article":42}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(mockUpdater, "/products/xyz", `{"product_name":"Шкаф","article":42}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(mockUpdater, "/products/6", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	mockUpdater.AssertNumberOfCalls(t, "UpdateProduct", 2)
}
