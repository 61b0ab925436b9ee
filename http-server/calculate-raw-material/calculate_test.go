package calculate_raw_material

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"furniture-production/internal/service/calculation"
	"furniture-production/internal/validator"
)

type MockRawMaterialCalculator struct {
	mock.Mock
}

func (m *MockRawMaterialCalculator) RequiredRawMaterial(ctx context.Context, req calculation.RawMaterialRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func TestCalculateRawMaterial_Success(t *testing.T) {
	// 1. Мок калькулятора
	mockCalc := new(MockRawMaterialCalculator)
	mockCalc.On("RequiredRawMaterial", mock.Anything, calculation.RawMaterialRequest{
		ProductTypeName: "Кресла",
		MaterialName:    "Ламинированное ДСП",
		Quantity:        4,
		Param1:          2,
		Param2:          3,
	}).Return(13, nil)

	// 2. Хендлер
	handler := CalculateRawMaterial(slog.Default(), mockCalc)

	// 3. Запрос
	reqBody := `{
		"product_type_name": "Кресла",
		"material_name": "Ламинированное ДСП",
		"quantity": 4,
		"param1": 2,
		"param2": 3
	}`
	req := httptest.NewRequest(http.MethodPost, "/calculate_raw_material", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// 4. Проверки
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp calculation.RawMaterialResponse
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, 13, resp.RequiredRawMaterial)

	mockCalc.AssertExpectations(t)
}

func TestCalculateRawMaterial_UnknownReference(t *testing.T) {
	mockCalc := new(MockRawMaterialCalculator)
	mockCalc.On("RequiredRawMaterial", mock.Anything, mock.Anything).Return(calculation.UnknownReference, nil)

	handler := CalculateRawMaterial(slog.Default(), mockCalc)

	req := httptest.NewRequest(http.MethodPost, "/calculate_raw_material",
		strings.NewReader(`{"product_type_name":"x","material_name":"y","quantity":1,"param1":1,"param2":1}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"required_raw_material":-1}`, rr.Body.String())
}

func TestCalculateRawMaterial_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "invalid json", body: `{"quantity":`},
		{name: "invalid params", body: `{"product_type_name":"x","material_name":"y","quantity":-1,"param1":0,"param2":1}`,
			err: fmt.Errorf("service.calculation.RequiredRawMaterial: %w", validator.Invalid("quantity: gte=0"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCalc := new(MockRawMaterialCalculator)
			if tt.err != nil {
				mockCalc.On("RequiredRawMaterial", mock.Anything, mock.Anything).Return(0, tt.err)
			}

			handler := CalculateRawMaterial(slog.Default(), mockCalc)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/calculate_raw_material", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			mockCalc.AssertExpectations(t)
		})
	}
}

func TestCalculateRawMaterial_StorageError(t *testing.T) {
	mockCalc := new(MockRawMaterialCalculator)
	mockCalc.On("RequiredRawMaterial", mock.Anything, mock.Anything).Return(0, errors.New("connection refused"))

	handler := CalculateRawMaterial(slog.Default(), mockCalc)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/calculate_raw_material",
		strings.NewReader(`{"product_type_name":"x","material_name":"y","quantity":1,"param1":1,"param2":1}`)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
