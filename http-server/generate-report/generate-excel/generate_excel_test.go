package generate_excel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGenerateExcel struct {
	mock.Mock
}

func (m *MockGenerateExcel) GenerateProductsExcel(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestGenerateReportExcel_Success(t *testing.T) {
	mockGen := new(MockGenerateExcel)
	mockGen.On("GenerateProductsExcel", mock.Anything).Return([]byte("PK\x03\x04xlsx"), nil)

	handler := GenerateReportExcel(slog.Default(), mockGen)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/report/products.xlsx", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Disposition"), "attachment; filename=Products_"))
	assert.Equal(t, "PK\x03\x04xlsx", rr.Body.String())
}

func TestGenerateReportExcel_Error(t *testing.T) {
	mockGen := new(MockGenerateExcel)
	mockGen.On("GenerateProductsExcel", mock.Anything).Return(nil, errors.New("no products"))

	handler := GenerateReportExcel(slog.Default(), mockGen)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/report/products.xlsx", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
