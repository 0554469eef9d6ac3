package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goinventory/internal/api/product"
	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// MockProductService é uma implementação mock da interface ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req domain.ProductRequest) (domain.ProductResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id string) (domain.ProductResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) SearchByName(ctx context.Context, fragment string) ([]domain.ProductResponse, error) {
	args := m.Called(ctx, fragment)
	return args.Get(0).([]domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) SearchByCategory(ctx context.Context, fragment string) ([]domain.ProductResponse, error) {
	args := m.Called(ctx, fragment)
	return args.Get(0).([]domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id string, req domain.ProductRequest) (domain.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) UpdateStock(ctx context.Context, id string, newStock int) (domain.ProductResponse, error) {
	args := m.Called(ctx, id, newStock)
	return args.Get(0).(domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) UpdatePrice(ctx context.Context, id string, newPrice *decimal.Decimal) (domain.ProductResponse, error) {
	args := m.Called(ctx, id, newPrice)
	return args.Get(0).(domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) AssociateCategory(ctx context.Context, productID, categoryID string) error {
	args := m.Called(ctx, productID, categoryID)
	return args.Error(0)
}

func (m *MockProductService) DisassociateCategory(ctx context.Context, productID, categoryID string) error {
	args := m.Called(ctx, productID, categoryID)
	return args.Error(0)
}

func (m *MockProductService) GetProductCategories(ctx context.Context, productID string) ([]string, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductService) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProductService) GetLowStockProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetLowStockProductsWithThreshold(ctx context.Context, threshold int) ([]domain.ProductResponse, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]domain.ProductResponse), args.Error(1)
}

func newTestMux(h *product.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/products", h.CreateProductHandler)
	mux.HandleFunc("GET /api/v1/products/low-stock", h.GetLowStockHandler)
	mux.HandleFunc("GET /api/v1/products/inventory-value", h.GetInventoryValueHandler)
	mux.HandleFunc("PATCH /api/v1/products/{id}/stock", h.UpdateStockHandler)
	mux.HandleFunc("POST /api/v1/products/{id}/categories/{categoryId}", h.AssociateCategoryHandler)
	return mux
}

func newTestHandler(svc *MockProductService) *product.Handler {
	return product.NewHandler(svc, logger.NewLogger("error"))
}

// --- Validação estrutural ---

func TestCreateProductHandler_Fail_AllFieldErrorsReported(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	// Nome em branco, preço ausente, estoque negativo: os três problemas
	// devem voltar juntos, sem chamada ao serviço.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products",
		strings.NewReader(`{"name":"  ","stock":-3}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Category string            `json:"category"`
		Errors   map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_VALUE", body.Category)
	assert.Len(t, body.Errors, 3)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "price")
	assert.Contains(t, body.Errors, "stock")
	mockSvc.AssertNotCalled(t, "CreateProduct")
}

func TestCreateProductHandler_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	created := domain.ProductResponse{
		ID:         uuid.New().String(),
		Name:       "Monitor LG 27\" 4K",
		Price:      decimal.RequireFromString("499.00"),
		Stock:      4,
		Categories: []string{"Eletrônica", "Informática"},
	}
	mockSvc.On("CreateProduct", mock.Anything, mock.AnythingOfType("domain.ProductRequest")).
		Return(created, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products",
		strings.NewReader(`{"name":"Monitor LG 27\" 4K","price":"499.00","stock":4}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body domain.ProductResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created.Name, body.Name)
	assert.Equal(t, []string{"Eletrônica", "Informática"}, body.Categories)
}

// --- Estoque ---

func TestUpdateStockHandler_Fail_MissingStockField(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/products/"+uuid.New().String()+"/stock", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "UpdateStock")
}

func TestUpdateStockHandler_Fail_NegativeStock(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	productID := uuid.New().String()
	mockSvc.On("UpdateStock", mock.Anything, productID, -2).
		Return(domain.ProductResponse{}, apperror.NewValidationError("O estoque não pode ser negativo."))

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/products/"+productID+"/stock", strings.NewReader(`{"stock":-2}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body domain.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_VALUE", body.Category)
}

// --- Associação ---

func TestAssociateCategoryHandler_Fail_AlreadyAssociated(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	productID := uuid.New().String()
	categoryID := uuid.New().String()
	mockSvc.On("AssociateCategory", mock.Anything, productID, categoryID).
		Return(apperror.NewAlreadyAssociatedError("O produto já pertence à categoria Casa."))

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/products/"+productID+"/categories/"+categoryID, nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body domain.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ALREADY_ASSOCIATED", body.Category)
}

// --- Agregados ---

func TestGetInventoryValueHandler_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	mockSvc.On("GetTotalInventoryValue", mock.Anything).
		Return(decimal.RequireFromString("13287.42"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/inventory-value", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body domain.InventoryValueResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "13287.42", body.TotalValue.StringFixed(2))
}

func TestGetLowStockHandler_ThresholdOverride(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	mockSvc.On("GetLowStockProductsWithThreshold", mock.Anything, 10).
		Return([]domain.ProductResponse{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/low-stock?threshold=10", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertCalled(t, "GetLowStockProductsWithThreshold", mock.Anything, 10)
	mockSvc.AssertNotCalled(t, "GetLowStockProducts")
}

func TestGetLowStockHandler_Fail_NonNumericThreshold(t *testing.T) {
	mockSvc := new(MockProductService)
	mux := newTestMux(newTestHandler(mockSvc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/low-stock?threshold=muitos", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "GetLowStockProductsWithThreshold")
}
