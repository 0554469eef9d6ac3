package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goinventory/internal/api/category"
	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// MockCategoryService é uma implementação mock da interface CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, name string) (domain.CategoryResponse, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, id string) (domain.CategoryResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id string, newName string) (domain.CategoryResponse, error) {
	args := m.Called(ctx, id, newName)
	return args.Get(0).(domain.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newTestMux registra o handler nas rotas usadas pelos testes, para que os
// parâmetros de caminho ({id}) sejam resolvidos como em produção.
func newTestMux(h *category.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/categories", h.CreateCategoryHandler)
	mux.HandleFunc("GET /api/v1/categories/{id}", h.GetCategoryByIDHandler)
	mux.HandleFunc("DELETE /api/v1/categories/{id}", h.DeleteCategoryHandler)
	return mux
}

func TestCreateCategoryHandler_Success(t *testing.T) {
	mockSvc := new(MockCategoryService)
	handler := category.NewHandler(mockSvc, logger.NewLogger("error"))
	mux := newTestMux(handler)

	created := domain.CategoryResponse{ID: uuid.New().String(), Name: "Eletrônica"}
	mockSvc.On("CreateCategory", mock.Anything, "Eletrônica").Return(created, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories",
		strings.NewReader(`{"name":"Eletrônica"}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body domain.CategoryResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Eletrônica", body.Name)
	mockSvc.AssertExpectations(t)
}

func TestCreateCategoryHandler_Fail_DuplicateName(t *testing.T) {
	mockSvc := new(MockCategoryService)
	handler := category.NewHandler(mockSvc, logger.NewLogger("error"))
	mux := newTestMux(handler)

	mockSvc.On("CreateCategory", mock.Anything, "Casa").
		Return(domain.CategoryResponse{}, apperror.NewDuplicateNameError("Já existe uma categoria com o nome: Casa"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories",
		strings.NewReader(`{"name":"Casa"}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body domain.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DUPLICATE_NAME", body.Category)
	assert.Contains(t, body.Message, "Casa")
}

func TestCreateCategoryHandler_Fail_MalformedJSON(t *testing.T) {
	mockSvc := new(MockCategoryService)
	handler := category.NewHandler(mockSvc, logger.NewLogger("error"))
	mux := newTestMux(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories",
		strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "CreateCategory")
}

func TestGetCategoryByIDHandler_Fail_NotFound(t *testing.T) {
	mockSvc := new(MockCategoryService)
	handler := category.NewHandler(mockSvc, logger.NewLogger("error"))
	mux := newTestMux(handler)

	categoryID := uuid.New().String()
	mockSvc.On("GetCategoryByID", mock.Anything, categoryID).
		Return(domain.CategoryResponse{}, apperror.NewNotFoundError("Categoria não encontrada."))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+categoryID, nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body domain.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Category)
}

func TestGetCategoryByIDHandler_Fail_InternalErrorIsGeneric(t *testing.T) {
	mockSvc := new(MockCategoryService)
	handler := category.NewHandler(mockSvc, logger.NewLogger("error"))
	mux := newTestMux(handler)

	categoryID := uuid.New().String()
	mockSvc.On("GetCategoryByID", mock.Anything, categoryID).
		Return(domain.CategoryResponse{}, apperror.NewDBError("Falha ao buscar categoria", assertableErr("pq: timeout")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+categoryID, nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body domain.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body.Message, "pq:")
}

func TestDeleteCategoryHandler_Success_NoContent(t *testing.T) {
	mockSvc := new(MockCategoryService)
	handler := category.NewHandler(mockSvc, logger.NewLogger("error"))
	mux := newTestMux(handler)

	categoryID := uuid.New().String()
	mockSvc.On("DeleteCategory", mock.Anything, categoryID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+categoryID, nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	mockSvc.AssertExpectations(t)
}

// assertableErr é um erro simples para simular causas de infraestrutura.
type assertableErr string

func (e assertableErr) Error() string { return string(e) }
