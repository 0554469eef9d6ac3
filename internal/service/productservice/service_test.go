package productservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
	"goinventory/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNameContaining(ctx context.Context, fragment string) ([]domain.Product, error) {
	args := m.Called(ctx, fragment)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategoryNameContaining(ctx context.Context, fragment string) ([]domain.Product, error) {
	args := m.Called(ctx, fragment)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStockLessThan(ctx context.Context, threshold int) ([]domain.Product, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	args := m.Called(ctx, id, stock)
	return args.Error(0)
}

func (m *MockProductRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) SumInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAssociationRepository é uma implementação mock da interface AssociationRepository
type MockAssociationRepository struct {
	mock.Mock
}

func (m *MockAssociationRepository) Save(ctx context.Context, pc domain.ProductCategory) (domain.ProductCategory, error) {
	args := m.Called(ctx, pc)
	return args.Get(0).(domain.ProductCategory), args.Error(1)
}

func (m *MockAssociationRepository) Exists(ctx context.Context, productID, categoryID string) (bool, error) {
	args := m.Called(ctx, productID, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssociationRepository) Find(ctx context.Context, productID, categoryID string) (domain.ProductCategory, error) {
	args := m.Called(ctx, productID, categoryID)
	return args.Get(0).(domain.ProductCategory), args.Error(1)
}

func (m *MockAssociationRepository) FindByProduct(ctx context.Context, productID string) ([]domain.ProductCategory, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.ProductCategory), args.Error(1)
}

func (m *MockAssociationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssociationRepository) DeleteByProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockCategoryFinder é uma implementação mock da interface CategoryFinder
type MockCategoryFinder struct {
	mock.Mock
}

func (m *MockCategoryFinder) FindCategory(ctx context.Context, id string) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func newTestService(repo *MockProductRepository, associations *MockAssociationRepository, categories *MockCategoryFinder) *productservice.Service {
	return productservice.NewService(repo, associations, categories, 5, newTestLogger())
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func intPtr(value int) *int {
	return &value
}

// --- CreateProduct ---

func TestCreateProduct_Success_SkipsDuplicateCategoryIDs(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	categoryID := uuid.New().String()
	category := domain.Category{ID: categoryID, Name: "Eletrônica"}

	req := domain.ProductRequest{
		Name:        "Fone Sony WH-1000XM5",
		Price:       decimalPtr("349.00"),
		Stock:       intPtr(15),
		CategoryIDs: []string{categoryID, categoryID}, // id repetido na lista
	}

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).
		Return(domain.Product{ID: uuid.New().String(), Name: req.Name, Price: *req.Price, Stock: *req.Stock}, nil)
	mockCategories.On("FindCategory", mock.Anything, categoryID).Return(category, nil)
	// Primeira checagem: ainda não associado. Segunda (id repetido): já associado.
	mockAssoc.On("Exists", mock.Anything, mock.Anything, categoryID).Return(false, nil).Once()
	mockAssoc.On("Exists", mock.Anything, mock.Anything, categoryID).Return(true, nil).Once()
	mockAssoc.On("Save", mock.Anything, mock.AnythingOfType("domain.ProductCategory")).
		Return(domain.ProductCategory{}, nil)
	mockAssoc.On("FindByProduct", mock.Anything, mock.Anything).
		Return([]domain.ProductCategory{{CategoryID: categoryID, CategoryName: "Eletrônica"}}, nil)

	result, err := svc.CreateProduct(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Eletrônica"}, result.Categories)
	mockAssoc.AssertNumberOfCalls(t, "Save", 1)
	mockRepo.AssertExpectations(t)
	mockAssoc.AssertExpectations(t)
}

func TestCreateProduct_Fail_InvalidPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	cases := []*decimal.Decimal{nil, decimalPtr("0"), decimalPtr("-10.00")}
	for _, price := range cases {
		req := domain.ProductRequest{Name: "Produto", Price: price, Stock: intPtr(1)}

		_, err := svc.CreateProduct(context.Background(), req)

		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}

	mockRepo.AssertNotCalled(t, "Save")
}

func TestCreateProduct_Fail_NegativeStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	req := domain.ProductRequest{Name: "Produto", Price: decimalPtr("10.00"), Stock: intPtr(-1)}

	_, err := svc.CreateProduct(context.Background(), req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestCreateProduct_Fail_CategoryNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	missingID := uuid.New().String()
	req := domain.ProductRequest{
		Name:        "Produto",
		Price:       decimalPtr("10.00"),
		Stock:       intPtr(1),
		CategoryIDs: []string{missingID},
	}

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).
		Return(domain.Product{ID: uuid.New().String()}, nil)
	mockCategories.On("FindCategory", mock.Anything, missingID).
		Return(domain.Category{}, apperror.NewNotFoundError("Categoria não encontrada."))

	_, err := svc.CreateProduct(context.Background(), req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockAssoc.AssertNotCalled(t, "Save")
}

// --- UpdateProduct ---

func TestUpdateProduct_ReplacesFullAssociationSet(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	productID := uuid.New().String()
	newCategoryID := uuid.New().String()
	existing := domain.Product{ID: productID, Name: "Antigo", Price: decimal.RequireFromString("10.00"), Stock: 3}

	req := domain.ProductRequest{
		Name:        "Novo Nome",
		Price:       decimalPtr("12.50"),
		Stock:       intPtr(7),
		CategoryIDs: []string{newCategoryID},
	}

	mockRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Product")).
		Return(domain.Product{ID: productID, Name: req.Name, Price: *req.Price, Stock: *req.Stock}, nil)
	mockAssoc.On("DeleteByProduct", mock.Anything, productID).Return(nil)
	mockCategories.On("FindCategory", mock.Anything, newCategoryID).
		Return(domain.Category{ID: newCategoryID, Name: "Casa"}, nil)
	mockAssoc.On("Exists", mock.Anything, productID, newCategoryID).Return(false, nil)
	mockAssoc.On("Save", mock.Anything, mock.AnythingOfType("domain.ProductCategory")).
		Return(domain.ProductCategory{}, nil)
	mockAssoc.On("FindByProduct", mock.Anything, productID).
		Return([]domain.ProductCategory{{CategoryID: newCategoryID, CategoryName: "Casa"}}, nil)

	result, err := svc.UpdateProduct(context.Background(), productID, req)

	assert.NoError(t, err)
	assert.Equal(t, "Novo Nome", result.Name)
	assert.Equal(t, []string{"Casa"}, result.Categories)
	mockAssoc.AssertCalled(t, "DeleteByProduct", mock.Anything, productID)
	mockAssoc.AssertNumberOfCalls(t, "Save", 1)
}

func TestUpdateProduct_EmptyCategoryList_LeavesProductWithoutCategories(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	productID := uuid.New().String()
	existing := domain.Product{ID: productID, Name: "Produto", Price: decimal.RequireFromString("10.00"), Stock: 3}

	req := domain.ProductRequest{Name: "Produto", Price: decimalPtr("10.00"), Stock: intPtr(3)}

	mockRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Product")).Return(existing, nil)
	mockAssoc.On("DeleteByProduct", mock.Anything, productID).Return(nil)
	mockAssoc.On("FindByProduct", mock.Anything, productID).Return([]domain.ProductCategory{}, nil)

	result, err := svc.UpdateProduct(context.Background(), productID, req)

	assert.NoError(t, err)
	assert.Empty(t, result.Categories)
	mockAssoc.AssertNotCalled(t, "Save")
}

// --- UpdateStock / UpdatePrice ---

func TestUpdateStock_Fail_NegativeBeforeLookup(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	// A validação do valor vem antes da resolução do produto.
	_, err := svc.UpdateStock(context.Background(), uuid.New().String(), -1)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID")
	mockRepo.AssertNotCalled(t, "UpdateStock")
}

func TestUpdateStock_Success_ZeroAllowed(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	productID := uuid.New().String()
	existing := domain.Product{ID: productID, Name: "Produto", Price: decimal.RequireFromString("10.00"), Stock: 4}

	mockRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
	mockRepo.On("UpdateStock", mock.Anything, productID, 0).Return(nil)
	mockAssoc.On("FindByProduct", mock.Anything, productID).Return([]domain.ProductCategory{}, nil)

	result, err := svc.UpdateStock(context.Background(), productID, 0)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Stock)
	mockRepo.AssertExpectations(t)
}

func TestUpdatePrice_Fail_NonPositive(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	cases := []*decimal.Decimal{nil, decimalPtr("0"), decimalPtr("-1.00")}
	for _, price := range cases {
		_, err := svc.UpdatePrice(context.Background(), uuid.New().String(), price)

		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}

	mockRepo.AssertNotCalled(t, "FindByID")
	mockRepo.AssertNotCalled(t, "UpdatePrice")
}

// --- Associação ---

func TestAssociateCategory_Fail_AlreadyAssociated(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	productID := uuid.New().String()
	categoryID := uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, productID).
		Return(domain.Product{ID: productID, Name: "Produto"}, nil)
	mockCategories.On("FindCategory", mock.Anything, categoryID).
		Return(domain.Category{ID: categoryID, Name: "Roupas"}, nil)
	mockAssoc.On("Exists", mock.Anything, productID, categoryID).Return(true, nil)

	err := svc.AssociateCategory(context.Background(), productID, categoryID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.AlreadyAssociatedError{}, err)
	mockAssoc.AssertNotCalled(t, "Save")
}

func TestDisassociateCategory_Fail_NotAssociated(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	productID := uuid.New().String()
	categoryID := uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, productID).
		Return(domain.Product{ID: productID, Name: "Produto"}, nil)
	mockCategories.On("FindCategory", mock.Anything, categoryID).
		Return(domain.Category{ID: categoryID, Name: "Roupas"}, nil)
	mockAssoc.On("Find", mock.Anything, productID, categoryID).
		Return(domain.ProductCategory{}, apperror.NewNotFoundError("Associação não encontrada."))

	err := svc.DisassociateCategory(context.Background(), productID, categoryID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotAssociatedError{}, err)
	mockAssoc.AssertNotCalled(t, "Delete")
}

func TestDisassociateCategory_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	productID := uuid.New().String()
	categoryID := uuid.New().String()
	associationID := uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, productID).
		Return(domain.Product{ID: productID, Name: "Produto"}, nil)
	mockCategories.On("FindCategory", mock.Anything, categoryID).
		Return(domain.Category{ID: categoryID, Name: "Roupas"}, nil)
	mockAssoc.On("Find", mock.Anything, productID, categoryID).
		Return(domain.ProductCategory{ID: associationID, ProductID: productID, CategoryID: categoryID}, nil)
	mockAssoc.On("Delete", mock.Anything, associationID).Return(nil)

	err := svc.DisassociateCategory(context.Background(), productID, categoryID)

	assert.NoError(t, err)
	mockAssoc.AssertExpectations(t)
}

// --- Agregados ---

func TestGetTotalInventoryValue_EmptyCatalogIsExactZero(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	mockRepo.On("SumInventoryValue", mock.Anything).Return(decimal.Zero, nil)

	total, err := svc.GetTotalInventoryValue(context.Background())

	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestGetTotalInventoryValue_PassesThroughSum(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	mockRepo.On("SumInventoryValue", mock.Anything).
		Return(decimal.RequireFromString("1542.75"), nil)

	total, err := svc.GetTotalInventoryValue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "1542.75", total.StringFixed(2))
}

func TestGetLowStockProducts_UsesDefaultThreshold(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	mockRepo.On("FindByStockLessThan", mock.Anything, 5).Return([]domain.Product{}, nil)

	_, err := svc.GetLowStockProducts(context.Background())

	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "FindByStockLessThan", mock.Anything, 5)
}

func TestGetLowStockProducts_OverrideDoesNotChangeDefault(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	mockRepo.On("FindByStockLessThan", mock.Anything, 10).Return([]domain.Product{}, nil)

	_, err := svc.GetLowStockProductsWithThreshold(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, 5, svc.DefaultLowStockThreshold())
}

// --- Resolução de ID ---

func TestGetProductByID_Fail_InvalidUUID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockAssoc := new(MockAssociationRepository)
	mockCategories := new(MockCategoryFinder)
	svc := newTestService(mockRepo, mockAssoc, mockCategories)

	_, err := svc.GetProductByID(context.Background(), "não-é-uuid")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID")
}
