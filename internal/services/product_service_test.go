package services_test

import (
	"fmt"
	"testing"

	"muebleria/internal/models"
	"muebleria/internal/repositories"
	"muebleria/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetTopSellers(limit int) ([]models.Product, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) GetCategories() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Sofá modular", Price: decimal.NewFromFloat(500.0)},
		{ID: "2", Name: "Mesa de noche", Price: decimal.NewFromFloat(80.0)},
	}
	filter := repositories.ProductFilter{CategorySlug: "sala"}

	mockRepo.On("GetAll", filter).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(filter)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetTopSellers(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Product{
		{ID: "1", Name: "Sofá modular", Sales: 40},
	}
	mockRepo.On("GetTopSellers", 6).Return(expected, nil).Once()

	products, err := service.GetTopSellers(6)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: "1", Name: "Sofá modular", Price: decimal.NewFromFloat(500.0)}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 not found")).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductStock(t *testing.T) {
	db := setupTestDB(t)
	productRepo := repositories.NewGORMProductRepository(db)
	inventory := services.NewInventoryService(repositories.NewGORMInventoryRepository(db))
	service := services.NewProductService(productRepo, inventory)

	product := createTestProduct(t, db, "Armario de roble", 400.00, 12)

	stock, status, err := service.GetProductStock(product.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(12), stock)
	assert.Equal(t, services.StockStatusOptimal, status)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Name: "Mecedora", Price: decimal.NewFromFloat(120.0)}

	// Test successful creation
	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 not found for deletion")).Once()
	err = service.DeleteProduct("99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetCategories(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Category{
		{ID: "c1", Name: "Sala", Slug: "sala"},
		{ID: "c2", Name: "Recámara", Slug: "recamara"},
	}
	mockRepo.On("GetCategories").Return(expected, nil).Once()

	categories, err := service.GetCategories()
	assert.NoError(t, err)
	assert.Equal(t, expected, categories)
	mockRepo.AssertExpectations(t)
}

func TestProduct_CurrentPrice(t *testing.T) {
	sale := decimal.NewFromFloat(75.0)
	product := models.Product{Price: decimal.NewFromFloat(100.0), SalePrice: &sale}

	// Sale price only applies while the sale is active.
	assert.Equal(t, "100.00", product.CurrentPrice().StringFixed(2))
	product.SaleActive = true
	assert.Equal(t, "75.00", product.CurrentPrice().StringFixed(2))
	product.SalePrice = nil
	assert.Equal(t, "100.00", product.CurrentPrice().StringFixed(2))
}
