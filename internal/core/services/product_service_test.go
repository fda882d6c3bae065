package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/core/services"
	"github.com/stocktrace/stock_movement_app/internal/dto"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, page pagination.Params) ([]domain.Product, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProductStock(ctx context.Context, productID string, patch portsrepo.ProductStockPatch) (*domain.Product, error) {
	args := m.Called(ctx, productID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierRepositoryFacade = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID int64) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	args := m.Called(ctx, supplier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

// --- Test Suite Setup ---
type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo  *MockProductRepository
	mockSupplierRepo *MockSupplierRepository
	service          portssvc.ProductSvcFacade
	stockSvc         portssvc.StockAdapterSvc
	userID           string
	supplier         domain.Supplier
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	svc := services.NewProductService(suite.mockProductRepo, suite.mockSupplierRepo)
	suite.service = svc
	suite.stockSvc = svc
	suite.userID = uuid.NewString()
	suite.supplier = domain.Supplier{SupplierID: 7, Name: "Acme Supplies", IsActive: true}
}

func (suite *ProductServiceTestSuite) product(stock int64) domain.Product {
	return domain.Product{
		ProductID:  uuid.NewString(),
		Code:       "WID-001",
		Name:       "Widget",
		SupplierID: suite.supplier.SupplierID,
		Price:      decimal.NewFromInt(25),
		Stock:      stock,
		IsActive:   true,
	}
}

// --- CreateProduct ---

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Code:       "WID-001",
		Name:       "Widget",
		SupplierID: suite.supplier.SupplierID,
		Price:      decimal.NewFromInt(25),
		Stock:      10,
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, suite.supplier.SupplierID).Return(&suite.supplier, nil)
	suite.mockProductRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Code == "WID-001" && p.Stock == 10 && p.IsActive && p.CreatedBy == suite.userID
	})).Return(nil)

	created, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.ProductID)
	suite.NoError(uuid.Validate(created.ProductID))
	suite.Equal("Widget", created.Name)
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_UnknownSupplier() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Code: "WID-001", Name: "Widget", SupplierID: 99}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, int64(99)).
		Return(nil, apperrors.NewNotFound("supplier", "99"))

	_, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

// --- GetProductByID / FindProductByID ---

func (suite *ProductServiceTestSuite) TestGetProductByID_InvalidID() {
	_, err := suite.service.GetProductByID(context.Background(), "not-a-uuid")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestFindProductByID_Success() {
	ctx := context.Background()
	product := suite.product(20)

	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(&product, nil)

	found, err := suite.stockSvc.FindProductByID(ctx, product.ProductID)

	suite.Require().NoError(err)
	suite.Equal(product.ProductID, found.ProductID)
	suite.Equal(int64(20), found.Stock)
}

// --- ListProducts ---

func (suite *ProductServiceTestSuite) TestListProducts_ClampsLimit() {
	ctx := context.Background()
	products := []domain.Product{suite.product(5)}

	suite.mockProductRepo.On("ListProducts", ctx, pagination.Params{Page: 1, Limit: 100}).
		Return(products, int64(1), nil)

	listed, total, err := suite.service.ListProducts(ctx, dto.PageParams{Page: 1, Limit: 500})

	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(listed, 1)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

// --- UpdateProduct ---

func (suite *ProductServiceTestSuite) TestUpdateProduct_PartialPatch() {
	ctx := context.Background()
	product := suite.product(20)
	newName := "Premium Widget"
	newPrice := decimal.NewFromInt(40)
	req := dto.UpdateProductRequest{Name: &newName, Price: &newPrice}

	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(&product, nil)
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == "Premium Widget" && p.Price.Equal(newPrice) &&
			p.Code == "WID-001" && p.LastUpdatedBy == suite.userID
	})).Return(nil)

	updated, err := suite.service.UpdateProduct(ctx, product.ProductID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Premium Widget", updated.Name)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_UnknownSupplier() {
	ctx := context.Background()
	product := suite.product(20)
	badSupplier := int64(404)
	req := dto.UpdateProductRequest{SupplierID: &badSupplier}

	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(&product, nil)
	suite.mockSupplierRepo.On("FindSupplierByID", ctx, badSupplier).
		Return(nil, apperrors.NewNotFound("supplier", "404"))

	_, err := suite.service.UpdateProduct(ctx, product.ProductID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
}

// --- ApplyProductUpdate ---

func (suite *ProductServiceTestSuite) TestApplyProductUpdate_Success() {
	ctx := context.Background()
	product := suite.product(15)
	newStock := int64(15)
	patch := portsrepo.ProductStockPatch{Stock: &newStock, LastUpdatedBy: suite.userID}

	suite.mockProductRepo.On("UpdateProductStock", ctx, product.ProductID, patch).Return(&product, nil)

	updated, err := suite.stockSvc.ApplyProductUpdate(ctx, product.ProductID, patch)

	suite.Require().NoError(err)
	suite.Equal(int64(15), updated.Stock)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestApplyProductUpdate_NegativeStock() {
	negative := int64(-1)
	patch := portsrepo.ProductStockPatch{Stock: &negative}

	_, err := suite.stockSvc.ApplyProductUpdate(context.Background(), uuid.NewString(), patch)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestApplyProductUpdate_InvalidID() {
	newStock := int64(5)
	patch := portsrepo.ProductStockPatch{Stock: &newStock}

	_, err := suite.stockSvc.ApplyProductUpdate(context.Background(), "bogus", patch)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
