package inventoryservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
	"goseller/internal/pkg/notify"
	"goseller/internal/service/inventoryservice"
)

// MockProductLister é uma implementação mock da interface ProductLister.
type MockProductLister struct {
	mock.Mock
}

func (m *MockProductLister) FindSellerProducts(ctx context.Context, filter domain.ListingFilter) (domain.SellerProductPage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.SellerProductPage), args.Error(1)
}

func (m *MockProductLister) UpdateListing(ctx context.Context, productID int64, update domain.ListingUpdate) (domain.SellerProduct, error) {
	args := m.Called(ctx, productID, update)
	return args.Get(0).(domain.SellerProduct), args.Error(1)
}

// MockInvalidator é uma implementação mock da porta de invalidação de cache.
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx domain.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// TestListProducts_Success_SanitizesPagination testa o saneamento de página e limite.
func TestListProducts_Success_SanitizesPagination(t *testing.T) {
	mockRepo := new(MockProductLister)
	mockLogger := logger.NewLogger("error")

	svc := inventoryservice.NewInventoryService(mockRepo, nil, notify.NewLogNotifier(mockLogger), mockLogger)

	expectedFilter := domain.ListingFilter{Page: 1, Limit: 100, Search: "fone"}
	mockRepo.On("FindSellerProducts", mock.Anything, expectedFilter).
		Return(domain.SellerProductPage{Page: 1, Limit: 100}, nil)

	// Página 0 e limite acima do máximo são corrigidos antes da chamada.
	_, err := svc.ListProducts(context.Background(), domain.ListingFilter{Page: 0, Limit: 500, Search: "fone"})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestListProducts_Success_NonNativeContext testa que um domain.Context que não
// embrulha um context.Context nativo cai em context.Background sem pânico.
func TestListProducts_Success_NonNativeContext(t *testing.T) {
	mockRepo := new(MockProductLister)
	mockLogger := logger.NewLogger("error")

	svc := inventoryservice.NewInventoryService(mockRepo, nil, notify.NewLogNotifier(mockLogger), mockLogger)

	mockRepo.On("FindSellerProducts", mock.Anything, mock.AnythingOfType("domain.ListingFilter")).
		Return(domain.SellerProductPage{Page: 1, Limit: 10}, nil)

	var ctx domain.Context // nil: nenhuma conversão possível
	_, err := svc.ListProducts(ctx, domain.ListingFilter{})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestUpdateCategory_Success_InvalidatesCache testa a correção de categoria
// com invalidação das listagens em cache.
func TestUpdateCategory_Success_InvalidatesCache(t *testing.T) {
	mockRepo := new(MockProductLister)
	mockInvalidator := new(MockInvalidator)
	mockLogger := logger.NewLogger("error")

	svc := inventoryservice.NewInventoryService(mockRepo, mockInvalidator, notify.NewLogNotifier(mockLogger), mockLogger)

	update := domain.ListingUpdate{Category: "Eletrônicos", Subcategory: "Fones"}
	mockRepo.On("UpdateListing", mock.Anything, int64(42), update).
		Return(domain.SellerProduct{ID: 42, Category: "Eletrônicos"}, nil)
	mockInvalidator.On("Invalidate", mock.Anything, []string{"seller-products", "products"}).Return(nil)

	result, err := svc.UpdateCategory(context.Background(), 42, update)

	assert.NoError(t, err)
	assert.Equal(t, "Eletrônicos", result.Category)
	mockRepo.AssertExpectations(t)
	mockInvalidator.AssertExpectations(t)
}

// TestUpdateCategory_Fail_InvalidID testa a rejeição de identificador inválido
// sem chamada ao backend.
func TestUpdateCategory_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockProductLister)
	mockLogger := logger.NewLogger("error")

	svc := inventoryservice.NewInventoryService(mockRepo, nil, notify.NewLogNotifier(mockLogger), mockLogger)

	_, err := svc.UpdateCategory(context.Background(), 0, domain.ListingUpdate{Category: "Eletrônicos"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "UpdateListing", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpdateCategory_Fail_MissingCategory testa que a categoria é obrigatória.
func TestUpdateCategory_Fail_MissingCategory(t *testing.T) {
	mockRepo := new(MockProductLister)
	mockLogger := logger.NewLogger("error")

	svc := inventoryservice.NewInventoryService(mockRepo, nil, notify.NewLogNotifier(mockLogger), mockLogger)

	_, err := svc.UpdateCategory(context.Background(), 42, domain.ListingUpdate{})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestUpdateCategory_Fail_GatewayError testa o repasse de falha do backend sem
// invalidação de cache.
func TestUpdateCategory_Fail_GatewayError(t *testing.T) {
	mockRepo := new(MockProductLister)
	mockInvalidator := new(MockInvalidator)
	mockLogger := logger.NewLogger("error")

	svc := inventoryservice.NewInventoryService(mockRepo, mockInvalidator, notify.NewLogNotifier(mockLogger), mockLogger)

	update := domain.ListingUpdate{Category: "Eletrônicos"}
	mockRepo.On("UpdateListing", mock.Anything, int64(42), update).
		Return(domain.SellerProduct{}, apperror.NewGatewayError("Falha de rede ao contatar o marketplace.", 0, nil))

	_, err := svc.UpdateCategory(context.Background(), 42, update)

	assert.Error(t, err)
	assert.IsType(t, &apperror.GatewayError{}, err)
	mockInvalidator.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}
