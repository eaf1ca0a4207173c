package catalogservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
	"goseller/internal/service/catalogservice"
)

// MockCatalogRepository é uma implementação mock da interface CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *MockCatalogRepository) FindSubcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {
	args := m.Called(ctx, category)
	subcategories, _ := args.Get(0).([]domain.Subcategory)
	return subcategories, args.Error(1)
}

func rate(v float64) *float64 { return &v }

// TestGSTRateForCategory_Success_CategoryRate testa a resolução da taxa
// definida pela categoria.
func TestGSTRateForCategory_Success_CategoryRate(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockLogger := logger.NewLogger("error")

	svc := catalogservice.NewCatalogService(mockRepo, mockLogger)

	mockRepo.On("FindCategories", mock.Anything).Return([]domain.Category{
		{ID: 1, Name: "Eletrônicos", GSTRate: rate(28)},
		{ID: 2, Name: "Livros", GSTRate: rate(5)},
	}, nil)

	result := svc.GSTRateForCategory(context.Background(), "Livros")

	assert.Equal(t, 5.0, result)
	mockRepo.AssertExpectations(t)
}

// TestGSTRateForCategory_Success_DefaultWhenUnknown testa a taxa padrão para
// categoria desconhecida ou sem taxa definida.
func TestGSTRateForCategory_Success_DefaultWhenUnknown(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockLogger := logger.NewLogger("error")

	svc := catalogservice.NewCatalogService(mockRepo, mockLogger)

	mockRepo.On("FindCategories", mock.Anything).Return([]domain.Category{
		{ID: 1, Name: "Eletrônicos", GSTRate: nil}, // backend omitiu a taxa
	}, nil)

	assert.Equal(t, domain.DefaultGSTRate, svc.GSTRateForCategory(context.Background(), "Eletrônicos"))
	assert.Equal(t, domain.DefaultGSTRate, svc.GSTRateForCategory(context.Background(), "Categoria Fantasma"))
}

// TestGSTRateForCategory_Success_DefaultOnCatalogFailure testa que a resolução
// de taxa nunca bloqueia: catálogo indisponível cai na taxa padrão.
func TestGSTRateForCategory_Success_DefaultOnCatalogFailure(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockLogger := logger.NewLogger("error")

	svc := catalogservice.NewCatalogService(mockRepo, mockLogger)

	mockRepo.On("FindCategories", mock.Anything).
		Return(nil, apperror.NewGatewayError("Falha de rede ao contatar o marketplace.", 0, nil))

	result := svc.GSTRateForCategory(context.Background(), "Eletrônicos")

	assert.Equal(t, domain.DefaultGSTRate, result)
}

// TestCategories_Success_NonNativeContext testa que um domain.Context que não
// embrulha um context.Context nativo cai em context.Background sem pânico.
func TestCategories_Success_NonNativeContext(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockLogger := logger.NewLogger("error")

	svc := catalogservice.NewCatalogService(mockRepo, mockLogger)

	expected := []domain.Category{{ID: 1, Name: "Eletrônicos"}}
	mockRepo.On("FindCategories", mock.Anything).Return(expected, nil)

	var ctx domain.Context // nil: nenhuma conversão possível
	result, err := svc.Categories(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

// TestSubcategories_Success testa o repasse do filtro de categoria.
func TestSubcategories_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	mockLogger := logger.NewLogger("error")

	svc := catalogservice.NewCatalogService(mockRepo, mockLogger)

	expected := []domain.Subcategory{{ID: 10, Name: "Fones", CategoryID: 1}}
	mockRepo.On("FindSubcategories", mock.Anything, "Eletrônicos").Return(expected, nil)

	result, err := svc.Subcategories(context.Background(), "Eletrônicos")

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}
