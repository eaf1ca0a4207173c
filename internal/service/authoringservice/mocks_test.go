package authoringservice_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"goseller/internal/domain"
)

// MockProductGateway é uma implementação mock da interface ProductGateway.
type MockProductGateway struct {
	mock.Mock
}

func (m *MockProductGateway) Create(ctx context.Context, req domain.CreateProductRequest) (domain.SellerProduct, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SellerProduct), args.Error(1)
}

func (m *MockProductGateway) SaveDraft(ctx context.Context, req domain.SaveDraftRequest) (domain.SellerProduct, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SellerProduct), args.Error(1)
}

// MockCatalogService é uma implementação mock da interface CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GSTRateForCategory(ctx context.Context, name string) float64 {
	args := m.Called(ctx, name)
	return args.Get(0).(float64)
}

// MockSnapshotStore é uma implementação mock da interface SnapshotStore.
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, sessionID, sellerID string, payload []byte) error {
	args := m.Called(ctx, sessionID, sellerID, payload)
	return args.Error(0)
}

func (m *MockSnapshotStore) Find(ctx context.Context, sessionID string) (string, []byte, error) {
	args := m.Called(ctx, sessionID)
	payload, _ := args.Get(1).([]byte)
	return args.String(0), payload, args.Error(2)
}

func (m *MockSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockInvalidator é uma implementação mock da porta de invalidação de cache.
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx domain.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
