package authoringservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goseller/internal/service/authoringservice"
)

// TestPriceBreakdown_Success_CategoryRate testa a decomposição do preço com a
// taxa da categoria: 1180 a 18% -> base 1000, GST 180.
func TestPriceBreakdown_Success_CategoryRate(t *testing.T) {
	catalogMock := new(MockCatalogService)
	catalogMock.On("GSTRateForCategory", mock.Anything, "Eletrônicos").Return(float64(18))

	svc := newTestService(new(MockProductGateway), catalogMock)
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	price := "1180"
	category := "Eletrônicos"
	view, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Price: &price, Category: &category})

	assert.NoError(t, err)
	assert.Equal(t, 1180.0, view.Price.FinalPrice)
	assert.Equal(t, 18.0, view.Price.GSTRate)
	assert.InDelta(t, 1000.0, view.Price.BasePrice, 0.0001)
	assert.InDelta(t, 180.0, view.Price.GSTAmount, 0.0001)
}

// TestPriceBreakdown_Success_OverrideBeatsCategory testa que a taxa customizada
// do produto tem precedência sobre a taxa da categoria.
func TestPriceBreakdown_Success_OverrideBeatsCategory(t *testing.T) {
	catalogMock := new(MockCatalogService)
	catalogMock.On("GSTRateForCategory", mock.Anything, "Eletrônicos").Return(float64(18))

	svc := newTestService(new(MockProductGateway), catalogMock)
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	price := "112"
	category := "Eletrônicos"
	override := "12"
	view, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{
		Price: &price, Category: &category, GSTRate: &override,
	})

	assert.NoError(t, err)
	assert.Equal(t, 12.0, view.Price.GSTRate)
	assert.InDelta(t, 100.0, view.Price.BasePrice, 0.0001)
	assert.InDelta(t, 12.0, view.Price.GSTAmount, 0.0001)
}

// TestPriceBreakdown_Success_DefaultRate testa a taxa padrão de 18% quando nem
// o produto nem a categoria definem uma.
func TestPriceBreakdown_Success_DefaultRate(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)

	price := "118"
	view, err := svc.ApplyFieldPatch(context.Background(), sessionID, authoringservice.FieldPatch{Price: &price})

	assert.NoError(t, err)
	assert.Equal(t, 18.0, view.Price.GSTRate)
	assert.InDelta(t, 100.0, view.Price.BasePrice, 0.0001)
}

// TestPriceBreakdown_Success_CategoryRateMemoized testa que a taxa da categoria
// é resolvida no catálogo uma única vez por categoria: mutações que não tocam
// na categoria (imagens, por exemplo) reutilizam a taxa memorizada.
func TestPriceBreakdown_Success_CategoryRateMemoized(t *testing.T) {
	catalogMock := new(MockCatalogService)
	catalogMock.On("GSTRateForCategory", mock.Anything, "Eletrônicos").Return(float64(18))

	svc := newTestService(new(MockProductGateway), catalogMock)
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	category := "Eletrônicos"
	_, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Category: &category})
	assert.NoError(t, err)

	_, err = svc.AddImageURL(ctx, sessionID, "https://cdn.example.com/a.jpg")
	assert.NoError(t, err)
	view, err := svc.AddImageURL(ctx, sessionID, "https://cdn.example.com/b.jpg")
	assert.NoError(t, err)

	assert.Equal(t, 18.0, view.Price.GSTRate)
	catalogMock.AssertNumberOfCalls(t, "GSTRateForCategory", 1)
}

// TestCompletion_Success_Progression testa o status de preenchimento das
// quatro seções e o percentual agregado.
func TestCompletion_Success_Progression(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	// Sessão recém-aberta: nada completo (estoque padrão "0" não conta).
	view, _ := svc.View(ctx, sessionID)
	assert.Equal(t, 0, view.Completion.Percentage)

	// Básico: nome + categoria + preço. Catálogo sem taxa -> padrão.
	catalogMock := new(MockCatalogService)
	catalogMock.On("GSTRateForCategory", mock.Anything, mock.Anything).Return(float64(0))
	svc2 := newTestService(new(MockProductGateway), catalogMock)
	sessionID2 := openTestSession(t, svc2)

	name := "Camiseta básica"
	category := "Moda"
	price := "59.90"
	view, err := svc2.ApplyFieldPatch(ctx, sessionID2, authoringservice.FieldPatch{Name: &name, Category: &category, Price: &price})
	assert.NoError(t, err)
	assert.True(t, view.Completion.Basic)
	assert.Equal(t, 25, view.Completion.Percentage)

	// Descrição exige ao menos 20 caracteres.
	description := "Camiseta de algodão com caimento reto."
	view, err = svc2.ApplyFieldPatch(ctx, sessionID2, authoringservice.FieldPatch{Description: &description})
	assert.NoError(t, err)
	assert.True(t, view.Completion.Description)
	assert.Equal(t, 50, view.Completion.Percentage)

	// Imagens + inventário completam as quatro seções.
	view, err = svc2.AddImageURL(ctx, sessionID2, "https://cdn.example.com/camiseta.jpg")
	assert.NoError(t, err)
	assert.True(t, view.Completion.Images)

	stock := "10"
	view, err = svc2.ApplyFieldPatch(ctx, sessionID2, authoringservice.FieldPatch{Stock: &stock})
	assert.NoError(t, err)
	assert.True(t, view.Completion.Inventory)
	assert.Equal(t, 100, view.Completion.Percentage)
}
