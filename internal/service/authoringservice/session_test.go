package authoringservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/service/authoringservice"
)

// TestStartNewVariant_Success testa a abertura de uma adição rápida semeada
// com os valores do produto pai.
func TestStartNewVariant_Success(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	price := "199.90"
	stock := "12"
	sku := "CAMISETA"
	_, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Price: &price, Stock: &stock, SKU: &sku})
	assert.NoError(t, err)

	view, err := svc.StartNewVariant(ctx, sessionID)

	assert.NoError(t, err)
	assert.True(t, view.AddingVariant)
	assert.NotNil(t, view.SelectedVariant)
	assert.Equal(t, "CAMISETA-1", view.SelectedVariant.SKU)
	assert.Equal(t, 199.90, view.SelectedVariant.Price)
	assert.Equal(t, 12, view.SelectedVariant.Stock)
	assert.True(t, view.SelectedVariant.Ref.Pending)
}

// TestStartNewVariant_Fail_AlreadyAdding testa que só há uma adição rápida aberta por vez.
func TestStartNewVariant_Fail_AlreadyAdding(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	_, err := svc.StartNewVariant(ctx, sessionID)
	assert.NoError(t, err)

	_, err = svc.StartNewVariant(ctx, sessionID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

// TestSaveQuickAddVariant_Success_ContinuousEntry testa que salvar uma adição
// rápida confirma a entrada e abre imediatamente a próxima (entrada contínua).
func TestSaveQuickAddVariant_Success_ContinuousEntry(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	started, err := svc.StartNewVariant(ctx, sessionID)
	assert.NoError(t, err)
	firstRef := started.SelectedVariant.Ref

	view, err := svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{
		SKU:   "VAR-AZUL",
		Color: "Azul",
		Price: 99.90,
		Stock: 5,
	})

	assert.NoError(t, err)
	assert.Len(t, view.DraftVariants, 1)
	assert.Equal(t, "VAR-AZUL", view.DraftVariants[0].SKU)
	// A variante salva herdou a referência da adição em andamento.
	assert.True(t, view.DraftVariants[0].Ref.Equals(firstRef))
	// Uma nova adição rápida já está aberta, com referência diferente.
	assert.True(t, view.AddingVariant)
	assert.NotNil(t, view.SelectedVariant)
	assert.False(t, view.SelectedVariant.Ref.Equals(firstRef))
}

// TestSaveQuickAddVariant_Fail_KeepsEntryOpen testa que uma falha de validação
// mantém a variante aberta para correção, sem confirmar nada.
func TestSaveQuickAddVariant_Fail_KeepsEntryOpen(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	_, err := svc.StartNewVariant(ctx, sessionID)
	assert.NoError(t, err)

	_, err = svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{
		SKU:   "VAR-SEM-PRECO",
		Price: 0, // inválido
		Stock: 5,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)

	current, _ := svc.View(ctx, sessionID)
	assert.Empty(t, current.DraftVariants)
	assert.True(t, current.AddingVariant)
	assert.NotNil(t, current.SelectedVariant)
}

// TestSaveQuickAddVariant_Success_WithoutOpenEntry testa o salvamento direto,
// sem adição rápida aberta: a variante recebe uma referência local nova
// (nunca vazia) e permanece endereçável, inclusive para exclusão.
func TestSaveQuickAddVariant_Success_WithoutOpenEntry(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	view, err := svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{SKU: "VAR-DIRETA", Price: 10, Stock: 1})

	assert.NoError(t, err)
	assert.Len(t, view.DraftVariants, 1)
	saved := view.DraftVariants[0]
	assert.False(t, saved.Ref.IsZero())
	assert.True(t, saved.Ref.Pending)
	assert.Less(t, saved.Ref.Wire(), int64(0))

	view, err = svc.DeleteVariant(ctx, sessionID, saved.Ref.Wire())
	assert.NoError(t, err)
	assert.Empty(t, view.DraftVariants)
}

// TestSaveQuickAddVariant_Success_ReplacesSameRef testa a substituição de uma
// entrada existente de mesma referência (re-salvar corrige, não duplica).
func TestSaveQuickAddVariant_Success_ReplacesSameRef(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	started, _ := svc.StartNewVariant(ctx, sessionID)
	ref := started.SelectedVariant.Ref

	_, err := svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{Ref: ref, SKU: "VAR-A", Price: 10, Stock: 1})
	assert.NoError(t, err)

	view, err := svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{Ref: ref, SKU: "VAR-A-CORRIGIDA", Price: 20, Stock: 2})

	assert.NoError(t, err)
	assert.Len(t, view.DraftVariants, 1)
	assert.Equal(t, "VAR-A-CORRIGIDA", view.DraftVariants[0].SKU)
	assert.Equal(t, 20.0, view.DraftVariants[0].Price)
}

// TestDeleteVariant_Success testa a exclusão por referência, limpando a seleção
// quando a variante excluída era a selecionada.
func TestDeleteVariant_Success(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	started, _ := svc.StartNewVariant(ctx, sessionID)
	ref := started.SelectedVariant.Ref
	_, err := svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{Ref: ref, SKU: "VAR-A", Price: 10, Stock: 1})
	assert.NoError(t, err)

	view, err := svc.DeleteVariant(ctx, sessionID, ref.Wire())

	assert.NoError(t, err)
	assert.Empty(t, view.DraftVariants)
}

// TestDeleteVariant_Fail_NotFound testa o erro explícito para referência inexistente.
func TestDeleteVariant_Fail_NotFound(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)

	_, err := svc.DeleteVariant(context.Background(), sessionID, -999999)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestEditVariant_Success_DeepCopy testa que a edição trabalha sobre uma cópia
// profunda: mutações na seleção não vazam para a cópia armazenada até salvar.
func TestEditVariant_Success_DeepCopy(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	started, _ := svc.StartNewVariant(ctx, sessionID)
	ref := started.SelectedVariant.Ref
	_, err := svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{
		Ref: ref, SKU: "VAR-A", Price: 10, Stock: 1,
		Images: []string{"https://cdn.example.com/v.jpg"},
	})
	assert.NoError(t, err)

	view, err := svc.EditVariant(ctx, sessionID, ref.Wire())
	assert.NoError(t, err)
	assert.True(t, view.EditingVariant)
	assert.NotNil(t, view.SelectedVariant)

	// Mexer nas imagens da seleção não altera a variante armazenada.
	_, err = svc.RemoveVariantImage(ctx, sessionID, 0)
	assert.NoError(t, err)

	current, _ := svc.View(ctx, sessionID)
	assert.Len(t, current.DraftVariants[0].Images, 1)
	assert.Empty(t, current.StagedImages)
}

// TestSaveEditedVariant_Success testa o salvamento da variante editada na
// coleção confirmada, com as imagens anexadas.
func TestSaveEditedVariant_Success(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	started, _ := svc.StartNewVariant(ctx, sessionID)
	ref := started.SelectedVariant.Ref

	view, err := svc.SaveEditedVariant(ctx, sessionID, domain.Variant{
		Ref: ref, SKU: "VAR-EDITADA", Price: 50, Stock: 3,
	}, []string{"https://cdn.example.com/v1.jpg", "https://cdn.example.com/v2.jpg"})

	assert.NoError(t, err)
	assert.Len(t, view.CommittedVariants, 1)
	assert.Equal(t, "VAR-EDITADA", view.CommittedVariants[0].SKU)
	assert.Len(t, view.CommittedVariants[0].Images, 2)
	assert.Nil(t, view.SelectedVariant)
	assert.False(t, view.AddingVariant)
	assert.False(t, view.EditingVariant)
}

// TestCancelEdit_Success testa o cancelamento: limpa a seleção sem reverter
// entradas já salvas.
func TestCancelEdit_Success(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	started, _ := svc.StartNewVariant(ctx, sessionID)
	ref := started.SelectedVariant.Ref
	svc.SaveQuickAddVariant(ctx, sessionID, domain.Variant{Ref: ref, SKU: "VAR-A", Price: 10, Stock: 1})

	view, err := svc.CancelEdit(ctx, sessionID)

	assert.NoError(t, err)
	assert.Nil(t, view.SelectedVariant)
	assert.False(t, view.AddingVariant)
	assert.Len(t, view.DraftVariants, 1) // A entrada salva permanece.
}

// TestApplyFieldPatch_Success_NormalizesTokenSets testa a normalização de
// cor/tamanho como conjuntos ordenados sem duplicatas.
func TestApplyFieldPatch_Success_NormalizesTokenSets(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)

	color := " Azul, Verde ,Azul, Vermelho "
	view, err := svc.ApplyFieldPatch(context.Background(), sessionID, authoringservice.FieldPatch{Color: &color})

	assert.NoError(t, err)
	assert.Equal(t, "Azul,Verde,Vermelho", view.Draft.Color)
}

// TestApplyFieldPatch_Fail_InvalidPrice testa que um patch inválido não é
// aplicado (validação sobre cópia).
func TestApplyFieldPatch_Fail_InvalidPrice(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	price := "abc"
	_, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Price: &price})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)

	current, _ := svc.View(ctx, sessionID)
	assert.Empty(t, current.Draft.Price)
}

// TestApplyFieldPatch_Success_CategoryChangeClearsSubcategory testa que trocar
// a categoria limpa a subcategoria selecionada.
func TestApplyFieldPatch_Success_CategoryChangeClearsSubcategory(t *testing.T) {
	catalogMock := new(MockCatalogService)
	catalogMock.On("GSTRateForCategory", mock.Anything, mock.Anything).Return(float64(18))

	svc := newTestService(new(MockProductGateway), catalogMock)
	sessionID := openTestSession(t, svc)
	ctx := context.Background()

	category := "Eletrônicos"
	subcategory := "Fones"
	_, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Category: &category})
	assert.NoError(t, err)
	_, err = svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Subcategory: &subcategory})
	assert.NoError(t, err)

	newCategory := "Moda"
	view, err := svc.ApplyFieldPatch(ctx, sessionID, authoringservice.FieldPatch{Category: &newCategory})

	assert.NoError(t, err)
	assert.Equal(t, "Moda", view.Draft.Category)
	assert.Empty(t, view.Draft.Subcategory)
}

// TestView_Fail_SessionNotFound testa o erro para sessão inexistente.
func TestView_Fail_SessionNotFound(t *testing.T) {
	svc := newTestService(new(MockProductGateway), new(MockCatalogService))

	_, err := svc.View(context.Background(), "sessao-fantasma")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}
