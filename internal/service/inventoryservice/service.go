package inventoryservice

import (
	"context"
	"fmt"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
)

// ProductLister define o contrato que este Serviço espera da camada de
// acesso à listagem do marketplace.
type ProductLister interface {
	FindSellerProducts(ctx context.Context, filter domain.ListingFilter) (domain.SellerProductPage, error)
	UpdateListing(ctx context.Context, productID int64, update domain.ListingUpdate) (domain.SellerProduct, error)
}

// InventoryService expõe a listagem do inventário do vendedor e as correções
// de categorização de itens já publicados.
type InventoryService struct {
	Repo        ProductLister
	Invalidator domain.CacheInvalidator
	Notifier    domain.Notifier
	Logger      logger.Logger
}

// NewInventoryService cria e retorna uma nova instância do Serviço.
func NewInventoryService(repo ProductLister, invalidator domain.CacheInvalidator, notifier domain.Notifier, log logger.Logger) *InventoryService {
	return &InventoryService{
		Repo:        repo,
		Invalidator: invalidator,
		Notifier:    notifier,
		Logger:      log,
	}
}

// ListProducts devolve uma página do inventário do vendedor. Os parâmetros de
// paginação são saneados aqui (página mínima 1, limite máximo 100).
func (s *InventoryService) ListProducts(ctx domain.Context, filter domain.ListingFilter) (domain.SellerProductPage, error) {
	ctxGo := asContext(ctx)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return s.Repo.FindSellerProducts(ctxGo, filter)
}

// UpdateCategory corrige a categoria/subcategoria de um item publicado e
// invalida as listagens em cache.
func (s *InventoryService) UpdateCategory(ctx domain.Context, productID int64, update domain.ListingUpdate) (domain.SellerProduct, error) {
	const operation = "update-listing"
	ctxGo := asContext(ctx)

	if productID <= 0 {
		return domain.SellerProduct{}, apperror.NewValidationError("Identificador de produto inválido.")
	}
	if update.Category == "" {
		return domain.SellerProduct{}, apperror.NewValidationError("A categoria é obrigatória.")
	}

	updated, err := s.Repo.UpdateListing(ctxGo, productID, update)
	if err != nil {
		s.Logger.Error("Falha ao atualizar categorização do item.", err)
		s.Notifier.Error(operation, "Falha ao atualizar o produto", err.Error())
		return domain.SellerProduct{}, err
	}

	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx, "seller-products", "products")
	}
	s.Notifier.Success(operation, "Produto atualizado", fmt.Sprintf("Categorização do produto %d atualizada.", productID))

	return updated, nil
}

// asContext converte o domain.Context abstrato para o context.Context nativo.
func asContext(ctx domain.Context) context.Context {
	if ctxGo, ok := ctx.(context.Context); ok {
		return ctxGo
	}
	return context.Background()
}
