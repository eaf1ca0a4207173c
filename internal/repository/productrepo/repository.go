package productrepo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"goseller/internal/domain"
	"goseller/internal/gateway"
	"goseller/internal/pkg/logger"
)

// ProductRepository executa as operações de produto contra o backend REST do
// marketplace. A persistência em si é responsabilidade do backend; este
// repositório apenas monta as chamadas e traduz as respostas.
type ProductRepository struct {
	Gateway *gateway.Client
	Logger  logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(gw *gateway.Client, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		Gateway: gw,
		Logger:  log,
	}
}

// Create publica um novo produto: POST /api/products com {productData, variants}.
func (r *ProductRepository) Create(ctx context.Context, req domain.CreateProductRequest) (domain.SellerProduct, error) {
	var created domain.SellerProduct
	if err := r.Gateway.DoJSON(ctx, http.MethodPost, "/api/products", nil, req, &created); err != nil {
		return domain.SellerProduct{}, err
	}
	return created, nil
}

// SaveDraft salva um rascunho: POST /api/products/draft com
// {productData: {..., isDraft, variants}}.
func (r *ProductRepository) SaveDraft(ctx context.Context, req domain.SaveDraftRequest) (domain.SellerProduct, error) {
	var saved domain.SellerProduct
	if err := r.Gateway.DoJSON(ctx, http.MethodPost, "/api/products/draft", nil, req, &saved); err != nil {
		return domain.SellerProduct{}, err
	}
	return saved, nil
}

// FindSellerProducts busca a listagem paginada do vendedor:
// GET /api/seller/products?page&limit&search&category&subcategory&stock.
func (r *ProductRepository) FindSellerProducts(ctx context.Context, filter domain.ListingFilter) (domain.SellerProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" && filter.Category != "all" {
		query.Set("category", filter.Category)
	}
	if filter.Subcategory != "" && filter.Subcategory != "all" {
		query.Set("subcategory", filter.Subcategory)
	}
	if filter.Stock != "" && filter.Stock != "all" {
		query.Set("stock", filter.Stock)
	}

	var page domain.SellerProductPage
	if err := r.Gateway.DoJSON(ctx, http.MethodGet, "/api/seller/products", query, nil, &page); err != nil {
		return domain.SellerProductPage{}, err
	}
	return page, nil
}

// UpdateListing corrige categoria/subcategoria de um item do inventário:
// PATCH /api/seller/products/:id.
func (r *ProductRepository) UpdateListing(ctx context.Context, productID int64, update domain.ListingUpdate) (domain.SellerProduct, error) {
	var updated domain.SellerProduct
	path := fmt.Sprintf("/api/seller/products/%d", productID)
	if err := r.Gateway.DoJSON(ctx, http.MethodPatch, path, nil, update, &updated); err != nil {
		return domain.SellerProduct{}, err
	}
	return updated, nil
}
