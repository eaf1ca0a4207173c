package catalogrepo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"goseller/internal/domain"
	"goseller/internal/gateway"
	"goseller/internal/pkg/cache"
	"goseller/internal/pkg/logger"
)

// Chave de cache das categorias; subcategorias usam subcategoryKey.
const categoriesCacheKey = "catalog:categories"

const catalogCacheTTL = 5 * time.Minute

// CatalogRepository busca categorias e subcategorias no backend do
// marketplace, com estratégia Cache-Aside sobre o Redis. O catálogo muda
// raramente, então um TTL curto é suficiente.
type CatalogRepository struct {
	Gateway *gateway.Client
	Cache   cache.Client
	Logger  logger.Logger
}

// NewCatalogRepository cria e retorna uma nova instância do Repositório.
func NewCatalogRepository(gw *gateway.Client, cacheClient cache.Client, log logger.Logger) *CatalogRepository {
	return &CatalogRepository{
		Gateway: gw,
		Cache:   cacheClient,
		Logger:  log,
	}
}

// FindCategories devolve as categorias com suas taxas GST.
func (r *CatalogRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {

	// --- 1. Estratégia Cache-Aside (READ) ---
	var categories []domain.Category
	cachedData, err := r.Cache.Get(ctx, categoriesCacheKey)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &categories) == nil {
			return categories, nil
		}
		// Desserialização falhou: ignora a entrada e segue para o backend.
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (conexão perdida): loga e continua sem cache.
		r.Logger.Warn("Falha ao ler categorias do cache.", map[string]interface{}{"error": err.Error()})
	}

	// --- 2. Busca no backend ---
	if err := r.Gateway.DoJSON(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}

	// --- 3. Estratégia Cache-Aside (WRITE) ---
	if payload, marshalErr := json.Marshal(categories); marshalErr == nil {
		r.Cache.Set(ctx, categoriesCacheKey, payload, catalogCacheTTL)
	}

	return categories, nil
}

// FindSubcategories devolve as subcategorias, opcionalmente filtradas por
// categoria (category == "" busca todas via /api/subcategories/all).
func (r *CatalogRepository) FindSubcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {

	key := subcategoryKey(category)
	var subcategories []domain.Subcategory

	cachedData, err := r.Cache.Get(ctx, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &subcategories) == nil {
			return subcategories, nil
		}
	} else if err != cache.ErrCacheMiss {
		r.Logger.Warn("Falha ao ler subcategorias do cache.", map[string]interface{}{"error": err.Error()})
	}

	path := "/api/subcategories/all"
	var query url.Values
	if category != "" {
		path = "/api/subcategories"
		query = url.Values{"category": []string{category}}
	}

	if err := r.Gateway.DoJSON(ctx, http.MethodGet, path, query, nil, &subcategories); err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(subcategories); marshalErr == nil {
		r.Cache.Set(ctx, key, payload, catalogCacheTTL)
	}

	return subcategories, nil
}

func subcategoryKey(category string) string {
	if category == "" {
		category = "all"
	}
	return "catalog:subcategories:" + category
}
