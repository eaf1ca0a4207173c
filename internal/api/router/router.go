package router

import (
	"net/http"
	"time"

	"goseller/internal/api/authoring"
	"goseller/internal/api/catalog"
	"goseller/internal/api/inventory"
	"goseller/internal/api/review"
	"goseller/internal/domain"
	"goseller/internal/pkg/cache"
	"goseller/internal/pkg/middleware"
)

// Config agrupa as dependências do roteador.
type Config struct {
	Authoring *authoring.Handler
	Catalog   *catalog.Handler
	Inventory *inventory.Handler
	Review    *review.Handler

	TokenService middleware.TokenService
	Cache        cache.Client
	RateLimit    int
	RateWindow   time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(cfg Config) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// Autenticação Bearer JWT em todas as rotas de negócio. Somente a role de
	// vendedor acessa a autoria e o inventário.
	auth := middleware.NewAuthMiddleware(cfg.TokenService)
	sellerOnly := middleware.PermissionMiddleware(domain.RoleSeller, domain.RoleAdmin)
	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(sellerOnly(h))
	}

	// --- 1. Rotas de Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Sessões de autoria (v1) ---
	mux.HandleFunc("/v1/sessions", protect(cfg.Authoring.OpenSessionHandler))
	mux.HandleFunc("/v1/sessions/", protect(cfg.Authoring.SessionHandler))

	// --- 3. Catálogo (v1) ---
	mux.HandleFunc("/v1/catalog/categories", auth(cfg.Catalog.CategoriesHandler))
	mux.HandleFunc("/v1/catalog/subcategories", auth(cfg.Catalog.SubcategoriesHandler))

	// --- 4. Inventário do vendedor (v1) ---
	mux.HandleFunc("/v1/inventory", protect(cfg.Inventory.ListProductsHandler))
	mux.HandleFunc("/v1/inventory/", protect(cfg.Inventory.UpdateCategoryHandler))

	// --- 5. Avaliações (v1) ---
	mux.HandleFunc("/v1/products/", auth(cfg.Review.SubmitReviewHandler))

	// --- 6. Middlewares globais ---
	var handler http.Handler = mux
	if cfg.Cache != nil && cfg.RateLimit > 0 {
		handler = middleware.RateLimiter(cfg.Cache, cfg.RateLimit, cfg.RateWindow)(handler)
	}

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
