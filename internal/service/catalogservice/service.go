package catalogservice

import (
	"context"

	"goseller/internal/domain"
	"goseller/internal/pkg/logger"
)

// CatalogRepository define o contrato que este Serviço espera da camada de
// acesso ao catálogo do marketplace.
type CatalogRepository interface {
	FindCategories(ctx context.Context) ([]domain.Category, error)
	FindSubcategories(ctx context.Context, category string) ([]domain.Subcategory, error)
}

// CatalogService expõe o catálogo de categorias/subcategorias e resolve a
// taxa GST aplicável a uma categoria.
type CatalogService struct {
	Repo   CatalogRepository
	Logger logger.Logger
}

// NewCatalogService cria e retorna uma nova instância do Serviço.
func NewCatalogService(repo CatalogRepository, log logger.Logger) *CatalogService {
	return &CatalogService{
		Repo:   repo,
		Logger: log,
	}
}

// Categories devolve as categorias disponíveis.
func (s *CatalogService) Categories(ctx domain.Context) ([]domain.Category, error) {
	return s.Repo.FindCategories(asContext(ctx))
}

// Subcategories devolve as subcategorias, opcionalmente filtradas por categoria.
func (s *CatalogService) Subcategories(ctx domain.Context, category string) ([]domain.Subcategory, error) {
	return s.Repo.FindSubcategories(asContext(ctx), category)
}

// GSTRateForCategory resolve a taxa GST da categoria pelo nome. Categoria
// desconhecida, sem taxa definida ou catálogo indisponível caem na taxa
// padrão de 18% — a resolução de taxa nunca bloqueia um envio.
func (s *CatalogService) GSTRateForCategory(ctx context.Context, name string) float64 {
	if name == "" {
		return domain.DefaultGSTRate
	}

	categories, err := s.Repo.FindCategories(ctx)
	if err != nil {
		s.Logger.Warn("Catálogo indisponível para resolução de taxa GST; usando taxa padrão.", map[string]interface{}{"category": name, "error": err.Error()})
		return domain.DefaultGSTRate
	}

	for _, category := range categories {
		if category.Name == name {
			if category.GSTRate != nil && *category.GSTRate > 0 {
				return *category.GSTRate
			}
			break
		}
	}
	return domain.DefaultGSTRate
}

// asContext converte o domain.Context abstrato para o context.Context nativo.
func asContext(ctx domain.Context) context.Context {
	if ctxGo, ok := ctx.(context.Context); ok {
		return ctxGo
	}
	return context.Background()
}
