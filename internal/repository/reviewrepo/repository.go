package reviewrepo

import (
	"context"
	"fmt"
	"net/http"

	"goseller/internal/domain"
	"goseller/internal/gateway"
	"goseller/internal/pkg/logger"
)

// ReviewRepository envia avaliações de produto ao backend do marketplace.
type ReviewRepository struct {
	Gateway *gateway.Client
	Logger  logger.Logger
}

// NewReviewRepository cria e retorna uma nova instância do Repositório.
func NewReviewRepository(gw *gateway.Client, log logger.Logger) *ReviewRepository {
	return &ReviewRepository{
		Gateway: gw,
		Logger:  log,
	}
}

// Submit envia uma avaliação: POST /api/products/:id/reviews.
func (r *ReviewRepository) Submit(ctx context.Context, productID int64, review domain.Review) error {
	path := fmt.Sprintf("/api/products/%d/reviews", productID)
	return r.Gateway.DoJSON(ctx, http.MethodPost, path, nil, review, nil)
}
