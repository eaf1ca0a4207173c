package reviewservice

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
)

// MaxReviewImages é o máximo de imagens anexadas a uma avaliação.
const MaxReviewImages = 8

// ReviewSender define o contrato que este Serviço espera da camada de envio
// de avaliações.
type ReviewSender interface {
	Submit(ctx context.Context, productID int64, review domain.Review) error
}

// ReviewService valida e envia avaliações de produto.
type ReviewService struct {
	Repo        ReviewSender
	Invalidator domain.CacheInvalidator
	Notifier    domain.Notifier
	Validate    *validator.Validate
	Logger      logger.Logger
}

// NewReviewService cria e retorna uma nova instância do Serviço.
func NewReviewService(repo ReviewSender, invalidator domain.CacheInvalidator, notifier domain.Notifier, log logger.Logger) *ReviewService {
	return &ReviewService{
		Repo:        repo,
		Invalidator: invalidator,
		Notifier:    notifier,
		Validate:    validator.New(validator.WithRequiredStructEnabled()),
		Logger:      log,
	}
}

// SubmitReview valida a avaliação e a envia ao backend do marketplace.
// A lista de imagens segue as mesmas regras do gerenciador de imagens do
// produto: limite fixo e rejeição de URLs duplicadas.
func (s *ReviewService) SubmitReview(ctx domain.Context, productID int64, submission domain.ReviewSubmission) (domain.Review, error) {
	const operation = "submit-review"
	ctxGo := asContext(ctx)

	if productID <= 0 {
		return domain.Review{}, apperror.NewValidationError("Identificador de produto inválido.")
	}

	if err := s.Validate.Struct(submission); err != nil {
		return domain.Review{}, apperror.NewValidationError("Avaliação inválida: nota de 1 a 5 é obrigatória; o texto, se presente, deve ter ao menos 10 caracteres.")
	}

	if len(submission.Images) > MaxReviewImages {
		return domain.Review{}, apperror.NewLimitError("Uma avaliação aceita no máximo 8 imagens.")
	}
	seen := make(map[string]bool)
	for _, img := range submission.Images {
		if seen[img] {
			return domain.Review{}, apperror.NewLimitError("Esta URL de imagem já foi adicionada à avaliação.")
		}
		seen[img] = true
	}

	review := domain.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		Rating:    submission.Rating,
		Title:     submission.Title,
		Review:    submission.Review,
		Images:    submission.Images,
	}

	if err := s.Repo.Submit(ctxGo, productID, review); err != nil {
		s.Logger.Error("Falha ao enviar avaliação.", err)
		s.Notifier.Error(operation, "Falha ao enviar avaliação", err.Error())
		return domain.Review{}, err
	}

	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx, "reviews")
	}
	s.Notifier.Success(operation, "Avaliação enviada", "Obrigado pelo seu feedback!")

	return review, nil
}

// asContext converte o domain.Context abstrato para o context.Context nativo.
func asContext(ctx domain.Context) context.Context {
	if ctxGo, ok := ctx.(context.Context); ok {
		return ctxGo
	}
	return context.Background()
}
