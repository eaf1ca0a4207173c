package review

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
)

// ReviewService define o contrato que o Handler espera da camada de Serviço.
type ReviewService interface {
	SubmitReview(ctx domain.Context, productID int64, submission domain.ReviewSubmission) (domain.Review, error)
}

// Handler agrupa todos os métodos de Handler de avaliações.
type Handler struct {
	Service ReviewService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ReviewService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Sucesso
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
				http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// SubmitReviewHandler lida com a requisição POST /v1/products/{productID}/reviews.
func (h *Handler) SubmitReviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/products/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) != 2 || segments[1] != "reviews" {
		http.NotFound(w, r)
		return
	}

	productID, err := strconv.ParseInt(segments[0], 10, 64)
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Identificador de produto inválido."), http.StatusOK)
		return
	}

	var submission domain.ReviewSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	created, err := h.Service.SubmitReview(r.Context(), productID, submission)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}
