package inventory

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

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	ListProducts(ctx domain.Context, filter domain.ListingFilter) (domain.SellerProductPage, error)
	UpdateCategory(ctx domain.Context, productID int64, update domain.ListingUpdate) (domain.SellerProduct, error)
}

// Handler agrupa todos os métodos de Handler do inventário.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
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

// ListProductsHandler lida com a requisição GET /v1/inventory.
// Filtros: ?page&limit&search&category&subcategory&stock.
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := domain.ListingFilter{
		Page:        page,
		Limit:       limit,
		Search:      query.Get("search"),
		Category:    query.Get("category"),
		Subcategory: query.Get("subcategory"),
		Stock:       query.Get("stock"),
	}

	productsPage, err := h.Service.ListProducts(r.Context(), filter)
	h.handleServiceResponse(w, r, productsPage, err, http.StatusOK)
}

// UpdateCategoryHandler lida com a requisição PATCH /v1/inventory/{productID}.
func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	idText := strings.TrimPrefix(r.URL.Path, "/v1/inventory/")
	productID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Identificador de produto inválido."), http.StatusOK)
		return
	}

	var update domain.ListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateCategory(r.Context(), productID, update)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}
