package authoring

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
	"goseller/internal/pkg/middleware"
	"goseller/internal/service/authoringservice"
)

// AuthoringService define o contrato que o Handler espera da camada de Serviço.
type AuthoringService interface {
	OpenSession(ctx domain.Context, sellerID string) (authoringservice.SessionView, error)
	View(ctx domain.Context, sessionID string) (authoringservice.SessionView, error)
	ApplyFieldPatch(ctx domain.Context, sessionID string, patch authoringservice.FieldPatch) (authoringservice.SessionView, error)

	AddImageURL(ctx domain.Context, sessionID, rawURL string) (authoringservice.SessionView, error)
	AddImageBatch(ctx domain.Context, sessionID string, urls []string) (authoringservice.SessionView, error)
	AddImageData(ctx domain.Context, sessionID string, data []byte) (authoringservice.SessionView, error)
	RemoveImage(ctx domain.Context, sessionID string, index int) (authoringservice.SessionView, error)

	AddVariantImageURL(ctx domain.Context, sessionID, rawURL string) (authoringservice.SessionView, error)
	AddVariantImageData(ctx domain.Context, sessionID string, data []byte) (authoringservice.SessionView, error)
	RemoveVariantImage(ctx domain.Context, sessionID string, index int) (authoringservice.SessionView, error)

	StartNewVariant(ctx domain.Context, sessionID string) (authoringservice.SessionView, error)
	SaveQuickAddVariant(ctx domain.Context, sessionID string, v domain.Variant) (authoringservice.SessionView, error)
	SaveEditedVariant(ctx domain.Context, sessionID string, v domain.Variant, images []string) (authoringservice.SessionView, error)
	EditVariant(ctx domain.Context, sessionID string, wireID int64) (authoringservice.SessionView, error)
	DeleteVariant(ctx domain.Context, sessionID string, wireID int64) (authoringservice.SessionView, error)
	CancelEdit(ctx domain.Context, sessionID string) (authoringservice.SessionView, error)

	Submit(ctx domain.Context, sessionID string) (domain.SellerProduct, error)
	SaveAsDraft(ctx domain.Context, sessionID string) (domain.SellerProduct, error)

	SaveSnapshot(ctx domain.Context, sessionID string) error
	RestoreSession(ctx domain.Context, sessionID string) (authoringservice.SessionView, error)
}

// Handler agrupa todos os métodos de Handler de sessões de autoria.
type Handler struct {
	Service AuthoringService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthoringService, log logger.Logger) *Handler {
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

// OpenSessionHandler lida com a requisição POST /v1/sessions.
// O vendedor vem das claims do token, não do corpo.
func (h *Handler) OpenSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	claims, ok := middleware.GetSellerClaimsFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Claims de vendedor ausentes na requisição."), http.StatusOK)
		return
	}

	view, err := h.Service.OpenSession(ctx, claims.SellerID)
	h.handleServiceResponse(w, r, view, err, http.StatusCreated)
}

// SessionHandler despacha as requisições de /v1/sessions/{id} e subrecursos
// (imagens, variantes, envios, snapshot) a partir dos segmentos do caminho.
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		http.Error(w, "Sessão não informada", http.StatusBadRequest)
		return
	}

	// POST /v1/sessions/restore/{id}
	if segments[0] == "restore" {
		h.restoreSession(w, r, segments[1:])
		return
	}

	sessionID := segments[0]
	tail := segments[1:]

	if len(tail) == 0 {
		h.sessionRoot(w, r, sessionID)
		return
	}

	switch tail[0] {
	case "images":
		h.sessionImages(w, r, sessionID, tail[1:])
	case "variants":
		h.sessionVariants(w, r, sessionID, tail[1:])
	case "submit":
		h.submit(w, r, sessionID)
	case "draft":
		h.saveDraft(w, r, sessionID)
	case "snapshot":
		h.saveSnapshot(w, r, sessionID)
	default:
		http.NotFound(w, r)
	}
}

// sessionRoot lida com GET (visão) e PATCH (patch de campos) de /v1/sessions/{id}.
func (h *Handler) sessionRoot(w http.ResponseWriter, r *http.Request, sessionID string) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		view, err := h.Service.View(ctx, sessionID)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	case http.MethodPatch:
		var patch authoringservice.FieldPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
			return
		}
		view, err := h.Service.ApplyFieldPatch(ctx, sessionID, patch)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// imageRequest é o corpo aceito pelos endpoints de imagem: uma URL única,
// um lote de URLs, ou bytes de imagem em base64.
type imageRequest struct {
	URL  string   `json:"url,omitempty"`
	URLs []string `json:"urls,omitempty"`
	Data string   `json:"data,omitempty"`
}

// sessionImages lida com POST /v1/sessions/{id}/images e
// DELETE /v1/sessions/{id}/images/{index}.
func (h *Handler) sessionImages(w http.ResponseWriter, r *http.Request, sessionID string, tail []string) {
	ctx := r.Context()

	switch {
	case r.Method == http.MethodPost && len(tail) == 0:
		req, err := decodeImageRequest(r)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}

		var view authoringservice.SessionView
		switch {
		case req.URL != "":
			view, err = h.Service.AddImageURL(ctx, sessionID, req.URL)
		case len(req.URLs) > 0:
			view, err = h.Service.AddImageBatch(ctx, sessionID, req.URLs)
		default:
			data, decodeErr := base64.StdEncoding.DecodeString(req.Data)
			if decodeErr != nil {
				h.handleServiceResponse(w, r, nil, apperror.NewDecodeError("Conteúdo base64 inválido.", decodeErr), http.StatusOK)
				return
			}
			view, err = h.Service.AddImageData(ctx, sessionID, data)
		}
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	case r.Method == http.MethodDelete && len(tail) == 1:
		index, err := strconv.Atoi(tail[0])
		if err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Índice de imagem inválido."), http.StatusOK)
			return
		}
		view, err := h.Service.RemoveImage(ctx, sessionID, index)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// variantRequest é o corpo de salvamento de variante (adição rápida ou edição).
type variantRequest struct {
	ID           int64    `json:"id"`
	SKU          string   `json:"sku"`
	Color        string   `json:"color"`
	Size         string   `json:"size"`
	Price        float64  `json:"price"`
	MRP          float64  `json:"mrp"`
	Stock        int      `json:"stock"`
	Images       []string `json:"images"`
	Warranty     string   `json:"warranty"`
	ReturnPolicy string   `json:"return_policy"`
}

func (vr variantRequest) toDomain() domain.Variant {
	var ref domain.VariantRef
	if vr.ID != 0 {
		ref = domain.RefFromWire(vr.ID)
	}
	return domain.Variant{
		Ref:          ref,
		SKU:          vr.SKU,
		Color:        vr.Color,
		Size:         vr.Size,
		Price:        vr.Price,
		MRP:          vr.MRP,
		Stock:        vr.Stock,
		Images:       vr.Images,
		Warranty:     vr.Warranty,
		ReturnPolicy: vr.ReturnPolicy,
	}
}

// sessionVariants despacha os subrecursos de variantes:
//
//	POST   /variants                  — abre uma adição rápida
//	PUT    /variants/quick-add        — salva a variante em adição rápida
//	POST   /variants/cancel           — cancela a seleção atual
//	POST   /variants/images           — anexa imagem (url | base64) à variante em edição
//	DELETE /variants/images/{index}   — remove imagem da variante em edição
//	PUT    /variants/{wireID}         — salva a variante editada (com imagens)
//	DELETE /variants/{wireID}         — exclui a variante das duas coleções
//	POST   /variants/{wireID}/edit    — abre a variante para edição (cópia profunda)
func (h *Handler) sessionVariants(w http.ResponseWriter, r *http.Request, sessionID string, tail []string) {
	ctx := r.Context()

	if len(tail) == 0 {
		if r.Method != http.MethodPost {
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
			return
		}
		view, err := h.Service.StartNewVariant(ctx, sessionID)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)
		return
	}

	switch tail[0] {
	case "quick-add":
		if r.Method != http.MethodPut {
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
			return
		}
		var req variantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
			return
		}
		view, err := h.Service.SaveQuickAddVariant(ctx, sessionID, req.toDomain())
		h.handleServiceResponse(w, r, view, err, http.StatusOK)
		return

	case "cancel":
		if r.Method != http.MethodPost {
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
			return
		}
		view, err := h.Service.CancelEdit(ctx, sessionID)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)
		return

	case "images":
		h.variantImages(w, r, sessionID, tail[1:])
		return
	}

	wireID, err := strconv.ParseInt(tail[0], 10, 64)
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Identificador de variante inválido."), http.StatusOK)
		return
	}

	switch {
	case r.Method == http.MethodPut && len(tail) == 1:
		var req variantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
			return
		}
		variant := req.toDomain()
		if variant.Ref.IsZero() {
			variant.Ref = domain.RefFromWire(wireID)
		}
		view, err := h.Service.SaveEditedVariant(ctx, sessionID, variant, req.Images)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	case r.Method == http.MethodDelete && len(tail) == 1:
		view, err := h.Service.DeleteVariant(ctx, sessionID, wireID)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	case r.Method == http.MethodPost && len(tail) == 2 && tail[1] == "edit":
		view, err := h.Service.EditVariant(ctx, sessionID, wireID)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// variantImages lida com as imagens da variante em edição.
func (h *Handler) variantImages(w http.ResponseWriter, r *http.Request, sessionID string, tail []string) {
	ctx := r.Context()

	switch {
	case r.Method == http.MethodPost && len(tail) == 0:
		req, err := decodeImageRequest(r)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}

		var view authoringservice.SessionView
		if req.URL != "" {
			view, err = h.Service.AddVariantImageURL(ctx, sessionID, req.URL)
		} else {
			data, decodeErr := base64.StdEncoding.DecodeString(req.Data)
			if decodeErr != nil {
				h.handleServiceResponse(w, r, nil, apperror.NewDecodeError("Conteúdo base64 inválido.", decodeErr), http.StatusOK)
				return
			}
			view, err = h.Service.AddVariantImageData(ctx, sessionID, data)
		}
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	case r.Method == http.MethodDelete && len(tail) == 1:
		index, err := strconv.Atoi(tail[0])
		if err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Índice de imagem inválido."), http.StatusOK)
			return
		}
		view, err := h.Service.RemoveVariantImage(ctx, sessionID, index)
		h.handleServiceResponse(w, r, view, err, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

func decodeImageRequest(r *http.Request) (imageRequest, error) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return imageRequest{}, apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	if req.URL == "" && len(req.URLs) == 0 && req.Data == "" {
		return imageRequest{}, apperror.NewValidationError("Informe url, urls ou data (base64).")
	}
	return req, nil
}

// submit lida com POST /v1/sessions/{id}/submit.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	created, err := h.Service.Submit(r.Context(), sessionID)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// saveDraft lida com POST /v1/sessions/{id}/draft.
func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	saved, err := h.Service.SaveAsDraft(r.Context(), sessionID)
	h.handleServiceResponse(w, r, saved, err, http.StatusCreated)
}

// saveSnapshot lida com POST /v1/sessions/{id}/snapshot.
func (h *Handler) saveSnapshot(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	err := h.Service.SaveSnapshot(r.Context(), sessionID)
	h.handleServiceResponse(w, r, map[string]string{"status": "saved"}, err, http.StatusOK)
}

// restoreSession lida com POST /v1/sessions/restore/{id}.
func (h *Handler) restoreSession(w http.ResponseWriter, r *http.Request, tail []string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	if len(tail) != 1 || tail[0] == "" {
		http.Error(w, "Sessão não informada", http.StatusBadRequest)
		return
	}

	view, err := h.Service.RestoreSession(r.Context(), tail[0])
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}
