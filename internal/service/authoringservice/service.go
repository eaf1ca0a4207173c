package authoringservice

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
)

// ProductGateway define o contrato que este Serviço espera da camada de
// acesso ao backend do marketplace (Repositório).
type ProductGateway interface {
	Create(ctx context.Context, req domain.CreateProductRequest) (domain.SellerProduct, error)
	SaveDraft(ctx context.Context, req domain.SaveDraftRequest) (domain.SellerProduct, error)
}

// CatalogService fornece a taxa GST da categoria selecionada.
type CatalogService interface {
	GSTRateForCategory(ctx context.Context, name string) float64
}

// SnapshotStore persiste fotografias de sessão (autosave/recuperação).
// Opcional: nil desativa o autosave.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID, sellerID string, payload []byte) error
	Find(ctx context.Context, sessionID string) (sellerID string, payload []byte, err error)
	Delete(ctx context.Context, sessionID string) error
}

// Service gerencia as sessões de autoria em memória e orquestra os envios.
// As portas de notificação e invalidação de cache são injetadas, permitindo
// substituição em testes.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gateway     ProductGateway
	catalog     CatalogService
	snapshots   SnapshotStore
	notifier    domain.Notifier
	invalidator domain.CacheInvalidator
	validate    *validator.Validate
	logger      logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Autoria.
func NewService(gw ProductGateway, catalog CatalogService, snapshots SnapshotStore,
	notifier domain.Notifier, invalidator domain.CacheInvalidator, log logger.Logger) *Service {

	return &Service{
		sessions:    make(map[string]*Session),
		gateway:     gw,
		catalog:     catalog,
		snapshots:   snapshots,
		notifier:    notifier,
		invalidator: invalidator,
		validate:    newDraftValidator(),
		logger:      log,
	}
}

// --- Ciclo de vida da sessão ---

// OpenSession abre uma nova sessão de autoria para o vendedor.
func (s *Service) OpenSession(ctx domain.Context, sellerID string) (SessionView, error) {
	if sellerID == "" {
		return SessionView{}, apperror.NewValidationError("Identificador do vendedor é obrigatório.")
	}

	session := newSession(uuid.New().String(), sellerID)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Sessão de autoria aberta.", map[string]interface{}{"session_id": session.ID, "seller_id": sellerID})
	return s.view(ctx, session), nil
}

// session localiza uma sessão ativa pelo ID.
func (s *Service) session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Sessão de autoria não encontrada: " + id)
	}
	return session, nil
}

func (s *Service) removeSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// View devolve a visão atual da sessão (rascunho, variantes, decomposição de
// preço e status de preenchimento).
func (s *Service) View(ctx domain.Context, sessionID string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

// --- Edição de campos ---

// ApplyFieldPatch aplica um patch parcial de campos ao rascunho. A validação
// de formato acontece sobre uma cópia: em caso de falha nada é aplicado e o
// erro de campo é reportado.
func (s *Service) ApplyFieldPatch(ctx domain.Context, sessionID string, patch FieldPatch) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	session.mu.Lock()
	candidate := session.Draft
	patch.applyTo(&candidate)

	if err := s.validateDraft(candidate); err != nil {
		session.mu.Unlock()
		return SessionView{}, err
	}

	session.Draft = candidate
	session.touch()
	session.mu.Unlock()

	return s.view(ctx, session), nil
}

// validateDraft roda o adaptador de validação de esquema sobre o rascunho e
// traduz a primeira violação para uma mensagem de campo.
func (s *Service) validateDraft(draft domain.ProductDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		return apperror.NewValidationError(translateFieldError(fieldErrors[0]))
	}
	return apperror.NewValidationError("Dados do produto inválidos.")
}

// --- Envios ---

// Submit publica o produto: valida, achata o rascunho em {productData,
// variants} e envia ao backend. Falhas deixam o estado local intacto para
// nova tentativa; nenhum caminho de erro é silencioso.
func (s *Service) Submit(ctx domain.Context, sessionID string) (domain.SellerProduct, error) {
	const operation = "create-product"
	ctxGo := asContext(ctx)

	session, err := s.session(sessionID)
	if err != nil {
		return domain.SellerProduct{}, err
	}

	rate := s.categoryRate(ctxGo, session)

	req, err := session.beginSubmit(rate)
	if err != nil {
		s.notifier.Error(operation, "Não foi possível enviar o produto", err.Error())
		return domain.SellerProduct{}, err
	}

	created, err := s.gateway.Create(ctxGo, req)
	session.endSubmit()
	if err != nil {
		s.logger.Error("Falha ao criar produto no marketplace.", err)
		s.notifier.Error(operation, "Falha ao adicionar produto", err.Error())
		return domain.SellerProduct{}, err
	}

	s.finishSession(ctx, ctxGo, session)
	s.notifier.Success(operation, "Produto adicionado com sucesso", "Seu produto foi enviado para aprovação.")
	s.logger.Info("Produto publicado.", map[string]interface{}{"session_id": sessionID, "product_id": created.ID})

	return created, nil
}

// SaveAsDraft salva o rascunho com validação mínima (apenas o nome).
func (s *Service) SaveAsDraft(ctx domain.Context, sessionID string) (domain.SellerProduct, error) {
	const operation = "save-draft"
	ctxGo := asContext(ctx)

	session, err := s.session(sessionID)
	if err != nil {
		return domain.SellerProduct{}, err
	}

	rate := s.categoryRate(ctxGo, session)

	req, err := session.beginSaveDraft(rate)
	if err != nil {
		s.notifier.Error(operation, "Não foi possível salvar o rascunho", err.Error())
		return domain.SellerProduct{}, err
	}

	saved, err := s.gateway.SaveDraft(ctxGo, req)
	session.endSaveDraft()
	if err != nil {
		s.logger.Error("Falha ao salvar rascunho no marketplace.", err)
		s.notifier.Error(operation, "Falha ao salvar rascunho", err.Error())
		return domain.SellerProduct{}, err
	}

	s.finishSession(ctx, ctxGo, session)
	s.notifier.Success(operation, "Rascunho salvo com sucesso", "Seu rascunho pode ser editado mais tarde.")

	return saved, nil
}

// finishSession descarta a sessão e invalida as listagens em cache após um
// envio bem-sucedido.
func (s *Service) finishSession(ctx domain.Context, ctxGo context.Context, session *Session) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, "seller-products", "products")
	}
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctxGo, session.ID); err != nil {
			s.logger.Warn("Falha ao remover snapshot após envio.", map[string]interface{}{"session_id": session.ID, "error": err.Error()})
		}
	}
	s.removeSession(session.ID)
}

// categoryRate resolve a taxa GST da categoria atualmente selecionada no
// catálogo e memoriza o resultado para as visões subsequentes.
func (s *Service) categoryRate(ctxGo context.Context, session *Session) float64 {
	session.mu.Lock()
	category := session.Draft.Category
	session.mu.Unlock()

	rate := domain.DefaultGSTRate
	if s.catalog != nil && category != "" {
		rate = s.catalog.GSTRateForCategory(ctxGo, category)
	}

	session.mu.Lock()
	session.rateCategory = category
	session.rateValue = rate
	session.rateKnown = true
	session.mu.Unlock()

	return rate
}

// viewRate devolve a taxa para exibição sem consultar o catálogo a cada
// mutação: reutiliza a taxa memorizada enquanto a categoria não muda, e nem
// resolve quando o override do produto decide a taxa sozinho.
func (s *Service) viewRate(ctxGo context.Context, session *Session) float64 {
	session.mu.Lock()
	override := session.Draft.GSTRate
	category := session.Draft.Category
	known := session.rateKnown && session.rateCategory == category
	memo := session.rateValue
	session.mu.Unlock()

	if known {
		return memo
	}
	if override != "" {
		if _, err := strconv.ParseFloat(override, 64); err == nil {
			return domain.DefaultGSTRate
		}
	}
	return s.categoryRate(ctxGo, session)
}

// --- Snapshots (autosave/recuperação) ---

// SaveSnapshot grava a fotografia atual da sessão no armazenamento durável.
func (s *Service) SaveSnapshot(ctx domain.Context, sessionID string) error {
	if s.snapshots == nil {
		return apperror.NewConflictError("O autosave de sessões está desativado.")
	}

	session, err := s.session(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	payload, err := json.Marshal(sessionState{
		ID:            session.ID,
		SellerID:      session.SellerID,
		Draft:         session.Draft,
		Committed:     session.Committed,
		DraftVariants: session.DraftVariants,
		CreatedAt:     session.CreatedAt,
	})
	sellerID := session.SellerID
	session.mu.Unlock()

	if err != nil {
		return apperror.NewInternalError("Falha ao serializar a sessão para snapshot.", err)
	}

	return s.snapshots.Save(asContext(ctx), sessionID, sellerID, payload)
}

// RestoreSession reconstrói uma sessão em memória a partir do snapshot.
// A seleção em progresso e as guardas de envio não são restauradas.
func (s *Service) RestoreSession(ctx domain.Context, sessionID string) (SessionView, error) {
	if s.snapshots == nil {
		return SessionView{}, apperror.NewConflictError("O autosave de sessões está desativado.")
	}

	_, payload, err := s.snapshots.Find(asContext(ctx), sessionID)
	if err != nil {
		return SessionView{}, err
	}

	var state sessionState
	if err := json.Unmarshal(payload, &state); err != nil {
		return SessionView{}, apperror.NewDecodeError("Snapshot de sessão malformado.", err)
	}

	session := newSession(state.ID, state.SellerID)
	session.Draft = state.Draft
	session.Committed = state.Committed
	session.DraftVariants = state.DraftVariants
	if !state.CreatedAt.IsZero() {
		session.CreatedAt = state.CreatedAt
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Sessão de autoria restaurada de snapshot.", map[string]interface{}{"session_id": session.ID})
	return s.view(ctx, session), nil
}

// sessionState é a forma serializável da sessão para snapshots.
type sessionState struct {
	ID            string              `json:"id"`
	SellerID      string              `json:"seller_id"`
	Draft         domain.ProductDraft `json:"draft"`
	Committed     []domain.Variant    `json:"committed"`
	DraftVariants []domain.Variant    `json:"draft_variants"`
	CreatedAt     time.Time           `json:"created_at"`
}

// --- Visão da sessão ---

// SessionView é a visão exposta à camada de apresentação.
type SessionView struct {
	ID                string              `json:"id"`
	SellerID          string              `json:"seller_id"`
	Draft             domain.ProductDraft `json:"draft"`
	CommittedVariants []domain.Variant    `json:"committed_variants"`
	DraftVariants     []domain.Variant    `json:"draft_variants"`
	SelectedVariant   *domain.Variant     `json:"selected_variant,omitempty"`
	StagedImages      []string            `json:"staged_images,omitempty"`
	AddingVariant     bool                `json:"adding_variant"`
	EditingVariant    bool                `json:"editing_variant"`
	Submitting        bool                `json:"submitting"`
	SavingDraft       bool                `json:"saving_draft"`
	Price             PriceBreakdown      `json:"price_breakdown"`
	Completion        CompletionStatus    `json:"completion"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func (s *Service) view(ctx domain.Context, session *Session) SessionView {
	rate := s.viewRate(asContext(ctx), session)

	session.mu.Lock()
	defer session.mu.Unlock()

	var selected *domain.Variant
	if session.Selected != nil {
		copied := *session.Selected
		selected = &copied
	}

	return SessionView{
		ID:                session.ID,
		SellerID:          session.SellerID,
		Draft:             session.Draft,
		CommittedVariants: append([]domain.Variant(nil), session.Committed...),
		DraftVariants:     append([]domain.Variant(nil), session.DraftVariants...),
		SelectedVariant:   selected,
		StagedImages:      append([]string(nil), session.StagedImages...),
		AddingVariant:     session.Adding,
		EditingVariant:    session.Editing,
		Submitting:        session.submitting,
		SavingDraft:       session.savingDraft,
		Price:             session.priceBreakdownLocked(rate),
		Completion:        session.completionLocked(),
		UpdatedAt:         session.UpdatedAt,
	}
}

// asContext converte o domain.Context abstrato para o context.Context nativo.
func asContext(ctx domain.Context) context.Context {
	if ctxGo, ok := ctx.(context.Context); ok {
		return ctxGo
	}
	return context.Background()
}
