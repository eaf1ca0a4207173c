package authoringservice

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
)

// Session é a máquina de estados em memória de uma sessão de autoria de
// produto. Acumula o rascunho (campos, imagens, variantes) e o reconcilia em
// um envio de criação ou de rascunho.
//
// Todas as mutações passam pelo mutex e são aplicadas ao estado mais recente,
// nunca a um snapshot capturado antes (duas decodificações de imagem em voo
// não podem perder atualizações uma da outra).
type Session struct {
	mu sync.Mutex

	ID       string
	SellerID string

	Draft domain.ProductDraft

	// Committed são as variantes já confirmadas nesta sessão (tabela
	// principal); DraftVariants são as entradas do fluxo de adição rápida.
	// Invariante: as duas coleções nunca contêm referências sobrepostas;
	// no envio são mescladas e deduplicadas por referência.
	Committed     []domain.Variant
	DraftVariants []domain.Variant

	// Selected é a única variante aberta para edição/adição (no máximo uma).
	Selected     *domain.Variant
	StagedImages []string
	Adding       bool
	Editing      bool

	// Guardas de envio único por operação.
	submitting  bool
	savingDraft bool

	// Taxa da categoria memorizada entre visões; invalidada por comparação
	// de categoria, nunca explicitamente.
	rateCategory string
	rateValue    float64
	rateKnown    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// newSession cria uma sessão com os valores padrão do formulário.
func newSession(id, sellerID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:       id,
		SellerID: sellerID,
		Draft: domain.ProductDraft{
			Stock:        "0",
			ProductType:  "physical",
			ReturnPolicy: "7",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// touch marca a sessão como modificada. Deve ser chamado com o lock em mãos.
func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// --- Armazenamento de Variantes ---

// StartNewVariant abre uma nova variante de adição rápida, semeada com os
// valores do produto pai (sku/price/mrp/stock). Falha se já houver uma
// variante em adição não salva.
func (s *Session) StartNewVariant() (domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Selected != nil && s.Adding {
		return domain.Variant{}, apperror.NewConflictError("Já existe uma variante em adição. Salve ou cancele a atual antes de adicionar outra.")
	}

	variant := s.seedVariantLocked()
	s.Selected = &variant
	s.Adding = true
	s.Editing = false
	s.StagedImages = nil
	s.touch()

	return variant, nil
}

// seedVariantLocked sintetiza uma variante nova a partir do formulário atual.
func (s *Session) seedVariantLocked() domain.Variant {
	count := len(s.Committed) + len(s.DraftVariants)
	ref := domain.NewPendingRef()

	sku := s.Draft.SKU
	if sku != "" {
		sku = fmt.Sprintf("%s-%d", sku, count+1)
	} else {
		sku = fmt.Sprintf("SKU-%d-%d", time.Now().UnixMilli(), count+1)
	}

	return domain.Variant{
		Ref:    ref,
		SKU:    sku,
		Price:  parseFloatSafe(s.Draft.Price),
		MRP:    parseFloatSafe(s.Draft.MRP),
		Stock:  parseIntSafe(s.Draft.Stock),
		Images: []string{},
	}
}

// SaveQuickAddVariant valida e confirma a variante em adição rápida.
// Em caso de falha de validação a variante permanece aberta para correção.
// No sucesso, a entrada é substituída (mesma referência) ou anexada à coleção
// de rascunho e uma NOVA adição rápida é aberta imediatamente (fluxo de
// entrada contínua).
func (s *Session) SaveQuickAddVariant(v domain.Variant) (domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Se o cliente não mandou referência, herda a da variante em adição.
	// Sem adição aberta, gera uma referência local nova: toda variante
	// armazenada precisa ser endereçável (pendente ou persistida, nunca zero).
	if v.Ref.IsZero() {
		if s.Selected != nil {
			v.Ref = s.Selected.Ref
		} else {
			v.Ref = domain.NewPendingRef()
		}
	}
	if v.Images == nil {
		v.Images = s.StagedImages
	}
	if v.Images == nil {
		v.Images = []string{}
	}

	keepOpen := func(err error) (domain.Variant, error) {
		s.Selected = &v
		s.Adding = true
		return domain.Variant{}, err
	}

	if v.SKU == "" {
		return keepOpen(apperror.NewValidationError("SKU da variante é obrigatório."))
	}
	if v.Price <= 0 {
		return keepOpen(apperror.NewValidationError("O preço da variante deve ser maior que zero."))
	}
	if v.Stock < 0 {
		return keepOpen(apperror.NewValidationError("O estoque da variante não pode ser negativo."))
	}

	// Substitui a entrada existente de mesma referência, ou anexa.
	replaced := false
	for i := range s.DraftVariants {
		if s.DraftVariants[i].Ref.Equals(v.Ref) {
			s.DraftVariants[i] = v
			replaced = true
			break
		}
	}
	if !replaced {
		s.DraftVariants = append(s.DraftVariants, v)
	}

	// Entrada contínua: abre imediatamente a próxima adição rápida.
	next := s.seedVariantLocked()
	s.Selected = &next
	s.Adding = true
	s.StagedImages = nil
	s.touch()

	return next, nil
}

// SaveEditedVariant anexa a lista de imagens à variante e a substitui (por
// referência) ou anexa à coleção confirmada; limpa a seleção e as flags.
func (s *Session) SaveEditedVariant(v domain.Variant, images []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.Ref.IsZero() {
		if s.Selected != nil {
			v.Ref = s.Selected.Ref
		} else {
			v.Ref = domain.NewPendingRef()
		}
	}
	if images != nil {
		v.Images = images
	}
	if v.Images == nil {
		v.Images = []string{}
	}

	replaced := false
	for i := range s.Committed {
		if s.Committed[i].Ref.Equals(v.Ref) {
			s.Committed[i] = v
			replaced = true
			break
		}
	}
	if !replaced {
		s.Committed = append(s.Committed, v)
	}

	s.Selected = nil
	s.StagedImages = nil
	s.Adding = false
	s.Editing = false
	s.touch()

	return nil
}

// CancelEdit limpa a seleção e as flags sem persistir nada. Entradas já
// salvas na coleção de rascunho não são revertidas.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Selected = nil
	s.StagedImages = nil
	s.Adding = false
	s.Editing = false
	s.touch()
}

// DeleteVariant remove a variante das duas coleções (idempotente se ausente
// de uma delas). Falha com erro explícito se a referência for vazia ou se a
// variante não existir em nenhuma coleção.
func (s *Session) DeleteVariant(ref domain.VariantRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ref.IsZero() {
		return apperror.NewValidationError("Não é possível excluir uma variante sem identificador.")
	}

	removed := false
	s.Committed, removed = removeByRef(s.Committed, ref, removed)
	s.DraftVariants, removed = removeByRef(s.DraftVariants, ref, removed)

	if !removed {
		return apperror.NewNotFoundError(fmt.Sprintf("Variante %d não existe nesta sessão.", ref.Wire()))
	}

	// Se a variante excluída era a selecionada, limpa a seleção.
	if s.Selected != nil && s.Selected.Ref.Equals(ref) {
		s.Selected = nil
		s.StagedImages = nil
		s.Adding = false
		s.Editing = false
	}
	s.touch()

	return nil
}

func removeByRef(variants []domain.Variant, ref domain.VariantRef, already bool) ([]domain.Variant, bool) {
	for i := range variants {
		if variants[i].Ref.Equals(ref) {
			return append(variants[:i:i], variants[i+1:]...), true
		}
	}
	return variants, already
}

// EditVariant copia profundamente a variante alvo para a seleção, evitando
// aliasing com a cópia armazenada durante a edição. Falha de cópia reporta
// erro e deixa o estado inalterado.
func (s *Session) EditVariant(ref domain.VariantRef) (domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findVariantLocked(ref)
	if target == nil {
		return domain.Variant{}, apperror.NewNotFoundError(fmt.Sprintf("Variante %d não existe nesta sessão.", ref.Wire()))
	}

	copied, err := deepCopyVariant(*target)
	if err != nil {
		return domain.Variant{}, apperror.NewInternalError("Falha ao preparar a variante para edição.", err)
	}

	s.Selected = &copied
	s.StagedImages = append([]string(nil), copied.Images...)
	s.Editing = true
	s.Adding = false
	s.touch()

	return copied, nil
}

func (s *Session) findVariantLocked(ref domain.VariantRef) *domain.Variant {
	for i := range s.Committed {
		if s.Committed[i].Ref.Equals(ref) {
			return &s.Committed[i]
		}
	}
	for i := range s.DraftVariants {
		if s.DraftVariants[i].Ref.Equals(ref) {
			return &s.DraftVariants[i]
		}
	}
	return nil
}

// deepCopyVariant faz cópia profunda via JSON (round trip), garantindo que a
// edição não compartilhe a slice de imagens com a cópia armazenada.
func deepCopyVariant(v domain.Variant) (domain.Variant, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return domain.Variant{}, err
	}
	var copied domain.Variant
	if err := json.Unmarshal(payload, &copied); err != nil {
		return domain.Variant{}, err
	}
	return copied, nil
}

// mergedVariantsLocked mescla as coleções confirmada e de rascunho sem
// duplicar referências (a entrada confirmada tem precedência).
func (s *Session) mergedVariantsLocked() []domain.Variant {
	merged := append([]domain.Variant(nil), s.Committed...)
	for _, dv := range s.DraftVariants {
		exists := false
		for _, v := range merged {
			if v.Ref.Equals(dv.Ref) {
				exists = true
				break
			}
		}
		if !exists {
			merged = append(merged, dv)
		}
	}
	return merged
}

// --- Helpers de coerção numérica (estado de formulário é texto) ---

func parseFloatSafe(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
