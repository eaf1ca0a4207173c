package authoringservice

import (
	"strconv"

	"goseller/internal/domain"
	apperror "goseller/internal/errors"
)

// fallbackCoverURL é a capa usada quando um rascunho é salvo sem imagens
// (o envio de publicação exige ao menos uma imagem, então nunca chega aqui).
const fallbackCoverURL = "https://placehold.co/600x400?text=Product+Image"

// beginSubmit valida o estado para publicação, monta o payload normalizado e
// arma a guarda de envio único. A guarda só é armada DEPOIS que toda a
// validação passa: qualquer aborto de validação deixa a flag de ocupado
// limpa, para que uma tentativa falhada nunca trave a sessão.
func (s *Session) beginSubmit(categoryRate float64) (domain.CreateProductRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.CreateProductRequest{}, apperror.NewConflictError("Um envio já está em andamento para esta sessão.")
	}

	// Validações de publicação: tudo antes de qualquer chamada de rede.
	if len(s.Draft.Images) == 0 {
		return domain.CreateProductRequest{}, apperror.NewValidationError("Envie pelo menos uma imagem do produto.")
	}
	if s.Draft.Name == "" || s.Draft.Description == "" || s.Draft.Price == "" || s.Draft.Category == "" {
		return domain.CreateProductRequest{}, apperror.NewValidationError("Preencha todos os campos obrigatórios (nome, descrição, preço, categoria).")
	}
	if s.Selected != nil && s.Adding {
		return domain.CreateProductRequest{}, apperror.NewValidationError("Salve ou cancele a variante em adição antes de enviar o produto.")
	}

	merged := s.mergedVariantsLocked()
	payload := s.assemblePayloadLocked(categoryRate, false)

	// Limpa a seleção em progresso para evitar envio duplicado de variante.
	s.Selected = nil
	s.StagedImages = nil
	s.Adding = false

	s.submitting = true
	s.touch()

	return domain.CreateProductRequest{
		ProductData: payload,
		Variants:    wireVariants(merged),
	}, nil
}

// endSubmit resolve a guarda de publicação. Uma resposta concluída (sucesso
// ou falha) sempre resolve o estado pendente.
func (s *Session) endSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// beginSaveDraft é a contraparte de rascunho: apenas o nome é obrigatório.
// A lista mesclada completa de variantes acompanha o productData, com a
// flag isDraft.
func (s *Session) beginSaveDraft(categoryRate float64) (domain.SaveDraftRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.savingDraft {
		return domain.SaveDraftRequest{}, apperror.NewConflictError("Um salvamento de rascunho já está em andamento para esta sessão.")
	}

	if s.Draft.Name == "" {
		return domain.SaveDraftRequest{}, apperror.NewValidationError("O nome do produto é obrigatório, mesmo para rascunhos.")
	}

	merged := s.mergedVariantsLocked()
	payload := s.assemblePayloadLocked(categoryRate, true)
	payload.Variants = wireVariants(merged)

	s.savingDraft = true
	s.touch()

	return domain.SaveDraftRequest{ProductData: payload}, nil
}

// endSaveDraft resolve a guarda de rascunho.
func (s *Session) endSaveDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savingDraft = false
}

// assemblePayloadLocked achata o rascunho no payload normalizado do backend.
// Regras de coerção: preço/mrp/estoque viram números; opcionais ausentes
// viajam como null (ponteiros nil). Idênticas para publicação e rascunho.
func (s *Session) assemblePayloadLocked(categoryRate float64, isDraft bool) domain.ProductPayload {
	d := s.Draft

	// Taxa enviada: override do produto se presente, senão a da categoria.
	gstRate := d.GSTRate
	if gstRate == "" {
		gstRate = strconv.FormatFloat(resolveGSTRate("", categoryRate), 'f', -1, 64)
	}

	var subcategory *string
	if d.Subcategory != "" && d.Subcategory != "none" {
		subcategory = &d.Subcategory
	}

	cover := fallbackCoverURL
	if len(d.Images) > 0 {
		cover = d.Images[0]
	}

	returnPolicy := d.ReturnPolicy
	if !domain.IsStandardReturnPolicy(returnPolicy) {
		returnPolicy = d.CustomReturnPolicy
	}

	return domain.ProductPayload{
		Name:           d.Name,
		Description:    d.Description,
		Specifications: d.Specifications,
		Price:          parseFloatSafe(d.Price),
		MRP:            parseFloatSafe(d.MRP),
		PurchasePrice:  optionalFloat(d.PurchasePrice),
		GSTRate:        gstRate,
		Category:       d.Category,
		Subcategory:    subcategory,
		SubcategoryID:  d.SubcategoryID,
		Brand:          d.Brand,
		Color:          d.Color,
		Size:           d.Size,
		ImageURL:       cover,
		Images:         append([]string(nil), d.Images...),
		Stock:          parseIntSafe(d.Stock),
		Weight:         optionalFloat(d.Weight),
		Length:         optionalFloat(d.Length),
		Width:          optionalFloat(d.Width),
		Height:         optionalFloat(d.Height),
		Warranty:       optionalInt(d.Warranty),
		HSN:            d.HSN,
		ProductType:    d.ProductType,
		ReturnPolicy:   returnPolicy,
		IsDraft:        isDraft,
	}
}

// wireVariants remove os campos transitórios de bookkeeping de cada variante
// e coage os numéricos. MRP ausente (zero) propaga como null.
func wireVariants(variants []domain.Variant) []domain.VariantPayload {
	out := make([]domain.VariantPayload, 0, len(variants))
	for _, v := range variants {
		images := v.Images
		if images == nil {
			images = []string{}
		}

		var mrp *float64
		if v.MRP > 0 {
			value := v.MRP
			mrp = &value
		}

		out = append(out, domain.VariantPayload{
			ID:           v.Ref.Wire(),
			SKU:          v.SKU,
			Color:        v.Color,
			Size:         v.Size,
			Price:        v.Price,
			MRP:          mrp,
			Stock:        v.Stock,
			Images:       images,
			Warranty:     v.Warranty,
			ReturnPolicy: v.ReturnPolicy,
		})
	}
	return out
}

func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func optionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
