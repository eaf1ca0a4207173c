package authoringservice

import (
	"math"
	"strconv"

	"goseller/internal/domain"
)

// PriceBreakdown é a decomposição reativa do preço de venda (que já inclui
// GST). Os valores derivados são apenas exibidos; somente as entradas
// (preço, taxa) são enviadas ao backend.
type PriceBreakdown struct {
	FinalPrice float64 `json:"final_price"`
	GSTRate    float64 `json:"gst_rate"`
	BasePrice  float64 `json:"base_price"`
	GSTAmount  float64 `json:"gst_amount"`
}

// CompletionStatus indica quais seções do formulário estão completas e o
// percentual total ({informações básicas, descrição, imagens, inventário}).
type CompletionStatus struct {
	Basic       bool `json:"basic"`
	Description bool `json:"description"`
	Images      bool `json:"images"`
	Inventory   bool `json:"inventory"`
	Percentage  int  `json:"percentage"`
}

// resolveGSTRate decide a taxa aplicável: o override do produto se presente e
// parseável, senão a taxa da categoria selecionada, senão o padrão de 18%.
func resolveGSTRate(override string, categoryRate float64) float64 {
	if override != "" {
		if rate, err := strconv.ParseFloat(override, 64); err == nil {
			return rate
		}
	}
	if categoryRate > 0 {
		return categoryRate
	}
	return domain.DefaultGSTRate
}

// PriceBreakdown decompõe o preço de venda atual:
// basePrice = price / (1 + r/100); gstAmount = price - basePrice.
func (s *Session) PriceBreakdown(categoryRate float64) PriceBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priceBreakdownLocked(categoryRate)
}

func (s *Session) priceBreakdownLocked(categoryRate float64) PriceBreakdown {
	finalPrice := parseFloatSafe(s.Draft.Price)
	rate := resolveGSTRate(s.Draft.GSTRate, categoryRate)

	basePrice := finalPrice / (1 + rate/100)
	gstAmount := finalPrice - basePrice

	return PriceBreakdown{
		FinalPrice: finalPrice,
		GSTRate:    rate,
		BasePrice:  basePrice,
		GSTAmount:  gstAmount,
	}
}

// Completion calcula o status de preenchimento das quatro seções.
func (s *Session) Completion() CompletionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completionLocked()
}

func (s *Session) completionLocked() CompletionStatus {
	status := CompletionStatus{
		Basic:       s.Draft.Name != "" && s.Draft.Category != "" && s.Draft.Price != "",
		Description: len(s.Draft.Description) >= 20,
		Images:      len(s.Draft.Images) > 0,
		Inventory:   parseIntSafe(s.Draft.Stock) > 0,
	}

	total := 0
	for _, done := range []bool{status.Basic, status.Description, status.Images, status.Inventory} {
		if done {
			total++
		}
	}
	status.Percentage = int(math.Round(float64(total) / 4 * 100))

	return status
}
