package domain

import (
	"math/rand"
	"strings"
	"time"
)

// ProductDraft representa o rascunho de produto em edição na sessão de autoria.
// Os campos numéricos são mantidos como texto (estado de formulário) e só são
// convertidos para número na montagem do payload de envio.
type ProductDraft struct {
	Name           string `json:"name" validate:"omitempty,min=3"`
	Description    string `json:"description" validate:"omitempty,min=20"`
	Specifications string `json:"specifications"`

	// Preços (todos já incluem GST, conforme o contrato do marketplace)
	Price         string `json:"price" validate:"omitempty,decimalgt0"`
	MRP           string `json:"mrp" validate:"omitempty,decimalgt0"`
	PurchasePrice string `json:"purchase_price" validate:"omitempty,decimalgte0"`

	// GSTRate é a taxa customizada (override). Vazio = usar a taxa da categoria.
	GSTRate string `json:"gst_rate" validate:"omitempty,rate0to100"`

	SKU           string `json:"sku" validate:"omitempty,min=2"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	SubcategoryID *int64 `json:"subcategory_id"`
	Brand         string `json:"brand" validate:"omitempty,min=2"`

	Stock  string `json:"stock" validate:"omitempty,intgte0"`
	Weight string `json:"weight" validate:"omitempty,decimalgte0"`
	Length string `json:"length" validate:"omitempty,decimalgte0"`
	Width  string `json:"width" validate:"omitempty,decimalgte0"`
	Height string `json:"height" validate:"omitempty,decimalgte0"`

	// Color e Size são conjuntos ordenados sem duplicatas,
	// serializados como texto separado por vírgulas.
	Color string `json:"color"`
	Size  string `json:"size"`

	Warranty           string `json:"warranty" validate:"omitempty,intgte0"`
	HSN                string `json:"hsn"`
	ProductType        string `json:"product_type"`
	ReturnPolicy       string `json:"return_policy"`
	CustomReturnPolicy string `json:"custom_return_policy"`

	// Images é a lista ordenada de URLs/data-URLs. A primeira é a capa.
	Images []string `json:"images"`
}

// Variant representa uma variação do produto (cor/tamanho) durante a autoria.
type Variant struct {
	Ref          VariantRef `json:"ref"`
	SKU          string     `json:"sku"`
	Color        string     `json:"color"`
	Size         string     `json:"size"`
	Price        float64    `json:"price"`
	MRP          float64    `json:"mrp"`
	Stock        int        `json:"stock"`
	Images       []string   `json:"images"`
	Warranty     string     `json:"warranty,omitempty"`
	ReturnPolicy string     `json:"return_policy,omitempty"`
}

// VariantRef é o identificador explícito de uma variante.
// Pending = criada localmente e ainda não persistida (LocalID);
// caso contrário a identidade referencial é o ServerID atribuído pelo backend.
// Substitui a convenção de "id negativo" por um tipo etiquetado, mantendo a
// forma negativa apenas na serialização de envio (Wire).
type VariantRef struct {
	Pending  bool  `json:"pending"`
	LocalID  int64 `json:"local_id,omitempty"`
	ServerID int64 `json:"server_id,omitempty"`
}

// NewPendingRef gera uma referência local nova, derivada do relógio combinado
// com um componente aleatório para evitar colisão entre variantes criadas no
// mesmo instante.
func NewPendingRef() VariantRef {
	local := time.Now().UnixMilli()*1000 + rand.Int63n(1000)
	return VariantRef{Pending: true, LocalID: local}
}

// PersistedRef cria uma referência para uma variante já salva no backend.
func PersistedRef(serverID int64) VariantRef {
	return VariantRef{ServerID: serverID}
}

// RefFromWire reconstrói uma referência a partir do id numérico do contrato
// externo (negativo = local, positivo = persistida).
func RefFromWire(id int64) VariantRef {
	if id < 0 {
		return VariantRef{Pending: true, LocalID: -id}
	}
	return VariantRef{ServerID: id}
}

// Wire devolve o id numérico esperado pelo backend do marketplace.
func (r VariantRef) Wire() int64 {
	if r.Pending {
		return -r.LocalID
	}
	return r.ServerID
}

// Equals compara duas referências pela identidade etiquetada.
func (r VariantRef) Equals(other VariantRef) bool {
	if r.Pending != other.Pending {
		return false
	}
	if r.Pending {
		return r.LocalID == other.LocalID
	}
	return r.ServerID == other.ServerID
}

// IsZero indica uma referência vazia (variante sem identificador).
func (r VariantRef) IsZero() bool {
	return !r.Pending && r.ServerID == 0 && r.LocalID == 0
}

// NormalizeTokenSet normaliza um texto separado por vírgulas em um conjunto
// ordenado sem duplicatas, preservando a ordem de inserção.
// A comparação é exata; apenas espaços ao redor de cada item são aparados.
func NormalizeTokenSet(csv string) string {
	if csv == "" {
		return ""
	}
	seen := make(map[string]bool)
	var out []string
	for _, token := range strings.Split(csv, ",") {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return strings.Join(out, ",")
}

// IsStandardReturnPolicy indica se a política de devolução é uma das padrão.
func IsStandardReturnPolicy(value string) bool {
	switch value {
	case "7", "15", "30":
		return true
	}
	return false
}
