package authoringservice

import "goseller/internal/domain"

// FieldPatch é um patch parcial de campos do rascunho. Ponteiros nil
// significam "não alterar"; ponteiros presentes sobrescrevem o campo,
// inclusive com texto vazio (limpar o campo é uma alteração legítima).
type FieldPatch struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Specifications *string `json:"specifications,omitempty"`

	Price         *string `json:"price,omitempty"`
	MRP           *string `json:"mrp,omitempty"`
	PurchasePrice *string `json:"purchase_price,omitempty"`
	GSTRate       *string `json:"gst_rate,omitempty"`

	SKU           *string `json:"sku,omitempty"`
	Category      *string `json:"category,omitempty"`
	Subcategory   *string `json:"subcategory,omitempty"`
	SubcategoryID *int64  `json:"subcategory_id,omitempty"`
	Brand         *string `json:"brand,omitempty"`

	Stock  *string `json:"stock,omitempty"`
	Weight *string `json:"weight,omitempty"`
	Length *string `json:"length,omitempty"`
	Width  *string `json:"width,omitempty"`
	Height *string `json:"height,omitempty"`

	Color *string `json:"color,omitempty"`
	Size  *string `json:"size,omitempty"`

	Warranty           *string `json:"warranty,omitempty"`
	HSN                *string `json:"hsn,omitempty"`
	ProductType        *string `json:"product_type,omitempty"`
	ReturnPolicy       *string `json:"return_policy,omitempty"`
	CustomReturnPolicy *string `json:"custom_return_policy,omitempty"`
}

// applyTo aplica o patch sobre a cópia candidata do rascunho. Color e Size
// passam pela normalização de conjunto (dedup, ordem de inserção) na escrita.
// Trocar a categoria limpa a subcategoria selecionada.
func (p FieldPatch) applyTo(d *domain.ProductDraft) {
	setString(&d.Name, p.Name)
	setString(&d.Description, p.Description)
	setString(&d.Specifications, p.Specifications)

	setString(&d.Price, p.Price)
	setString(&d.MRP, p.MRP)
	setString(&d.PurchasePrice, p.PurchasePrice)
	setString(&d.GSTRate, p.GSTRate)

	setString(&d.SKU, p.SKU)
	if p.Category != nil && *p.Category != d.Category {
		d.Category = *p.Category
		d.Subcategory = ""
		d.SubcategoryID = nil
	}
	setString(&d.Subcategory, p.Subcategory)
	if p.SubcategoryID != nil {
		id := *p.SubcategoryID
		d.SubcategoryID = &id
	}
	setString(&d.Brand, p.Brand)

	setString(&d.Stock, p.Stock)
	setString(&d.Weight, p.Weight)
	setString(&d.Length, p.Length)
	setString(&d.Width, p.Width)
	setString(&d.Height, p.Height)

	if p.Color != nil {
		d.Color = domain.NormalizeTokenSet(*p.Color)
	}
	if p.Size != nil {
		d.Size = domain.NormalizeTokenSet(*p.Size)
	}

	setString(&d.Warranty, p.Warranty)
	setString(&d.HSN, p.HSN)
	setString(&d.ProductType, p.ProductType)
	setString(&d.ReturnPolicy, p.ReturnPolicy)
	setString(&d.CustomReturnPolicy, p.CustomReturnPolicy)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
