package domain

// ProductPayload é a forma normalizada do rascunho enviada ao backend do
// marketplace. Os campos numéricos já estão coagidos para tipo numérico;
// opcionais ausentes viajam como null (ponteiros nil).
type ProductPayload struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Specifications string   `json:"specifications,omitempty"`
	Price          float64  `json:"price"`
	MRP            float64  `json:"mrp"`
	PurchasePrice  *float64 `json:"purchasePrice,omitempty"`
	GSTRate        string   `json:"gstRate"`
	Category       string   `json:"category"`
	Subcategory    *string  `json:"subcategory"`
	SubcategoryID  *int64   `json:"subcategoryId"`
	Brand          string   `json:"brand,omitempty"`
	Color          string   `json:"color,omitempty"`
	Size           string   `json:"size,omitempty"`
	ImageURL       string   `json:"imageUrl"`
	Images         []string `json:"images"`
	Stock          int      `json:"stock"`
	Weight         *float64 `json:"weight,omitempty"`
	Length         *float64 `json:"length,omitempty"`
	Width          *float64 `json:"width,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	Warranty       *int     `json:"warranty,omitempty"`
	HSN            string   `json:"hsn,omitempty"`
	ProductType    string   `json:"productType,omitempty"`
	ReturnPolicy   string   `json:"returnPolicy,omitempty"`

	// IsDraft marca o envio como rascunho (POST /api/products/draft).
	IsDraft bool `json:"isDraft,omitempty"`

	// Variants acompanha o productData no formato de rascunho do backend.
	Variants []VariantPayload `json:"variants,omitempty"`
}

// VariantPayload é a forma de cada variante no envio, já sem os campos
// transitórios de bookkeeping da sessão. O ID usa a convenção do contrato
// externo: negativo = criada localmente, positivo = persistida.
type VariantPayload struct {
	ID           int64    `json:"id"`
	SKU          string   `json:"sku"`
	Color        string   `json:"color"`
	Size         string   `json:"size"`
	Price        float64  `json:"price"`
	MRP          *float64 `json:"mrp"`
	Stock        int      `json:"stock"`
	Images       []string `json:"images"`
	Warranty     string   `json:"warranty,omitempty"`
	ReturnPolicy string   `json:"returnPolicy,omitempty"`
}

// CreateProductRequest é o envelope de criação: {productData, variants}.
type CreateProductRequest struct {
	ProductData ProductPayload   `json:"productData"`
	Variants    []VariantPayload `json:"variants"`
}

// SaveDraftRequest é o envelope de rascunho: {productData: {..., variants}}.
type SaveDraftRequest struct {
	ProductData ProductPayload `json:"productData"`
}
