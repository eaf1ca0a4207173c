package domain

// Category representa uma categoria do marketplace, com a taxa GST associada.
// GSTRate é um ponteiro porque o backend pode omitir a taxa; nesse caso a
// aplicação usa a taxa padrão de 18%.
type Category struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	GSTRate *float64 `json:"gstRate,omitempty"`
}

// Subcategory representa uma subcategoria vinculada a uma categoria.
type Subcategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId"`
}

// DefaultGSTRate é a taxa usada quando nem o produto nem a categoria definem uma.
const DefaultGSTRate = 18.0

// SellerProduct é a visão resumida de um produto do vendedor,
// conforme devolvida pela listagem de inventário do marketplace.
type SellerProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
	IsDraft     bool    `json:"isDraft"`
}

// SellerProductPage é uma página da listagem de inventário.
type SellerProductPage struct {
	Products []SellerProduct `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// ListingFilter define os parâmetros de busca e paginação da listagem.
type ListingFilter struct {
	Page        int
	Limit       int
	Search      string
	Category    string
	Subcategory string
	Stock       string // "all", "in", "low", "out"
}

// ListingUpdate é o payload de correção de categoria/subcategoria de um item.
type ListingUpdate struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}
