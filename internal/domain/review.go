package domain

// Review é a avaliação de um produto enviada por um comprador.
type Review struct {
	ID        string   `json:"id"`
	ProductID int64    `json:"product_id"`
	Rating    int      `json:"rating"`
	Title     string   `json:"title"`
	Review    string   `json:"review"`
	Images    []string `json:"images"`
}

// ReviewSubmission é o payload de entrada para envio de avaliação.
type ReviewSubmission struct {
	Rating int      `json:"rating" validate:"required,min=1,max=5"`
	Title  string   `json:"title" validate:"omitempty,max=100"`
	Review string   `json:"review" validate:"omitempty,min=10"`
	Images []string `json:"images"`
}
