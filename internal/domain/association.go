package domain

import (
	"time"
)

// ProductCategory é o registro de associação entre um Produto e uma Categoria.
// O par (ProductID, CategoryID) é único: um produto pertence a uma categoria
// no máximo uma vez. AssociatedAt é definido na criação e imutável depois.
type ProductCategory struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	CategoryID   string    `json:"category_id"`
	AssociatedAt time.Time `json:"associated_at"`

	// CategoryName é preenchido por join nas leituras (projeção), não persiste.
	CategoryName string `json:"-"`
}
