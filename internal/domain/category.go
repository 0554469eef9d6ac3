package domain

import (
	"time"
)

// Category representa uma categoria do catálogo.
// O nome é único entre todas as categorias (comparação case-insensitive).
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ProductCount é um campo calculado (join com product_categories),
	// preenchido apenas em leituras. Nunca é persistido.
	ProductCount int `json:"-"`
}

// CategoryRequest é o payload de entrada para criação e renomeação de categoria.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse é a projeção de saída da categoria.
type CategoryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TotalProducts int    `json:"total_products"`
}
