package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um item do catálogo de inventário (a Entidade).
// O preço usa decimal.Decimal para aritmética exata de dinheiro
// (NUMERIC(10,2) no banco).
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductRequest é o payload de entrada para criação e atualização de produto.
// CategoryIDs é opcional; ids repetidos na lista são ignorados sem erro.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	CategoryIDs []string         `json:"category_ids"`
}

// ProductResponse é a projeção de saída do produto.
// Categories é sempre recalculado a partir da tabela de associação;
// a associação é a única fonte de verdade, nunca um campo redundante no produto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Categories  []string        `json:"categories"`
}

// StockRequest é o payload para o ajuste restrito de estoque.
type StockRequest struct {
	Stock *int `json:"stock"`
}

// PriceRequest é o payload para o ajuste restrito de preço.
type PriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// InventoryValueResponse expõe o valor agregado do inventário (SUM(price*stock)).
type InventoryValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}
