package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"goinventory/internal/domain"
	"goinventory/internal/errors"
	"goinventory/internal/pkg/cache"
	"goinventory/internal/pkg/logger"
)

// productCacheKey é o formato da chave de cache para produto por ID.
const productCacheKey = "product:%s"

// ProductRepository implementa as operações de persistência de produtos.
// Leituras por ID usam a estratégia Cache-Aside (Redis); toda escrita
// invalida a chave correspondente.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório de Produtos.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Save insere um novo produto no banco de dados.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, name, description, price, stock, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.CreatedAt, product.UpdatedAt,
	).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao criar produto", err)
	}

	return product, nil
}

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	// 1. Tentar obter do Cache (Redis)
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, nil
		}
		// Payload inválido no cache: segue para o DB e sobrescreve depois.
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler produto do cache; consultando DB.", map[string]interface{}{"id": id, "error": err.Error()})
	}

	// 2. Busca no Banco de Dados (PostgreSQL)
	query := `
        SELECT id, name, description, price, stock, created_at, updated_at
        FROM products
        WHERE id = $1`

	err = r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
	}
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	// 3. Popular o cache para futuras leituras.
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, productJSON, r.CacheTTL)
	}

	return product, nil
}

// FindAll busca todos os produtos (ordem padrão do banco).
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT id, name, description, price, stock, created_at, updated_at
        FROM products`
	return r.queryProducts(ctx, query)
}

// FindByNameContaining busca produtos cujo nome contém o fragmento informado
// (case-insensitive), ordenados por nome ascendente.
func (r *ProductRepository) FindByNameContaining(ctx context.Context, fragment string) ([]domain.Product, error) {
	query := `
        SELECT id, name, description, price, stock, created_at, updated_at
        FROM products
        WHERE name ILIKE '%' || $1 || '%'
        ORDER BY name ASC`
	return r.queryProducts(ctx, query, fragment)
}

// FindByCategoryNameContaining busca produtos associados a categorias cujo nome
// contém o fragmento (case-insensitive). Um produto que casa por mais de uma
// categoria aparece uma única vez (DISTINCT), ordenado por nome ascendente.
func (r *ProductRepository) FindByCategoryNameContaining(ctx context.Context, fragment string) ([]domain.Product, error) {
	query := `
        SELECT DISTINCT p.id, p.name, p.description, p.price, p.stock, p.created_at, p.updated_at
        FROM products p
        JOIN product_categories pc ON pc.product_id = p.id
        JOIN categories c ON c.id = pc.category_id
        WHERE c.name ILIKE '%' || $1 || '%'
        ORDER BY p.name ASC`
	return r.queryProducts(ctx, query, fragment)
}

// FindByStockLessThan busca produtos com estoque estritamente abaixo do limite,
// ordenados por estoque ascendente.
func (r *ProductRepository) FindByStockLessThan(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := `
        SELECT id, name, description, price, stock, created_at, updated_at
        FROM products
        WHERE stock < $1
        ORDER BY stock ASC`
	return r.queryProducts(ctx, query, threshold)
}

// Update substitui os atributos base do produto.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE products
        SET name = $2, description = $3, price = $4, stock = $5, updated_at = $6
        WHERE id = $1
        RETURNING id, name, description, price, stock, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		time.Now().UTC(),
	).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", product.ID))
	}
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao atualizar produto", err)
	}

	r.invalidate(ctxTimeout, product.ID)
	return product, nil
}

// UpdateStock altera apenas o estoque do produto.
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	return r.updateField(ctx, id, `UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`, stock)
}

// UpdatePrice altera apenas o preço do produto.
func (r *ProductRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	return r.updateField(ctx, id, `UPDATE products SET price = $2, updated_at = $3 WHERE id = $1`, price)
}

// Delete remove um produto. As associações do produto caem em cascata
// (ON DELETE CASCADE em product_categories) dentro do mesmo comando.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.NewDBError("Falha ao deletar produto", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar deleção de produto", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

// SumInventoryValue calcula SUM(price * stock) sobre todos os produtos.
// COALESCE garante zero exato (e não NULL) para catálogo vazio.
func (r *ProductRepository) SumInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(price * stock), 0) FROM products`
	if err := r.DB.QueryRowContext(ctxTimeout, query).Scan(&total); err != nil {
		return decimal.Zero, errors.NewDBError("Falha ao calcular valor do inventário", err)
	}

	return total, nil
}

// queryProducts executa uma consulta de lista e mapeia as linhas para o domínio.
func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, errors.NewDBError("Falha ao buscar produtos", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, errors.NewDBError("Falha ao ler linha de produto", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar produtos", err)
	}

	return products, nil
}

// updateField executa um UPDATE restrito a um campo, com checagem de existência.
func (r *ProductRepository) updateField(ctx context.Context, id, query string, value interface{}) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, query, id, value, time.Now().UTC())
	if err != nil {
		return errors.NewDBError("Falha ao atualizar produto", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar atualização de produto", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

// invalidate remove a entrada de cache do produto após qualquer escrita.
func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(productCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"id": id, "error": err.Error()})
	}
}
