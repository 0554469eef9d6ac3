package associationrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goinventory/internal/domain"
	"goinventory/internal/errors"
)

// AssociationRepository implementa a persistência da tabela de junção
// product_categories. Cada registro representa o par (produto, categoria)
// com seu timestamp de associação.
type AssociationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewAssociationRepository cria e retorna uma nova instância do Repositório de Associações.
func NewAssociationRepository(db *sql.DB, dbTimeout time.Duration) *AssociationRepository {
	return &AssociationRepository{
		DB:        db,
		DBTimeout: dbTimeout,
	}
}

// Save insere uma nova associação produto-categoria.
func (r *AssociationRepository) Save(ctx context.Context, pc domain.ProductCategory) (domain.ProductCategory, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO product_categories (id, product_id, category_id, associated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, product_id, category_id, associated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		pc.ID, pc.ProductID, pc.CategoryID, pc.AssociatedAt,
	).Scan(
		&pc.ID, &pc.ProductID, &pc.CategoryID, &pc.AssociatedAt,
	)
	if err != nil {
		return domain.ProductCategory{}, errors.NewDBError("Falha ao criar associação", err)
	}

	return pc, nil
}

// Exists verifica se o par (produto, categoria) já está associado.
func (r *AssociationRepository) Exists(ctx context.Context, productID, categoryID string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT EXISTS (
            SELECT 1 FROM product_categories
            WHERE product_id = $1 AND category_id = $2
        )`

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, productID, categoryID).Scan(&exists); err != nil {
		return false, errors.NewDBError("Falha ao verificar associação", err)
	}

	return exists, nil
}

// Find busca a associação do par (produto, categoria).
func (r *AssociationRepository) Find(ctx context.Context, productID, categoryID string) (domain.ProductCategory, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, product_id, category_id, associated_at
        FROM product_categories
        WHERE product_id = $1 AND category_id = $2`

	var pc domain.ProductCategory
	err := r.DB.QueryRowContext(ctxTimeout, query, productID, categoryID).Scan(
		&pc.ID, &pc.ProductID, &pc.CategoryID, &pc.AssociatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.ProductCategory{}, errors.NewNotFoundError(
			fmt.Sprintf("Associação entre produto %s e categoria %s não encontrada.", productID, categoryID))
	}
	if err != nil {
		return domain.ProductCategory{}, errors.NewDBError("Falha ao buscar associação", err)
	}

	return pc, nil
}

// FindByProduct lista as associações de um produto com o nome da categoria
// projetado por join, ordenadas por nome de categoria ascendente.
func (r *AssociationRepository) FindByProduct(ctx context.Context, productID string) ([]domain.ProductCategory, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT pc.id, pc.product_id, pc.category_id, pc.associated_at, c.name
        FROM product_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.product_id = $1
        ORDER BY c.name ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, productID)
	if err != nil {
		return nil, errors.NewDBError("Falha ao buscar associações do produto", err)
	}
	defer rows.Close()

	var associations []domain.ProductCategory
	for rows.Next() {
		var pc domain.ProductCategory
		if err := rows.Scan(&pc.ID, &pc.ProductID, &pc.CategoryID, &pc.AssociatedAt, &pc.CategoryName); err != nil {
			return nil, errors.NewDBError("Falha ao ler linha de associação", err)
		}
		associations = append(associations, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar associações", err)
	}

	return associations, nil
}

// Delete remove uma associação pelo seu ID.
func (r *AssociationRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return errors.NewDBError("Falha ao deletar associação", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar deleção de associação", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Associação com ID %s não encontrada.", id))
	}

	return nil
}

// DeleteByProduct remove todas as associações de um produto.
// Zero linhas afetadas não é erro: o produto pode não ter associações.
func (r *AssociationRepository) DeleteByProduct(ctx context.Context, productID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return errors.NewDBError("Falha ao deletar associações do produto", err)
	}

	return nil
}
