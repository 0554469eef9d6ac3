package categoryrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goinventory/internal/domain"
	"goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// CategoryRepository implementa as operações de persistência de categorias.
type CategoryRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCategoryRepository cria e retorna uma nova instância do Repositório de Categorias.
func NewCategoryRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere uma nova categoria no banco de dados.
func (r *CategoryRepository) Save(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO categories (id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt,
	).Scan(
		&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao criar categoria", err)
	}

	r.logger.Info("Categoria criada.", map[string]interface{}{"id": category.ID, "name": category.Name})
	return category, nil
}

// FindByID busca uma categoria pelo ID, incluindo a contagem de produtos associados.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT c.id, c.name, c.created_at, c.updated_at, COUNT(pc.id)
        FROM categories c
        LEFT JOIN product_categories pc ON pc.category_id = c.id
        WHERE c.id = $1
        GROUP BY c.id, c.name, c.created_at, c.updated_at`

	var category domain.Category
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt, &category.ProductCount,
	)

	if err == sql.ErrNoRows {
		return domain.Category{}, errors.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao buscar categoria", err)
	}

	return category, nil
}

// FindAll busca todas as categorias ordenadas por nome, com contagem de produtos.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT c.id, c.name, c.created_at, c.updated_at, COUNT(pc.id)
        FROM categories c
        LEFT JOIN product_categories pc ON pc.category_id = c.id
        GROUP BY c.id, c.name, c.created_at, c.updated_at
        ORDER BY c.name ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de categorias.", err)
		return nil, errors.NewDBError("Falha ao buscar categorias", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt, &category.ProductCount,
		); err != nil {
			return nil, errors.NewDBError("Falha ao ler linha de categoria", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar categorias", err)
	}

	return categories, nil
}

// ExistsByName verifica se já existe uma categoria com o nome informado
// (comparação case-insensitive). excludeID permite ignorar a própria categoria
// no fluxo de renomeação; passar vazio compara contra todas.
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT EXISTS (
            SELECT 1 FROM categories
            WHERE LOWER(name) = LOWER($1) AND id <> $2
        )`

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, name, excludeID).Scan(&exists); err != nil {
		r.logger.Error("Falha ao verificar unicidade de nome de categoria.", err)
		return false, errors.NewDBError("Falha ao verificar nome de categoria", err)
	}

	return exists, nil
}

// Update renomeia uma categoria existente.
func (r *CategoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE categories
        SET name = $2, updated_at = $3
        WHERE id = $1
        RETURNING id, name, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		category.ID, category.Name, time.Now().UTC(),
	).Scan(
		&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Category{}, errors.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não encontrada.", category.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao atualizar categoria", err)
	}

	return category, nil
}

// Delete remove uma categoria. As associações da categoria caem em cascata
// (ON DELETE CASCADE na tabela product_categories) dentro do mesmo comando,
// então nenhuma associação órfã sobrevive.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar categoria no DB.", err)
		return errors.NewDBError("Falha ao deletar categoria", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar deleção de categoria", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não encontrada.", id))
	}

	r.logger.Info("Categoria deletada.", map[string]interface{}{"id": id})
	return nil
}
