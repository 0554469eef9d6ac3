package userrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goinventory/internal/domain"
	"goinventory/internal/errors"
)

// UserRepository implementa a persistência de usuários (plumbing de autenticação).
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewUserRepository cria e retorna uma nova instância do Repositório de Usuários.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
	}
}

// Save insere um novo usuário no banco de dados.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
        INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, email, password_hash, role, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt,
	).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, errors.NewDBError("Falha ao criar usuário", err)
	}

	return user, nil
}

// FindByEmail busca um usuário pelo e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, email, password_hash, role, created_at, updated_at
        FROM users
        WHERE email = $1`

	var user domain.User
	err := r.DB.QueryRowContext(ctxTimeout, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.User{}, errors.NewNotFoundError(fmt.Sprintf("Usuário com e-mail %s não encontrado.", email))
	}
	if err != nil {
		return domain.User{}, errors.NewDBError("Falha ao buscar usuário", err)
	}

	return user, nil
}
