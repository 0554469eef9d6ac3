package userservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/token"
)

// UserRepository define o contrato de persistência de usuários.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Service implementa o registro e a autenticação de usuários.
type Service struct {
	repo     UserRepository
	tokenSvc TokenService
}

// NewService cria uma nova instância do serviço de usuários.
func NewService(repo UserRepository, tokenSvc TokenService) *Service {
	return &Service{
		repo:     repo,
		tokenSvc: tokenSvc,
	}
}

// Register registra um novo usuário com papel padrão "user".
// A senha é armazenada apenas como hash bcrypt.
func (s *Service) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	if registration.Email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	now := time.Now().UTC()
	newUser := domain.User{
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err := s.repo.Save(ctx, newUser)
	if err != nil {
		// A violação da chave única de email chega como erro de DB; o usuário
		// externo recebe uma mensagem de negócio, não o detalhe do driver.
		var dbErr *apperror.InternalError
		if errors.As(err, &dbErr) {
			return domain.User{}, apperror.NewValidationError(
				fmt.Sprintf("O email '%s' já está em uso.", registration.Email))
		}
		return domain.User{}, err
	}

	return user, nil
}

// Login autentica o usuário e retorna um JWT assinado.
// Email inexistente e senha incorreta produzem a mesma resposta para não
// revelar quais emails existem.
func (s *Service) Login(ctx context.Context, email string, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return tokenString, nil
}
