package categoryservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// CategoryRepository define o contrato que o Serviço de Categorias espera
// da camada de Persistência.
type CategoryRepository interface {
	Save(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id string) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// Service concentra as regras de negócio de categorias: unicidade de nome
// (case-insensitive) e ciclo de vida com cascata de associações.
type Service struct {
	repo   CategoryRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Categorias.
func NewService(repo CategoryRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateCategory cria uma nova categoria com nome único.
func (s *Service) CreateCategory(ctx context.Context, name string) (domain.CategoryResponse, error) {
	s.logger.Debug("Iniciando criação de categoria no serviço.", map[string]interface{}{"name": name})

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.CategoryResponse{}, apperror.NewValidationError("O nome da categoria não pode ser vazio.")
	}

	exists, err := s.repo.ExistsByName(ctx, name, "")
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade de nome de categoria.", err)
		return domain.CategoryResponse{}, err
	}
	if exists {
		return domain.CategoryResponse{}, apperror.NewDuplicateNameError(
			fmt.Sprintf("Já existe uma categoria com o nome: %s", name))
	}

	now := time.Now().UTC()
	category := domain.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Save(ctx, category)
	if err != nil {
		s.logger.Error("Falha ao criar categoria no repositório.", err)
		return domain.CategoryResponse{}, err
	}

	s.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return toResponse(created), nil
}

// GetCategories lista todas as categorias ordenadas por nome, cada uma com a
// contagem atual de produtos associados.
func (s *Service) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar categorias no repositório.", err)
		return nil, err
	}

	responses := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toResponse(category))
	}
	return responses, nil
}

// GetCategoryByID busca a projeção de uma categoria pelo ID.
func (s *Service) GetCategoryByID(ctx context.Context, id string) (domain.CategoryResponse, error) {
	category, err := s.FindCategory(ctx, id)
	if err != nil {
		return domain.CategoryResponse{}, err
	}
	return toResponse(category), nil
}

// FindCategory busca a entidade categoria pelo ID. Também é consumido
// internamente pelo Serviço de Produtos para resolver ids de categoria.
func (s *Service) FindCategory(ctx context.Context, id string) (domain.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Category{}, apperror.NewValidationError("O ID da categoria deve ser um UUID válido.")
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError.
		return domain.Category{}, err
	}

	return category, nil
}

// UpdateCategory renomeia uma categoria. Renomear para o próprio nome
// (em qualquer caixa) é permitido; colisão com outra categoria não.
func (s *Service) UpdateCategory(ctx context.Context, id, newName string) (domain.CategoryResponse, error) {
	s.logger.Debug("Iniciando renomeação de categoria no serviço.", map[string]interface{}{"id": id, "name": newName})

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.CategoryResponse{}, apperror.NewValidationError("O nome da categoria não pode ser vazio.")
	}

	category, err := s.FindCategory(ctx, id)
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	// A própria categoria é excluída da checagem de unicidade.
	exists, err := s.repo.ExistsByName(ctx, newName, category.ID)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade de nome de categoria.", err)
		return domain.CategoryResponse{}, err
	}
	if exists {
		return domain.CategoryResponse{}, apperror.NewDuplicateNameError(
			fmt.Sprintf("Já existe uma categoria com o nome: %s", newName))
	}

	category.Name = newName
	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		s.logger.Error("Falha ao atualizar categoria no repositório.", err)
		return domain.CategoryResponse{}, err
	}
	updated.ProductCount = category.ProductCount

	s.logger.Info("Categoria renomeada com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return toResponse(updated), nil
}

// DeleteCategory remove uma categoria e, em cascata, todas as suas associações.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	s.logger.Debug("Iniciando exclusão de categoria no serviço.", map[string]interface{}{"id": id})

	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID da categoria deve ser um UUID válido.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar categoria no repositório.", err)
		return err
	}

	s.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// toResponse converte a entidade para a projeção de saída.
func toResponse(category domain.Category) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		TotalProducts: category.ProductCount,
	}
}
