package productservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// ProductRepository define o contrato que o Serviço de Produtos espera
// da camada de Persistência.
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByNameContaining(ctx context.Context, fragment string) ([]domain.Product, error)
	FindByCategoryNameContaining(ctx context.Context, fragment string) ([]domain.Product, error)
	FindByStockLessThan(ctx context.Context, threshold int) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	SumInventoryValue(ctx context.Context) (decimal.Decimal, error)
}

// AssociationRepository define o contrato de persistência da tabela de junção.
type AssociationRepository interface {
	Save(ctx context.Context, pc domain.ProductCategory) (domain.ProductCategory, error)
	Exists(ctx context.Context, productID, categoryID string) (bool, error)
	Find(ctx context.Context, productID, categoryID string) (domain.ProductCategory, error)
	FindByProduct(ctx context.Context, productID string) ([]domain.ProductCategory, error)
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) error
}

// CategoryFinder é o recorte do Serviço de Categorias que este serviço consome
// para resolver ids de categoria.
type CategoryFinder interface {
	FindCategory(ctx context.Context, id string) (domain.Category, error)
}

// Service concentra as regras de negócio de produtos: validação de preço e
// estoque, gestão do conjunto de associações e agregados do inventário.
// O serviço é stateless além das dependências injetadas; operações de vários
// passos não são envolvidas em transação (ver UpdateProduct).
type Service struct {
	repo         ProductRepository
	associations AssociationRepository
	categories   CategoryFinder
	lowStock     int // limite padrão de estoque baixo, definido na construção
	logger       logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produtos.
// lowStockThreshold é o limite padrão do processo; cada consulta pode
// sobrescrevê-lo via GetLowStockProductsWithThreshold.
func NewService(repo ProductRepository, associations AssociationRepository, categories CategoryFinder, lowStockThreshold int, logger logger.Logger) *Service {
	return &Service{
		repo:         repo,
		associations: associations,
		categories:   categories,
		lowStock:     lowStockThreshold,
		logger:       logger,
	}
}

// CreateProduct cria um novo produto e, opcionalmente, suas associações
// iniciais de categoria. Ids de categoria repetidos na lista são ignorados
// silenciosamente; um id inexistente aborta com NotFound.
func (s *Service) CreateProduct(ctx context.Context, req domain.ProductRequest) (domain.ProductResponse, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"name": req.Name})

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Falha na validação do produto.", map[string]interface{}{"name": req.Name, "error": err.Error()})
		return domain.ProductResponse{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Falha ao criar produto no repositório.", err)
		return domain.ProductResponse{}, err
	}

	if err := s.associateCategories(ctx, created.ID, req.CategoryIDs); err != nil {
		return domain.ProductResponse{}, err
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return s.toResponse(ctx, created)
}

// GetProducts lista todos os produtos com projeção completa.
func (s *Service) GetProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos no repositório.", err)
		return nil, err
	}
	return s.toResponses(ctx, products)
}

// GetProductByID busca a projeção de um produto pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.ProductResponse, error) {
	product, err := s.findByID(ctx, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	return s.toResponse(ctx, product)
}

// SearchByName busca produtos por fragmento de nome (case-insensitive),
// ordenados por nome ascendente.
func (s *Service) SearchByName(ctx context.Context, fragment string) ([]domain.ProductResponse, error) {
	products, err := s.repo.FindByNameContaining(ctx, fragment)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos por nome.", err)
		return nil, err
	}
	return s.toResponses(ctx, products)
}

// SearchByCategory busca produtos cujas categorias associadas casam com o
// fragmento (case-insensitive). O conjunto é distinto: um produto que casa
// por duas categorias aparece uma única vez.
func (s *Service) SearchByCategory(ctx context.Context, fragment string) ([]domain.ProductResponse, error) {
	products, err := s.repo.FindByCategoryNameContaining(ctx, fragment)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos por categoria.", err)
		return nil, err
	}
	return s.toResponses(ctx, products)
}

// UpdateProduct substitui os atributos base e o conjunto COMPLETO de
// associações do produto: as associações atuais são removidas e recriadas a
// partir da lista informada (lista omitida = produto sem categorias).
// A troca não é atômica como um todo; duas trocas concorrentes sobre o mesmo
// produto podem se intercalar e a última escrita vence.
func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductRequest) (domain.ProductResponse, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": id})

	product, err := s.findByID(ctx, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Falha na validação do produto.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.ProductResponse{}, err
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	product.Price = *req.Price
	product.Stock = *req.Stock

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		s.logger.Error("Falha ao atualizar produto no repositório.", err)
		return domain.ProductResponse{}, err
	}

	// Reatribuição das categorias: remove tudo e recria da lista nova.
	if err := s.associations.DeleteByProduct(ctx, updated.ID); err != nil {
		s.logger.Error("Falha ao remover associações do produto.", err)
		return domain.ProductResponse{}, err
	}
	if err := s.associateCategories(ctx, updated.ID, req.CategoryIDs); err != nil {
		return domain.ProductResponse{}, err
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return s.toResponse(ctx, updated)
}

// UpdateStock altera apenas o estoque do produto. Estoque negativo é rejeitado
// antes de qualquer acesso à persistência.
func (s *Service) UpdateStock(ctx context.Context, id string, newStock int) (domain.ProductResponse, error) {
	if newStock < 0 {
		return domain.ProductResponse{}, apperror.NewValidationError("O estoque não pode ser negativo.")
	}

	product, err := s.findByID(ctx, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if err := s.repo.UpdateStock(ctx, id, newStock); err != nil {
		s.logger.Error("Falha ao atualizar estoque do produto.", err)
		return domain.ProductResponse{}, err
	}

	product.Stock = newStock
	s.logger.Info("Estoque atualizado com sucesso.", map[string]interface{}{"id": id, "stock": newStock})
	return s.toResponse(ctx, product)
}

// UpdatePrice altera apenas o preço do produto. Preço ausente ou menor ou
// igual a zero é rejeitado antes de qualquer acesso à persistência.
func (s *Service) UpdatePrice(ctx context.Context, id string, newPrice *decimal.Decimal) (domain.ProductResponse, error) {
	if newPrice == nil || newPrice.Sign() <= 0 {
		return domain.ProductResponse{}, apperror.NewValidationError("O preço deve ser maior que 0.")
	}

	product, err := s.findByID(ctx, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if err := s.repo.UpdatePrice(ctx, id, *newPrice); err != nil {
		s.logger.Error("Falha ao atualizar preço do produto.", err)
		return domain.ProductResponse{}, err
	}

	product.Price = *newPrice
	s.logger.Info("Preço atualizado com sucesso.", map[string]interface{}{"id": id, "price": newPrice.String()})
	return s.toResponse(ctx, product)
}

// DeleteProduct remove um produto e, em cascata, todas as suas associações.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.logger.Debug("Iniciando exclusão de produto no serviço.", map[string]interface{}{"id": id})

	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar produto no repositório.", err)
		return err
	}

	s.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// AssociateCategory cria a associação explícita entre produto e categoria.
// O par duplicado é rejeitado com AlreadyAssociated.
func (s *Service) AssociateCategory(ctx context.Context, productID, categoryID string) error {
	product, err := s.findByID(ctx, productID)
	if err != nil {
		return err
	}

	category, err := s.categories.FindCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	exists, err := s.associations.Exists(ctx, product.ID, category.ID)
	if err != nil {
		s.logger.Error("Falha ao verificar associação.", err)
		return err
	}
	if exists {
		return apperror.NewAlreadyAssociatedError(
			fmt.Sprintf("O produto já pertence à categoria %s.", category.Name))
	}

	pc := domain.ProductCategory{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		CategoryID:   category.ID,
		AssociatedAt: time.Now().UTC(),
	}
	if _, err := s.associations.Save(ctx, pc); err != nil {
		s.logger.Error("Falha ao criar associação.", err)
		return err
	}

	s.logger.Info("Associação criada.", map[string]interface{}{"product_id": product.ID, "category_id": category.ID})
	return nil
}

// DisassociateCategory remove a associação entre produto e categoria.
// Par inexistente é rejeitado com NotAssociated.
func (s *Service) DisassociateCategory(ctx context.Context, productID, categoryID string) error {
	product, err := s.findByID(ctx, productID)
	if err != nil {
		return err
	}

	category, err := s.categories.FindCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	pc, err := s.associations.Find(ctx, product.ID, category.ID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return apperror.NewNotAssociatedError(
				fmt.Sprintf("O produto não pertence à categoria %s.", category.Name))
		}
		s.logger.Error("Falha ao buscar associação.", err)
		return err
	}

	if err := s.associations.Delete(ctx, pc.ID); err != nil {
		s.logger.Error("Falha ao remover associação.", err)
		return err
	}

	s.logger.Info("Associação removida.", map[string]interface{}{"product_id": product.ID, "category_id": category.ID})
	return nil
}

// GetProductCategories lista os nomes das categorias associadas ao produto,
// ordenados por nome de categoria ascendente.
func (s *Service) GetProductCategories(ctx context.Context, productID string) ([]string, error) {
	product, err := s.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	associations, err := s.associations.FindByProduct(ctx, product.ID)
	if err != nil {
		s.logger.Error("Falha ao buscar associações do produto.", err)
		return nil, err
	}

	names := make([]string, 0, len(associations))
	for _, pc := range associations {
		names = append(names, pc.CategoryName)
	}
	return names, nil
}

// GetTotalInventoryValue calcula a soma de preço × estoque de todos os
// produtos. Catálogo vazio resulta em zero exato, nunca em valor ausente.
func (s *Service) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.SumInventoryValue(ctx)
	if err != nil {
		s.logger.Error("Falha ao calcular valor do inventário.", err)
		return decimal.Zero, err
	}
	return total, nil
}

// GetLowStockProducts lista produtos com estoque abaixo do limite padrão do
// processo, ordenados por estoque ascendente.
func (s *Service) GetLowStockProducts(ctx context.Context) ([]domain.ProductResponse, error) {
	return s.GetLowStockProductsWithThreshold(ctx, s.lowStock)
}

// GetLowStockProductsWithThreshold lista produtos com estoque estritamente
// abaixo do limite informado, sem tocar na configuração do processo.
func (s *Service) GetLowStockProductsWithThreshold(ctx context.Context, threshold int) ([]domain.ProductResponse, error) {
	products, err := s.repo.FindByStockLessThan(ctx, threshold)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos com estoque baixo.", err)
		return nil, err
	}
	return s.toResponses(ctx, products)
}

// DefaultLowStockThreshold expõe o limite padrão vigente.
func (s *Service) DefaultLowStockThreshold() int {
	return s.lowStock
}

// findByID valida o formato do id e resolve a entidade.
func (s *Service) findByID(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError.
		return domain.Product{}, err
	}

	return product, nil
}

// associateCategories cria associações a partir de uma lista de ids de
// categoria. Pares já associados (inclusive duplicados dentro da própria
// lista) são pulados sem erro; um id inexistente aborta com NotFound.
func (s *Service) associateCategories(ctx context.Context, productID string, categoryIDs []string) error {
	for _, categoryID := range categoryIDs {
		category, err := s.categories.FindCategory(ctx, categoryID)
		if err != nil {
			return err
		}

		exists, err := s.associations.Exists(ctx, productID, category.ID)
		if err != nil {
			s.logger.Error("Falha ao verificar associação.", err)
			return err
		}
		if exists {
			continue
		}

		pc := domain.ProductCategory{
			ID:           uuid.New().String(),
			ProductID:    productID,
			CategoryID:   category.ID,
			AssociatedAt: time.Now().UTC(),
		}
		if _, err := s.associations.Save(ctx, pc); err != nil {
			s.logger.Error("Falha ao criar associação.", err)
			return err
		}
	}
	return nil
}

// validateRequest aplica as regras de negócio sobre o payload de produto.
// A validação estrutural das bordas já cobre estes casos, mas o serviço
// nunca persiste estado inválido mesmo quando chamado diretamente.
func validateRequest(req domain.ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperror.NewValidationError("O nome do produto não pode ser vazio.")
	}
	if req.Price == nil || req.Price.Sign() <= 0 {
		return apperror.NewValidationError("O preço deve ser maior que 0.")
	}
	if req.Stock == nil || *req.Stock < 0 {
		return apperror.NewValidationError("O estoque não pode ser negativo.")
	}
	return nil
}

// toResponse monta a projeção completa do produto. Os nomes de categoria são
// recalculados da tabela de associação a cada leitura.
func (s *Service) toResponse(ctx context.Context, product domain.Product) (domain.ProductResponse, error) {
	associations, err := s.associations.FindByProduct(ctx, product.ID)
	if err != nil {
		s.logger.Error("Falha ao projetar categorias do produto.", err)
		return domain.ProductResponse{}, err
	}

	categories := make([]string, 0, len(associations))
	for _, pc := range associations {
		categories = append(categories, pc.CategoryName)
	}

	return domain.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Categories:  categories,
	}, nil
}

// toResponses projeta uma lista de produtos.
func (s *Service) toResponses(ctx context.Context, products []domain.Product) ([]domain.ProductResponse, error) {
	responses := make([]domain.ProductResponse, 0, len(products))
	for _, product := range products {
		response, err := s.toResponse(ctx, product)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}
