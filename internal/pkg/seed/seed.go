package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"goinventory/internal/domain"
	"goinventory/internal/pkg/logger"
)

// CategoryRepository é o recorte de persistência de categorias usado pelo seed.
type CategoryRepository interface {
	Save(ctx context.Context, category domain.Category) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
}

// ProductRepository é o recorte de persistência de produtos usado pelo seed.
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
}

// AssociationRepository é o recorte de persistência de associações usado pelo seed.
type AssociationRepository interface {
	Save(ctx context.Context, pc domain.ProductCategory) (domain.ProductCategory, error)
}

// UserRepository é o recorte de persistência de usuários usado pelo seed.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// Seeder popula o banco com dados de demonstração na primeira subida.
type Seeder struct {
	Categories   CategoryRepository
	Products     ProductRepository
	Associations AssociationRepository
	Users        UserRepository
	Logger       logger.Logger
}

// seedProduct descreve um produto de demonstração e suas categorias (por nome).
type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	categories  []string
}

var seedCategories = []string{"Eletrônica", "Informática", "Casa", "Roupas", "Alimentos"}

var seedProducts = []seedProduct{
	{"Notebook Lenovo ThinkPad", "Notebook corporativo 14\", 16GB RAM, 512GB SSD", "1299.99", 8, []string{"Informática", "Eletrônica"}},
	{"Mouse sem fio Logitech MX", "Mouse ergonômico com sensor de alta precisão", "79.90", 3, []string{"Informática"}},
	{"Fone Sony WH-1000XM5", "Fone de ouvido com cancelamento de ruído", "349.00", 15, []string{"Eletrônica"}},
	{"Cafeteira Nespresso Vertuo", "Cafeteira de cápsulas com espumador", "129.00", 2, []string{"Casa", "Eletrônica"}},
	{"Camiseta Algodão Premium", "Camiseta básica 100% algodão, corte unissex", "24.99", 50, []string{"Roupas"}},
	{"Monitor LG 27\" 4K", "Monitor IPS 4K com ajuste de altura", "499.00", 4, []string{"Informática", "Eletrônica"}},
	{"Café Moído Especial", "Café 100% arábica, torra média, 500g", "12.50", 1, []string{"Alimentos"}},
}

// Run popula categorias, produtos, associações e usuários de demonstração.
// Se já existir qualquer categoria, o seed inteiro é pulado (banco já populado).
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.Categories.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.Logger.Debug("Seed pulado: o banco já contém categorias.", nil)
		return nil
	}

	s.Logger.Info("Populando o banco com dados de demonstração.", nil)

	now := time.Now().UTC()

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, name := range seedCategories {
		category, err := s.Categories.Save(ctx, domain.Category{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		categoryIDs[name] = category.ID
	}

	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return err
		}

		product, err := s.Products.Save(ctx, domain.Product{
			ID:          uuid.New().String(),
			Name:        sp.name,
			Description: sp.description,
			Price:       price,
			Stock:       sp.stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		for _, categoryName := range sp.categories {
			if _, err := s.Associations.Save(ctx, domain.ProductCategory{
				ID:           uuid.New().String(),
				ProductID:    product.ID,
				CategoryID:   categoryIDs[categoryName],
				AssociatedAt: now,
			}); err != nil {
				return err
			}
		}
	}

	if err := s.seedUser(ctx, "admin@goinventory.local", "admin123", domain.RoleAdmin, now); err != nil {
		return err
	}
	if err := s.seedUser(ctx, "user@goinventory.local", "user123", domain.RoleUser, now); err != nil {
		return err
	}

	s.Logger.Info("Seed concluído.", map[string]interface{}{
		"categories": len(seedCategories),
		"products":   len(seedProducts),
	})
	return nil
}

// seedUser cria um usuário de demonstração se o email ainda não existir.
func (s *Seeder) seedUser(ctx context.Context, email, password string, role domain.UserRole, now time.Time) error {
	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.Users.Save(ctx, domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return err
}
