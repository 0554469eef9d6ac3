package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"goinventory/config"
	"goinventory/internal/pkg/cache"
	"goinventory/internal/pkg/database"
	"goinventory/internal/pkg/logger"
	"goinventory/internal/pkg/middleware"
	"goinventory/internal/pkg/seed"
	"goinventory/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"goinventory/internal/api/category"
	"goinventory/internal/api/product"
	"goinventory/internal/api/router"
	"goinventory/internal/api/user"
	"goinventory/internal/repository/associationrepo"
	"goinventory/internal/repository/categoryrepo"
	"goinventory/internal/repository/productrepo"
	"goinventory/internal/repository/userrepo"
	"goinventory/internal/service/categoryservice"
	"goinventory/internal/service/productservice"
	"goinventory/internal/service/userservice"
	"goinventory/internal/web"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoInventory...")
	if err := godotenv.Load(); err != nil {
		// As variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Repository -> Service -> Handler)

	categoryRepo := categoryrepo.NewCategoryRepository(db, cfg.DBTimeout, log)
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	associationRepo := associationrepo.NewAssociationRepository(db, cfg.DBTimeout)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout)
	log.Debug("Repositórios inicializados.", nil)

	jwtExpiry := time.Hour * time.Duration(cfg.JWTExpiryHours)
	tokenSvc := token.NewService(cfg.JWTSecretKey, jwtExpiry)

	categorySvc := categoryservice.NewService(categoryRepo, log)
	productSvc := productservice.NewService(productRepo, associationRepo, categorySvc, cfg.LowStockThreshold, log)
	userSvc := userservice.NewService(userRepo, tokenSvc)
	log.Debug("Serviços inicializados.", nil)

	categoryHandler := category.NewHandler(categorySvc, log)
	productHandler := product.NewHandler(productSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	webHandler := web.NewHandler(productSvc, categorySvc, userSvc, tokenSvc, jwtExpiry, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Seed de dados de demonstração (apenas em banco vazio)
	if cfg.SeedData {
		seeder := &seed.Seeder{
			Categories:   categoryRepo,
			Products:     productRepo,
			Associations: associationRepo,
			Users:        userRepo,
			Logger:       log,
		}
		if err := seeder.Run(context.Background()); err != nil {
			log.Error("Falha ao popular dados de demonstração.", err)
		}
	}

	// 5. Roteador e Servidor
	r := router.NewRouter(productHandler, categoryHandler, userHandler, webHandler, router.Middlewares{
		Auth:      middleware.NewAuthMiddleware(tokenSvc),
		RateLimit: middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoInventory ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
