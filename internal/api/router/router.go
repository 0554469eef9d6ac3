package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"goinventory/internal/api/category"
	"goinventory/internal/api/product"
	"goinventory/internal/api/user"
	"goinventory/internal/domain"
	"goinventory/internal/pkg/middleware"
	"goinventory/internal/web"
)

// Middlewares agrupa os middlewares transversais aplicados às rotas da API.
type Middlewares struct {
	Auth      func(next http.HandlerFunc) http.HandlerFunc
	RateLimit func(next http.HandlerFunc) http.HandlerFunc
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
// Leituras exigem qualquer usuário autenticado; mutações exigem admin.
func NewRouter(
	productHandler *product.Handler,
	categoryHandler *category.Handler,
	userHandler *user.Handler,
	webHandler *web.Handler,
	mw Middlewares,
) http.Handler {
	mux := http.NewServeMux()

	// Composição: rate limit -> auth -> role -> handler.
	read := func(h http.HandlerFunc) http.HandlerFunc {
		return mw.RateLimit(mw.Auth(middleware.PermissionMiddleware(domain.RoleUser, domain.RoleAdmin)(h)))
	}
	write := func(h http.HandlerFunc) http.HandlerFunc {
		return mw.RateLimit(mw.Auth(middleware.PermissionMiddleware(domain.RoleAdmin)(h)))
	}
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return mw.RateLimit(h)
	}

	// --- Health Check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- Usuários (v1) ---
	mux.HandleFunc("POST /api/v1/users/register", public(userHandler.RegisterUserHandler))
	mux.HandleFunc("POST /api/v1/users/login", public(userHandler.LoginUserHandler))

	// --- Produtos (v1) ---
	mux.HandleFunc("POST /api/v1/products", write(productHandler.CreateProductHandler))
	mux.HandleFunc("GET /api/v1/products", read(productHandler.GetProductsHandler))
	mux.HandleFunc("GET /api/v1/products/search", read(productHandler.SearchByNameHandler))
	mux.HandleFunc("GET /api/v1/products/search/category", read(productHandler.SearchByCategoryHandler))
	mux.HandleFunc("GET /api/v1/products/inventory-value", read(productHandler.GetInventoryValueHandler))
	mux.HandleFunc("GET /api/v1/products/low-stock", read(productHandler.GetLowStockHandler))
	mux.HandleFunc("GET /api/v1/products/{id}", read(productHandler.GetProductByIDHandler))
	mux.HandleFunc("PUT /api/v1/products/{id}", write(productHandler.UpdateProductHandler))
	mux.HandleFunc("DELETE /api/v1/products/{id}", write(productHandler.DeleteProductHandler))
	mux.HandleFunc("PATCH /api/v1/products/{id}/stock", write(productHandler.UpdateStockHandler))
	mux.HandleFunc("PATCH /api/v1/products/{id}/price", write(productHandler.UpdatePriceHandler))
	mux.HandleFunc("GET /api/v1/products/{id}/categories", read(productHandler.GetProductCategoriesHandler))
	mux.HandleFunc("POST /api/v1/products/{id}/categories/{categoryId}", write(productHandler.AssociateCategoryHandler))
	mux.HandleFunc("DELETE /api/v1/products/{id}/categories/{categoryId}", write(productHandler.DisassociateCategoryHandler))

	// --- Categorias (v1) ---
	mux.HandleFunc("POST /api/v1/categories", write(categoryHandler.CreateCategoryHandler))
	mux.HandleFunc("GET /api/v1/categories", read(categoryHandler.GetCategoriesHandler))
	mux.HandleFunc("GET /api/v1/categories/{id}", read(categoryHandler.GetCategoryByIDHandler))
	mux.HandleFunc("PUT /api/v1/categories/{id}", write(categoryHandler.UpdateCategoryHandler))
	mux.HandleFunc("DELETE /api/v1/categories/{id}", write(categoryHandler.DeleteCategoryHandler))

	// --- Superfície web (HTML renderizado no servidor) ---
	webHandler.RegisterRoutes(mux)

	return mux
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
