package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
	"goinventory/internal/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Nomes dos cookies de mensagem flash (consumidos e apagados na próxima página).
const (
	flashCookieName      = "goinventory_flash"
	flashErrorCookieName = "goinventory_flash_error"
)

// ProductService é o recorte do serviço de produtos consumido pela superfície web.
type ProductService interface {
	CreateProduct(ctx context.Context, req domain.ProductRequest) (domain.ProductResponse, error)
	GetProducts(ctx context.Context) ([]domain.ProductResponse, error)
	GetProductByID(ctx context.Context, id string) (domain.ProductResponse, error)
	SearchByName(ctx context.Context, fragment string) ([]domain.ProductResponse, error)
	SearchByCategory(ctx context.Context, fragment string) ([]domain.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req domain.ProductRequest) (domain.ProductResponse, error)
	UpdateStock(ctx context.Context, id string, newStock int) (domain.ProductResponse, error)
	UpdatePrice(ctx context.Context, id string, newPrice *decimal.Decimal) (domain.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	AssociateCategory(ctx context.Context, productID, categoryID string) error
	DisassociateCategory(ctx context.Context, productID, categoryID string) error
	GetProductCategories(ctx context.Context, productID string) ([]string, error)
	GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	GetLowStockProducts(ctx context.Context) ([]domain.ProductResponse, error)
	DefaultLowStockThreshold() int
}

// CategoryService é o recorte do serviço de categorias consumido pela superfície web.
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (domain.CategoryResponse, error)
	GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id string) (domain.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, newName string) (domain.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}

// UserService é o recorte do serviço de usuários consumido pela superfície web.
type UserService interface {
	Login(ctx context.Context, email string, password string) (string, error)
}

// Handler serve as páginas HTML renderizadas no servidor.
// Cada página é um conjunto layout + conteúdo, parseado uma única vez na construção.
type Handler struct {
	Products   ProductService
	Categories CategoryService
	Users      UserService
	Tokens     middleware.TokenService
	Logger     logger.Logger
	sessionTTL time.Duration
	templates  map[string]*template.Template
}

// as páginas embutidas; cada uma define o bloco "content" do layout.
var pageNames = []string{
	"home", "products", "product_form", "product_detail",
	"stock_form", "price_form", "categories", "category_form",
	"login", "error",
}

// NewHandler cria o handler web e parseia todos os templates embutidos.
// sessionTTL controla a validade do cookie de sessão (igual à do JWT).
func NewHandler(products ProductService, categories CategoryService, users UserService, tokens middleware.TokenService, sessionTTL time.Duration, log logger.Logger) *Handler {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		templates[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}

	return &Handler{
		Products:   products,
		Categories: categories,
		Users:      users,
		Tokens:     tokens,
		Logger:     log,
		sessionTTL: sessionTTL,
		templates:  templates,
	}
}

// RegisterRoutes registra todas as rotas da superfície web no mux.
// Páginas de leitura exigem login; formulários e mutações exigem admin.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /login", h.LoginFormHandler)
	mux.HandleFunc("POST /login", h.LoginSubmitHandler)
	mux.HandleFunc("POST /logout", h.LogoutHandler)

	mux.HandleFunc("GET /{$}", h.requireUser(h.HomeHandler))

	mux.HandleFunc("GET /products", h.requireUser(h.ProductListHandler))
	mux.HandleFunc("GET /products/new", h.requireAdmin(h.ProductNewFormHandler))
	mux.HandleFunc("POST /products", h.requireAdmin(h.ProductCreateHandler))
	mux.HandleFunc("GET /products/{id}", h.requireUser(h.ProductDetailHandler))
	mux.HandleFunc("GET /products/{id}/edit", h.requireAdmin(h.ProductEditFormHandler))
	mux.HandleFunc("POST /products/{id}", h.requireAdmin(h.ProductUpdateHandler))
	mux.HandleFunc("POST /products/{id}/delete", h.requireAdmin(h.ProductDeleteHandler))
	mux.HandleFunc("GET /products/{id}/stock", h.requireAdmin(h.StockFormHandler))
	mux.HandleFunc("POST /products/{id}/stock", h.requireAdmin(h.StockSubmitHandler))
	mux.HandleFunc("GET /products/{id}/price", h.requireAdmin(h.PriceFormHandler))
	mux.HandleFunc("POST /products/{id}/price", h.requireAdmin(h.PriceSubmitHandler))
	mux.HandleFunc("POST /products/{id}/categories", h.requireAdmin(h.AssociateHandler))
	mux.HandleFunc("POST /products/{id}/categories/{categoryId}/remove", h.requireAdmin(h.DisassociateHandler))

	mux.HandleFunc("GET /categories", h.requireUser(h.CategoryListHandler))
	mux.HandleFunc("POST /categories", h.requireAdmin(h.CategoryCreateHandler))
	mux.HandleFunc("GET /categories/{id}/edit", h.requireAdmin(h.CategoryEditFormHandler))
	mux.HandleFunc("POST /categories/{id}", h.requireAdmin(h.CategoryUpdateHandler))
	mux.HandleFunc("POST /categories/{id}/delete", h.requireAdmin(h.CategoryDeleteHandler))
}

// --- Autenticação da superfície web ---

// requireUser exige um cookie de sessão válido; sem ele, redireciona para o login.
func (h *Handler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := h.sessionClaims(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), middleware.UserClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireAdmin exige sessão válida com papel admin.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return h.requireUser(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserClaimsFromContext(r.Context())
		if claims.Role != domain.RoleAdmin {
			h.renderErrorPage(w, r, http.StatusForbidden, "Acesso negado. Você não tem a permissão necessária.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionClaims valida o cookie de sessão e extrai as claims.
func (h *Handler) sessionClaims(r *http.Request) (middleware.UserClaims, bool) {
	cookie, err := r.Cookie(middleware.AuthCookieName)
	if err != nil {
		return middleware.UserClaims{}, false
	}

	claims, err := h.Tokens.ValidateToken(cookie.Value)
	if err != nil {
		return middleware.UserClaims{}, false
	}

	return middleware.UserClaims{
		UserID: claims.UserID,
		Role:   domain.UserRole(claims.Role),
	}, true
}

// --- Dados base de página e renderização ---

type basePage struct {
	Title    string
	Flash    string
	Error    string
	LoggedIn bool
	IsAdmin  bool
}

// newBase monta os dados comuns de página: consome os cookies de flash e lê
// as claims da sessão.
func (h *Handler) newBase(w http.ResponseWriter, r *http.Request, title string) basePage {
	page := basePage{Title: title}
	page.Flash = takeCookie(w, r, flashCookieName)
	page.Error = takeCookie(w, r, flashErrorCookieName)

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		page.LoggedIn = true
		page.IsAdmin = claims.Role == domain.RoleAdmin
	} else if claims, ok := h.sessionClaims(r); ok {
		page.LoggedIn = true
		page.IsAdmin = claims.Role == domain.RoleAdmin
	}

	return page
}

func (h *Handler) render(w http.ResponseWriter, page string, status int, data interface{}) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.Logger.Error("Template de página não registrado: "+page, nil)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		h.Logger.Error("Falha ao renderizar template: "+page, err)
	}
}

// renderServiceError traduz um erro de serviço para a superfície web:
// erros 5xx viram a página de erro com mensagem genérica (o detalhe fica nos
// logs); erros de negócio viram flash de erro e redirecionam de volta.
func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro de Servidor na superfície web: "+category, err)
		h.renderErrorPage(w, r, status, message)
		return
	}

	setCookie(w, flashErrorCookieName, message)
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

func (h *Handler) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := struct {
		basePage
		Status  int
		Message string
	}{
		basePage: h.newBase(w, r, "Erro"),
		Status:   status,
		Message:  message,
	}
	h.render(w, "error", status, data)
}

// --- Cookies de flash ---

func setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		HttpOnly: true,
	})
}

// takeCookie lê e apaga um cookie de mensagem.
func takeCookie(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}

func (h *Handler) flash(w http.ResponseWriter, message string) {
	setCookie(w, flashCookieName, message)
}

// --- Login / Logout ---

func (h *Handler) LoginFormHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		basePage
		Email string
	}{basePage: h.newBase(w, r, "Entrar")}

	h.render(w, "login", http.StatusOK, data)
}

func (h *Handler) LoginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	tokenString, err := h.Users.Login(r.Context(), email, password)
	if err != nil {
		_, _, message := apperror.MapToHTTPStatus(err)
		data := struct {
			basePage
			Email string
		}{basePage: h.newBase(w, r, "Entrar"), Email: email}
		data.Error = message

		h.render(w, "login", http.StatusUnauthorized, data)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: middleware.AuthCookieName, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// --- Painel ---

// HomeHandler renderiza o painel com os agregados do inventário.
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.Products.GetProducts(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	categories, err := h.Categories.GetCategories(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	total, err := h.Products.GetTotalInventoryValue(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	lowStock, err := h.Products.GetLowStockProducts(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	data := struct {
		basePage
		TotalProducts   int
		TotalCategories int
		InventoryValue  string
		LowStockCount   int
		Threshold       int
		LowStock        []domain.ProductResponse
	}{
		basePage:        h.newBase(w, r, "Painel"),
		TotalProducts:   len(products),
		TotalCategories: len(categories),
		InventoryValue:  total.StringFixed(2),
		LowStockCount:   len(lowStock),
		Threshold:       h.Products.DefaultLowStockThreshold(),
		LowStock:        lowStock,
	}

	h.render(w, "home", http.StatusOK, data)
}

// --- Produtos ---

// ProductListHandler renderiza a lista de produtos, com busca opcional por
// nome ou por categoria.
func (h *Handler) ProductListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	searchName := r.URL.Query().Get("name")
	searchCategory := r.URL.Query().Get("category")

	var (
		products []domain.ProductResponse
		err      error
	)
	switch {
	case searchName != "":
		products, err = h.Products.SearchByName(ctx, searchName)
	case searchCategory != "":
		products, err = h.Products.SearchByCategory(ctx, searchCategory)
	default:
		products, err = h.Products.GetProducts(ctx)
	}
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	total, err := h.Products.GetTotalInventoryValue(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	data := struct {
		basePage
		Products       []domain.ProductResponse
		InventoryValue string
		SearchName     string
		SearchCategory string
	}{
		basePage:       h.newBase(w, r, "Produtos"),
		Products:       products,
		InventoryValue: total.StringFixed(2),
		SearchName:     searchName,
		SearchCategory: searchCategory,
	}

	h.render(w, "products", http.StatusOK, data)
}

// productFormData monta os dados do formulário de produto (novo ou edição).
type productFormData struct {
	basePage
	Action     string
	Product    domain.ProductResponse
	Categories []domain.CategoryResponse
	Selected   map[string]bool
}

func (h *Handler) ProductNewFormHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.GetCategories(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	data := productFormData{
		basePage:   h.newBase(w, r, "Novo produto"),
		Action:     "/products",
		Categories: categories,
		Selected:   map[string]bool{},
	}

	h.render(w, "product_form", http.StatusOK, data)
}

func (h *Handler) ProductEditFormHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	product, err := h.Products.GetProductByID(ctx, id)
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	categories, err := h.Categories.GetCategories(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	// Pré-seleção por nome: nomes de categoria são únicos no catálogo.
	selected := make(map[string]bool, len(product.Categories))
	for _, name := range product.Categories {
		selected[name] = true
	}

	data := productFormData{
		basePage:   h.newBase(w, r, "Editar produto"),
		Action:     "/products/" + product.ID,
		Product:    product,
		Categories: categories,
		Selected:   selected,
	}

	h.render(w, "product_form", http.StatusOK, data)
}

// parseProductForm converte o formulário HTML no payload de produto.
func parseProductForm(r *http.Request) (domain.ProductRequest, error) {
	if err := r.ParseForm(); err != nil {
		return domain.ProductRequest{}, apperror.NewValidationError("Formulário inválido.")
	}

	req := domain.ProductRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		CategoryIDs: r.Form["category_ids"],
	}

	// Aceita vírgula como separador decimal (formato brasileiro).
	rawPrice := strings.ReplaceAll(strings.TrimSpace(r.FormValue("price")), ",", ".")
	if rawPrice != "" {
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return domain.ProductRequest{}, apperror.NewValidationError("O preço informado não é um número válido.")
		}
		req.Price = &price
	}

	if rawStock := strings.TrimSpace(r.FormValue("stock")); rawStock != "" {
		stock, err := strconv.Atoi(rawStock)
		if err != nil {
			return domain.ProductRequest{}, apperror.NewValidationError("O estoque informado não é um número inteiro.")
		}
		req.Stock = &stock
	}

	return req, nil
}

func (h *Handler) ProductCreateHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseProductForm(r)
	if err != nil {
		h.renderServiceError(w, r, err, "/products/new")
		return
	}

	created, err := h.Products.CreateProduct(r.Context(), req)
	if err != nil {
		h.renderServiceError(w, r, err, "/products/new")
		return
	}

	h.flash(w, "Produto \""+created.Name+"\" criado com sucesso.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) ProductUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	req, err := parseProductForm(r)
	if err != nil {
		h.renderServiceError(w, r, err, "/products/"+id+"/edit")
		return
	}

	updated, err := h.Products.UpdateProduct(r.Context(), id, req)
	if err != nil {
		h.renderServiceError(w, r, err, "/products/"+id+"/edit")
		return
	}

	h.flash(w, "Produto \""+updated.Name+"\" atualizado com sucesso.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) ProductDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Products.DeleteProduct(r.Context(), id); err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	h.flash(w, "Produto removido.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// ProductDetailHandler renderiza o produto com suas associações e as
// categorias ainda disponíveis para associar.
func (h *Handler) ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	product, err := h.Products.GetProductByID(ctx, id)
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	categories, err := h.Categories.GetCategories(ctx)
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	associatedNames := make(map[string]bool, len(product.Categories))
	for _, name := range product.Categories {
		associatedNames[name] = true
	}

	var associated, available []domain.CategoryResponse
	for _, category := range categories {
		if associatedNames[category.Name] {
			associated = append(associated, category)
		} else {
			available = append(available, category)
		}
	}

	data := struct {
		basePage
		Product    domain.ProductResponse
		Associated []domain.CategoryResponse
		Available  []domain.CategoryResponse
	}{
		basePage:   h.newBase(w, r, product.Name),
		Product:    product,
		Associated: associated,
		Available:  available,
	}

	h.render(w, "product_detail", http.StatusOK, data)
}

func (h *Handler) AssociateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	categoryID := r.FormValue("category_id")
	backTo := "/products/" + id

	if err := h.Products.AssociateCategory(r.Context(), id, categoryID); err != nil {
		h.renderServiceError(w, r, err, backTo)
		return
	}

	h.flash(w, "Categoria associada.")
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

func (h *Handler) DisassociateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	categoryID := r.PathValue("categoryId")
	backTo := "/products/" + id

	if err := h.Products.DisassociateCategory(r.Context(), id, categoryID); err != nil {
		h.renderServiceError(w, r, err, backTo)
		return
	}

	h.flash(w, "Categoria desassociada.")
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// --- Estoque e preço ---

func (h *Handler) StockFormHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.GetProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	data := struct {
		basePage
		Product domain.ProductResponse
	}{basePage: h.newBase(w, r, "Ajustar estoque"), Product: product}

	h.render(w, "stock_form", http.StatusOK, data)
}

func (h *Handler) StockSubmitHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	backTo := "/products/" + id + "/stock"

	stock, err := strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))
	if err != nil {
		h.renderServiceError(w, r, apperror.NewValidationError("O estoque informado não é um número inteiro."), backTo)
		return
	}

	updated, err := h.Products.UpdateStock(r.Context(), id, stock)
	if err != nil {
		h.renderServiceError(w, r, err, backTo)
		return
	}

	h.flash(w, "Estoque de \""+updated.Name+"\" atualizado.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) PriceFormHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.GetProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderServiceError(w, r, err, "/products")
		return
	}

	data := struct {
		basePage
		Product domain.ProductResponse
	}{basePage: h.newBase(w, r, "Ajustar preço"), Product: product}

	h.render(w, "price_form", http.StatusOK, data)
}

func (h *Handler) PriceSubmitHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	backTo := "/products/" + id + "/price"

	rawPrice := strings.ReplaceAll(strings.TrimSpace(r.FormValue("price")), ",", ".")
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		h.renderServiceError(w, r, apperror.NewValidationError("O preço informado não é um número válido."), backTo)
		return
	}

	updated, err := h.Products.UpdatePrice(r.Context(), id, &price)
	if err != nil {
		h.renderServiceError(w, r, err, backTo)
		return
	}

	h.flash(w, "Preço de \""+updated.Name+"\" atualizado.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// --- Categorias ---

func (h *Handler) CategoryListHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.GetCategories(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err, "/")
		return
	}

	data := struct {
		basePage
		Categories []domain.CategoryResponse
	}{basePage: h.newBase(w, r, "Categorias"), Categories: categories}

	h.render(w, "categories", http.StatusOK, data)
}

func (h *Handler) CategoryCreateHandler(w http.ResponseWriter, r *http.Request) {
	created, err := h.Categories.CreateCategory(r.Context(), r.FormValue("name"))
	if err != nil {
		h.renderServiceError(w, r, err, "/categories")
		return
	}

	h.flash(w, "Categoria \""+created.Name+"\" criada com sucesso.")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handler) CategoryEditFormHandler(w http.ResponseWriter, r *http.Request) {
	category, err := h.Categories.GetCategoryByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderServiceError(w, r, err, "/categories")
		return
	}

	data := struct {
		basePage
		Category domain.CategoryResponse
	}{basePage: h.newBase(w, r, "Renomear categoria"), Category: category}

	h.render(w, "category_form", http.StatusOK, data)
}

func (h *Handler) CategoryUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	updated, err := h.Categories.UpdateCategory(r.Context(), id, r.FormValue("name"))
	if err != nil {
		h.renderServiceError(w, r, err, "/categories/"+id+"/edit")
		return
	}

	h.flash(w, "Categoria renomeada para \""+updated.Name+"\".")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handler) CategoryDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Categories.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		h.renderServiceError(w, r, err, "/categories")
		return
	}

	h.flash(w, "Categoria removida.")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
