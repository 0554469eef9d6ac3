package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
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
	GetLowStockProductsWithThreshold(ctx context.Context, threshold int) ([]domain.ProductResponse, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		h.Logger.Info("Requisição concluída com sucesso", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		// A causa raiz fica no log; a resposta leva apenas a mensagem genérica.
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// handleFieldErrors envia um 400 com o mapa campo → mensagem da validação estrutural.
func (h *Handler) handleFieldErrors(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	h.Logger.Debug("Payload rejeitado na validação estrutural.", map[string]interface{}{
		"path":   r.URL.Path,
		"fields": fmt.Sprintf("%v", fieldErrors),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     http.StatusBadRequest,
		"category": "INVALID_VALUE",
		"errors":   fieldErrors,
	})
}

// validateProductRequest faz a validação estrutural do payload, campo a campo,
// antes de qualquer chamada ao serviço. Todos os problemas são reportados de
// uma vez, não apenas o primeiro.
func validateProductRequest(req domain.ProductRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "O nome do produto é obrigatório."
	}
	if req.Price == nil {
		fieldErrors["price"] = "O preço é obrigatório."
	} else if req.Price.Sign() <= 0 {
		fieldErrors["price"] = "O preço deve ser maior que 0."
	}
	if req.Stock == nil {
		fieldErrors["stock"] = "O estoque é obrigatório."
	} else if *req.Stock < 0 {
		fieldErrors["stock"] = "O estoque não pode ser negativo."
	}

	return fieldErrors
}

// CreateProductHandler lida com a requisição POST /api/v1/products.
// @Summary Cria um novo produto
// @Description Cria um novo produto no catálogo, com associações iniciais opcionais.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.ProductRequest true "Dados do produto para criação"
// @Success 201 {object} domain.ProductResponse "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Categoria referenciada não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	if fieldErrors := validateProductRequest(req); len(fieldErrors) > 0 {
		h.handleFieldErrors(w, r, fieldErrors)
		return
	}

	created, err := h.Service.CreateProduct(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, created, nil, http.StatusCreated)
}

// GetProductsHandler lida com a requisição GET /api/v1/products.
// @Summary Lista produtos, com filtro opcional por nome ou categoria
// @Tags products
// @Produce json
// @Param name query string false "Fragmento do nome do produto"
// @Param category query string false "Fragmento do nome da categoria"
// @Success 200 {array} domain.ProductResponse "Lista de produtos"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		products []domain.ProductResponse
		err      error
	)
	switch {
	case r.URL.Query().Get("name") != "":
		products, err = h.Service.SearchByName(ctx, r.URL.Query().Get("name"))
	case r.URL.Query().Get("category") != "":
		products, err = h.Service.SearchByCategory(ctx, r.URL.Query().Get("category"))
	default:
		products, err = h.Service.GetProducts(ctx)
	}
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /api/v1/products/{id}.
// @Summary Obtém um produto por ID
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} domain.ProductResponse "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// SearchByNameHandler lida com a requisição GET /api/v1/products/search?name=.
// @Summary Busca produtos por fragmento de nome
// @Tags products
// @Produce json
// @Param name query string true "Fragmento do nome (case-insensitive)"
// @Success 200 {array} domain.ProductResponse "Produtos encontrados"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/search [get]
func (h *Handler) SearchByNameHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// SearchByCategoryHandler lida com a requisição GET /api/v1/products/search/category?name=.
// @Summary Busca produtos por fragmento de nome de categoria
// @Tags products
// @Produce json
// @Param name query string true "Fragmento do nome da categoria (case-insensitive)"
// @Success 200 {array} domain.ProductResponse "Produtos encontrados (conjunto distinto)"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/search/category [get]
func (h *Handler) SearchByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.SearchByCategory(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /api/v1/products/{id}.
// @Summary Atualiza um produto
// @Description Substitui os atributos do produto e o conjunto completo de associações de categoria.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do Produto"
// @Param product body domain.ProductRequest true "Dados do produto para atualização"
// @Success 200 {object} domain.ProductResponse "Produto atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto ou categoria não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	if fieldErrors := validateProductRequest(req); len(fieldErrors) > 0 {
		h.handleFieldErrors(w, r, fieldErrors)
		return
	}

	updated, err := h.Service.UpdateProduct(ctx, r.PathValue("id"), req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// UpdateStockHandler lida com a requisição PATCH /api/v1/products/{id}/stock.
// @Summary Ajusta o estoque de um produto
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do Produto"
// @Param stock body domain.StockRequest true "Novo valor de estoque"
// @Success 200 {object} domain.ProductResponse "Produto com estoque atualizado"
// @Failure 400 {object} domain.ErrorResponse "Estoque inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id}/stock [patch]
func (h *Handler) UpdateStockHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	if req.Stock == nil {
		h.handleFieldErrors(w, r, map[string]string{"stock": "O estoque é obrigatório."})
		return
	}

	updated, err := h.Service.UpdateStock(ctx, r.PathValue("id"), *req.Stock)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// UpdatePriceHandler lida com a requisição PATCH /api/v1/products/{id}/price.
// @Summary Ajusta o preço de um produto
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do Produto"
// @Param price body domain.PriceRequest true "Novo valor de preço"
// @Success 200 {object} domain.ProductResponse "Produto com preço atualizado"
// @Failure 400 {object} domain.ErrorResponse "Preço inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id}/price [patch]
func (h *Handler) UpdatePriceHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdatePrice(ctx, r.PathValue("id"), req.Price)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /api/v1/products/{id}.
// @Summary Deleta um produto
// @Description Remove o produto e, em cascata, todas as suas associações de categoria.
// @Tags products
// @Param id path string true "ID do Produto"
// @Success 204 "Produto removido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// AssociateCategoryHandler lida com POST /api/v1/products/{id}/categories/{categoryId}.
// @Summary Associa um produto a uma categoria
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Param categoryId path string true "ID da Categoria"
// @Success 201 "Associação criada"
// @Failure 400 {object} domain.ErrorResponse "Par já associado"
// @Failure 404 {object} domain.ErrorResponse "Produto ou categoria não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id}/categories/{categoryId} [post]
func (h *Handler) AssociateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.AssociateCategory(r.Context(), r.PathValue("id"), r.PathValue("categoryId"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusCreated)
}

// DisassociateCategoryHandler lida com DELETE /api/v1/products/{id}/categories/{categoryId}.
// @Summary Remove a associação entre produto e categoria
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Param categoryId path string true "ID da Categoria"
// @Success 204 "Associação removida"
// @Failure 400 {object} domain.ErrorResponse "Par não associado"
// @Failure 404 {object} domain.ErrorResponse "Produto ou categoria não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id}/categories/{categoryId} [delete]
func (h *Handler) DisassociateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DisassociateCategory(r.Context(), r.PathValue("id"), r.PathValue("categoryId"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// GetProductCategoriesHandler lida com GET /api/v1/products/{id}/categories.
// @Summary Lista os nomes das categorias do produto
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {array} string "Nomes de categoria, ordenados"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/{id}/categories [get]
func (h *Handler) GetProductCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := h.Service.GetProductCategories(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, names, nil, http.StatusOK)
}

// GetInventoryValueHandler lida com GET /api/v1/products/inventory-value.
// @Summary Calcula o valor total do inventário
// @Description Soma preço × estoque de todos os produtos. Catálogo vazio retorna zero.
// @Tags products
// @Produce json
// @Success 200 {object} domain.InventoryValueResponse "Valor total"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/inventory-value [get]
func (h *Handler) GetInventoryValueHandler(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.GetTotalInventoryValue(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, domain.InventoryValueResponse{TotalValue: total}, nil, http.StatusOK)
}

// GetLowStockHandler lida com GET /api/v1/products/low-stock?threshold=.
// @Summary Lista produtos com estoque baixo
// @Description Produtos com estoque estritamente abaixo do limite. Sem query param, usa o limite padrão configurado.
// @Tags products
// @Produce json
// @Param threshold query int false "Limite de estoque para esta consulta"
// @Success 200 {array} domain.ProductResponse "Produtos com estoque baixo, ordenados por estoque"
// @Failure 400 {object} domain.ErrorResponse "Limite inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/low-stock [get]
func (h *Handler) GetLowStockHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		products []domain.ProductResponse
		err      error
	)

	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O limite deve ser um número inteiro."), http.StatusBadRequest)
			return
		}
		products, err = h.Service.GetLowStockProductsWithThreshold(ctx, threshold)
	} else {
		products, err = h.Service.GetLowStockProducts(ctx)
	}

	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}
