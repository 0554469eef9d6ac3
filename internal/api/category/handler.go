package category

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"goinventory/internal/domain"
	apperror "goinventory/internal/errors"
	"goinventory/internal/pkg/logger"
)

// CategoryService define o contrato que o Handler espera da camada de Serviço.
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (domain.CategoryResponse, error)
	GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id string) (domain.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, newName string) (domain.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler da categoria.
type Handler struct {
	Service CategoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CategoryService, log logger.Logger) *Handler {
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

// CreateCategoryHandler lida com a requisição POST /api/v1/categories.
// @Summary Cria uma nova categoria
// @Description Cria uma categoria com nome único (comparação case-insensitive).
// @Tags categories
// @Accept json
// @Produce json
// @Param category body domain.CategoryRequest true "Dados da categoria"
// @Success 201 {object} domain.CategoryResponse "Categoria criada"
// @Failure 400 {object} domain.ErrorResponse "Nome vazio ou duplicado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /categories [post]
func (h *Handler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O nome da categoria é obrigatório."), http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateCategory(ctx, req.Name)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, created, nil, http.StatusCreated)
}

// GetCategoriesHandler lida com a requisição GET /api/v1/categories.
// @Summary Lista todas as categorias
// @Description Cada categoria traz a contagem de produtos associados.
// @Tags categories
// @Produce json
// @Success 200 {array} domain.CategoryResponse "Lista de categorias, ordenada por nome"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /categories [get]
func (h *Handler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetCategories(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, categories, nil, http.StatusOK)
}

// GetCategoryByIDHandler lida com a requisição GET /api/v1/categories/{id}.
// @Summary Obtém uma categoria por ID
// @Tags categories
// @Produce json
// @Param id path string true "ID da Categoria"
// @Success 200 {object} domain.CategoryResponse "Categoria encontrada"
// @Failure 404 {object} domain.ErrorResponse "Categoria não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /categories/{id} [get]
func (h *Handler) GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	category, err := h.Service.GetCategoryByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, category, nil, http.StatusOK)
}

// UpdateCategoryHandler lida com a requisição PUT /api/v1/categories/{id}.
// @Summary Renomeia uma categoria
// @Description O novo nome não pode colidir com outra categoria; renomear para o próprio nome é permitido.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "ID da Categoria"
// @Param category body domain.CategoryRequest true "Novo nome"
// @Success 200 {object} domain.CategoryResponse "Categoria atualizada"
// @Failure 400 {object} domain.ErrorResponse "Nome vazio ou duplicado"
// @Failure 404 {object} domain.ErrorResponse "Categoria não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /categories/{id} [put]
func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateCategory(ctx, r.PathValue("id"), req.Name)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// DeleteCategoryHandler lida com a requisição DELETE /api/v1/categories/{id}.
// @Summary Deleta uma categoria
// @Description Remove a categoria e, em cascata, todas as associações com produtos. Os produtos permanecem.
// @Tags categories
// @Param id path string true "ID da Categoria"
// @Success 204 "Categoria removida"
// @Failure 404 {object} domain.ErrorResponse "Categoria não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
