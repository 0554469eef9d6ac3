package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros de domínio do GoInventory.
// Ela permite que o código externo (Handler, camada web) acesse a Categoria
// e o status HTTP sugerido sem conhecer o tipo concreto.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "NOT_FOUND", "DUPLICATE_NAME")
	HTTPStatus() int  // Código HTTP sugerido para a camada de apresentação
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro de Domínio ---

// NotFoundError representa a ausência de um Produto ou Categoria referenciado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// DuplicateNameError representa colisão de nome de categoria
// (comparação case-insensitive).
type DuplicateNameError struct {
	Msg string
}

func (e *DuplicateNameError) Error() string    { return e.Msg }
func (e *DuplicateNameError) Category() string { return "DUPLICATE_NAME" }
func (e *DuplicateNameError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *DuplicateNameError) Unwrap() error    { return nil }

// NewDuplicateNameError cria um novo erro de nome duplicado.
func NewDuplicateNameError(msg string) AppError {
	return &DuplicateNameError{Msg: msg}
}

// ValidationError representa violação de regra de negócio sobre um valor
// fornecido diretamente (preço <= 0, estoque negativo, nome em branco).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "INVALID_VALUE" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação de valor.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// AlreadyAssociatedError indica que o par (produto, categoria) já existe.
type AlreadyAssociatedError struct {
	Msg string
}

func (e *AlreadyAssociatedError) Error() string    { return e.Msg }
func (e *AlreadyAssociatedError) Category() string { return "ALREADY_ASSOCIATED" }
func (e *AlreadyAssociatedError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *AlreadyAssociatedError) Unwrap() error    { return nil }

// NewAlreadyAssociatedError cria um novo erro de associação duplicada.
func NewAlreadyAssociatedError(msg string) AppError {
	return &AlreadyAssociatedError{Msg: msg}
}

// NotAssociatedError indica que o par (produto, categoria) não existe.
type NotAssociatedError struct {
	Msg string
}

func (e *NotAssociatedError) Error() string    { return e.Msg }
func (e *NotAssociatedError) Category() string { return "NOT_ASSOCIATED" }
func (e *NotAssociatedError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *NotAssociatedError) Unwrap() error    { return nil }

// NewNotAssociatedError cria um novo erro de associação inexistente.
func NewNotAssociatedError(msg string) AppError {
	return &NotAssociatedError{Msg: msg}
}

// --- Tipos de Erro de Borda / Infraestrutura ---

// UnauthorizedError representa falha de autenticação ou autorização.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação/autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
// O erro subjacente fica disponível via Unwrap para logging, mas nunca é
// exposto ao chamador externo.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas não esperadas).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %v", msg, err), err)
}

// --- Helper para as camadas de apresentação (Tradução Final) ---

// genericInternalMessage é a única mensagem que um erro 5xx pode expor a
// chamadores externos. Diagnóstico interno fica apenas nos logs.
const genericInternalMessage = "Ocorreu um erro inesperado. Tente novamente mais tarde."

// MapToHTTPStatus recebe um erro de domínio e o traduz para o código HTTP,
// a categoria e a mensagem a serem expostos. Erros 5xx (tipados ou não)
// nunca vazam detalhe interno.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			return status, appErr.Category(), genericInternalMessage
		}
		return status, appErr.Category(), appErr.Error()
	}

	// Erro não tipado (falha de storage, pânico convertido, etc.).
	return http.StatusInternalServerError, "INTERNAL_ERROR", genericInternalMessage
}
