package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "goinventory/internal/errors"
)

func TestMapToHTTPStatus_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"not found", apperror.NewNotFoundError("Produto não encontrado."), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate name", apperror.NewDuplicateNameError("Nome duplicado."), http.StatusBadRequest, "DUPLICATE_NAME"},
		{"invalid value", apperror.NewValidationError("Preço inválido."), http.StatusBadRequest, "INVALID_VALUE"},
		{"already associated", apperror.NewAlreadyAssociatedError("Par já existe."), http.StatusBadRequest, "ALREADY_ASSOCIATED"},
		{"not associated", apperror.NewNotAssociatedError("Par não existe."), http.StatusBadRequest, "NOT_ASSOCIATED"},
		{"unauthorized", apperror.NewUnauthorizedError("Credenciais inválidas."), http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tc.err)

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
			// Erros 4xx expõem a mensagem de negócio original.
			assert.Equal(t, tc.err.Error(), message)
		})
	}
}

func TestMapToHTTPStatus_InternalErrorHidesDetail(t *testing.T) {
	cause := stderrors.New("pq: connection refused")
	err := apperror.NewDBError("Falha ao buscar produto", cause)

	status, category, message := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", category)
	assert.NotContains(t, message, "pq:")
	assert.NotContains(t, message, "Falha ao buscar produto")
}

func TestMapToHTTPStatus_UntypedErrorIsGeneric500(t *testing.T) {
	status, category, message := apperror.MapToHTTPStatus(stderrors.New("panic recuperado"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", category)
	assert.NotContains(t, message, "panic")
}

func TestInternalError_UnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("driver: bad connection")
	err := apperror.NewInternalError("Falha inesperada", cause)

	assert.True(t, stderrors.Is(err, cause))
}
